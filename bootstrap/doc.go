// Package bootstrap runs an executable through a uniform lifecycle.
//
// An App validates its typed config, initialises logging, starts the
// registered components in order, runs configure callbacks and hooks, logs
// a startup summary, and on exit stops everything in reverse order within a
// graceful timeout.
//
// Long-running services use Run, which blocks until SIGINT, SIGTERM or
// context cancellation. Finite work such as serving one stdio session uses
// RunTask, which shuts down when the task returns.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(telemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return serve(ctx)
//	})
package bootstrap
