package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/mcp-huiting/bridge"
	"github.com/kbukum/mcp-huiting/config"
	"github.com/kbukum/mcp-huiting/version"
)

// envPrefixes limits which environment variables reach the config. Only
// the bridge's own OTEL_ keys are listed; other OTEL_ variables belong to
// the OpenTelemetry SDK.
var envPrefixes = []string{
	"HUITING_", "TRANSPORT_", "LOGGING_",
	"OTEL_ENDPOINT", "OTEL_INSECURE", "OTEL_SAMPLE_RATE", "OTEL_INTERVAL",
}

// envAliases binds standard variables whose names do not map onto config keys.
var envAliases = map[string]string{
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
}

// flagKeys maps command-line flags to config keys. A flag only overrides
// when it was set explicitly.
var flagKeys = map[string]string{
	"api-url":      "huiting.api_url",
	"timeout":      "huiting.timeout",
	"audio-source": "huiting.audio_source",
	"transport":    "transport.mode",
	"host":         "transport.host",
	"port":         "transport.port",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
	"environment":  "environment",
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var configFile, envFile string

	root := &cobra.Command{
		Use:           bridge.ServiceName,
		Short:         "Expose the HuiTing transcription service as MCP tools",
		Long:          "mcp-huiting serves upload_audio and transcribe_audio over MCP (stdio by default, or streamable HTTP) and forwards each call to a HuiTing service.",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, configFile, envFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, in, out)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "path to config.yml")
	flags.StringVar(&envFile, "env-file", "", "path to a .env file")
	flags.String("api-url", "", "HuiTing service base URL (default http://localhost:8000)")
	flags.Duration("timeout", 0, "timeout per outbound call (default 10m)")
	flags.String("audio-source", "", "upload_audio variant: inline or path (default inline)")
	flags.String("transport", "", "MCP transport: stdio or http (default stdio)")
	flags.String("host", "", "listen host for the http transport")
	flags.Int("port", 0, "listen port for the http transport")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: json or console")
	flags.String("environment", "", "development, staging or production")

	root.AddCommand(newVersionCmd())
	return root
}

func loadConfig(cmd *cobra.Command, configFile, envFile string) (*bridge.Config, error) {
	opts := []config.LoaderOption{config.WithEnvPrefixes(envPrefixes...)}
	for envKey, key := range envAliases {
		opts = append(opts, config.WithEnvAlias(envKey, key))
	}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	opts = append(opts, flagOverrides(cmd)...)

	var cfg bridge.Config
	if err := config.LoadConfig(bridge.ServiceName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func flagOverrides(cmd *cobra.Command) []config.LoaderOption {
	var opts []config.LoaderOption
	flags := cmd.Flags()
	for flag, key := range flagKeys {
		if !flags.Changed(flag) {
			continue
		}
		var value any
		switch flag {
		case "timeout":
			d, _ := flags.GetDuration(flag)
			value = d.String()
		case "port":
			value, _ = flags.GetInt(flag)
		default:
			value, _ = flags.GetString(flag)
		}
		opts = append(opts, config.WithOverride(key, value))
	}
	return opts
}

func serve(ctx context.Context, cfg *bridge.Config, in io.Reader, out io.Writer) error {
	b, err := bridge.New(cfg)
	if err != nil {
		return err
	}
	err = b.Serve(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), info)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
