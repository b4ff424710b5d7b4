// Package validation enforces tool argument schemas and configuration
// constraints.
//
// Struct tag validation (go-playground/validator) backs tool arguments:
//
//	type pathArgs struct {
//	    FilePath string `json:"file_path" validate:"required,abspath"`
//	}
//	err := validation.Arguments("upload_audio", &args)
//
// Present checks the raw arguments first: a required argument must be
// supplied and not null, but may be an empty string.
//
// Field names in messages use the json tag, so they match the names the
// invoking agent sent. Besides the built-in tags, "abspath" requires an
// absolute file-system path.
//
// The programmatic Validator collects configuration errors:
//
//	v := validation.New()
//	v.Required("huiting.api_url", cfg.APIURL).OneOf("transport.mode", mode, modes)
//	err := v.Err()
package validation
