package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/mcp-huiting/errors"
)

type inlineArgs struct {
	Content  string `json:"file_content_base64" validate:"required"`
	Filename string `json:"filename" validate:"required"`
}

type pathArgs struct {
	FilePath string `json:"file_path" validate:"required,abspath"`
}

func TestArgumentsValid(t *testing.T) {
	if err := Arguments("upload_audio", &inlineArgs{Content: "AAECAw==", Filename: "a.wav"}); err != nil {
		t.Errorf("expected valid args, got %v", err)
	}
	if err := Arguments("upload_audio", &pathArgs{FilePath: "/tmp/a.wav"}); err != nil {
		t.Errorf("expected valid path, got %v", err)
	}
}

func TestArgumentsViolations(t *testing.T) {
	tests := []struct {
		name   string
		args   any
		fields []string
	}{
		{"missing both", &inlineArgs{}, []string{"file_content_base64 is required", "filename is required"}},
		{"relative path", &pathArgs{FilePath: "audio/a.wav"}, []string{"file_path must be an absolute path"}},
		{"empty path", &pathArgs{}, []string{"file_path is required"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Arguments("upload_audio", tc.args)
			if !errors.HasCode(err, errors.ErrCodeSchemaViolation) {
				t.Fatalf("expected schema violation, got %v", err)
			}
			for _, want := range tc.fields {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected %q in %q", want, err.Error())
				}
			}
			appErr, _ := errors.AsAppError(err)
			if fields, ok := appErr.Details["fields"].([]FieldError); !ok || len(fields) != len(tc.fields) {
				t.Errorf("expected %d field errors in details, got %v", len(tc.fields), appErr.Details["fields"])
			}
		})
	}
}

func TestPresent(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		missing []string
	}{
		{"all supplied", map[string]any{"audio_uuid": "u-1", "filename": "a.wav"}, nil},
		{"empty string is supplied", map[string]any{"audio_uuid": "", "filename": ""}, nil},
		{"absent", map[string]any{"filename": "a.wav"}, []string{"audio_uuid is required"}},
		{"null", map[string]any{"audio_uuid": nil, "filename": nil}, []string{"audio_uuid is required", "filename is required"}},
		{"nil map", nil, []string{"audio_uuid is required", "filename is required"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Present("transcribe_audio", tc.args, "audio_uuid", "filename")
			if len(tc.missing) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.HasCode(err, errors.ErrCodeSchemaViolation) {
				t.Fatalf("expected schema violation, got %v", err)
			}
			for _, want := range tc.missing {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected %q in %q", want, err.Error())
				}
			}
		})
	}
}

func TestStructNonStruct(t *testing.T) {
	if _, err := Struct("not a struct"); err == nil {
		t.Error("expected error validating a non-struct")
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("AudioUUID"); got != "audio_u_u_i_d" {
		t.Errorf("unexpected snake case %q", got)
	}
	if got := toSnakeCase("FilePath"); got != "file_path" {
		t.Errorf("unexpected snake case %q", got)
	}
}

func TestValidatorRequired(t *testing.T) {
	if New().Required("name", "mcp").HasErrors() {
		t.Error("expected no errors for valid input")
	}
	if !New().Required("name", "").HasErrors() {
		t.Error("expected error for empty required field")
	}
	if !New().Required("name", "   ").HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorHTTPURL(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"http://localhost:8000", false},
		{"https://huiting.example.com/api", false},
		{"", false},
		{"localhost:8000", true},
		{"ftp://host", true},
		{"http://", true},
	}
	for _, tc := range tests {
		if got := New().HTTPURL("huiting.api_url", tc.value).HasErrors(); got != tc.wantErr {
			t.Errorf("HTTPURL(%q) error=%v, want %v", tc.value, got, tc.wantErr)
		}
	}
}

func TestValidatorRange(t *testing.T) {
	if New().Range("port", 8080, 1, 65535).HasErrors() {
		t.Error("expected 8080 in range")
	}
	if !New().Range("port", 0, 1, 65535).HasErrors() {
		t.Error("expected 0 out of range")
	}
}

func TestValidatorPositive(t *testing.T) {
	if New().Positive("timeout", 1).HasErrors() {
		t.Error("expected 1 to be positive")
	}
	if !New().Positive("timeout", 0).HasErrors() {
		t.Error("expected 0 to fail")
	}
}

func TestValidatorOneOf(t *testing.T) {
	modes := []string{"stdio", "http"}
	if New().OneOf("mode", "http", modes).HasErrors() {
		t.Error("expected http allowed")
	}
	if New().OneOf("mode", "", modes).HasErrors() {
		t.Error("expected empty value to be skipped")
	}
	v := New().OneOf("mode", "grpc", modes)
	if !v.HasErrors() || v.Errors()[0].Message != "must be one of: stdio, http" {
		t.Errorf("unexpected errors %v", v.Errors())
	}
}

func TestValidatorCustom(t *testing.T) {
	if !New().Custom(false, "x", "bad").HasErrors() {
		t.Error("expected custom failure")
	}
}

func TestValidatorErr(t *testing.T) {
	if err := New().Err(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	err := New().
		Required("huiting.api_url", "").
		Range("transport.port", -1, 1, 65535).
		Err()
	if err == nil {
		t.Fatal("expected error")
	}
	want := "invalid configuration: huiting.api_url is required; transport.port must be between 1 and 65535"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
