package gateway

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/kbukum/mcp-huiting/errors"
)

// Handle is the opaque audio identifier issued by the upload endpoint.
type Handle string

// AudioFile is the payload sent to the upload endpoint.
type AudioFile struct {
	Name string
	Data []byte
}

// AudioSource produces the bytes and file name for one upload.
type AudioSource interface {
	Load(ctx context.Context) (AudioFile, error)
}

// Source kinds accepted by configuration.
const (
	SourceInline = "inline"
	SourcePath   = "path"
)

// InlineSource is audio supplied by the caller as base64 text. Filename is
// forwarded as given, empty included.
type InlineSource struct {
	Content  string `json:"file_content_base64" validate:"required"`
	Filename string `json:"filename"`
}

// base64 alphabets tried in order: padded and unpadded, standard and URL-safe.
var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// Load decodes the base64 content. Whitespace, including line wrapping, is
// ignored.
func (s InlineSource) Load(_ context.Context) (AudioFile, error) {
	data, err := decodeBase64(s.Content)
	if err != nil {
		return AudioFile{}, errors.SchemaViolation("upload_audio", "file_content_base64 must be valid base64").WithCause(err)
	}
	return AudioFile{Name: s.Filename, Data: data}, nil
}

func decodeBase64(s string) ([]byte, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	var firstErr error
	for _, enc := range encodings {
		data, err := enc.DecodeString(compact)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// PathSource is audio read from the bridge host's file system.
type PathSource struct {
	FilePath string `json:"file_path" validate:"required,abspath"`
}

// Load reads the whole file; the upload name is the path's last segment.
// Any read failure is a FILE_READ_ERROR carrying the path.
func (s PathSource) Load(ctx context.Context) (AudioFile, error) {
	if err := ctx.Err(); err != nil {
		return AudioFile{}, errors.Timeout("read "+s.FilePath, err)
	}
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		return AudioFile{}, errors.FileRead(s.FilePath, err)
	}
	return AudioFile{Name: filepath.Base(s.FilePath), Data: data}, nil
}
