package httpclient

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"
)

func readParts(t *testing.T, reader io.Reader, contentType string) map[string]*partData {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("ParseMediaType error: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("media type = %q, want multipart/form-data", mediaType)
	}

	parts := map[string]*partData{}
	mr := multipart.NewReader(reader, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart error: %v", err)
		}
		data, _ := io.ReadAll(part)
		parts[part.FormName()] = &partData{
			fileName:    part.FileName(),
			contentType: part.Header.Get("Content-Type"),
			data:        data,
		}
	}
	return parts
}

type partData struct {
	fileName    string
	contentType string
	data        []byte
}

func TestMultipartBody_Encode_FileAndFields(t *testing.T) {
	audio := []byte{0x00, 0x01, 0xfe, 0xff, 'R', 'I', 'F', 'F'}
	mp := &MultipartBody{
		Fields: map[string]string{"language": "zh"},
		Files:  []FileField{{FieldName: "file", FileName: "meeting.wav", Data: audio}},
	}

	reader, contentType, err := mp.encode()
	if err != nil {
		t.Fatalf("encode() error: %v", err)
	}
	parts := readParts(t, reader, contentType)

	if got := string(parts["language"].data); got != "zh" {
		t.Errorf("language field = %q, want zh", got)
	}
	file := parts["file"]
	if file == nil {
		t.Fatal("file field not found")
	}
	if file.fileName != "meeting.wav" {
		t.Errorf("filename = %q, want meeting.wav", file.fileName)
	}
	if !bytes.Equal(file.data, audio) {
		t.Errorf("file data = %v, want %v", file.data, audio)
	}
	if file.contentType != "application/octet-stream" {
		t.Errorf("content type = %q, want application/octet-stream", file.contentType)
	}
}

func TestMultipartBody_Encode_CustomContentType(t *testing.T) {
	mp := &MultipartBody{
		Files: []FileField{{FieldName: "file", FileName: `we"ird.mp3`, ContentType: "audio/mpeg", Data: []byte("mp3")}},
	}

	reader, contentType, err := mp.encode()
	if err != nil {
		t.Fatalf("encode() error: %v", err)
	}
	parts := readParts(t, reader, contentType)
	if parts["file"].contentType != "audio/mpeg" {
		t.Errorf("content type = %q, want audio/mpeg", parts["file"].contentType)
	}
	if parts["file"].fileName != `we"ird.mp3` {
		t.Errorf("filename = %q, want quoted name round-tripped", parts["file"].fileName)
	}
}

func TestMultipartBody_Encode_WithReader(t *testing.T) {
	mp := &MultipartBody{
		Files: []FileField{{FieldName: "file", FileName: "a.wav", Reader: bytes.NewReader([]byte("streamed"))}},
	}

	reader, contentType, err := mp.encode()
	if err != nil {
		t.Fatalf("encode() error: %v", err)
	}
	if got := string(readParts(t, reader, contentType)["file"].data); got != "streamed" {
		t.Errorf("file content = %q, want streamed", got)
	}
}

func TestEscapeQuotes(t *testing.T) {
	if got := escapeQuotes(`a"b\c`); got != `a\"b\\c` {
		t.Errorf("escapeQuotes = %q", got)
	}
}
