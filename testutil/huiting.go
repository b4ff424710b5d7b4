package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/kbukum/mcp-huiting/component"
)

// DefaultTranscript is what FakeHuiting returns for a known handle.
const DefaultTranscript = "**Speaker 1**: hello"

// Request is one call recorded by FakeHuiting. For multipart uploads
// FileName and FileData hold the "file" part; otherwise Body holds the raw
// request body.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
	FileName    string
	FileData    []byte
}

type failure struct {
	status int
	body   string
}

// FakeHuiting is an in-process stand-in for the HuiTing service. Uploads
// issue sequential handles u-1, u-2, ...; transcribing a handle it never
// issued answers 404.
type FakeHuiting struct {
	// Transcript is returned for known handles.
	Transcript string

	mu       sync.Mutex
	srv      *httptest.Server
	handles  map[string]string
	requests []Request
	failures map[string]failure
}

var _ TestComponent = (*FakeHuiting)(nil)

// NewFakeHuiting creates a fake. It serves nothing until Start.
func NewFakeHuiting() *FakeHuiting {
	return &FakeHuiting{
		Transcript: DefaultTranscript,
		handles:    make(map[string]string),
		failures:   make(map[string]failure),
	}
}

func (f *FakeHuiting) Name() string { return "fake-huiting" }

// Start begins serving on a loopback port.
func (f *FakeHuiting) Start(_ context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", f.handleUpload)
	mux.HandleFunc("/transcribe", f.handleTranscribe)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.srv != nil {
		return fmt.Errorf("%s already started", f.Name())
	}
	f.srv = httptest.NewServer(mux)
	return nil
}

// Stop shuts the server down.
func (f *FakeHuiting) Stop(_ context.Context) error {
	f.mu.Lock()
	srv := f.srv
	f.srv = nil
	f.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
	return nil
}

func (f *FakeHuiting) Health(_ context.Context) component.Health {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.srv == nil {
		return component.Health{Name: f.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: f.Name(), Status: component.StatusHealthy}
}

// Reset forgets handles, recorded requests and forced failures.
func (f *FakeHuiting) Reset(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Transcript = DefaultTranscript
	f.handles = make(map[string]string)
	f.requests = nil
	f.failures = make(map[string]failure)
	return nil
}

// URL returns the service root. It is empty before Start.
func (f *FakeHuiting) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.srv == nil {
		return ""
	}
	return f.srv.URL
}

// Fail makes every later request to path answer status with body.
func (f *FakeHuiting) Fail(path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = failure{status: status, body: body}
}

// Requests returns a copy of the recorded requests in arrival order.
func (f *FakeHuiting) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Count returns how many requests reached path.
func (f *FakeHuiting) Count(path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}

func (f *FakeHuiting) record(r *http.Request) Request {
	rec := Request{Method: r.Method, Path: r.URL.Path, ContentType: r.Header.Get("Content-Type")}
	if strings.HasPrefix(rec.ContentType, "multipart/form-data") {
		if file, header, err := r.FormFile("file"); err == nil {
			rec.FileName = header.Filename
			rec.FileData, _ = io.ReadAll(file)
			file.Close()
		}
	} else {
		rec.Body, _ = io.ReadAll(r.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()
	return rec
}

// forced reports a configured failure for path.
func (f *FakeHuiting) forced(w http.ResponseWriter, path string) bool {
	f.mu.Lock()
	fail, ok := f.failures[path]
	f.mu.Unlock()
	if ok {
		w.WriteHeader(fail.status)
		io.WriteString(w, fail.body)
	}
	return ok
}

func (f *FakeHuiting) handleUpload(w http.ResponseWriter, r *http.Request) {
	rec := f.record(r)
	if f.forced(w, r.URL.Path) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if rec.FileName == "" {
		http.Error(w, "missing file", http.StatusUnprocessableEntity)
		return
	}

	f.mu.Lock()
	handle := fmt.Sprintf("u-%d", len(f.handles)+1)
	f.handles[handle] = rec.FileName
	f.mu.Unlock()

	writeJSON(w, map[string]string{"uuid": handle})
}

func (f *FakeHuiting) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	rec := f.record(r)
	if f.forced(w, r.URL.Path) {
		return
	}

	var req struct {
		AudioUUID string `json:"audio_uuid"`
	}
	if err := json.Unmarshal(rec.Body, &req); err != nil || req.AudioUUID == "" {
		http.Error(w, "invalid body", http.StatusUnprocessableEntity)
		return
	}

	f.mu.Lock()
	_, known := f.handles[req.AudioUUID]
	transcript := f.Transcript
	f.mu.Unlock()
	if !known {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "audio not found")
		return
	}
	writeJSON(w, map[string]string{"transcription": transcript})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
