// Package httpclient is the outbound HTTP adapter used to reach the HuiTing
// transcription service.
//
// It joins request paths onto a base URL and encodes JSON or
// multipart/form-data bodies. Failures are classified into typed *Error
// values: timeouts, connection failures, non-2xx statuses (with the literal
// body preserved) and undecodable responses. Every request is traced and,
// when metrics are attached, counted.
//
//	a, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:8000",
//	    Timeout: 10 * time.Minute,
//	})
//
//	resp, err := httpclient.Post[uploadResponse](a, ctx, "/upload", &httpclient.MultipartBody{
//	    Files: []httpclient.FileField{{FieldName: "file", FileName: "a.wav", Data: data}},
//	})
package httpclient
