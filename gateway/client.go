package gateway

import (
	"context"
	"fmt"

	"github.com/kbukum/mcp-huiting/errors"
	"github.com/kbukum/mcp-huiting/httpclient"
	"github.com/kbukum/mcp-huiting/logger"
)

const (
	uploadPath     = "/upload"
	transcribePath = "/transcribe"
	fileField      = "file"

	opUpload     = "upload"
	opTranscribe = "transcription"
)

type uploadResponse struct {
	UUID *string `json:"uuid"`
}

type transcribeRequest struct {
	AudioUUID string `json:"audio_uuid"`
}

type transcribeResponse struct {
	Transcription *string `json:"transcription"`
}

// Client calls the HuiTing upload and transcribe endpoints. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	adapter *httpclient.Adapter
	log     *logger.Logger
}

// NewClient creates a client over an adapter whose BaseURL points at the
// service root.
func NewClient(a *httpclient.Adapter) *Client {
	return &Client{
		adapter: a,
		log:     logger.WithComponent("gateway"),
	}
}

// UploadFrom loads audio from src and uploads it. A source failure is
// returned as is and no request is made.
func (c *Client) UploadFrom(ctx context.Context, src AudioSource) (Handle, error) {
	file, err := src.Load(ctx)
	if err != nil {
		return "", err
	}
	return c.Upload(ctx, file)
}

// Upload sends file as the "file" part of a multipart POST to /upload and
// returns the issued handle unchanged, even when it is empty.
func (c *Client) Upload(ctx context.Context, file AudioFile) (Handle, error) {
	c.log.WithContext(ctx).Debug("Uploading audio", logger.Fields(
		"filename", file.Name,
		logger.FieldBytes, len(file.Data),
	))

	body := &httpclient.MultipartBody{
		Files: []httpclient.FileField{{FieldName: fileField, FileName: file.Name, Data: file.Data}},
	}
	resp, err := httpclient.Post[uploadResponse](c.adapter, ctx, uploadPath, body)
	if err != nil {
		return "", c.mapError(opUpload, err)
	}
	if resp.Data.UUID == nil {
		return "", errors.InvalidResponse(opUpload, fmt.Errorf("response has no uuid"))
	}
	return Handle(*resp.Data.UUID), nil
}

// Transcribe posts {"audio_uuid": handle} to /transcribe and returns the
// transcription text verbatim.
func (c *Client) Transcribe(ctx context.Context, handle Handle) (string, error) {
	c.log.WithContext(ctx).Debug("Requesting transcription", logger.Fields("audio_uuid", string(handle)))

	resp, err := httpclient.Post[transcribeResponse](c.adapter, ctx, transcribePath,
		transcribeRequest{AudioUUID: string(handle)},
		httpclient.WithHeader("Content-Type", "application/json"),
	)
	if err != nil {
		return "", c.mapError(opTranscribe, err)
	}
	if resp.Data.Transcription == nil {
		return "", errors.InvalidResponse(opTranscribe, fmt.Errorf("response has no transcription"))
	}
	return *resp.Data.Transcription, nil
}

// mapError turns adapter failures into application errors. Non-2xx
// responses keep the literal status and body.
func (c *Client) mapError(op string, err error) error {
	e, ok := httpclient.AsError(err)
	if !ok {
		return errors.Internal(err)
	}
	switch {
	case e.HasStatus():
		if op == opUpload {
			return errors.Upload(e.StatusCode, string(e.Body))
		}
		return errors.Transcription(e.StatusCode, string(e.Body))
	case e.Code == httpclient.ErrCodeDecode:
		return errors.InvalidResponse(op, e)
	case httpclient.IsTimeout(e):
		return errors.Timeout(op, e)
	case httpclient.IsConnection(e):
		return errors.ConnectionFailed(c.adapter.GetConfig().BaseURL, e)
	default:
		return errors.Internal(e)
	}
}
