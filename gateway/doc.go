// Package gateway is the client for the HuiTing transcription service.
//
// The service exposes a two-phase contract. POST /upload takes a multipart
// body with one "file" field and answers {"uuid": "..."}. POST /transcribe
// takes {"audio_uuid": "..."} and answers {"transcription": "..."}, a
// Markdown document with speaker labels.
//
// Audio reaches Upload through an AudioSource. InlineSource carries base64
// content supplied by the caller; PathSource reads a local file. Which one a
// process exposes is fixed at configuration time.
package gateway
