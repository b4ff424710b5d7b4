package bridge

import (
	"context"

	"github.com/kbukum/mcp-huiting/gateway"
	"github.com/kbukum/mcp-huiting/tool"
)

const (
	// ToolUploadAudio uploads audio and returns its handle.
	ToolUploadAudio = "upload_audio"
	// ToolTranscribeAudio transcribes previously uploaded audio.
	ToolTranscribeAudio = "transcribe_audio"
)

const (
	uploadInlineDescription = "Upload an audio file to the HuiTing service. Read the audio file from the workspace, " +
		"encode it as base64, and pass it here. The returned uuid is used by a later transcribe_audio call."
	uploadPathDescription = "Upload an audio file to the HuiTing service by its absolute path on this machine. " +
		"The returned uuid is used by a later transcribe_audio call."
	transcribeDescription = "Transcribe previously uploaded audio and return a Markdown document with speaker labels. " +
		"Call upload_audio first to obtain the uuid to pass here."
)

type transcribeArgs struct {
	AudioUUID string `json:"audio_uuid"`
}

// Tools returns the tool set for the given audio source variant: one
// upload_audio tool shaped by source, and transcribe_audio.
func Tools(client *gateway.Client, source string) []tool.Tool {
	return []tool.Tool{
		uploadTool(client, source),
		tool.New(ToolTranscribeAudio, transcribeDescription, []tool.Param{
			{Name: "audio_uuid", Description: "The uuid returned by upload_audio, identifying the audio to transcribe.", Required: true},
		}, func(ctx context.Context, args transcribeArgs) (string, error) {
			return client.Transcribe(ctx, gateway.Handle(args.AudioUUID))
		}),
	}
}

func uploadTool(client *gateway.Client, source string) tool.Tool {
	if source == gateway.SourcePath {
		return tool.New(ToolUploadAudio, uploadPathDescription, []tool.Param{
			{Name: "file_path", Description: "Absolute path of the audio file to upload, e.g. /data/meeting.mp3.", Required: true},
		}, func(ctx context.Context, src gateway.PathSource) (string, error) {
			return upload(ctx, client, src)
		})
	}
	return tool.New(ToolUploadAudio, uploadInlineDescription, []tool.Param{
		{Name: "file_content_base64", Description: "Base64-encoded content of the audio file.", Required: true},
		{Name: "filename", Description: "Original file name, used by the service to detect the format, e.g. meeting.mp3.", Required: true},
	}, func(ctx context.Context, src gateway.InlineSource) (string, error) {
		return upload(ctx, client, src)
	})
}

func upload(ctx context.Context, client *gateway.Client, src gateway.AudioSource) (string, error) {
	handle, err := client.UploadFrom(ctx, src)
	if err != nil {
		return "", err
	}
	return string(handle), nil
}
