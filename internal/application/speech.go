package application

import "context"

type SpeechToText interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
