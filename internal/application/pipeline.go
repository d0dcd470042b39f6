package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"voicenote-bot/internal/domain"
)

// Pipeline turns one audio attachment into a transcript, an improved
// transcript and a summary, then delivers all three to the originating
// chat. A failed stage aborts the run and produces a single error reply.
type Pipeline struct {
	stt       SpeechToText
	refiner   TextRefiner
	messenger Messenger
	logger    *slog.Logger
}

func NewPipeline(
	stt SpeechToText,
	refiner TextRefiner,
	messenger Messenger,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		stt:       stt,
		refiner:   refiner,
		messenger: messenger,
		logger:    logger,
	}
}

func (p *Pipeline) Process(ctx context.Context, req *domain.TranscriptionRequest) error {
	log := p.logger.With("request_id", req.ID, "chat_id", req.ChatID)

	log.Info("transcribing audio",
		"kind", req.Kind,
		"file", req.FileName,
		"bytes", req.FileSize,
	)

	transcript, err := p.stt.Transcribe(ctx, req.AudioPath)
	if err != nil {
		return p.abort(ctx, req, fmt.Errorf("transcribing: %w", err))
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return p.abort(ctx, req, errors.New("transcription returned no text"))
	}
	req.Transcript = transcript
	log.Info("transcribed", "chars", len(transcript))

	improved, err := p.refiner.Improve(ctx, transcript)
	if err != nil {
		return p.abort(ctx, req, fmt.Errorf("improving transcription: %w", err))
	}
	improved = strings.TrimSpace(improved)
	if improved == "" {
		return p.abort(ctx, req, errors.New("improvement returned no text"))
	}
	req.Improved = improved
	log.Info("improved", "chars", len(improved))

	summary, err := p.refiner.Summarize(ctx, improved)
	if err != nil {
		return p.abort(ctx, req, fmt.Errorf("summarizing: %w", err))
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return p.abort(ctx, req, errors.New("summarization returned no text"))
	}
	req.Summary = summary
	log.Info("summarized", "chars", len(summary))

	for _, text := range []string{req.Transcript, req.Improved, req.Summary} {
		if err := p.messenger.Send(ctx, req.ChatID, req.ReplyTo, text); err != nil {
			log.Error("sending result", "error", err)
		}
	}

	return nil
}

func (p *Pipeline) abort(ctx context.Context, req *domain.TranscriptionRequest, err error) error {
	msg := fmt.Sprintf("An error occurred: %s", err)
	if sendErr := p.messenger.Send(ctx, req.ChatID, req.ReplyTo, msg); sendErr != nil {
		p.logger.Error("sending error message", "error", sendErr, "request_id", req.ID)
	}
	return err
}
