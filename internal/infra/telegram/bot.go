package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"voicenote-bot/internal/domain"
)

const (
	welcomeText = "Welcome! Send me a voice message or an audio file (up to 25MB), and I'll transcribe, improve, and summarize it for you."

	promptText = "Please send a voice message or an audio file."

	tooLargeText = "The file is too large. Please send an audio file up to 25MB."

	processingText = "Processing your audio. This may take a moment..."
)

type Processor interface {
	Process(ctx context.Context, req *domain.TranscriptionRequest) error
}

// Bot receives updates over long polling and hands each audio message to
// the pipeline. Every update is handled in its own goroutine; a request
// touches only its own temp file, so no coordination is needed.
type Bot struct {
	api           *tgbotapi.BotAPI
	sender        *Sender
	pipeline      Processor
	maxAudioBytes int64
	pollTimeout   int
	fileEndpoint  string
	downloader    *http.Client
	logger        *slog.Logger
}

func NewBot(api *tgbotapi.BotAPI, pipeline Processor, maxAudioBytes int64, pollTimeout int, logger *slog.Logger) *Bot {
	return NewBotWithFileEndpoint(api, pipeline, maxAudioBytes, pollTimeout, tgbotapi.FileEndpoint, logger)
}

func NewBotWithFileEndpoint(
	api *tgbotapi.BotAPI,
	pipeline Processor,
	maxAudioBytes int64,
	pollTimeout int,
	fileEndpoint string,
	logger *slog.Logger,
) *Bot {
	if maxAudioBytes <= 0 {
		maxAudioBytes = domain.MaxAttachmentSize
	}
	return &Bot{
		api:           api,
		sender:        NewSender(api),
		pipeline:      pipeline,
		maxAudioBytes: maxAudioBytes,
		pollTimeout:   pollTimeout,
		fileEndpoint:  fileEndpoint,
		downloader:    &http.Client{Timeout: 60 * time.Second},
		logger:        logger,
	}
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.logger.Info("bot ready, waiting for messages", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case msg.Voice != nil || msg.Audio != nil:
		b.handleAudio(ctx, msg)
	default:
		b.reply(ctx, msg.Chat.ID, msg.MessageID, promptText)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(ctx, msg.Chat.ID, msg.MessageID, welcomeText)
	default:
		b.logger.Debug("ignoring unknown command", "command", msg.Command(), "chat_id", msg.Chat.ID)
	}
}

func (b *Bot) handleAudio(ctx context.Context, msg *tgbotapi.Message) {
	req := newRequest(msg)
	log := b.logger.With("request_id", req.ID, "chat_id", req.ChatID)

	if req.FileSize > b.maxAudioBytes {
		log.Warn("rejecting oversized attachment", "bytes", req.FileSize, "limit", b.maxAudioBytes)
		b.reply(ctx, req.ChatID, req.ReplyTo, tooLargeText)
		return
	}

	path, err := b.download(ctx, req)
	if err != nil {
		log.Error("downloading attachment", "error", err)
		b.reply(ctx, req.ChatID, req.ReplyTo, fmt.Sprintf("An error occurred: %s", err))
		return
	}
	req.AudioPath = path
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Warn("removing temp file", "path", path, "error", err)
		}
	}()

	b.reply(ctx, req.ChatID, req.ReplyTo, processingText)

	if err := b.pipeline.Process(ctx, req); err != nil {
		log.Error("processing request", "error", err)
	}
}

// newRequest builds a TranscriptionRequest from a message known to carry
// a voice or audio attachment.
func newRequest(msg *tgbotapi.Message) *domain.TranscriptionRequest {
	req := &domain.TranscriptionRequest{
		ID:      uuid.NewString(),
		ChatID:  msg.Chat.ID,
		ReplyTo: msg.MessageID,
	}

	if msg.Voice != nil {
		req.Kind = domain.KindVoice
		req.FileID = msg.Voice.FileID
		req.FileName = "voice.ogg"
		req.FileSize = int64(msg.Voice.FileSize)
		return req
	}

	req.Kind = domain.KindAudio
	req.FileID = msg.Audio.FileID
	req.FileName = msg.Audio.FileName
	if req.FileName == "" {
		req.FileName = "audio.ogg"
	}
	req.FileSize = int64(msg.Audio.FileSize)
	return req
}

func audioExt(req *domain.TranscriptionRequest) string {
	if ext := filepath.Ext(req.FileName); ext != "" {
		return ext
	}
	return ".ogg"
}

func (b *Bot) download(ctx context.Context, req *domain.TranscriptionRequest) (string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: req.FileID})
	if err != nil {
		return "", fmt.Errorf("resolving file: %w", err)
	}

	url := fmt.Sprintf(b.fileEndpoint, b.api.Token, file.FilePath)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}

	resp, err := b.downloader.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("downloading file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading file: %s", resp.Status)
	}

	path := filepath.Join(os.TempDir(), "voicenote-"+req.ID+audioExt(req))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	written, err := io.Copy(out, io.LimitReader(resp.Body, b.maxAudioBytes+1))
	if err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if written > b.maxAudioBytes {
		os.Remove(path)
		return "", fmt.Errorf("file exceeds %d bytes", b.maxAudioBytes)
	}

	return path, nil
}

func (b *Bot) reply(ctx context.Context, chatID int64, replyTo int, text string) {
	if err := b.sender.Send(ctx, chatID, replyTo, text); err != nil {
		b.logger.Error("sending reply", "error", err, "chat_id", chatID)
	}
}
