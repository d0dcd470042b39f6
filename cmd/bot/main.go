package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"voicenote-bot/config"
	"voicenote-bot/internal/application"
	"voicenote-bot/internal/infra/groq"
	"voicenote-bot/internal/infra/telegram"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Error("connecting to telegram", "error", err)
		os.Exit(1)
	}

	groqClient := groq.NewClientWithURL(
		cfg.Groq.APIKey,
		cfg.Groq.BaseURL,
		cfg.Groq.TranscriptionModel,
		cfg.Groq.CompletionModel,
	)

	sender := telegram.NewSender(api)
	pipeline := application.NewPipeline(groqClient, groqClient, sender, logger)
	bot := telegram.NewBot(api, pipeline, cfg.Telegram.MaxAudioBytes, cfg.Telegram.PollTimeout, logger)

	logger.Info("starting transcription bot",
		"username", api.Self.UserName,
		"transcription_model", cfg.Groq.TranscriptionModel,
		"completion_model", cfg.Groq.CompletionModel,
	)

	if err := bot.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("bot error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
