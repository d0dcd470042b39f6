package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Groq     GroqConfig     `yaml:"groq"`
	Log      LogConfig      `yaml:"log"`
}

type TelegramConfig struct {
	Token         string `yaml:"token"`
	PollTimeout   int    `yaml:"poll_timeout"`
	MaxAudioBytes int64  `yaml:"max_audio_bytes"`
}

type GroqConfig struct {
	APIKey             string `yaml:"api_key"`
	BaseURL            string `yaml:"base_url"`
	TranscriptionModel string `yaml:"transcription_model"`
	CompletionModel    string `yaml:"completion_model"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Telegram.PollTimeout == 0 {
		c.Telegram.PollTimeout = 30
	}
	if c.Telegram.MaxAudioBytes == 0 {
		c.Telegram.MaxAudioBytes = 25 << 20
	}
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Groq.TranscriptionModel == "" {
		c.Groq.TranscriptionModel = "whisper-large-v3"
	}
	if c.Groq.CompletionModel == "" {
		c.Groq.CompletionModel = "llama-3.1-70b-versatile"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required (set TELEGRAM_BOT_TOKEN)")
	}
	if c.Groq.APIKey == "" {
		return fmt.Errorf("groq.api_key is required (set GROQ_API_KEY)")
	}
	return nil
}
