package groq

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

const improvePrompt = `Please improve the following transcription, fixing any errors and making it more readable in the target language. Only return the text, no further comments.

%s

Improved transcription:`

const summaryPrompt = `Please provide a concise summary of the following transcription in the target language. If possible return bullet points. Write it out of the perspective of the transcript.

%s

Summary:`

// Client talks to Groq's OpenAI-compatible API. It covers both the
// speech-to-text endpoint and the chat-completion endpoint used for
// improving and summarizing transcripts.
type Client struct {
	api                *openai.Client
	transcriptionModel string
	completionModel    string
}

func NewClient(apiKey, transcriptionModel, completionModel string) *Client {
	return NewClientWithURL(apiKey, defaultBaseURL, transcriptionModel, completionModel)
}

func NewClientWithURL(apiKey, baseURL, transcriptionModel, completionModel string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if transcriptionModel == "" {
		transcriptionModel = "whisper-large-v3"
	}
	if completionModel == "" {
		completionModel = "llama-3.1-70b-versatile"
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &Client{
		api:                openai.NewClientWithConfig(cfg),
		transcriptionModel: transcriptionModel,
		completionModel:    completionModel,
	}
}

func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcriptionModel,
		FilePath: audioPath,
	})
	if err != nil {
		return "", fmt.Errorf("creating transcription: %w", err)
	}

	return resp.Text, nil
}

func (c *Client) Improve(ctx context.Context, text string) (string, error) {
	improved, err := c.complete(ctx, fmt.Sprintf(improvePrompt, text))
	if err != nil {
		return "", fmt.Errorf("improving text: %w", err)
	}
	return improved, nil
}

func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	summary, err := c.complete(ctx, fmt.Sprintf(summaryPrompt, text))
	if err != nil {
		return "", fmt.Errorf("summarizing text: %w", err)
	}
	return summary, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.completionModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("creating completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
