package application

import "context"

type TextRefiner interface {
	Improve(ctx context.Context, text string) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
}
