package application

import "context"

type Messenger interface {
	Send(ctx context.Context, chatID int64, replyTo int, text string) error
}

type NoopMessenger struct{}

func (n *NoopMessenger) Send(_ context.Context, _ int64, _ int, _ string) error {
	return nil
}
