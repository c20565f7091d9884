package transport

import "context"

// ChatTarget addresses a destination chat (and optional forum thread).
type ChatTarget struct {
	ChatID   int64
	ThreadID int
}

// MessageRef identifies a delivered message, returned as the delivery
// receipt of a send.
type MessageRef struct {
	ChatID    int64
	ThreadID  int
	MessageID int
}

type SendOptions struct {
	ParseMode      string
	DisablePreview bool
}

// Sender is the outbound messaging port. The digest bot only ever sends;
// inbound update handling is out of scope.
type Sender interface {
	SendText(ctx context.Context, to ChatTarget, text string, opt *SendOptions) (MessageRef, error)
}
