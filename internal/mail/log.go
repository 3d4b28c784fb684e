package mail

import (
	"context"

	"go.uber.org/zap"
)

// LogTransport writes messages to the logger instead of sending them.
type LogTransport struct {
	log *zap.Logger
}

func NewLogTransport(log *zap.Logger) *LogTransport {
	return &LogTransport{log: log}
}

func (t *LogTransport) Deliver(ctx context.Context, msg Message) error {
	t.log.Info("mail",
		zap.String("to", msg.To),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return nil
}
