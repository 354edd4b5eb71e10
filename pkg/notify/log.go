package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer logs messages instead of sending them. It backs local
// development where no API key is available.
type LogMailer struct {
	logger *zap.Logger
}

var _ Mailer = (*LogMailer)(nil)

// NewLogMailer returns a mailer that writes to logger.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

// Send logs msg and returns its reference as the message id.
func (m *LogMailer) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := msg.Validate(); err != nil {
		return "", err
	}
	m.logger.Info("email captured",
		zap.String("from", msg.From),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("reference", msg.Reference),
		zap.Int("bytes", len(msg.HTML)),
	)
	m.logger.Debug("email body", zap.String("reference", msg.Reference), zap.String("html", msg.HTML))
	return msg.Reference, nil
}
