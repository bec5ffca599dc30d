package mail

import (
	"context"
	"log/slog"
)

// LogMailer stands in for an SMTP sender; verification codes are emitted to
// the structured log for local runs.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendVerificationCode(_ context.Context, email, code string) error {
	m.logger.Info("verification code issued",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}
