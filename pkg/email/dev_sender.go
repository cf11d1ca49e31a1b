package email

import (
	"context"
	"log/slog"
)

type devSender struct {
	log *slog.Logger
}

// NewDevSender returns a Sender that only logs the message. Used in
// development so the portal works without Postmark credentials.
func NewDevSender(log *slog.Logger) Sender {
	return &devSender{log: log}
}

func (s *devSender) Send(ctx context.Context, params SendParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "email suppressed in development",
		"to", params.To,
		"subject", params.Subject,
		"tag", params.Tag,
	)
	return nil
}
