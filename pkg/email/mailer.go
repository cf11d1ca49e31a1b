// Package email sends transactional portal notifications (account
// approval, rejection) through Postmark, with a log-only sender for
// development.
package email

import (
	"context"
	"fmt"
	"regexp"
)

// Sender delivers one transactional email.
type Sender interface {
	Send(ctx context.Context, params SendParams) error
}

// SendParams describes one outbound message.
type SendParams struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks the params are deliverable.
func (p SendParams) Validate() error {
	if !emailRegex.MatchString(p.To) {
		return fmt.Errorf("%w: recipient %q", ErrInvalidParams, p.To)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: empty subject", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: empty body", ErrInvalidParams)
	}
	return nil
}

// Config holds sender configuration.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@registra.example"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@registra.example"`
}
