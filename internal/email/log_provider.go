package email

import "yamdb_backend/internal/logger"

// LogProvider writes outbound mail to the log instead of delivering it.
// Used in development and tests when no SMTP relay is configured.
type LogProvider struct{}

func (p *LogProvider) Send(msg *Message) error {
	logger.Info("email (log only)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
