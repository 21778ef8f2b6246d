package mail

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/mtorres/eventia/internal/core/ports"
)

// LogGateway writes outbound emails to the structured log. It stands in for
// the real SMTP transport, which is operated outside this service.
type LogGateway struct{}

// NewLogGateway creates a new LogGateway.
func NewLogGateway() *LogGateway {
	return &LogGateway{}
}

// Deliver logs the email instead of sending it.
func (g *LogGateway) Deliver(ctx context.Context, email ports.OutboundEmail) error {
	log.
		WithField("to", email.To).
		WithField("subject", email.Subject).
		Info("outbound email delivered")
	return nil
}
