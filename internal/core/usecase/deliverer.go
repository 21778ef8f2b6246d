package usecase

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mtorres/eventia/internal/core/model"
	"github.com/mtorres/eventia/internal/core/ports"
)

// NewDeliverer builds a new deliverer.
func NewDeliverer(gateway ports.MailGateway) *Deliverer {
	return &Deliverer{gateway: gateway}
}

// Deliverer turns incoming notification events into outbound emails. It runs
// on the worker side and only ever reads core data carried by the event.
type Deliverer struct {
	gateway ports.MailGateway
}

// Handle delivers one notification event. Events not flagged for email and
// events without a recipient address are ignored.
func (d *Deliverer) Handle(ctx context.Context, event model.NotificationEvent) error {
	if !event.Notification.ByEmail {
		return nil
	}
	if event.Email == "" {
		log.WithField("event_id", event.ID).Warn("notification event has no recipient address, skipping")
		return nil
	}

	email := ports.OutboundEmail{
		To:      event.Email,
		Subject: subjectFor(event.Notification),
		Body:    fmt.Sprintf("%s\n\n-- %s", event.Notification.Message, event.Notification.Sender),
	}
	if err := d.gateway.Deliver(ctx, email); err != nil {
		return fmt.Errorf("error delivering notification event ID [%s]: %w", event.ID, err)
	}
	return nil
}

func subjectFor(n model.Notification) string {
	if n.Type == model.NotificationAlert {
		return fmt.Sprintf("[alert] %s", n.Sender)
	}
	return "Activity update"
}
