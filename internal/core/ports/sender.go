package ports

import (
	"context"

	"github.com/mtorres/eventia/internal/core/model"
)

// Sender is the port for publishing outbound notification events towards the
// delivery subsystem.
type Sender interface {
	// Send sends one notification event.
	Send(ctx context.Context, event model.NotificationEvent) error
}
