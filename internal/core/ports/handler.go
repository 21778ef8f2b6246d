package ports

import (
	"context"

	"github.com/mtorres/eventia/internal/core/model"
)

// NotificationEventHandler handles incoming notification events on the worker side.
type NotificationEventHandler interface {
	// Handle receives one incoming notification event and handles it.
	Handle(ctx context.Context, event model.NotificationEvent) error
}
