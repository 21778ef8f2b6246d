package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/mtorres/eventia/internal/core/model"
	"github.com/mtorres/eventia/internal/core/ports"
)

// rosterSource resolves an event's participant ids for broadcasts.
type rosterSource interface {
	// Participants returns the roster in joining order.
	Participants(ctx context.Context, eventID int64) ([]int64, error)
}

// emailSource resolves the recipient address of a user id.
type emailSource interface {
	// GetUser returns the user by id, or model.ErrNotFound.
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

// NotificationsArgs contains the mandatory arguments for the Notifications service.
type NotificationsArgs struct {
	// Store is the notification log port.
	Store ports.NotificationStore

	// Roster resolves participant ids for broadcasts.
	Roster rosterSource

	// Users resolves recipient addresses for email-flagged entries.
	Users emailSource
}

// NotificationsOptArgs are the optional arguments for building the Notifications service.
type NotificationsOptArgs = func(*Notifications)

// WithSender attaches the outbound publisher for email-flagged notifications.
func WithSender(sender ports.Sender) NotificationsOptArgs {
	return func(n *Notifications) {
		n.sender = sender
	}
}

// WithNowFunc overrides the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) NotificationsOptArgs {
	return func(n *Notifications) {
		n.nowFunc = nowFunc
	}
}

// NewNotifications creates a new Notifications service.
func NewNotifications(args NotificationsArgs, optArgs ...NotificationsOptArgs) *Notifications {
	n := &Notifications{
		store:   args.Store,
		roster:  args.Roster,
		users:   args.Users,
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range optArgs {
		opt(n)
	}
	return n
}

// Notifications gathers the append-only per-user notification log. Entries
// flagged for email are additionally handed to the outbound sender; delivery
// is best-effort and never mutates or fails the log.
type Notifications struct {
	store   ports.NotificationStore
	roster  rosterSource
	users   emailSource
	sender  ports.Sender
	nowFunc func() time.Time
}

// Record appends the notification to the user's log. There is no dedup and no
// size cap: the log grows for the process lifetime.
func (n *Notifications) Record(ctx context.Context, userID int64, notification model.Notification) error {
	if notification.Timestamp.IsZero() {
		notification.Timestamp = n.nowFunc()
	}
	if notification.Type == "" {
		notification.Type = model.NotificationHistory
	}

	if err := n.store.Append(ctx, userID, notification); err != nil {
		return fmt.Errorf("error appending notification: %w", err)
	}

	if notification.ByEmail {
		n.publish(ctx, userID, notification)
	}
	return nil
}

// List returns the user's notifications of the given type, timestamp
// descending. A zero type returns every entry.
func (n *Notifications) List(ctx context.Context, userID int64, typ model.NotificationType) ([]model.Notification, error) {
	entries, err := n.store.List(ctx, userID, typ)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	return entries, nil
}

// BroadcastToParticipants records one alert per event participant, all
// sharing a single timestamp.
func (n *Notifications) BroadcastToParticipants(ctx context.Context, args model.BroadcastArgs) error {
	participants, err := n.roster.Participants(ctx, args.EventID)
	if err != nil {
		return fmt.Errorf("error resolving event roster: %w", err)
	}

	ts := n.nowFunc()
	for _, userID := range participants {
		if err := n.Record(ctx, userID, model.Notification{
			Message:   args.Message,
			Timestamp: ts,
			ByEmail:   args.ByEmail,
			Type:      model.NotificationAlert,
			Sender:    args.Sender,
		}); err != nil {
			return fmt.Errorf("error recording broadcast for user %d: %w", userID, err)
		}
	}
	return nil
}

// publish hands an email-flagged entry to the delivery subsystem.
func (n *Notifications) publish(ctx context.Context, userID int64, notification model.Notification) {
	if n.sender == nil {
		return
	}

	user, err := n.users.GetUser(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("could not resolve recipient for email notification")
		return
	}

	event := model.NotificationEvent{
		ID:           uuid.NewString(),
		UserID:       userID,
		Email:        user.Email,
		Notification: notification,
	}
	if err := n.sender.Send(ctx, event); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("could not publish notification event")
	}
}
