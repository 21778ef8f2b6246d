package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mtorres/eventia/internal/actors/memory"
	"github.com/mtorres/eventia/internal/core/model"
)

type notificationsFixture struct {
	notifications *Notifications
	users         *memory.UserStore
	participation *memory.ParticipationStore
	sender        *MockSender
}

func newNotifications(t *testing.T, now time.Time) notificationsFixture {
	t.Helper()
	users := memory.NewUserStore()
	participation := memory.NewParticipationStore()
	sender := &MockSender{}
	notifications := NewNotifications(NotificationsArgs{
		Store:  memory.NewNotificationStore(),
		Roster: participation,
		Users:  users,
	},
		WithSender(sender),
		WithNowFunc(func() time.Time { return now }),
	)
	return notificationsFixture{notifications: notifications, users: users, participation: participation, sender: sender}
}

func TestNotifications_Record(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	fix := newNotifications(t, now)

	require.NoError(t, fix.notifications.Record(ctx, 10, model.Notification{Message: "hello"}))

	entries, err := fix.notifications.List(ctx, 10, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	// zero timestamp and type get the defaults
	require.Equal(t, now, entries[0].Timestamp)
	require.Equal(t, model.NotificationHistory, entries[0].Type)

	// nothing was flagged for email
	require.Empty(t, fix.sender.Sent)
}

func TestNotifications_RecordByEmail(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	fix := newNotifications(t, now)
	ana := &model.User{Username: "ana", Email: "ana@example.com"}
	require.NoError(t, fix.users.SaveUser(ctx, ana))

	require.NoError(t, fix.notifications.Record(ctx, ana.ID, model.Notification{
		Message: "event changed",
		ByEmail: true,
		Type:    model.NotificationAlert,
		Sender:  "org",
	}))

	require.Len(t, fix.sender.Sent, 1)
	sent := fix.sender.Sent[0]
	require.NotEmpty(t, sent.ID)
	require.Equal(t, ana.ID, sent.UserID)
	require.Equal(t, "ana@example.com", sent.Email)
	require.Equal(t, "event changed", sent.Notification.Message)
}

func TestNotifications_PublishFailureDoesNotFailRecord(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	fix := newNotifications(t, now)
	ana := &model.User{Username: "ana", Email: "ana@example.com"}
	require.NoError(t, fix.users.SaveUser(ctx, ana))
	fix.sender.SendError = errors.New("broker down")

	require.NoError(t, fix.notifications.Record(ctx, ana.ID, model.Notification{Message: "x", ByEmail: true}))

	// the log entry landed despite the failed publish
	entries, err := fix.notifications.List(ctx, ana.ID, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestNotifications_RecordByEmailUnknownUser(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	fix := newNotifications(t, now)

	// an unresolvable recipient skips the publish, the log entry still lands
	require.NoError(t, fix.notifications.Record(ctx, 99, model.Notification{Message: "x", ByEmail: true}))
	require.Empty(t, fix.sender.Sent)
	entries, err := fix.notifications.List(ctx, 99, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestNotifications_BroadcastToParticipants(t *testing.T) {
	now := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	fix := newNotifications(t, now)
	for _, userID := range []int64{10, 20, 30} {
		_, err := fix.participation.Join(ctx, 1, userID)
		require.NoError(t, err)
	}

	require.NoError(t, fix.notifications.BroadcastToParticipants(ctx, model.BroadcastArgs{
		EventID: 1,
		Message: "venue changed",
		Sender:  "org",
	}))

	// every participant gets the alert with one shared timestamp
	for _, userID := range []int64{10, 20, 30} {
		entries, err := fix.notifications.List(ctx, userID, model.NotificationAlert)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "venue changed", entries[0].Message)
		require.Equal(t, now, entries[0].Timestamp)
		require.Equal(t, "org", entries[0].Sender)
	}

	// non-participants hear nothing
	entries, err := fix.notifications.List(ctx, 40, "")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestNotifications_ListOrdering(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)
	fix := newNotifications(t, base)

	require.NoError(t, fix.notifications.Record(ctx, 10, model.Notification{Message: "old", Timestamp: base.Add(-time.Hour)}))
	require.NoError(t, fix.notifications.Record(ctx, 10, model.Notification{Message: "new", Timestamp: base.Add(time.Hour)}))

	entries, err := fix.notifications.List(ctx, 10, "")
	require.NoError(t, err)
	require.Equal(t, "new", entries[0].Message)
	require.Equal(t, "old", entries[1].Message)
}
