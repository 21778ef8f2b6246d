package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mtorres/eventia/internal/core/model"
)

// NotificationStore is the in-memory adapter of the notification log port.
// The log is append-only and unbounded.
type NotificationStore struct {
	mu      sync.Mutex
	entries map[int64][]model.Notification
}

// NewNotificationStore creates a new NotificationStore.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{entries: make(map[int64][]model.Notification)}
}

// Append records the notification for the user.
func (s *NotificationStore) Append(ctx context.Context, userID int64, n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = append(s.entries[userID], n)
	return nil
}

// List returns the user's notifications of the given type, timestamp
// descending. A zero type returns every entry.
func (s *NotificationStore) List(ctx context.Context, userID int64, typ model.NotificationType) ([]model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Notification, 0, len(s.entries[userID]))
	for _, n := range s.entries[userID] {
		if typ == "" || n.Type == typ {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}
