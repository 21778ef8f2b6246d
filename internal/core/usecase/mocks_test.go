package usecase

import (
	"context"

	"github.com/mtorres/eventia/internal/core/model"
)

// MockRecorder is a mock implementation of the recorder interface.
type MockRecorder struct {
	Entries     map[int64][]model.Notification
	RecordError error
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{Entries: make(map[int64][]model.Notification)}
}

func (m *MockRecorder) Record(ctx context.Context, userID int64, n model.Notification) error {
	if m.RecordError != nil {
		return m.RecordError
	}
	m.Entries[userID] = append(m.Entries[userID], n)
	return nil
}

func (m *MockRecorder) MessagesFor(userID int64) []string {
	out := make([]string, 0, len(m.Entries[userID]))
	for _, n := range m.Entries[userID] {
		out = append(out, n.Message)
	}
	return out
}

// MockSender is a mock implementation of the ports.Sender interface.
type MockSender struct {
	Sent      []model.NotificationEvent
	SendError error
}

func (m *MockSender) Send(ctx context.Context, event model.NotificationEvent) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.Sent = append(m.Sent, event)
	return nil
}
