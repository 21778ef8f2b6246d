package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mtorres/eventia/internal/core/model"
)

// EventStore is the in-memory adapter of the event catalog persistence port.
// Ids are monotonically assigned starting at 1 and never reused, also after
// deletions.
type EventStore struct {
	mu      sync.Mutex
	nowFunc func() time.Time

	seq    int64
	order  []int64
	events map[int64]*model.Event
}

// EventStoreOptArgs are the optional arguments for building an EventStore.
type EventStoreOptArgs = func(*EventStore)

// WithEventNowFunc overrides the nowFunc. Useful for testing.
func WithEventNowFunc(nowFunc func() time.Time) EventStoreOptArgs {
	return func(s *EventStore) {
		s.nowFunc = nowFunc
	}
}

// NewEventStore creates a new EventStore.
func NewEventStore(optArgs ...EventStoreOptArgs) *EventStore {
	s := &EventStore{
		nowFunc: func() time.Time { return time.Now().UTC() },
		events:  make(map[int64]*model.Event),
	}
	for _, opt := range optArgs {
		opt(s)
	}
	return s
}

// SaveEvent assigns the next event id and stores the event.
func (s *EventStore) SaveEvent(ctx context.Context, event *model.Event) error {
	if event == nil {
		return errors.New("nil event passed to save method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	event.ID = s.seq
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.nowFunc()
	}

	stored := *event
	s.events[stored.ID] = &stored
	s.order = append(s.order, stored.ID)
	return nil
}

// UpdateEvent fully replaces the event matching event.ID. The original
// CreatedAt is preserved; the slot keeps its insertion position.
func (s *EventStore) UpdateEvent(ctx context.Context, event *model.Event) error {
	if event == nil {
		return errors.New("nil event passed to update method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.events[event.ID]
	if !ok {
		return model.ErrNotFound
	}

	stored := *event
	stored.CreatedAt = existing.CreatedAt
	s.events[stored.ID] = &stored
	event.CreatedAt = stored.CreatedAt
	return nil
}

// DeleteEvent removes the event by id. The sequence is untouched so the id is
// never reused.
func (s *EventStore) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// GetEvent returns the event by id.
func (s *EventStore) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

// ListEvents returns a copy of all events in insertion order.
func (s *EventStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Event, 0, len(s.order))
	for _, id := range s.order {
		if e, ok := s.events[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}
