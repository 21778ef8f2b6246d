package memory

import (
	"context"
	"sync"

	"github.com/mtorres/eventia/internal/core/model"
)

// ParticipationStore is the in-memory adapter of the participation port. The
// event roster and the per-user participation list are updated together under
// one lock, so both sides always agree.
type ParticipationStore struct {
	mu sync.Mutex

	// rosters maps event id to participant ids in joining order.
	rosters map[int64][]int64

	// participating maps user id to event ids in joining order.
	participating map[int64][]int64

	// presence maps event id to user id to confirmed attendance. Absence
	// means not confirmed.
	presence map[int64]map[int64]bool
}

// NewParticipationStore creates a new ParticipationStore.
func NewParticipationStore() *ParticipationStore {
	return &ParticipationStore{
		rosters:       make(map[int64][]int64),
		participating: make(map[int64][]int64),
		presence:      make(map[int64]map[int64]bool),
	}
}

// Join adds the membership on both sides as one atomic unit.
func (s *ParticipationStore) Join(ctx context.Context, eventID, userID int64) (bool, error) {
	if userID <= 0 {
		return false, model.ErrInvalidArgument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.rosters[eventID], userID) {
		return false, nil
	}
	s.rosters[eventID] = append(s.rosters[eventID], userID)
	s.participating[userID] = append(s.participating[userID], eventID)
	return true, nil
}

// Leave removes the membership on both sides.
func (s *ParticipationStore) Leave(ctx context.Context, eventID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster, removed := remove(s.rosters[eventID], userID)
	if !removed {
		return false, nil
	}
	s.rosters[eventID] = roster
	s.participating[userID], _ = remove(s.participating[userID], eventID)
	return true, nil
}

// IsParticipant reports roster membership.
func (s *ParticipationStore) IsParticipant(ctx context.Context, eventID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.rosters[eventID], userID), nil
}

// Participants returns the roster in joining order.
func (s *ParticipationStore) Participants(ctx context.Context, eventID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int64, len(s.rosters[eventID]))
	copy(out, s.rosters[eventID])
	return out, nil
}

// EventsOf returns the ids of the events the user participates in.
func (s *ParticipationStore) EventsOf(ctx context.Context, userID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int64, len(s.participating[userID]))
	copy(out, s.participating[userID])
	return out, nil
}

// SetPresence marks confirmed attendance for the pair.
func (s *ParticipationStore) SetPresence(ctx context.Context, eventID, userID int64, present bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byUser := s.presence[eventID]
	if byUser == nil {
		byUser = make(map[int64]bool)
		s.presence[eventID] = byUser
	}
	byUser[userID] = present
	return nil
}

// Presence returns the confirmed attendance for the pair, false when unset.
func (s *ParticipationStore) Presence(ctx context.Context, eventID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presence[eventID][userID], nil
}

// DropEvent discards the roster and presence entries of a removed event.
func (s *ParticipationStore) DropEvent(ctx context.Context, eventID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, userID := range s.rosters[eventID] {
		s.participating[userID], _ = remove(s.participating[userID], eventID)
	}
	delete(s.rosters, eventID)
	delete(s.presence, eventID)
	return nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []int64, id int64) ([]int64, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
