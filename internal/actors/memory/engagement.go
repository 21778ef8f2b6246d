package memory

import (
	"context"
	"sync"

	"github.com/mtorres/eventia/internal/core/model"
)

// EngagementStore is the in-memory adapter of the engagement port. Like
// counts are never tracked separately: they are recomputed from the like set
// on every toggle, so count and membership cannot diverge.
type EngagementStore struct {
	mu sync.Mutex

	eventLikes    map[int64]map[int64]struct{}
	eventComments map[int64][]model.Comment
	galleries     map[int64][]*photoState
}

type photoState struct {
	ref      string
	likes    map[int64]struct{}
	comments []model.PhotoComment
}

// NewEngagementStore creates a new EngagementStore.
func NewEngagementStore() *EngagementStore {
	return &EngagementStore{
		eventLikes:    make(map[int64]map[int64]struct{}),
		eventComments: make(map[int64][]model.Comment),
		galleries:     make(map[int64][]*photoState),
	}
}

// ToggleEventLike flips the user's membership in the event like set.
func (s *EngagementStore) ToggleEventLike(ctx context.Context, eventID, userID int64) (model.ToggleLikeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	likes := s.eventLikes[eventID]
	if likes == nil {
		likes = make(map[int64]struct{})
		s.eventLikes[eventID] = likes
	}

	if _, liked := likes[userID]; liked {
		delete(likes, userID)
		return model.ToggleLikeResponse{Liked: false, Count: len(likes)}, nil
	}
	likes[userID] = struct{}{}
	return model.ToggleLikeResponse{Liked: true, Count: len(likes)}, nil
}

// EventLikes returns the current size of the event like set.
func (s *EngagementStore) EventLikes(ctx context.Context, eventID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.eventLikes[eventID]), nil
}

// AddEventComment appends a comment to the event.
func (s *EngagementStore) AddEventComment(ctx context.Context, eventID int64, comment model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.eventComments[eventID] = append(s.eventComments[eventID], comment)
	return nil
}

// EventComments returns the event comments in insertion order, unfiltered.
func (s *EngagementStore) EventComments(ctx context.Context, eventID int64) ([]model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Comment, len(s.eventComments[eventID]))
	copy(out, s.eventComments[eventID])
	return out, nil
}

// AddPhoto appends a photo reference to the event gallery.
func (s *EngagementStore) AddPhoto(ctx context.Context, eventID int64, ref string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findPhoto(eventID, ref) != nil {
		return false, nil
	}
	s.galleries[eventID] = append(s.galleries[eventID], &photoState{
		ref:   ref,
		likes: make(map[int64]struct{}),
	})
	return true, nil
}

// RemovePhoto removes the photo and discards its like set and comments.
func (s *EngagementStore) RemovePhoto(ctx context.Context, eventID int64, ref string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gallery := s.galleries[eventID]
	for i, p := range gallery {
		if p.ref == ref {
			s.galleries[eventID] = append(gallery[:i], gallery[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Photos returns gallery snapshots in insertion order.
func (s *EngagementStore) Photos(ctx context.Context, eventID int64) ([]model.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gallery := s.galleries[eventID]
	out := make([]model.Photo, 0, len(gallery))
	for _, p := range gallery {
		comments := make([]model.PhotoComment, len(p.comments))
		copy(comments, p.comments)
		out = append(out, model.Photo{Ref: p.ref, Likes: len(p.likes), Comments: comments})
	}
	return out, nil
}

// TogglePhotoLike flips the user's like on the photo, independently of the
// event-level like set.
func (s *EngagementStore) TogglePhotoLike(ctx context.Context, eventID int64, ref string, userID int64) (model.ToggleLikeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPhoto(eventID, ref)
	if p == nil {
		return model.ToggleLikeResponse{}, model.ErrNotFound
	}

	if _, liked := p.likes[userID]; liked {
		delete(p.likes, userID)
		return model.ToggleLikeResponse{Liked: false, Count: len(p.likes)}, nil
	}
	p.likes[userID] = struct{}{}
	return model.ToggleLikeResponse{Liked: true, Count: len(p.likes)}, nil
}

// AddPhotoComment appends a comment to the photo.
func (s *EngagementStore) AddPhotoComment(ctx context.Context, eventID int64, ref string, comment model.PhotoComment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPhoto(eventID, ref)
	if p == nil {
		return model.ErrNotFound
	}
	p.comments = append(p.comments, comment)
	return nil
}

// RemovePhotoComment removes the first comment matching author and text.
func (s *EngagementStore) RemovePhotoComment(ctx context.Context, eventID int64, ref string, comment model.PhotoComment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPhoto(eventID, ref)
	if p == nil {
		return false, nil
	}
	for i, c := range p.comments {
		if c.Author == comment.Author && c.Text == comment.Text {
			p.comments = append(p.comments[:i], p.comments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// DropEvent discards all engagement state of a removed event.
func (s *EngagementStore) DropEvent(ctx context.Context, eventID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.eventLikes, eventID)
	delete(s.eventComments, eventID)
	delete(s.galleries, eventID)
	return nil
}

func (s *EngagementStore) findPhoto(eventID int64, ref string) *photoState {
	for _, p := range s.galleries[eventID] {
		if p.ref == ref {
			return p
		}
	}
	return nil
}
