package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mtorres/eventia/internal/core/model"
	"github.com/mtorres/eventia/internal/core/ports"
)

// userView resolves users for engagement notifications.
type userView interface {
	// FindByID returns the user by id, or model.ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// EngagementArgs contains the mandatory arguments for the Engagement service.
type EngagementArgs struct {
	// Store is the engagement persistence port.
	Store ports.EngagementStore

	// Events resolves events for existence and organizer checks.
	Events ports.EventStore

	// Directory resolves users for notification texts.
	Directory userView

	// Recorder receives the notification side-effects of engagement mutations.
	Recorder recorder
}

// NewEngagement creates a new Engagement service.
func NewEngagement(args EngagementArgs) *Engagement {
	return &Engagement{
		store:     args.Store,
		events:    args.Events,
		directory: args.Directory,
		recorder:  args.Recorder,
	}
}

// Engagement gathers likes and comments on events and on gallery photos.
type Engagement struct {
	store     ports.EngagementStore
	events    ports.EventStore
	directory userView
	recorder  recorder
}

// ToggleEventLike flips the caller's like on the event. The returned count is
// recomputed from the like set, never tracked separately.
func (e *Engagement) ToggleEventLike(ctx context.Context, eventID, userID int64) (*model.ToggleLikeResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id is mandatory: %w", model.ErrInvalidArgument)
	}
	event, err := e.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error loading event: %w", err)
	}

	res, err := e.store.ToggleEventLike(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("error toggling event like: %w", err)
	}

	if res.Liked && userID != event.OrganizerID {
		if liker, err := e.directory.FindByID(ctx, userID); err == nil {
			recordBestEffort(ctx, e.recorder, event.OrganizerID, model.Notification{
				Message: fmt.Sprintf("%s liked your event %q", liker.DisplayName(), event.Title),
				Type:    model.NotificationHistory,
				Sender:  liker.Username,
			})
		}
	}
	return &res, nil
}

// AddEventComment appends a comment to the event.
func (e *Engagement) AddEventComment(ctx context.Context, eventID, authorID int64, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("comment text is mandatory: %w", model.ErrValidation)
	}
	event, err := e.events.GetEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("error loading event: %w", err)
	}

	if err := e.store.AddEventComment(ctx, eventID, model.Comment{AuthorID: authorID, Text: text}); err != nil {
		return fmt.Errorf("error adding event comment: %w", err)
	}

	if authorID != event.OrganizerID {
		if author, err := e.directory.FindByID(ctx, authorID); err == nil {
			recordBestEffort(ctx, e.recorder, event.OrganizerID, model.Notification{
				Message: fmt.Sprintf("%s commented on your event %q", author.DisplayName(), event.Title),
				Type:    model.NotificationHistory,
				Sender:  author.Username,
			})
		}
	}
	return nil
}

// EventComments returns the event comments in insertion order, unfiltered.
func (e *Engagement) EventComments(ctx context.Context, eventID int64) ([]model.Comment, error) {
	return e.store.EventComments(ctx, eventID)
}

// AddPhoto appends a photo reference to the event gallery. An empty ref gets
// a generated gallery path, covering the upload case where the caller has no
// path yet.
func (e *Engagement) AddPhoto(ctx context.Context, eventID int64, ref string) (string, error) {
	if _, err := e.events.GetEvent(ctx, eventID); err != nil {
		return "", fmt.Errorf("error loading event: %w", err)
	}
	if strings.TrimSpace(ref) == "" {
		ref = fmt.Sprintf("gallery/%d/%s", eventID, uuid.NewString())
	}
	if _, err := e.store.AddPhoto(ctx, eventID, ref); err != nil {
		return "", fmt.Errorf("error adding photo: %w", err)
	}
	return ref, nil
}

// RemovePhoto removes the photo and discards its like set and comment list.
func (e *Engagement) RemovePhoto(ctx context.Context, eventID int64, ref string) (bool, error) {
	removed, err := e.store.RemovePhoto(ctx, eventID, ref)
	if err != nil {
		return false, fmt.Errorf("error removing photo: %w", err)
	}
	return removed, nil
}

// Photos returns gallery snapshots in insertion order.
func (e *Engagement) Photos(ctx context.Context, eventID int64) ([]model.Photo, error) {
	return e.store.Photos(ctx, eventID)
}

// TogglePhotoLike flips the caller's like on the photo. Photo likes are kept
// per photo, independent of the event-level like set.
func (e *Engagement) TogglePhotoLike(ctx context.Context, eventID int64, ref string, userID int64) (*model.ToggleLikeResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id is mandatory: %w", model.ErrInvalidArgument)
	}
	res, err := e.store.TogglePhotoLike(ctx, eventID, ref, userID)
	if err != nil {
		return nil, fmt.Errorf("error toggling photo like: %w", err)
	}
	return &res, nil
}

// AddPhotoComment appends a comment to the photo. The author travels as an
// explicit field, never embedded in the text.
func (e *Engagement) AddPhotoComment(ctx context.Context, args model.AddPhotoCommentArgs) error {
	if strings.TrimSpace(args.Text) == "" {
		return fmt.Errorf("comment text is mandatory: %w", model.ErrValidation)
	}
	if err := e.store.AddPhotoComment(ctx, args.EventID, args.PhotoRef, model.PhotoComment{
		Author: args.Author,
		Text:   args.Text,
	}); err != nil {
		return fmt.Errorf("error adding photo comment: %w", err)
	}
	return nil
}

// RemovePhotoComment removes the comment when the caller is its author or the
// event organizer; everyone else gets model.ErrUnauthorized.
func (e *Engagement) RemovePhotoComment(ctx context.Context, args model.RemovePhotoCommentArgs) (bool, error) {
	event, err := e.events.GetEvent(ctx, args.EventID)
	if err != nil {
		return false, fmt.Errorf("error loading event: %w", err)
	}

	isAuthor := args.CallerName == args.Author
	isOrganizer := args.CallerID == event.OrganizerID
	if !isAuthor && !isOrganizer {
		return false, model.ErrUnauthorized
	}

	removed, err := e.store.RemovePhotoComment(ctx, args.EventID, args.PhotoRef, model.PhotoComment{
		Author: args.Author,
		Text:   args.Text,
	})
	if err != nil {
		return false, fmt.Errorf("error removing photo comment: %w", err)
	}
	return removed, nil
}
