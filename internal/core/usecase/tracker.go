package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mtorres/eventia/internal/core/model"
	"github.com/mtorres/eventia/internal/core/ports"
)

// directoryView is the slice of the user directory the tracker needs for
// naming joiners and awarding join badges.
type directoryView interface {
	// FindByID returns the user by id, or model.ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// AwardBadge grants the badge to the user, deduplicated by name.
	AwardBadge(ctx context.Context, userID int64, badge model.Badge) error
}

// TrackerArgs contains the mandatory arguments for the Tracker.
type TrackerArgs struct {
	// Store is the participation persistence port.
	Store ports.ParticipationStore

	// Events resolves events for existence and organizer checks.
	Events ports.EventStore

	// Directory resolves users and awards join badges.
	Directory directoryView

	// Recorder receives the notification side-effects of tracker mutations.
	Recorder recorder
}

// NewTracker creates a new Tracker.
func NewTracker(args TrackerArgs) *Tracker {
	return &Tracker{
		store:     args.Store,
		events:    args.Events,
		directory: args.Directory,
		recorder:  args.Recorder,
	}
}

// Tracker gathers the participant roster, the presence map and the derived
// per-participant permission of every event.
type Tracker struct {
	store     ports.ParticipationStore
	events    ports.EventStore
	directory directoryView
	recorder  recorder
}

// Join enrolls the user in the event. Both sides of the membership commit as
// one atomic unit inside the store; joining twice is an idempotent no-op
// reported as false, as is joining an unknown event. Organizers join like
// anybody else: organizing an event does not imply membership.
func (t *Tracker) Join(ctx context.Context, eventID, userID int64) (bool, error) {
	if userID <= 0 {
		return false, fmt.Errorf("user id is mandatory: %w", model.ErrInvalidArgument)
	}

	event, err := t.events.GetEvent(ctx, eventID)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error loading event: %w", err)
	}

	joined, err := t.store.Join(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("error joining event: %w", err)
	}
	if !joined {
		return false, nil
	}

	if event.Badge != nil {
		if err := t.directory.AwardBadge(ctx, userID, *event.Badge); err != nil {
			return true, fmt.Errorf("error awarding join badge: %w", err)
		}
	}

	recordBestEffort(ctx, t.recorder, userID, model.Notification{
		Message: fmt.Sprintf("You joined the event %q", event.Title),
		Type:    model.NotificationHistory,
		Sender:  systemSender,
	})
	if joiner, err := t.directory.FindByID(ctx, userID); err == nil && userID != event.OrganizerID {
		recordBestEffort(ctx, t.recorder, event.OrganizerID, model.Notification{
			Message: fmt.Sprintf("%s joined your event %q", joiner.DisplayName(), event.Title),
			Type:    model.NotificationHistory,
			Sender:  joiner.Username,
		})
	}
	return true, nil
}

// Leave removes the user from the roster. It reports false when the user was
// not a participant. The organizer relationship is never touched by this
// path: an organizer that leaves remains the organizer.
func (t *Tracker) Leave(ctx context.Context, eventID, userID int64) (bool, error) {
	left, err := t.store.Leave(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("error leaving event: %w", err)
	}
	if !left {
		return false, nil
	}

	if event, err := t.events.GetEvent(ctx, eventID); err == nil {
		recordBestEffort(ctx, t.recorder, userID, model.Notification{
			Message: fmt.Sprintf("You left the event %q", event.Title),
			Type:    model.NotificationHistory,
			Sender:  systemSender,
		})
	}
	return true, nil
}

// IsParticipant reports roster membership.
func (t *Tracker) IsParticipant(ctx context.Context, eventID, userID int64) (bool, error) {
	return t.store.IsParticipant(ctx, eventID, userID)
}

// Participants returns the event roster in joining order.
func (t *Tracker) Participants(ctx context.Context, eventID int64) ([]int64, error) {
	return t.store.Participants(ctx, eventID)
}

// SetPresence marks confirmed attendance, which is independent of mere
// enrollment.
func (t *Tracker) SetPresence(ctx context.Context, eventID, userID int64, present bool) error {
	if userID <= 0 {
		return fmt.Errorf("user id is mandatory: %w", model.ErrInvalidArgument)
	}
	if err := t.store.SetPresence(ctx, eventID, userID, present); err != nil {
		return fmt.Errorf("error setting presence: %w", err)
	}
	return nil
}

// Presence returns the confirmed attendance for the pair, false when unset.
func (t *Tracker) Presence(ctx context.Context, eventID, userID int64) (bool, error) {
	return t.store.Presence(ctx, eventID, userID)
}

// Permission derives the relationship of the user towards the event. The
// organizer permission comes from the event's organizer reference, never from
// stored roster state.
func (t *Tracker) Permission(ctx context.Context, eventID, userID int64) (model.Permission, error) {
	event, err := t.events.GetEvent(ctx, eventID)
	if err != nil {
		return model.PermissionNone, fmt.Errorf("error loading event: %w", err)
	}
	if event.OrganizerID == userID {
		return model.PermissionOrganizer, nil
	}
	participant, err := t.store.IsParticipant(ctx, eventID, userID)
	if err != nil {
		return model.PermissionNone, fmt.Errorf("error checking participation: %w", err)
	}
	if participant {
		return model.PermissionParticipant, nil
	}
	return model.PermissionNone, nil
}
