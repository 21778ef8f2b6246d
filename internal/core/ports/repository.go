package ports

import (
	"context"

	"github.com/mtorres/eventia/internal/core/model"
)

// UserStore is the persistence port of the user directory. Implementations
// must serialize access: every method is an atomic unit with respect to the
// store instance.
type UserStore interface {
	// SaveUser assigns the next user id and stores the user. It returns
	// model.ErrDuplicateEmail or model.ErrDuplicateUsername on collision
	// (compared case-insensitively).
	SaveUser(ctx context.Context, user *model.User) error

	// UpdateUser replaces the stored user matching user.ID. It returns
	// model.ErrNotFound if the id is unknown and the duplicate sentinels when
	// a renamed username or changed email collides.
	UpdateUser(ctx context.Context, user *model.User) error

	// GetUser returns the user by id, or model.ErrNotFound.
	GetUser(ctx context.Context, id int64) (*model.User, error)

	// GetUserByUsername returns the user by username, case-insensitively, or model.ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// GetUserByEmail returns the user by email, case-insensitively, or model.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// AddFriendRequest records a pending one-directional request. It reports
	// whether the request was recorded; self-requests, existing friendships
	// and duplicate requests are silent no-ops.
	AddFriendRequest(ctx context.Context, fromID, toID int64) (bool, error)

	// AcceptFriendRequest removes the pending request from sender to receiver
	// and establishes the symmetric friendship. It reports whether a pending
	// request existed.
	AcceptFriendRequest(ctx context.Context, receiverID, senderID int64) (bool, error)

	// RejectFriendRequest removes the pending request without creating a
	// friendship. It reports whether a pending request existed.
	RejectFriendRequest(ctx context.Context, receiverID, senderID int64) (bool, error)

	// Friends lists the user's friends in acceptance order.
	Friends(ctx context.Context, userID int64) ([]model.User, error)

	// AppendMessage appends the line to both parties' transcripts for the pair.
	AppendMessage(ctx context.Context, fromID, toID int64, line model.ChatMessage) error

	// Transcript returns the user's own copy of the transcript with the named
	// counterpart, chronological. Reading never mutates the transcript.
	Transcript(ctx context.Context, userID int64, otherUsername string) ([]model.ChatMessage, error)

	// AwardBadge adds the badge to the user, deduplicated by badge name. It
	// reports whether the badge was newly earned.
	AwardBadge(ctx context.Context, userID int64, badge model.Badge) (bool, error)

	// Badges lists the user's earned badges in earning order.
	Badges(ctx context.Context, userID int64) ([]model.Badge, error)
}

// EventStore is the persistence port of the event catalog.
type EventStore interface {
	// SaveEvent assigns the next event id (monotonic, starting at 1, never
	// reused) and stores the event.
	SaveEvent(ctx context.Context, event *model.Event) error

	// UpdateEvent fully replaces the event matching event.ID, preserving the
	// original CreatedAt. It returns model.ErrNotFound if the id is unknown.
	UpdateEvent(ctx context.Context, event *model.Event) error

	// DeleteEvent removes the event by id and reports whether it existed.
	DeleteEvent(ctx context.Context, id int64) (bool, error)

	// GetEvent returns the event by id, or model.ErrNotFound.
	GetEvent(ctx context.Context, id int64) (*model.Event, error)

	// ListEvents returns a copy of all events in insertion order.
	ListEvents(ctx context.Context) ([]model.Event, error)
}

// ParticipationStore owns the participant roster, the per-user participation
// list and the presence map. Join and Leave update both sides as one atomic
// unit under the store's lock.
type ParticipationStore interface {
	// Join adds the user to the event roster and the event to the user's
	// participation list. It reports whether the membership was created;
	// joining twice is an idempotent no-op.
	Join(ctx context.Context, eventID, userID int64) (bool, error)

	// Leave removes the membership on both sides. It reports whether the user
	// was a participant.
	Leave(ctx context.Context, eventID, userID int64) (bool, error)

	// IsParticipant reports roster membership.
	IsParticipant(ctx context.Context, eventID, userID int64) (bool, error)

	// Participants returns the roster in joining order.
	Participants(ctx context.Context, eventID int64) ([]int64, error)

	// EventsOf returns the ids of the events the user participates in, in joining order.
	EventsOf(ctx context.Context, userID int64) ([]int64, error)

	// SetPresence marks confirmed attendance for the pair.
	SetPresence(ctx context.Context, eventID, userID int64, present bool) error

	// Presence returns the confirmed attendance for the pair, false when unset.
	Presence(ctx context.Context, eventID, userID int64) (bool, error)

	// DropEvent discards the roster and presence entries of a removed event.
	DropEvent(ctx context.Context, eventID int64) error
}

// EngagementStore owns likes and comments on events and on gallery photos.
// Toggles are atomic read-modify-write with respect to their key.
type EngagementStore interface {
	// ToggleEventLike flips the user's membership in the event like set and
	// returns the resulting state with the recomputed count.
	ToggleEventLike(ctx context.Context, eventID, userID int64) (model.ToggleLikeResponse, error)

	// EventLikes returns the current size of the event like set.
	EventLikes(ctx context.Context, eventID int64) (int, error)

	// AddEventComment appends a comment to the event.
	AddEventComment(ctx context.Context, eventID int64, comment model.Comment) error

	// EventComments returns the event comments in insertion order, unfiltered.
	EventComments(ctx context.Context, eventID int64) ([]model.Comment, error)

	// AddPhoto appends a photo reference to the event gallery. Adding an
	// existing reference is a no-op reported as false.
	AddPhoto(ctx context.Context, eventID int64, ref string) (bool, error)

	// RemovePhoto removes the photo and discards its like set and comments.
	// It reports whether the photo existed.
	RemovePhoto(ctx context.Context, eventID int64, ref string) (bool, error)

	// Photos returns gallery snapshots in insertion order.
	Photos(ctx context.Context, eventID int64) ([]model.Photo, error)

	// TogglePhotoLike flips the user's like on the photo, independent of the
	// event-level like set. It returns model.ErrNotFound for an unknown photo.
	TogglePhotoLike(ctx context.Context, eventID int64, ref string, userID int64) (model.ToggleLikeResponse, error)

	// AddPhotoComment appends a comment to the photo. It returns
	// model.ErrNotFound for an unknown photo.
	AddPhotoComment(ctx context.Context, eventID int64, ref string, comment model.PhotoComment) error

	// RemovePhotoComment removes the first comment matching author and text.
	// It reports whether a comment was removed.
	RemovePhotoComment(ctx context.Context, eventID int64, ref string, comment model.PhotoComment) (bool, error)

	// DropEvent discards all engagement state of a removed event.
	DropEvent(ctx context.Context, eventID int64) error
}

// NotificationStore owns the append-only per-user notification log.
type NotificationStore interface {
	// Append records the notification for the user. No dedup, no size cap.
	Append(ctx context.Context, userID int64, n model.Notification) error

	// List returns the user's notifications of the given type, timestamp
	// descending. A zero type returns every entry.
	List(ctx context.Context, userID int64, typ model.NotificationType) ([]model.Notification, error)
}
