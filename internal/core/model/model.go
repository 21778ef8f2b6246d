package model

import "time"

// DefaultProfilePhoto is the asset served when a user never uploaded a photo.
const DefaultProfilePhoto = "assets/profile/default.png"

// User represents a registered user of the platform.
type User struct {
	// ID is the unique numeric identifier assigned by the directory.
	ID int64 `json:"id"`

	// Name is the user first name.
	Name string `json:"name"`

	// Surname is the user last name.
	Surname string `json:"surname"`

	// Username is unique (case-insensitively) and immutable except through an explicit rename.
	Username string `json:"username"`

	// Email is unique case-insensitively.
	Email string `json:"email"`

	// PasswordHash contains the argon2id password hash. Plaintext is never stored.
	PasswordHash string `json:"-"`

	// Phone is empty until the second-stage profile completion.
	Phone string `json:"phone,omitempty"`

	// NationalID is empty until the second-stage profile completion.
	NationalID string `json:"national_id,omitempty"`

	// Gender is empty until the second-stage profile completion.
	Gender string `json:"gender,omitempty"`

	// BirthDate is zero until the second-stage profile completion.
	BirthDate time.Time `json:"birth_date,omitempty"`

	// PhotoRef points to the profile photo. Empty means DefaultProfilePhoto.
	PhotoRef string `json:"photo_ref,omitempty"`

	// CreatedAt is the time at which the user was registered.
	CreatedAt time.Time `json:"created_at"`
}

// Photo returns the profile photo reference, falling back to the default asset.
func (u User) Photo() string {
	if u.PhotoRef == "" {
		return DefaultProfilePhoto
	}
	return u.PhotoRef
}

// DisplayName is the name shown in rosters and rankings.
func (u User) DisplayName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// Badge is an earned badge. Badges are deduplicated by name per user.
type Badge struct {
	// Name identifies the badge.
	Name string `json:"name"`

	// Icon is the icon asset reference.
	Icon string `json:"icon"`

	// Description is the human readable badge description.
	Description string `json:"description"`
}

// ChatMessage is one line of the pairwise transcript between two users.
// Each party owns its own copy of every line.
type ChatMessage struct {
	// SentAt is the time the line was appended.
	SentAt time.Time `json:"sent_at"`

	// Sender is the username of the party that wrote the line.
	Sender string `json:"sender"`

	// Text is the message body.
	Text string `json:"text"`
}

// Modality tags how an event takes place.
type Modality string

const (
	ModalityInPerson Modality = "in_person"
	ModalityOnline   Modality = "online"
	ModalityHybrid   Modality = "hybrid"
)

// Event is a schedulable, organizer-owned activity.
type Event struct {
	// ID is assigned monotonically by the catalog, starting at 1. Ids are never reused.
	ID int64 `json:"id"`

	// OrganizerID references the owning user. Mandatory.
	OrganizerID int64 `json:"organizer_id"`

	// Title of the event. Mandatory.
	Title string `json:"title"`

	// Description is a free-text description.
	Description string `json:"description"`

	// Location is a free-text location.
	Location string `json:"location"`

	// StartsAt is the scheduled start.
	StartsAt time.Time `json:"starts_at"`

	// CreatedAt is set once at creation and never mutated afterwards.
	CreatedAt time.Time `json:"created_at"`

	// Category is free text from a small enumerated set (conference, workshop, ...).
	Category string `json:"category"`

	// Speaker is the speaker/host name.
	Speaker string `json:"speaker,omitempty"`

	// Private restricts visibility to the organizer and participants.
	Private bool `json:"private"`

	// ImageRef is an optional image reference.
	ImageRef string `json:"image_ref,omitempty"`

	// Badge, when non-nil, is awarded to every user that joins the event.
	Badge *Badge `json:"badge,omitempty"`

	// Modality tags the event as in-person, online or hybrid.
	Modality Modality `json:"modality"`
}

// Comment is a comment on an event. Insertion-ordered within the event.
type Comment struct {
	// AuthorID is the id of the commenting user.
	AuthorID int64 `json:"author_id"`

	// Text is the comment body.
	Text string `json:"text"`
}

// PhotoComment is a comment on a gallery photo. The author is an explicit
// field rather than a prefix embedded in the text.
type PhotoComment struct {
	// Author is the display name of the commenting user.
	Author string `json:"author"`

	// Text is the comment body.
	Text string `json:"text"`
}

// Photo is a snapshot of one gallery photo with its independent engagement state.
type Photo struct {
	// Ref is the photo path/URI within the event gallery.
	Ref string `json:"ref"`

	// Likes is the number of users currently liking the photo.
	Likes int `json:"likes"`

	// Comments are the photo comments in insertion order.
	Comments []PhotoComment `json:"comments"`
}

// NotificationType discriminates notification entries.
type NotificationType string

const (
	// NotificationHistory is an informational history entry.
	NotificationHistory NotificationType = "historico"

	// NotificationAlert is an organizer-originated alert to participants.
	NotificationAlert NotificationType = "alerta"
)

// Notification is an immutable, timestamped record of a user-observed action.
// Notifications carry no identity; ordering is by timestamp.
type Notification struct {
	// Message is the notification text.
	Message string `json:"message"`

	// Timestamp is the time the action was observed.
	Timestamp time.Time `json:"timestamp"`

	// ByEmail flags the entry for pickup by the email delivery subsystem.
	ByEmail bool `json:"by_email"`

	// Type is either NotificationHistory or NotificationAlert.
	Type NotificationType `json:"type"`

	// Sender is the label of the originating party.
	Sender string `json:"sender"`
}

// NotificationEvent is the outbound envelope published for email-flagged
// notifications. It is consumed by the delivery worker, never by the core.
type NotificationEvent struct {
	// ID is the envelope id.
	ID string `json:"id"`

	// UserID is the recipient user id.
	UserID int64 `json:"user_id"`

	// Email is the recipient address at the time of recording.
	Email string `json:"email"`

	// Notification is the recorded entry.
	Notification Notification `json:"notification"`
}

// RankEntry is one row of the chat-participation leaderboard.
type RankEntry struct {
	// Rank is 1-based and contiguous, ties included.
	Rank int `json:"rank"`

	// UserID is the ranked participant.
	UserID int64 `json:"user_id"`

	// Name is the participant display name.
	Name string `json:"name"`

	// Count is the raw message count supplied by the chat transport.
	Count int `json:"count"`
}

// Permission tags the relationship of a user towards an event.
type Permission string

const (
	PermissionOrganizer   Permission = "organizer"
	PermissionParticipant Permission = "participant"
	PermissionNone        Permission = "none"
)
