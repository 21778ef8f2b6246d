package model

import "time"

// RegisterArgs contain the arguments of the Register method.
type RegisterArgs struct {
	// Name is the user first name.
	Name string

	// Surname is the user last name.
	Surname string

	// Username is the unique handle. Mandatory.
	Username string

	// Email is the unique email. Mandatory.
	Email string

	// Password is the plaintext password. Only its argon2id hash is kept.
	Password string
}

// RegisterResponse contains the response of the Register method.
type RegisterResponse struct {
	// User is the newly registered user.
	User User
}

// AuthenticateArgs contain the arguments of the Authenticate method.
type AuthenticateArgs struct {
	// Login is the username or email of the user.
	Login string

	// Password is the plaintext password to verify.
	Password string
}

// AuthenticateResponse contains the response of the Authenticate method.
type AuthenticateResponse struct {
	// User is the authenticated user.
	User User
}

// CompleteProfileArgs carry the second-stage profile fields.
type CompleteProfileArgs struct {
	// UserID is the id of the user completing the profile.
	UserID int64

	// Phone is the phone number.
	Phone string

	// NationalID is the national identity document number.
	NationalID string

	// Gender is the self-reported gender.
	Gender string

	// BirthDate is the date of birth.
	BirthDate time.Time
}

// AppendMessageArgs contain the arguments of the AppendMessage method.
type AppendMessageArgs struct {
	// FromID is the id of the sending user.
	FromID int64

	// ToID is the id of the receiving user.
	ToID int64

	// Text is the message body.
	Text string
}

// CreateEventArgs contain the arguments of the Create method.
type CreateEventArgs struct {
	// OrganizerID is the owning user. Mandatory.
	OrganizerID int64

	// Title of the event. Mandatory.
	Title string

	// Description is a free-text description.
	Description string

	// Location is a free-text location.
	Location string

	// StartsAt is the scheduled start. Mandatory.
	StartsAt time.Time

	// Category is the event category.
	Category string

	// Speaker is the speaker/host name.
	Speaker string

	// Private restricts visibility to organizer and participants.
	Private bool

	// ImageRef is an optional image reference.
	ImageRef string

	// Badge, when non-nil, is awarded to joiners.
	Badge *Badge

	// Modality tags the event as in-person, online or hybrid.
	Modality Modality
}

// CreateEventResponse contains the response of the Create method.
type CreateEventResponse struct {
	// Event is the stored event with its assigned id.
	Event Event
}

// UpdateEventArgs contain the arguments of the Update method. The update is a
// full replace of the event identified by ID; CreatedAt is preserved.
type UpdateEventArgs struct {
	// ID is the id of the event to replace.
	ID int64

	// OrganizerID is the owning user.
	OrganizerID int64

	// Title of the event.
	Title string

	// Description is a free-text description.
	Description string

	// Location is a free-text location.
	Location string

	// StartsAt is the scheduled start.
	StartsAt time.Time

	// Category is the event category.
	Category string

	// Speaker is the speaker/host name.
	Speaker string

	// Private restricts visibility to organizer and participants.
	Private bool

	// ImageRef is an optional image reference.
	ImageRef string

	// Badge, when non-nil, is awarded to joiners.
	Badge *Badge

	// Modality tags the event as in-person, online or hybrid.
	Modality Modality
}

// UpdateEventResponse contains the response of the Update method.
type UpdateEventResponse struct {
	// Event is the replaced event.
	Event Event
}

// ToggleLikeResponse is the result of a like toggle on an event or photo.
type ToggleLikeResponse struct {
	// Liked reports whether the caller likes the target after the toggle.
	Liked bool

	// Count is the like count after the toggle, recomputed from the like set.
	Count int
}

// AddPhotoCommentArgs contain the arguments of the AddPhotoComment method.
type AddPhotoCommentArgs struct {
	// EventID is the event owning the gallery.
	EventID int64

	// PhotoRef identifies the photo within the gallery.
	PhotoRef string

	// Author is the display name of the commenting user.
	Author string

	// Text is the comment body.
	Text string
}

// RemovePhotoCommentArgs contain the arguments of the RemovePhotoComment
// method. Removal is allowed to the comment author and to the event organizer.
type RemovePhotoCommentArgs struct {
	// EventID is the event owning the gallery.
	EventID int64

	// PhotoRef identifies the photo within the gallery.
	PhotoRef string

	// Author is the author of the comment to remove.
	Author string

	// Text is the body of the comment to remove.
	Text string

	// CallerID is the id of the user requesting the removal.
	CallerID int64

	// CallerName is the display name of the user requesting the removal.
	CallerName string
}

// BroadcastArgs contain the arguments of the BroadcastToParticipants method.
type BroadcastArgs struct {
	// EventID is the event whose roster receives the alert.
	EventID int64

	// Message is the alert text.
	Message string

	// ByEmail flags the alert for email delivery.
	ByEmail bool

	// Sender is the label of the originating party.
	Sender string
}

// LeaderboardArgs contain the arguments of the Leaderboard method.
type LeaderboardArgs struct {
	// EventID is the event whose roster is ranked.
	EventID int64

	// Counts maps participant id to the raw message count supplied by the
	// chat transport. Participants missing from the map count as zero.
	Counts map[int64]int
}

// LeaderboardResponse contains the ranking rows in rank order.
type LeaderboardResponse struct {
	// Entries are the leaderboard rows, rank ascending.
	Entries []RankEntry
}
