package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	log "github.com/sirupsen/logrus"

	"github.com/mtorres/eventia/internal/core/model"
	"github.com/mtorres/eventia/internal/core/ports"
)

// recorder is the notification sink every mutating service writes into.
// Recording is best-effort: a failure never fails the primary mutation.
type recorder interface {
	// Record appends the notification to the user's log.
	Record(ctx context.Context, userID int64, n model.Notification) error
}

// DirectoryArgs contains the mandatory arguments for the Directory.
type DirectoryArgs struct {
	// Store is the user persistence port.
	Store ports.UserStore

	// Recorder receives the notification side-effects of directory mutations.
	Recorder recorder
}

// NewDirectory creates a new Directory.
func NewDirectory(args DirectoryArgs) *Directory {
	return &Directory{store: args.Store, recorder: args.Recorder}
}

// Directory gathers the functionality around user identity, friendships and
// pairwise message transcripts.
type Directory struct {
	store    ports.UserStore
	recorder recorder
}

// Register registers a new user. The password is hashed with argon2id before
// it reaches the store; plaintext is never kept.
func (d *Directory) Register(ctx context.Context, args model.RegisterArgs) (*model.RegisterResponse, error) {
	if strings.TrimSpace(args.Username) == "" || strings.TrimSpace(args.Email) == "" {
		return nil, fmt.Errorf("username and email are mandatory: %w", model.ErrInvalidArgument)
	}

	hash, err := argon2id.CreateHash(args.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("error creating password hash: %w", err)
	}

	user := &model.User{
		Name:         args.Name,
		Surname:      args.Surname,
		Username:     args.Username,
		Email:        args.Email,
		PasswordHash: hash,
	}

	if err := d.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error saving user in store: %w", err)
	}

	d.record(ctx, user.ID, model.Notification{
		Message: fmt.Sprintf("Welcome %s, your account is ready", user.DisplayName()),
		Type:    model.NotificationHistory,
		Sender:  systemSender,
	})

	return &model.RegisterResponse{User: *user}, nil
}

// Authenticate verifies the password for the user matching the login, which
// may be a username or an email. It returns model.ErrUnauthorized on a wrong
// password and model.ErrNotFound for an unknown login.
func (d *Directory) Authenticate(ctx context.Context, args model.AuthenticateArgs) (*model.AuthenticateResponse, error) {
	user, err := d.store.GetUserByUsername(ctx, args.Login)
	if errors.Is(err, model.ErrNotFound) {
		user, err = d.store.GetUserByEmail(ctx, args.Login)
	}
	if err != nil {
		return nil, fmt.Errorf("error resolving login: %w", err)
	}

	match, err := argon2id.ComparePasswordAndHash(args.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error comparing password hash: %w", err)
	}
	if !match {
		return nil, model.ErrUnauthorized
	}
	return &model.AuthenticateResponse{User: *user}, nil
}

// FindByID returns the user by id, or model.ErrNotFound.
func (d *Directory) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return d.store.GetUser(ctx, id)
}

// FindByUsername returns the user by username, case-insensitively.
func (d *Directory) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return d.store.GetUserByUsername(ctx, username)
}

// FindByEmail returns the user by email, case-insensitively.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return d.store.GetUserByEmail(ctx, email)
}

// CompleteProfile fills the second-stage profile fields of the user.
func (d *Directory) CompleteProfile(ctx context.Context, args model.CompleteProfileArgs) (*model.User, error) {
	user, err := d.store.GetUser(ctx, args.UserID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	user.Phone = args.Phone
	user.NationalID = args.NationalID
	user.Gender = args.Gender
	user.BirthDate = args.BirthDate

	if err := d.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return user, nil
}

// Rename changes the username. This is the only sanctioned username mutation;
// uniqueness is enforced case-insensitively by the store.
func (d *Directory) Rename(ctx context.Context, userID int64, newUsername string) (*model.User, error) {
	if strings.TrimSpace(newUsername) == "" {
		return nil, fmt.Errorf("username is mandatory: %w", model.ErrInvalidArgument)
	}

	user, err := d.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	user.Username = newUsername
	if err := d.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return user, nil
}

// SetProfilePhoto sets the profile photo reference.
func (d *Directory) SetProfilePhoto(ctx context.Context, userID int64, ref string) error {
	user, err := d.store.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("error loading user: %w", err)
	}
	user.PhotoRef = ref
	if err := d.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// SendFriendRequest records a pending request from one user to another.
// Self-requests, existing friendships and duplicate requests are silent no-ops.
func (d *Directory) SendFriendRequest(ctx context.Context, fromID, toID int64) error {
	recorded, err := d.store.AddFriendRequest(ctx, fromID, toID)
	if err != nil {
		return fmt.Errorf("error adding friend request: %w", err)
	}
	if !recorded {
		return nil
	}

	if from, err := d.store.GetUser(ctx, fromID); err == nil {
		d.record(ctx, toID, model.Notification{
			Message: fmt.Sprintf("%s sent you a friend request", from.DisplayName()),
			Type:    model.NotificationHistory,
			Sender:  from.Username,
		})
	}
	return nil
}

// AcceptFriendRequest establishes the symmetric friendship and removes the
// pending request. Without a pending request it is a silent no-op.
func (d *Directory) AcceptFriendRequest(ctx context.Context, receiverID, senderID int64) error {
	accepted, err := d.store.AcceptFriendRequest(ctx, receiverID, senderID)
	if err != nil {
		return fmt.Errorf("error accepting friend request: %w", err)
	}
	if !accepted {
		return nil
	}

	if receiver, err := d.store.GetUser(ctx, receiverID); err == nil {
		d.record(ctx, senderID, model.Notification{
			Message: fmt.Sprintf("%s accepted your friend request", receiver.DisplayName()),
			Type:    model.NotificationHistory,
			Sender:  receiver.Username,
		})
	}
	return nil
}

// RejectFriendRequest removes the pending request without creating a friendship.
func (d *Directory) RejectFriendRequest(ctx context.Context, receiverID, senderID int64) error {
	if _, err := d.store.RejectFriendRequest(ctx, receiverID, senderID); err != nil {
		return fmt.Errorf("error rejecting friend request: %w", err)
	}
	return nil
}

// ListFriends lists the user's friends in acceptance order.
func (d *Directory) ListFriends(ctx context.Context, userID int64) ([]model.User, error) {
	friends, err := d.store.Friends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing friends: %w", err)
	}
	return friends, nil
}

// AppendMessage appends a line to the pairwise transcript. The line lands in
// both parties' copies.
func (d *Directory) AppendMessage(ctx context.Context, args model.AppendMessageArgs) error {
	if strings.TrimSpace(args.Text) == "" {
		return fmt.Errorf("message text is mandatory: %w", model.ErrValidation)
	}

	from, err := d.store.GetUser(ctx, args.FromID)
	if err != nil {
		return fmt.Errorf("error loading sender: %w", err)
	}

	line := model.ChatMessage{Sender: from.Username, Text: args.Text}
	if err := d.store.AppendMessage(ctx, args.FromID, args.ToID, line); err != nil {
		return fmt.Errorf("error appending message: %w", err)
	}

	d.record(ctx, args.ToID, model.Notification{
		Message: fmt.Sprintf("New message from %s", from.DisplayName()),
		Type:    model.NotificationHistory,
		Sender:  from.Username,
	})
	return nil
}

// Transcript returns the user's copy of the conversation with the counterpart,
// chronological. Reading never mutates the transcript.
func (d *Directory) Transcript(ctx context.Context, userID int64, otherUsername string) ([]model.ChatMessage, error) {
	lines, err := d.store.Transcript(ctx, userID, otherUsername)
	if err != nil {
		return nil, fmt.Errorf("error reading transcript: %w", err)
	}
	return lines, nil
}

// AwardBadge grants the badge to the user, deduplicated by badge name.
func (d *Directory) AwardBadge(ctx context.Context, userID int64, badge model.Badge) error {
	earned, err := d.store.AwardBadge(ctx, userID, badge)
	if err != nil {
		return fmt.Errorf("error awarding badge: %w", err)
	}
	if earned {
		d.record(ctx, userID, model.Notification{
			Message: fmt.Sprintf("You earned the badge %q", badge.Name),
			Type:    model.NotificationHistory,
			Sender:  systemSender,
		})
	}
	return nil
}

// Badges lists the user's earned badges.
func (d *Directory) Badges(ctx context.Context, userID int64) ([]model.Badge, error) {
	badges, err := d.store.Badges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing badges: %w", err)
	}
	return badges, nil
}

const systemSender = "system"

func (d *Directory) record(ctx context.Context, userID int64, n model.Notification) {
	recordBestEffort(ctx, d.recorder, userID, n)
}

// recordBestEffort appends a notification side-effect. A failure is logged
// and never propagated to the primary mutation.
func recordBestEffort(ctx context.Context, rec recorder, userID int64, n model.Notification) {
	if rec == nil {
		return
	}
	if err := rec.Record(ctx, userID, n); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("could not record notification")
	}
}
