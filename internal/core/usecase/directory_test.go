package usecase

import (
	"context"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/require"

	"github.com/mtorres/eventia/internal/actors/memory"
	"github.com/mtorres/eventia/internal/core/model"
)

func newDirectory(t *testing.T) (*Directory, *MockRecorder) {
	t.Helper()
	rec := NewMockRecorder()
	return NewDirectory(DirectoryArgs{
		Store:    memory.NewUserStore(),
		Recorder: rec,
	}), rec
}

func registerUser(t *testing.T, d *Directory, username, email string) model.User {
	t.Helper()
	resp, err := d.Register(context.Background(), model.RegisterArgs{
		Name:     "Test",
		Surname:  username,
		Username: username,
		Email:    email,
		Password: "s3cret",
	})
	require.NoError(t, err)
	return resp.User
}

func TestDirectory_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		args          model.RegisterArgs
		expectedError error
	}{
		{
			name: "register a valid user",
			args: model.RegisterArgs{Name: "Ana", Username: "ana", Email: "ana@example.com", Password: "s3cret"},
		},
		{
			name:          "missing username",
			args:          model.RegisterArgs{Email: "ana@example.com", Password: "s3cret"},
			expectedError: model.ErrInvalidArgument,
		},
		{
			name:          "missing email",
			args:          model.RegisterArgs{Username: "ana", Password: "s3cret"},
			expectedError: model.ErrInvalidArgument,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			directory, rec := newDirectory(t)
			resp, err := directory.Register(ctx, test.args)
			if test.expectedError != nil {
				require.ErrorIs(t, err, test.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(1), resp.User.ID)

			// the plaintext never reaches the store
			stored, err := directory.FindByID(ctx, resp.User.ID)
			require.NoError(t, err)
			require.NotEqual(t, test.args.Password, stored.PasswordHash)
			match, err := argon2id.ComparePasswordAndHash(test.args.Password, stored.PasswordHash)
			require.NoError(t, err)
			require.True(t, match)

			require.Len(t, rec.Entries[resp.User.ID], 1)
		})
	}
}

func TestDirectory_RegisterDuplicates(t *testing.T) {
	ctx := context.Background()
	directory, _ := newDirectory(t)
	registerUser(t, directory, "ana", "ana@example.com")

	_, err := directory.Register(ctx, model.RegisterArgs{Username: "ANA", Email: "other@example.com", Password: "x"})
	require.ErrorIs(t, err, model.ErrDuplicateUsername)

	_, err = directory.Register(ctx, model.RegisterArgs{Username: "other", Email: "Ana@Example.com", Password: "x"})
	require.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestDirectory_Authenticate(t *testing.T) {
	ctx := context.Background()
	directory, _ := newDirectory(t)
	registerUser(t, directory, "ana", "ana@example.com")

	tests := []struct {
		name          string
		login         string
		password      string
		expectedError error
	}{
		{
			name:     "by username",
			login:    "ana",
			password: "s3cret",
		},
		{
			name:     "by email",
			login:    "ana@example.com",
			password: "s3cret",
		},
		{
			name:          "wrong password",
			login:         "ana",
			password:      "nope",
			expectedError: model.ErrUnauthorized,
		},
		{
			name:          "unknown login",
			login:         "nobody",
			password:      "s3cret",
			expectedError: model.ErrNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp, err := directory.Authenticate(ctx, model.AuthenticateArgs{Login: test.login, Password: test.password})
			if test.expectedError != nil {
				require.ErrorIs(t, err, test.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "ana", resp.User.Username)
		})
	}
}

func TestDirectory_Rename(t *testing.T) {
	ctx := context.Background()
	directory, _ := newDirectory(t)
	ana := registerUser(t, directory, "ana", "ana@example.com")

	_, err := directory.Rename(ctx, ana.ID, "  ")
	require.ErrorIs(t, err, model.ErrInvalidArgument)

	renamed, err := directory.Rename(ctx, ana.ID, "ana_silva")
	require.NoError(t, err)
	require.Equal(t, "ana_silva", renamed.Username)

	// the old username is released
	_, err = directory.FindByUsername(ctx, "ana")
	require.ErrorIs(t, err, model.ErrNotFound)
	found, err := directory.FindByUsername(ctx, "ANA_SILVA")
	require.NoError(t, err)
	require.Equal(t, ana.ID, found.ID)
}

func TestDirectory_CompleteProfile(t *testing.T) {
	ctx := context.Background()
	directory, _ := newDirectory(t)
	ana := registerUser(t, directory, "ana", "ana@example.com")

	updated, err := directory.CompleteProfile(ctx, model.CompleteProfileArgs{
		UserID:     ana.ID,
		Phone:      "+351000000000",
		NationalID: "12345678",
		Gender:     "female",
	})
	require.NoError(t, err)
	require.Equal(t, "+351000000000", updated.Phone)

	_, err = directory.CompleteProfile(ctx, model.CompleteProfileArgs{UserID: 99})
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestDirectory_SetProfilePhoto(t *testing.T) {
	ctx := context.Background()
	directory, _ := newDirectory(t)
	ana := registerUser(t, directory, "ana", "ana@example.com")

	// without an upload the default asset is served
	user, err := directory.FindByID(ctx, ana.ID)
	require.NoError(t, err)
	require.Equal(t, model.DefaultProfilePhoto, user.Photo())

	require.NoError(t, directory.SetProfilePhoto(ctx, ana.ID, "assets/profile/ana.png"))
	user, err = directory.FindByID(ctx, ana.ID)
	require.NoError(t, err)
	require.Equal(t, "assets/profile/ana.png", user.Photo())
}

func TestDirectory_FriendshipFlow(t *testing.T) {
	ctx := context.Background()
	directory, rec := newDirectory(t)
	ana := registerUser(t, directory, "ana", "ana@example.com")
	bruno := registerUser(t, directory, "bruno", "bruno@example.com")

	require.NoError(t, directory.SendFriendRequest(ctx, ana.ID, bruno.ID))
	require.Contains(t, rec.MessagesFor(bruno.ID), "Test ana sent you a friend request")

	require.NoError(t, directory.AcceptFriendRequest(ctx, bruno.ID, ana.ID))
	require.Contains(t, rec.MessagesFor(ana.ID), "Test bruno accepted your friend request")

	// friendship is symmetric
	friendsOfAna, err := directory.ListFriends(ctx, ana.ID)
	require.NoError(t, err)
	friendsOfBruno, err := directory.ListFriends(ctx, bruno.ID)
	require.NoError(t, err)
	require.Len(t, friendsOfAna, 1)
	require.Len(t, friendsOfBruno, 1)
	require.Equal(t, bruno.ID, friendsOfAna[0].ID)
	require.Equal(t, ana.ID, friendsOfBruno[0].ID)

	// a repeated request between friends records nothing
	before := len(rec.Entries[bruno.ID])
	require.NoError(t, directory.SendFriendRequest(ctx, ana.ID, bruno.ID))
	require.Len(t, rec.Entries[bruno.ID], before)
}

func TestDirectory_RejectFriendRequest(t *testing.T) {
	ctx := context.Background()
	directory, _ := newDirectory(t)
	ana := registerUser(t, directory, "ana", "ana@example.com")
	bruno := registerUser(t, directory, "bruno", "bruno@example.com")

	require.NoError(t, directory.SendFriendRequest(ctx, ana.ID, bruno.ID))
	require.NoError(t, directory.RejectFriendRequest(ctx, bruno.ID, ana.ID))

	friends, err := directory.ListFriends(ctx, bruno.ID)
	require.NoError(t, err)
	require.Empty(t, friends)
}

func TestDirectory_Messages(t *testing.T) {
	ctx := context.Background()
	directory, rec := newDirectory(t)
	ana := registerUser(t, directory, "ana", "ana@example.com")
	bruno := registerUser(t, directory, "bruno", "bruno@example.com")

	err := directory.AppendMessage(ctx, model.AppendMessageArgs{FromID: ana.ID, ToID: bruno.ID, Text: "  "})
	require.ErrorIs(t, err, model.ErrValidation)

	require.NoError(t, directory.AppendMessage(ctx, model.AppendMessageArgs{FromID: ana.ID, ToID: bruno.ID, Text: "hi"}))
	require.NoError(t, directory.AppendMessage(ctx, model.AppendMessageArgs{FromID: bruno.ID, ToID: ana.ID, Text: "hello"}))

	anaCopy, err := directory.Transcript(ctx, ana.ID, "bruno")
	require.NoError(t, err)
	brunoCopy, err := directory.Transcript(ctx, bruno.ID, "ana")
	require.NoError(t, err)
	require.Equal(t, anaCopy, brunoCopy)
	require.Len(t, anaCopy, 2)
	require.Equal(t, "ana", anaCopy[0].Sender)
	require.Equal(t, "hi", anaCopy[0].Text)

	require.Contains(t, rec.MessagesFor(bruno.ID), "New message from Test ana")
}

func TestDirectory_AwardBadge(t *testing.T) {
	ctx := context.Background()
	directory, rec := newDirectory(t)
	ana := registerUser(t, directory, "ana", "ana@example.com")
	welcome := len(rec.Entries[ana.ID])

	badge := model.Badge{Name: "early-bird"}
	require.NoError(t, directory.AwardBadge(ctx, ana.ID, badge))
	require.Len(t, rec.Entries[ana.ID], welcome+1)

	// the duplicate award records nothing
	require.NoError(t, directory.AwardBadge(ctx, ana.ID, badge))
	require.Len(t, rec.Entries[ana.ID], welcome+1)

	badges, err := directory.Badges(ctx, ana.ID)
	require.NoError(t, err)
	require.Equal(t, []model.Badge{badge}, badges)
}
