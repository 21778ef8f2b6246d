package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/mtorres/eventia/internal/core/model"
)

// UserStore is the in-memory adapter of the user directory persistence port.
// All state lives for the process lifetime; a single mutex serializes access.
type UserStore struct {
	mu      sync.Mutex
	nowFunc func() time.Time

	seq        int64
	users      map[int64]*model.User
	byUsername map[string]int64
	byEmail    map[string]int64

	// friends keeps, per user, the friend ids in acceptance order.
	friends map[int64][]int64

	// pending maps receiver id to the set of sender ids with an open request.
	pending map[int64]map[int64]struct{}

	// transcripts maps owner id to counterpart username (lowercased) to the
	// owner's copy of the conversation.
	transcripts map[int64]map[string][]model.ChatMessage

	badges map[int64][]model.Badge
}

// UserStoreOptArgs are the optional arguments for building a UserStore.
type UserStoreOptArgs = func(*UserStore)

// WithUserNowFunc overrides the nowFunc. Useful for testing.
func WithUserNowFunc(nowFunc func() time.Time) UserStoreOptArgs {
	return func(s *UserStore) {
		s.nowFunc = nowFunc
	}
}

// NewUserStore creates a new UserStore.
func NewUserStore(optArgs ...UserStoreOptArgs) *UserStore {
	s := &UserStore{
		nowFunc:     func() time.Time { return time.Now().UTC() },
		users:       make(map[int64]*model.User),
		byUsername:  make(map[string]int64),
		byEmail:     make(map[string]int64),
		friends:     make(map[int64][]int64),
		pending:     make(map[int64]map[int64]struct{}),
		transcripts: make(map[int64]map[string][]model.ChatMessage),
		badges:      make(map[int64][]model.Badge),
	}
	for _, opt := range optArgs {
		opt(s)
	}
	return s
}

// SaveUser assigns the next id and stores the user.
func (s *UserStore) SaveUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("nil user passed to save method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[strings.ToLower(user.Email)]; taken {
		return model.ErrDuplicateEmail
	}
	if _, taken := s.byUsername[strings.ToLower(user.Username)]; taken {
		return model.ErrDuplicateUsername
	}

	s.seq++
	user.ID = s.seq
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.nowFunc()
	}

	stored := *user
	s.users[stored.ID] = &stored
	s.byUsername[strings.ToLower(stored.Username)] = stored.ID
	s.byEmail[strings.ToLower(stored.Email)] = stored.ID
	return nil
}

// UpdateUser replaces the stored user matching user.ID.
func (s *UserStore) UpdateUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("nil user passed to update method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return model.ErrNotFound
	}

	if id, taken := s.byEmail[strings.ToLower(user.Email)]; taken && id != user.ID {
		return model.ErrDuplicateEmail
	}
	if id, taken := s.byUsername[strings.ToLower(user.Username)]; taken && id != user.ID {
		return model.ErrDuplicateUsername
	}

	delete(s.byUsername, strings.ToLower(existing.Username))
	delete(s.byEmail, strings.ToLower(existing.Email))

	stored := *user
	stored.CreatedAt = existing.CreatedAt
	s.users[stored.ID] = &stored
	s.byUsername[strings.ToLower(stored.Username)] = stored.ID
	s.byEmail[strings.ToLower(stored.Email)] = stored.ID
	return nil
}

// GetUser returns the user by id.
func (s *UserStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userCopy(id)
}

// GetUserByUsername returns the user by username, case-insensitively.
func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byUsername[strings.ToLower(username)]
	if !ok {
		return nil, model.ErrNotFound
	}
	return s.userCopy(id)
}

// GetUserByEmail returns the user by email, case-insensitively.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, model.ErrNotFound
	}
	return s.userCopy(id)
}

// AddFriendRequest records a pending one-directional request.
func (s *UserStore) AddFriendRequest(ctx context.Context, fromID, toID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[fromID]; !ok {
		return false, model.ErrNotFound
	}
	if _, ok := s.users[toID]; !ok {
		return false, model.ErrNotFound
	}
	if fromID == toID || s.areFriends(fromID, toID) {
		return false, nil
	}
	reqs := s.pending[toID]
	if reqs == nil {
		reqs = make(map[int64]struct{})
		s.pending[toID] = reqs
	}
	if _, exists := reqs[fromID]; exists {
		return false, nil
	}
	reqs[fromID] = struct{}{}
	return true, nil
}

// AcceptFriendRequest establishes the symmetric friendship and removes the pending request.
func (s *UserStore) AcceptFriendRequest(ctx context.Context, receiverID, senderID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqs := s.pending[receiverID]
	if _, exists := reqs[senderID]; !exists {
		return false, nil
	}
	delete(reqs, senderID)

	if !s.areFriends(receiverID, senderID) {
		s.friends[receiverID] = append(s.friends[receiverID], senderID)
		s.friends[senderID] = append(s.friends[senderID], receiverID)
	}
	return true, nil
}

// RejectFriendRequest removes the pending request without creating a friendship.
func (s *UserStore) RejectFriendRequest(ctx context.Context, receiverID, senderID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqs := s.pending[receiverID]
	if _, exists := reqs[senderID]; !exists {
		return false, nil
	}
	delete(reqs, senderID)
	return true, nil
}

// Friends lists the user's friends in acceptance order.
func (s *UserStore) Friends(ctx context.Context, userID int64) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.friends[userID]
	out := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

// AppendMessage appends the line to both parties' transcripts for the pair.
// The line is duplicated on purpose: each side owns its own copy, which the
// history and ranking features rely on.
func (s *UserStore) AppendMessage(ctx context.Context, fromID, toID int64, line model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.users[fromID]
	if !ok {
		return model.ErrNotFound
	}
	to, ok := s.users[toID]
	if !ok {
		return model.ErrNotFound
	}
	if line.SentAt.IsZero() {
		line.SentAt = s.nowFunc()
	}

	s.appendLine(fromID, to.Username, line)
	s.appendLine(toID, from.Username, line)
	return nil
}

// Transcript returns the user's copy of the conversation with the counterpart.
func (s *UserStore) Transcript(ctx context.Context, userID int64, otherUsername string) ([]model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.transcripts[userID][strings.ToLower(otherUsername)]
	out := make([]model.ChatMessage, len(lines))
	copy(out, lines)
	return out, nil
}

// AwardBadge adds the badge to the user, deduplicated by badge name.
func (s *UserStore) AwardBadge(ctx context.Context, userID int64, badge model.Badge) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return false, model.ErrNotFound
	}
	for _, earned := range s.badges[userID] {
		if earned.Name == badge.Name {
			return false, nil
		}
	}
	s.badges[userID] = append(s.badges[userID], badge)
	return true, nil
}

// Badges lists the user's earned badges in earning order.
func (s *UserStore) Badges(ctx context.Context, userID int64) ([]model.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Badge, len(s.badges[userID]))
	copy(out, s.badges[userID])
	return out, nil
}

func (s *UserStore) userCopy(id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) areFriends(a, b int64) bool {
	for _, id := range s.friends[a] {
		if id == b {
			return true
		}
	}
	return false
}

func (s *UserStore) appendLine(ownerID int64, otherUsername string, line model.ChatMessage) {
	key := strings.ToLower(otherUsername)
	byOther := s.transcripts[ownerID]
	if byOther == nil {
		byOther = make(map[string][]model.ChatMessage)
		s.transcripts[ownerID] = byOther
	}
	byOther[key] = append(byOther[key], line)
}
