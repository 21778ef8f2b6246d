package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mtorres/eventia/internal/core/model"
)

// ChatRankingArgs contains the mandatory arguments for the ChatRanking engine.
type ChatRankingArgs struct {
	// Roster resolves the event's participant ids in joining order.
	Roster rosterSource

	// Directory resolves participant display names.
	Directory userView
}

// NewChatRanking creates a new ChatRanking engine.
func NewChatRanking(args ChatRankingArgs) *ChatRanking {
	return &ChatRanking{roster: args.Roster, directory: args.Directory}
}

// ChatRanking derives a chat-participation leaderboard from raw message
// counts supplied by the chat transport.
type ChatRanking struct {
	roster    rosterSource
	directory userView
}

// Leaderboard ranks the event roster by message count, descending. Ties keep
// the roster's relative order; ranks are 1-based and contiguous, so tied
// counts still occupy distinct consecutive ranks. Participants missing from
// the counts map count as zero; stale roster ids without a user are skipped.
func (r *ChatRanking) Leaderboard(ctx context.Context, args model.LeaderboardArgs) (*model.LeaderboardResponse, error) {
	roster, err := r.roster.Participants(ctx, args.EventID)
	if err != nil {
		return nil, fmt.Errorf("error resolving event roster: %w", err)
	}

	entries := make([]model.RankEntry, 0, len(roster))
	for _, userID := range roster {
		user, err := r.directory.FindByID(ctx, userID)
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error resolving participant %d: %w", userID, err)
		}
		entries = append(entries, model.RankEntry{
			UserID: userID,
			Name:   user.DisplayName(),
			Count:  args.Counts[userID],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return &model.LeaderboardResponse{Entries: entries}, nil
}
