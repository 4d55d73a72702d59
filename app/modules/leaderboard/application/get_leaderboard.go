package leaderboardservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/piclink-games/piclink-backend/app/modules/leaderboard/infrastructure/rankstore"
	userservice "github.com/piclink-games/piclink-backend/app/modules/user/application"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ErrUserNotRanked indicates the user has no leaderboard entry yet.
var ErrUserNotRanked = rankstore.ErrNotRanked

// GetTopEntries serves the leaderboard projection: ranked-set order joined
// with the persisted user rows. A ranked user whose row is missing is
// skipped rather than failing the page.
func (s *LeaderboardService) GetTopEntries(ctx context.Context, limit int64) ([]sharedtypes.LeaderboardEntry, error) {
	ctx, span := s.tracer.Start(ctx, "GetTopEntries")
	defer span.End()

	members, err := s.rank.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("GetTopEntries: %w", err)
	}
	if len(members) == 0 {
		return nil, nil
	}

	ids := make([]sharedtypes.UserID, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}

	users, err := s.users.GetUsersByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("GetTopEntries: %w", err)
	}
	byID := make(map[sharedtypes.UserID]int, len(users))
	for i := range users {
		byID[users[i].ID] = i
	}

	entries := make([]sharedtypes.LeaderboardEntry, 0, len(members))
	for i, m := range members {
		idx, ok := byID[m.UserID]
		if !ok {
			s.logger.WarnContext(ctx, "Ranked user missing from store",
				attr.UserID("user_id", m.UserID),
			)
			continue
		}
		u := users[idx]
		entries = append(entries, sharedtypes.LeaderboardEntry{
			Rank:             int64(i + 1),
			UserID:           u.ID,
			Username:         u.Username,
			TotalPoints:      u.Points,
			Level:            userservice.LevelForExp(u.Exp),
			ChallengesSolved: u.ChallengesSolved,
		})
	}
	return entries, nil
}

// GetUserEntry returns a single user's leaderboard entry.
func (s *LeaderboardService) GetUserEntry(ctx context.Context, userID sharedtypes.UserID) (*sharedtypes.LeaderboardEntry, error) {
	ctx, span := s.tracer.Start(ctx, "GetUserEntry")
	defer span.End()

	rank, _, err := s.rank.Rank(ctx, userID)
	if err != nil {
		if errors.Is(err, rankstore.ErrNotRanked) {
			return nil, ErrUserNotRanked
		}
		return nil, fmt.Errorf("GetUserEntry: %w", err)
	}

	user, err := s.users.GetUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("GetUserEntry: %w", err)
	}

	return &sharedtypes.LeaderboardEntry{
		Rank:             rank,
		UserID:           user.ID,
		Username:         user.Username,
		TotalPoints:      user.Points,
		Level:            userservice.LevelForExp(user.Exp),
		ChallengesSolved: user.ChallengesSolved,
	}, nil
}
