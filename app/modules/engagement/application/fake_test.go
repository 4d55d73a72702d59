package engagementservice

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	engagementdb "github.com/piclink-games/piclink-backend/app/modules/engagement/infrastructure/repositories"
	leaderboardservice "github.com/piclink-games/piclink-backend/app/modules/leaderboard/application"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ------------------------
// Fake Reward Repo
// ------------------------

// FakeRewardRepository mirrors the insert-if-absent contract: the first
// writer per comment id wins, every later one reports inserted=false.
type FakeRewardRepository struct {
	mu      sync.Mutex
	rewards map[sharedtypes.CommentID]*engagementdb.CommentReward

	InsertRewardIfAbsentFunc func(ctx context.Context, db bun.IDB, reward *engagementdb.CommentReward) (bool, error)
}

func NewFakeRewardRepository() *FakeRewardRepository {
	return &FakeRewardRepository{rewards: map[sharedtypes.CommentID]*engagementdb.CommentReward{}}
}

func (f *FakeRewardRepository) InsertRewardIfAbsent(ctx context.Context, db bun.IDB, reward *engagementdb.CommentReward) (bool, error) {
	if f.InsertRewardIfAbsentFunc != nil {
		return f.InsertRewardIfAbsentFunc(ctx, db, reward)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.rewards[reward.CommentID]; exists {
		return false, nil
	}
	cp := *reward
	f.rewards[reward.CommentID] = &cp
	return true, nil
}

func (f *FakeRewardRepository) GetReward(ctx context.Context, db bun.IDB, commentID sharedtypes.CommentID) (*engagementdb.CommentReward, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rewards[commentID]
	if !ok {
		return nil, engagementdb.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// RewardCount reports the number of persisted reward rows.
func (f *FakeRewardRepository) RewardCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rewards)
}

var _ engagementdb.Repository = (*FakeRewardRepository)(nil)

// ------------------------
// Fake Credits
// ------------------------

type CreditCall struct {
	UserID sharedtypes.UserID
	Points sharedtypes.Points
	Exp    sharedtypes.Exp
}

type FakeCredits struct {
	mu      sync.Mutex
	Calls   []CreditCall
	Ensured []sharedtypes.UserID

	EnsureUserFunc   func(ctx context.Context, db bun.IDB, user *userdb.User) error
	CreditPointsFunc func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error
}

func (f *FakeCredits) EnsureUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.mu.Lock()
	f.Ensured = append(f.Ensured, user.ID)
	f.mu.Unlock()
	if f.EnsureUserFunc != nil {
		return f.EnsureUserFunc(ctx, db, user)
	}
	return nil
}

func (f *FakeCredits) CreditPoints(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error {
	if f.CreditPointsFunc != nil {
		if err := f.CreditPointsFunc(ctx, db, userID, points, exp, challengesSolved); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, CreditCall{UserID: userID, Points: points, Exp: exp})
	return nil
}

func (f *FakeCredits) CreditCalls() []CreditCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]CreditCall, len(f.Calls))
	copy(out, f.Calls)
	return out
}

var _ UserCredits = (*FakeCredits)(nil)

// ------------------------
// Fake Coordinator
// ------------------------

type AwardCall struct {
	UserID sharedtypes.UserID
	Delta  sharedtypes.Points
}

type FakeCoordinator struct {
	mu    sync.Mutex
	Calls []AwardCall
}

func (f *FakeCoordinator) OnPointsAwarded(ctx context.Context, userID sharedtypes.UserID, delta sharedtypes.Points) leaderboardservice.PropagationStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, AwardCall{UserID: userID, Delta: delta})
	return leaderboardservice.PropagationStatus{CacheInvalidated: true, LeaderboardUpdated: true}
}

func (f *FakeCoordinator) AwardCalls() []AwardCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]AwardCall, len(f.Calls))
	copy(out, f.Calls)
	return out
}

var _ leaderboardservice.Coordinator = (*FakeCoordinator)(nil)
