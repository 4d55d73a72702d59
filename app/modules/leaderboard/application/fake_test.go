package leaderboardservice

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	"github.com/piclink-games/piclink-backend/app/modules/leaderboard/infrastructure/rankstore"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ------------------------
// Fake Rank Store
// ------------------------

type FakeRankStore struct {
	mu     sync.Mutex
	scores map[sharedtypes.UserID]sharedtypes.Points

	IncrementScoreFunc func(ctx context.Context, userID sharedtypes.UserID, delta sharedtypes.Points) error
	TopFunc            func(ctx context.Context, limit int64) ([]rankstore.Member, error)
	RankFunc           func(ctx context.Context, userID sharedtypes.UserID) (int64, sharedtypes.Points, error)
}

func NewFakeRankStore() *FakeRankStore {
	return &FakeRankStore{scores: map[sharedtypes.UserID]sharedtypes.Points{}}
}

func (f *FakeRankStore) IncrementScore(ctx context.Context, userID sharedtypes.UserID, delta sharedtypes.Points) error {
	if f.IncrementScoreFunc != nil {
		return f.IncrementScoreFunc(ctx, userID, delta)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores[userID] += delta
	return nil
}

func (f *FakeRankStore) Score(userID sharedtypes.UserID) sharedtypes.Points {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scores[userID]
}

func (f *FakeRankStore) Top(ctx context.Context, limit int64) ([]rankstore.Member, error) {
	if f.TopFunc != nil {
		return f.TopFunc(ctx, limit)
	}
	return nil, nil
}

func (f *FakeRankStore) Rank(ctx context.Context, userID sharedtypes.UserID) (int64, sharedtypes.Points, error) {
	if f.RankFunc != nil {
		return f.RankFunc(ctx, userID)
	}
	return 0, 0, rankstore.ErrNotRanked
}

var _ rankstore.RankStore = (*FakeRankStore)(nil)

// topOf returns a TopFunc serving the given users in order with descending
// synthetic scores.
func topOf(ids ...sharedtypes.UserID) func(ctx context.Context, limit int64) ([]rankstore.Member, error) {
	return func(ctx context.Context, limit int64) ([]rankstore.Member, error) {
		members := make([]rankstore.Member, 0, len(ids))
		for i, id := range ids {
			if int64(i) >= limit {
				break
			}
			members = append(members, rankstore.Member{
				UserID: id,
				Score:  sharedtypes.Points(100 - 10*i),
			})
		}
		return members, nil
	}
}

// ------------------------
// Fake Profile Cache
// ------------------------

type FakeProfileCache struct {
	mu            sync.Mutex
	Invalidations []sharedtypes.UserID

	InvalidateFunc func(ctx context.Context, userID sharedtypes.UserID) error
}

func (f *FakeProfileCache) Get(ctx context.Context, userID sharedtypes.UserID) (*sharedtypes.Profile, bool, error) {
	return nil, false, nil
}

func (f *FakeProfileCache) Set(ctx context.Context, userID sharedtypes.UserID, profile *sharedtypes.Profile) error {
	return nil
}

func (f *FakeProfileCache) Invalidate(ctx context.Context, userID sharedtypes.UserID) error {
	f.mu.Lock()
	f.Invalidations = append(f.Invalidations, userID)
	f.mu.Unlock()
	if f.InvalidateFunc != nil {
		return f.InvalidateFunc(ctx, userID)
	}
	return nil
}

func (f *FakeProfileCache) InvalidationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Invalidations)
}

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepository struct {
	GetUserFunc       func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*userdb.User, error)
	GetUsersByIDsFunc func(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) ([]userdb.User, error)
}

func (f *FakeUserRepository) GetUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*userdb.User, error) {
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, db, userID)
	}
	return &userdb.User{ID: userID, Username: string(userID)}, nil
}

func (f *FakeUserRepository) GetUsersByIDs(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) ([]userdb.User, error) {
	if f.GetUsersByIDsFunc != nil {
		return f.GetUsersByIDsFunc(ctx, db, userIDs)
	}
	users := make([]userdb.User, len(userIDs))
	for i, id := range userIDs {
		users[i] = userdb.User{ID: id, Username: string(id)}
	}
	return users, nil
}

func (f *FakeUserRepository) EnsureUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	return nil
}

func (f *FakeUserRepository) CreditPoints(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error {
	return nil
}

var _ userdb.Repository = (*FakeUserRepository)(nil)
