package userservice

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ------------------------
// Fake User Repo
// ------------------------

// FakeUserRepository provides a programmable stub for userdb.Repository.
type FakeUserRepository struct {
	mu    sync.Mutex
	trace []string

	GetUserFunc       func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*userdb.User, error)
	GetUsersByIDsFunc func(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) ([]userdb.User, error)
	EnsureUserFunc    func(ctx context.Context, db bun.IDB, user *userdb.User) error
	CreditPointsFunc  func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeUserRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeUserRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepository) GetUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*userdb.User, error) {
	f.record("GetUser")
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, db, userID)
	}
	return &userdb.User{ID: userID, Username: string(userID)}, nil
}

func (f *FakeUserRepository) GetUsersByIDs(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) ([]userdb.User, error) {
	f.record("GetUsersByIDs")
	if f.GetUsersByIDsFunc != nil {
		return f.GetUsersByIDsFunc(ctx, db, userIDs)
	}
	return nil, nil
}

func (f *FakeUserRepository) EnsureUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("EnsureUser")
	if f.EnsureUserFunc != nil {
		return f.EnsureUserFunc(ctx, db, user)
	}
	return nil
}

func (f *FakeUserRepository) CreditPoints(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error {
	f.record("CreditPoints")
	if f.CreditPointsFunc != nil {
		return f.CreditPointsFunc(ctx, db, userID, points, exp, challengesSolved)
	}
	return nil
}

var _ userdb.Repository = (*FakeUserRepository)(nil)

// ------------------------
// Fake Profile Cache
// ------------------------

// FakeProfileCache is an in-memory stand-in for the Redis profile cache.
type FakeProfileCache struct {
	mu      sync.Mutex
	entries map[sharedtypes.UserID]*sharedtypes.Profile

	GetFunc        func(ctx context.Context, userID sharedtypes.UserID) (*sharedtypes.Profile, bool, error)
	SetFunc        func(ctx context.Context, userID sharedtypes.UserID, profile *sharedtypes.Profile) error
	InvalidateFunc func(ctx context.Context, userID sharedtypes.UserID) error

	Invalidations []sharedtypes.UserID
}

func NewFakeProfileCache() *FakeProfileCache {
	return &FakeProfileCache{entries: map[sharedtypes.UserID]*sharedtypes.Profile{}}
}

func (f *FakeProfileCache) Get(ctx context.Context, userID sharedtypes.UserID) (*sharedtypes.Profile, bool, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, userID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.entries[userID]
	return p, ok, nil
}

func (f *FakeProfileCache) Set(ctx context.Context, userID sharedtypes.UserID, profile *sharedtypes.Profile) error {
	if f.SetFunc != nil {
		return f.SetFunc(ctx, userID, profile)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[userID] = profile
	return nil
}

func (f *FakeProfileCache) Invalidate(ctx context.Context, userID sharedtypes.UserID) error {
	f.mu.Lock()
	f.Invalidations = append(f.Invalidations, userID)
	f.mu.Unlock()
	if f.InvalidateFunc != nil {
		return f.InvalidateFunc(ctx, userID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, userID)
	return nil
}
