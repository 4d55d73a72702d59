package challengeservice

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	leaderboardservice "github.com/piclink-games/piclink-backend/app/modules/leaderboard/application"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ------------------------
// Fake Challenge Repo
// ------------------------

type FakeChallengeRepository struct {
	mu         sync.Mutex
	challenges map[sharedtypes.ChallengeID]*challengedb.Challenge
	getCalls   int

	CreateChallengeFunc func(ctx context.Context, db bun.IDB, challenge *challengedb.Challenge) error
	GetChallengeFunc    func(ctx context.Context, db bun.IDB, id sharedtypes.ChallengeID) (*challengedb.Challenge, error)
}

func NewFakeChallengeRepository() *FakeChallengeRepository {
	return &FakeChallengeRepository{challenges: map[sharedtypes.ChallengeID]*challengedb.Challenge{}}
}

func (f *FakeChallengeRepository) Seed(challenge *challengedb.Challenge) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.challenges[challenge.ID] = challenge
}

// GetCalls reports how many backend reads actually happened.
func (f *FakeChallengeRepository) GetCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls
}

func (f *FakeChallengeRepository) CreateChallenge(ctx context.Context, db bun.IDB, challenge *challengedb.Challenge) error {
	if f.CreateChallengeFunc != nil {
		return f.CreateChallengeFunc(ctx, db, challenge)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.challenges[challenge.ID] = challenge
	return nil
}

func (f *FakeChallengeRepository) GetChallenge(ctx context.Context, db bun.IDB, id sharedtypes.ChallengeID) (*challengedb.Challenge, error) {
	f.mu.Lock()
	f.getCalls++
	f.mu.Unlock()
	if f.GetChallengeFunc != nil {
		return f.GetChallengeFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	challenge, ok := f.challenges[id]
	if !ok {
		return nil, challengedb.ErrNotFound
	}
	return challenge, nil
}

func (f *FakeChallengeRepository) IncrementPlayersPlayed(ctx context.Context, db bun.IDB, id sharedtypes.ChallengeID) error {
	return nil
}

func (f *FakeChallengeRepository) IncrementPlayersCompleted(ctx context.Context, db bun.IDB, id sharedtypes.ChallengeID) error {
	return nil
}

var _ challengedb.Repository = (*FakeChallengeRepository)(nil)

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

	CreditPointsFunc func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error
}

func (f *FakeCredits) EnsureUser(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ensured = append(f.Ensured, user.ID)
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

var _ UserCredits = (*FakeCredits)(nil)

// ------------------------
// Fake Profiles
// ------------------------

type FakeProfiles struct {
	mu    sync.Mutex
	calls int

	GetProfileFunc func(ctx context.Context, userID sharedtypes.UserID) (*sharedtypes.Profile, error)
}

func (f *FakeProfiles) GetProfile(ctx context.Context, userID sharedtypes.UserID) (*sharedtypes.Profile, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.GetProfileFunc != nil {
		return f.GetProfileFunc(ctx, userID)
	}
	return &sharedtypes.Profile{UserID: userID, Username: string(userID), Level: 1}, nil
}

func (f *FakeProfiles) ProfileCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var _ ProfileReader = (*FakeProfiles)(nil)

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

var _ leaderboardservice.Coordinator = (*FakeCoordinator)(nil)
