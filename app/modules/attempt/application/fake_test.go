package attemptservice

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	attemptdb "github.com/piclink-games/piclink-backend/app/modules/attempt/infrastructure/repositories"
	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	leaderboardservice "github.com/piclink-games/piclink-backend/app/modules/leaderboard/application"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ------------------------
// Fake Attempt Repo
// ------------------------

// FakeAttemptRepository keeps attempts in memory and mirrors the guarded
// update semantics of the real store: a terminal row rejects further writes.
type FakeAttemptRepository struct {
	mu       sync.Mutex
	attempts map[string]*attemptdb.Attempt
	trace    []string

	GetAttemptFunc         func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) (*attemptdb.Attempt, error)
	GetOrCreateAttemptFunc func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) (*attemptdb.Attempt, bool, error)
	UpdateAttemptFunc      func(ctx context.Context, db bun.IDB, attempt *attemptdb.Attempt) error
}

func NewFakeAttemptRepository() *FakeAttemptRepository {
	return &FakeAttemptRepository{attempts: map[string]*attemptdb.Attempt{}}
}

func attemptKey(userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) string {
	return string(userID) + "/" + string(challengeID)
}

// Seed installs an attempt row directly, bypassing the trace.
func (f *FakeAttemptRepository) Seed(attempt *attemptdb.Attempt) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *attempt
	f.attempts[attemptKey(attempt.UserID, attempt.ChallengeID)] = &cp
}

// Stored returns a copy of the persisted row, or nil.
func (f *FakeAttemptRepository) Stored(userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) *attemptdb.Attempt {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attempts[attemptKey(userID, challengeID)]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

func (f *FakeAttemptRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeAttemptRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeAttemptRepository) GetAttempt(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) (*attemptdb.Attempt, error) {
	f.record("GetAttempt")
	if f.GetAttemptFunc != nil {
		return f.GetAttemptFunc(ctx, db, userID, challengeID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.attempts[attemptKey(userID, challengeID)]
	if !ok {
		return nil, attemptdb.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *FakeAttemptRepository) GetOrCreateAttempt(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) (*attemptdb.Attempt, bool, error) {
	f.record("GetOrCreateAttempt")
	if f.GetOrCreateAttemptFunc != nil {
		return f.GetOrCreateAttemptFunc(ctx, db, userID, challengeID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := attemptKey(userID, challengeID)
	if a, ok := f.attempts[key]; ok {
		cp := *a
		return &cp, false, nil
	}
	a := &attemptdb.Attempt{UserID: userID, ChallengeID: challengeID}
	f.attempts[key] = a
	cp := *a
	return &cp, true, nil
}

func (f *FakeAttemptRepository) UpdateAttempt(ctx context.Context, db bun.IDB, attempt *attemptdb.Attempt) error {
	f.record("UpdateAttempt")
	if f.UpdateAttemptFunc != nil {
		return f.UpdateAttemptFunc(ctx, db, attempt)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := attemptKey(attempt.UserID, attempt.ChallengeID)
	current, ok := f.attempts[key]
	if !ok || current.GameOver {
		return attemptdb.ErrAlreadyFinalized
	}
	cp := *attempt
	f.attempts[key] = &cp
	return nil
}

var _ attemptdb.Repository = (*FakeAttemptRepository)(nil)

// ------------------------
// Fake Challenge Repo
// ------------------------

type FakeChallengeRepository struct {
	mu    sync.Mutex
	trace []string

	PlayersPlayed    int
	PlayersCompleted int

	CreateChallengeFunc           func(ctx context.Context, db bun.IDB, challenge *challengedb.Challenge) error
	GetChallengeFunc              func(ctx context.Context, db bun.IDB, challengeID sharedtypes.ChallengeID) (*challengedb.Challenge, error)
	IncrementPlayersPlayedFunc    func(ctx context.Context, db bun.IDB, challengeID sharedtypes.ChallengeID) error
	IncrementPlayersCompletedFunc func(ctx context.Context, db bun.IDB, challengeID sharedtypes.ChallengeID) error
}

func NewFakeChallengeRepository() *FakeChallengeRepository {
	return &FakeChallengeRepository{}
}

func (f *FakeChallengeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeChallengeRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeChallengeRepository) CreateChallenge(ctx context.Context, db bun.IDB, challenge *challengedb.Challenge) error {
	f.record("CreateChallenge")
	if f.CreateChallengeFunc != nil {
		return f.CreateChallengeFunc(ctx, db, challenge)
	}
	return nil
}

func (f *FakeChallengeRepository) GetChallenge(ctx context.Context, db bun.IDB, challengeID sharedtypes.ChallengeID) (*challengedb.Challenge, error) {
	f.record("GetChallenge")
	if f.GetChallengeFunc != nil {
		return f.GetChallengeFunc(ctx, db, challengeID)
	}
	return nil, challengedb.ErrNotFound
}

func (f *FakeChallengeRepository) IncrementPlayersPlayed(ctx context.Context, db bun.IDB, challengeID sharedtypes.ChallengeID) error {
	f.record("IncrementPlayersPlayed")
	if f.IncrementPlayersPlayedFunc != nil {
		return f.IncrementPlayersPlayedFunc(ctx, db, challengeID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PlayersPlayed++
	return nil
}

func (f *FakeChallengeRepository) IncrementPlayersCompleted(ctx context.Context, db bun.IDB, challengeID sharedtypes.ChallengeID) error {
	f.record("IncrementPlayersCompleted")
	if f.IncrementPlayersCompletedFunc != nil {
		return f.IncrementPlayersCompletedFunc(ctx, db, challengeID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PlayersCompleted++
	return nil
}

var _ challengedb.Repository = (*FakeChallengeRepository)(nil)

// ------------------------
// Fake Credits
// ------------------------

// CreditCall captures one CreditPoints invocation.
type CreditCall struct {
	UserID           sharedtypes.UserID
	Points           sharedtypes.Points
	Exp              sharedtypes.Exp
	ChallengesSolved int
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
	f.Calls = append(f.Calls, CreditCall{UserID: userID, Points: points, Exp: exp, ChallengesSolved: challengesSolved})
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

// AwardCall captures one propagation request.
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
