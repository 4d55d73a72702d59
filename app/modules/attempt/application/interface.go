package attemptservice

import (
	"context"

	"github.com/piclink-games/piclink-backend/app/shared/results"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// GuessResult reports the outcome of a guess submission. When
// AlreadyComplete is set the remaining fields describe the prior terminal
// state, untouched by this call.
type GuessResult struct {
	UserID          sharedtypes.UserID      `json:"user_id"`
	ChallengeID     sharedtypes.ChallengeID `json:"challenge_id"`
	Correct         bool                    `json:"correct"`
	Solved          bool                    `json:"solved"`
	GameOver        bool                    `json:"game_over"`
	AlreadyComplete bool                    `json:"already_complete"`
	AttemptsMade    int                     `json:"attempts_made"`
	AttemptsLeft    int                     `json:"attempts_left"`
	PointsEarned    sharedtypes.Points      `json:"points_earned"`
}

// HintResult carries the revealed hint and the potential score of the next
// guess, which never increases across reveals.
type HintResult struct {
	ImageIndex     int                `json:"image_index"`
	HintText       string             `json:"hint_text"`
	HintsUsed      []int              `json:"hints_used"`
	PotentialScore sharedtypes.Points `json:"potential_score"`
}

// GiveUpResult reports the (idempotent) surrender outcome.
type GiveUpResult struct {
	GameOver        bool               `json:"game_over"`
	Solved          bool               `json:"solved"`
	AlreadyComplete bool               `json:"already_complete"`
	PointsEarned    sharedtypes.Points `json:"points_earned"`
}

type (
	GuessOperationResult  = results.OperationResult[GuessResult, error]
	HintOperationResult   = results.OperationResult[HintResult, error]
	GiveUpOperationResult = results.OperationResult[GiveUpResult, error]
)

// Service is the attempt tracker exposed to the routing layer.
type Service interface {
	SubmitGuess(ctx context.Context, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID, guess string) (GuessOperationResult, error)
	RevealHint(ctx context.Context, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID, imageIndex int, hintCost sharedtypes.Points) (HintOperationResult, error)
	GiveUp(ctx context.Context, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) (GiveUpOperationResult, error)
}

var _ Service = (*AttemptService)(nil)
