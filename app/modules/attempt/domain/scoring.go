// Package attemptdomain holds the pure scoring rules for the guessing game.
// Everything here is side-effect free and driven by game-balance constants.
package attemptdomain

import (
	"errors"
	"strings"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

const (
	// MaxAttempts is the hard cap on guesses per challenge.
	MaxAttempts = 10

	// BaseScore is the reward for solving on the first attempt with no hints.
	BaseScore = 30

	// AttemptDecay is the per-attempt score reduction beyond the first.
	AttemptDecay = 2

	// MinNoHintScore is the floor the attempt decay may reach; hints can
	// push the final score below it, down to zero.
	MinNoHintScore = 12
)

// Flat bonuses for social events; independent of attempt count.
const (
	CommentBonusPoints sharedtypes.Points = 5
	CommentBonusExp    sharedtypes.Exp    = 5

	CreationBonusPoints sharedtypes.Points = 10
	CreationBonusExp    sharedtypes.Exp    = 10
)

// ErrInvalidAttemptNumber signals a caller contract violation: attempt
// numbers are 1-indexed and capped at MaxAttempts.
var ErrInvalidAttemptNumber = errors.New("attempt number out of range")

// Reward computes the points and exp for a guess on the given 1-indexed
// attempt, ignoring hints. Incorrect guesses earn nothing. Exp always equals
// points for guess rewards.
func Reward(attemptNumber int, wasCorrect bool) (sharedtypes.Reward, error) {
	if attemptNumber < 1 || attemptNumber > MaxAttempts {
		return sharedtypes.Reward{}, ErrInvalidAttemptNumber
	}
	if !wasCorrect {
		return sharedtypes.Reward{}, nil
	}

	points := BaseScore - AttemptDecay*(attemptNumber-1)
	if points < MinNoHintScore {
		points = MinNoHintScore
	}
	return sharedtypes.Reward{
		Points: sharedtypes.Points(points),
		Exp:    sharedtypes.Exp(points),
	}, nil
}

// HintPenalty is the per-hint score deduction for a challenge with the given
// image count. Tuned constants, not a formula: fewer images mean each hint
// reveals proportionally more, so the penalty steepens.
func HintPenalty(imageCount int) int {
	switch {
	case imageCount >= 3:
		return 4
	case imageCount == 2:
		return 6
	default:
		return 8
	}
}

// PotentialScore is the score a correct guess on the given 1-indexed attempt
// would earn with hintsUsed hints already revealed. Never negative.
func PotentialScore(attemptNumber, hintsUsed, imageCount int) (sharedtypes.Points, error) {
	if attemptNumber < 1 || attemptNumber > MaxAttempts {
		return 0, ErrInvalidAttemptNumber
	}

	points := BaseScore - AttemptDecay*(attemptNumber-1)
	if points < MinNoHintScore {
		points = MinNoHintScore
	}
	points -= HintPenalty(imageCount) * hintsUsed
	if points < 0 {
		points = 0
	}
	return sharedtypes.Points(points), nil
}

// NormalizeAnswer lowercases, trims, and collapses inner whitespace so
// guesses compare on content rather than formatting.
func NormalizeAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
