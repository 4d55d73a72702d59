package attemptservice

import "errors"

// Domain errors for the attempt tracker. These are normal business outcomes
// for callers, never retried. Transient persistence problems surface through
// the plain error return after the retry budget is exhausted.
var (
	// ErrChallengeNotFound indicates the referenced challenge does not exist.
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrAlreadyComplete indicates the attempt is terminal; the prior result
	// is returned unchanged instead of re-scoring.
	ErrAlreadyComplete = errors.New("attempt already complete")

	// ErrInvalidHintIndex indicates the image index is out of range.
	ErrInvalidHintIndex = errors.New("hint image index out of range")

	// ErrHintAlreadyRevealed indicates the hint was revealed previously.
	ErrHintAlreadyRevealed = errors.New("hint already revealed")
)
