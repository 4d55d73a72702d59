package sharedtypes

// UserID is the platform-level identifier of a player or creator.
type UserID string

func (u UserID) String() string { return string(u) }

// ChallengeID identifies a posted image challenge.
type ChallengeID string

func (c ChallengeID) String() string { return string(c) }

// CommentID identifies a platform comment on a challenge post.
type CommentID string

func (c CommentID) String() string { return string(c) }

// Points is a point amount or delta. Deltas may be negative (hint costs);
// persisted totals never are.
type Points int

// Exp is an experience amount or delta.
type Exp int

// Reward pairs the points and experience granted by a single event.
type Reward struct {
	Points Points `json:"points"`
	Exp    Exp    `json:"exp"`
}
