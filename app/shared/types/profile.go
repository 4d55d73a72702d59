package sharedtypes

// Profile is the cached, client-facing projection of a user. It is derived
// data; losing it only costs a reload.
type Profile struct {
	UserID           UserID `json:"user_id"`
	Username         string `json:"username"`
	AvatarURL        string `json:"avatar_url,omitempty"`
	Points           Points `json:"points"`
	Exp              Exp    `json:"exp"`
	Level            int    `json:"level"`
	ChallengesSolved int    `json:"challenges_solved"`
}

// LeaderboardEntry is the ranked projection of a user's persisted totals.
type LeaderboardEntry struct {
	Rank             int64  `json:"rank"`
	UserID           UserID `json:"user_id"`
	Username         string `json:"username"`
	TotalPoints      Points `json:"total_points"`
	Level            int    `json:"level"`
	ChallengesSolved int    `json:"challenges_solved"`
}
