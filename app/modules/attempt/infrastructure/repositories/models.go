package attemptdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// Attempt is the per-(user, challenge) progress row. HintsUsed keeps the
// revealed image indices in reveal order.
type Attempt struct {
	bun.BaseModel `bun:"table:attempts"`

	UserID       sharedtypes.UserID      `bun:"user_id,pk"`
	ChallengeID  sharedtypes.ChallengeID `bun:"challenge_id,pk"`
	AttemptsMade int                     `bun:"attempts_made,notnull,default:0"`
	HintsUsed    []int                   `bun:"hints_used,type:jsonb,notnull,default:'[]'"`
	IsSolved     bool                    `bun:"is_solved,notnull,default:false"`
	GameOver     bool                    `bun:"game_over,notnull,default:false"`
	PointsEarned sharedtypes.Points      `bun:"points_earned,notnull,default:0"`
	CreatedAt    time.Time               `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time               `bun:"updated_at,notnull,default:current_timestamp"`
}

// HintRevealed reports whether the image index was already revealed.
func (a *Attempt) HintRevealed(imageIndex int) bool {
	for _, idx := range a.HintsUsed {
		if idx == imageIndex {
			return true
		}
	}
	return false
}
