package userdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// User is the persisted player row; Points and Exp are the authoritative
// totals the leaderboard projects from.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID               sharedtypes.UserID `bun:"id,pk"`
	Username         string             `bun:"username,notnull"`
	AvatarURL        string             `bun:"avatar_url"`
	Points           sharedtypes.Points `bun:"points,notnull,default:0"`
	Exp              sharedtypes.Exp    `bun:"exp,notnull,default:0"`
	ChallengesSolved int                `bun:"challenges_solved,notnull,default:0"`
	CreatedAt        time.Time          `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt        time.Time          `bun:"updated_at,notnull,default:current_timestamp"`
}
