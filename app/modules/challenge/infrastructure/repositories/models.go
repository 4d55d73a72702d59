package challengedb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ChallengeImage is one linked image with its hint text.
type ChallengeImage struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Challenge is the persisted challenge row. Counters are mutated only by the
// attempt tracker on attempt-start and attempt-solve transitions.
type Challenge struct {
	bun.BaseModel `bun:"table:challenges"`

	ID               sharedtypes.ChallengeID `bun:"id,pk"`
	CreatorID        sharedtypes.UserID      `bun:"creator_id,notnull"`
	Images           []ChallengeImage        `bun:"images,type:jsonb,notnull"`
	Answer           string                  `bun:"answer,notnull"`
	BaseMaxScore     int                     `bun:"base_max_score,notnull"`
	HintDeduction    int                     `bun:"hint_deduction,notnull"`
	PlayersPlayed    int                     `bun:"players_played,notnull,default:0"`
	PlayersCompleted int                     `bun:"players_completed,notnull,default:0"`
	CreatedAt        time.Time               `bun:"created_at,notnull,default:current_timestamp"`
}
