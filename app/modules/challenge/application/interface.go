package challengeservice

import (
	"context"

	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/results"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ChallengeView is the read-path payload: the challenge plus a best-effort
// creator profile. Creator is nil when enrichment failed or was skipped.
type ChallengeView struct {
	Challenge *challengedb.Challenge `json:"challenge"`
	Creator   *sharedtypes.Profile   `json:"creator,omitempty"`
}

// CreateChallengeResult reports the stored challenge and the creation bonus
// paid to the creator.
type CreateChallengeResult struct {
	Challenge   *challengedb.Challenge `json:"challenge"`
	BonusPoints sharedtypes.Points     `json:"bonus_points"`
	BonusExp    sharedtypes.Exp        `json:"bonus_exp"`
}

type CreateChallengeOperationResult = results.OperationResult[CreateChallengeResult, error]

// Service is the challenge surface exposed to the routing layer.
type Service interface {
	CreateChallenge(ctx context.Context, creatorID sharedtypes.UserID, images []challengedb.ChallengeImage, answer string) (CreateChallengeOperationResult, error)
	GetChallenge(ctx context.Context, challengeID sharedtypes.ChallengeID) (*ChallengeView, error)
	PreloadNext(ctx context.Context, currentIndex int, challenges []*challengedb.Challenge, count int)
}

var _ Service = (*ChallengeService)(nil)
