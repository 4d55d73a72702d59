package challengeservice

import (
	"context"
	"errors"

	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// GetChallenge serves the read path. Concurrent requests for the same
// challenge collapse into a single backend fetch, and a prefetched entry is
// served without touching the backend at all.
func (s *ChallengeService) GetChallenge(ctx context.Context, challengeID sharedtypes.ChallengeID) (*ChallengeView, error) {
	return serviceWrapper(s, ctx, "GetChallenge", challengeID, func(ctx context.Context) (*ChallengeView, error) {
		if view, ok := s.prefetch.Get(challengeID); ok {
			return view, nil
		}

		v, _, err := s.dedup.Do(ctx, "challenge:"+string(challengeID), func(ctx context.Context) (any, error) {
			return s.loadView(ctx, challengeID)
		})
		if err != nil {
			if errors.Is(err, challengedb.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return v.(*ChallengeView), nil
	})
}

// loadView fetches the challenge and enriches it with the creator's profile.
// Enrichment is advisory; its failure never fails the read.
func (s *ChallengeService) loadView(ctx context.Context, challengeID sharedtypes.ChallengeID) (*ChallengeView, error) {
	challenge, err := s.repo.GetChallenge(ctx, nil, challengeID)
	if err != nil {
		return nil, err
	}

	view := &ChallengeView{Challenge: challenge}
	creator, err := s.profiles.GetProfile(ctx, challenge.CreatorID)
	if err != nil {
		s.logger.WarnContext(ctx, "Creator profile enrichment failed",
			attr.ChallengeID("challenge_id", challengeID),
			attr.UserID("creator_id", challenge.CreatorID),
			attr.Error(err),
		)
	} else {
		view.Creator = creator
	}
	return view, nil
}
