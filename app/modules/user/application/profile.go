package userservice

import (
	"context"

	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/retry"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"

	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
)

// ErrNotFound indicates the user does not exist.
var ErrNotFound = userdb.ErrNotFound

// GetProfile serves the user's profile cache-aside: the cache entry is
// advisory and any cache error degrades to a database read.
func (s *UserService) GetProfile(ctx context.Context, userID sharedtypes.UserID) (*sharedtypes.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "GetProfile")
	defer span.End()

	cached, hit, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "Profile cache read failed, falling back to database",
			attr.UserID("user_id", userID),
			attr.Error(err),
		)
	}
	if hit {
		return cached, nil
	}

	user, err := s.repo.GetUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	profile := &sharedtypes.Profile{
		UserID:           user.ID,
		Username:         user.Username,
		AvatarURL:        user.AvatarURL,
		Points:           user.Points,
		Exp:              user.Exp,
		Level:            LevelForExp(user.Exp),
		ChallengesSolved: user.ChallengesSolved,
	}

	if err := s.cache.Set(ctx, userID, profile); err != nil {
		s.logger.WarnContext(ctx, "Profile cache write failed",
			attr.UserID("user_id", userID),
			attr.Error(err),
		)
	}

	return profile, nil
}

// EnsureUser creates the user row on first contact.
func (s *UserService) EnsureUser(ctx context.Context, userID sharedtypes.UserID, username string) error {
	return retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		return s.repo.EnsureUser(ctx, nil, &userdb.User{ID: userID, Username: username})
	})
}

