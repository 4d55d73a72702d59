package userservice

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	usercache "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/cache"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/retry"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ExpPerLevel is the flat experience cost of each level.
const ExpPerLevel = 100

// UserService owns the user profile read path and first-contact identity.
type UserService struct {
	repo        userdb.Repository
	cache       usercache.ProfileCache
	logger      *slog.Logger
	tracer      trace.Tracer
	retryPolicy retry.Policy
}

// NewUserService creates a new UserService.
func NewUserService(
	repo userdb.Repository,
	cache usercache.ProfileCache,
	logger *slog.Logger,
	tracer trace.Tracer,
) *UserService {
	return &UserService{
		repo:        repo,
		cache:       cache,
		logger:      logger,
		tracer:      tracer,
		retryPolicy: retry.DefaultPolicy(),
	}
}

// LevelForExp derives the level shown on profiles and the leaderboard.
func LevelForExp(exp sharedtypes.Exp) int {
	return int(exp)/ExpPerLevel + 1
}
