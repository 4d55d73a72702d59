package leaderboardservice

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/piclink-games/piclink-backend/app/modules/leaderboard/infrastructure/rankstore"
	usercache "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/cache"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/observability/metrics"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// PropagationStatus reports which derived views took the point change.
// Neither flag affects the already-persisted award.
type PropagationStatus struct {
	CacheInvalidated   bool `json:"cache_invalidated"`
	LeaderboardUpdated bool `json:"leaderboard_updated"`
}

// Coordinator is consumed by the attempt tracker and the comment reward
// guard after every durable point change.
type Coordinator interface {
	OnPointsAwarded(ctx context.Context, userID sharedtypes.UserID, delta sharedtypes.Points) PropagationStatus
}

// LeaderboardService keeps the derived views (profile cache, ranked set) in
// step with persisted totals and serves the leaderboard projection.
type LeaderboardService struct {
	rank    rankstore.RankStore
	cache   usercache.ProfileCache
	users   userdb.Repository
	logger  *slog.Logger
	metrics metrics.LeaderboardMetrics
	tracer  trace.Tracer
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	rank rankstore.RankStore,
	cache usercache.ProfileCache,
	users userdb.Repository,
	logger *slog.Logger,
	lbMetrics metrics.LeaderboardMetrics,
	tracer trace.Tracer,
) *LeaderboardService {
	return &LeaderboardService{
		rank:    rank,
		cache:   cache,
		users:   users,
		logger:  logger,
		metrics: lbMetrics,
		tracer:  tracer,
	}
}
