package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	attemptdb "github.com/piclink-games/piclink-backend/app/modules/attempt/infrastructure/repositories"
	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	engagementdb "github.com/piclink-games/piclink-backend/app/modules/engagement/infrastructure/repositories"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/config"
)

// DBService bundles the per-module repositories on one connection pool.
type DBService struct {
	UserDB          *userdb.UserDBImpl
	ChallengeDB     *challengedb.ChallengeDBImpl
	AttemptDB       *attemptdb.AttemptDBImpl
	CommentRewardDB *engagementdb.CommentRewardDBImpl
	db              *bun.DB
}

// GetDB returns the underlying connection pool.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// NewBunDBService initializes a DBService against the configured Postgres.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(
		(*userdb.User)(nil),
		(*challengedb.Challenge)(nil),
		(*attemptdb.Attempt)(nil),
		(*engagementdb.CommentReward)(nil),
	)

	return &DBService{
		UserDB:          &userdb.UserDBImpl{DB: db},
		ChallengeDB:     &challengedb.ChallengeDBImpl{DB: db},
		AttemptDB:       &attemptdb.AttemptDBImpl{DB: db},
		CommentRewardDB: &engagementdb.CommentRewardDBImpl{DB: db},
		db:              db,
	}, nil
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sqldb, nil
}
