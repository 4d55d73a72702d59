package migrations

import (
	"context"

	"github.com/uptrace/bun"

	attemptdb "github.com/piclink-games/piclink-backend/app/modules/attempt/infrastructure/repositories"
	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	engagementdb "github.com/piclink-games/piclink-backend/app/modules/engagement/infrastructure/repositories"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []interface{}{
			(*userdb.User)(nil),
			(*challengedb.Challenge)(nil),
			(*attemptdb.Attempt)(nil),
			(*engagementdb.CommentReward)(nil),
		}

		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		// Attempts are looked up by challenge on removal sweeps.
		if _, err := db.NewCreateIndex().
			Model((*attemptdb.Attempt)(nil)).
			Index("idx_attempts_challenge_id").
			IfNotExists().
			Column("challenge_id").
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []interface{}{
			(*engagementdb.CommentReward)(nil),
			(*attemptdb.Attempt)(nil),
			(*challengedb.Challenge)(nil),
			(*userdb.User)(nil),
		}

		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
