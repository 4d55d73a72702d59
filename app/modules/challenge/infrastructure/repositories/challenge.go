package challengedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ChallengeDBImpl implements Repository on bun.
type ChallengeDBImpl struct {
	DB *bun.DB
}

func (r *ChallengeDBImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *ChallengeDBImpl) CreateChallenge(ctx context.Context, db bun.IDB, challenge *Challenge) error {
	_, err := r.idb(db).NewInsert().
		Model(challenge).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert challenge %s: %w", challenge.ID, err)
	}
	return nil
}

func (r *ChallengeDBImpl) GetChallenge(ctx context.Context, db bun.IDB, id sharedtypes.ChallengeID) (*Challenge, error) {
	challenge := &Challenge{}
	err := r.idb(db).NewSelect().
		Model(challenge).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch challenge %s: %w", id, err)
	}
	return challenge, nil
}

func (r *ChallengeDBImpl) IncrementPlayersPlayed(ctx context.Context, db bun.IDB, id sharedtypes.ChallengeID) error {
	res, err := r.idb(db).NewUpdate().
		Model((*Challenge)(nil)).
		Set("players_played = players_played + 1").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment players_played for challenge %s: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChallengeDBImpl) IncrementPlayersCompleted(ctx context.Context, db bun.IDB, id sharedtypes.ChallengeID) error {
	// completed may never exceed played.
	res, err := r.idb(db).NewUpdate().
		Model((*Challenge)(nil)).
		Set("players_completed = players_completed + 1").
		Where("id = ?", id).
		Where("players_completed < players_played").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment players_completed for challenge %s: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
