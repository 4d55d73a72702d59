package attemptdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

var (
	// ErrNotFound indicates no attempt row exists for the pair.
	ErrNotFound = errors.New("attempt not found")

	// ErrAlreadyFinalized indicates the row reached a terminal state before
	// this update; game_over is monotonic.
	ErrAlreadyFinalized = errors.New("attempt already finalized")
)

// AttemptDBImpl implements Repository on bun.
type AttemptDBImpl struct {
	DB *bun.DB
}

func (r *AttemptDBImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *AttemptDBImpl) GetAttempt(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) (*Attempt, error) {
	attempt := &Attempt{}
	err := r.idb(db).NewSelect().
		Model(attempt).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch attempt for user %s challenge %s: %w", userID, challengeID, err)
	}
	return attempt, nil
}

func (r *AttemptDBImpl) GetOrCreateAttempt(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) (*Attempt, bool, error) {
	fresh := &Attempt{
		UserID:      userID,
		ChallengeID: challengeID,
		HintsUsed:   []int{},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	res, err := r.idb(db).NewInsert().
		Model(fresh).
		On("CONFLICT (user_id, challenge_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert attempt for user %s challenge %s: %w", userID, challengeID, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return fresh, true, nil
	}

	// Lost the insert race or the row already existed; read it back.
	attempt, err := r.GetAttempt(ctx, db, userID, challengeID)
	if err != nil {
		return nil, false, err
	}
	return attempt, false, nil
}

func (r *AttemptDBImpl) UpdateAttempt(ctx context.Context, db bun.IDB, attempt *Attempt) error {
	attempt.UpdatedAt = time.Now().UTC()

	res, err := r.idb(db).NewUpdate().
		Model(attempt).
		Column("attempts_made", "hints_used", "is_solved", "game_over", "points_earned", "updated_at").
		Where("user_id = ? AND challenge_id = ?", attempt.UserID, attempt.ChallengeID).
		Where("game_over = FALSE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update attempt for user %s challenge %s: %w", attempt.UserID, attempt.ChallengeID, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyFinalized
	}
	return nil
}
