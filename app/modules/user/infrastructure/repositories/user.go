package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ErrNotFound indicates the referenced user does not exist.
var ErrNotFound = errors.New("user not found")

// UserDBImpl implements Repository on bun.
type UserDBImpl struct {
	DB *bun.DB
}

func (r *UserDBImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *UserDBImpl) GetUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*User, error) {
	user := &User{}
	err := r.idb(db).NewSelect().
		Model(user).
		Where("id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return user, nil
}

func (r *UserDBImpl) GetUsersByIDs(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) ([]User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var users []User
	err := r.idb(db).NewSelect().
		Model(&users).
		Where("id IN (?)", bun.In(userIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

func (r *UserDBImpl) EnsureUser(ctx context.Context, db bun.IDB, user *User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.idb(db).NewInsert().
		Model(user).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure user %s: %w", user.ID, err)
	}
	return nil
}

func (r *UserDBImpl) CreditPoints(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error {
	res, err := r.idb(db).NewUpdate().
		Model((*User)(nil)).
		Set("points = GREATEST(points + ?, 0)", int(points)).
		Set("exp = GREATEST(exp + ?, 0)", int(exp)).
		Set("challenges_solved = challenges_solved + ?", challengesSolved).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to credit points for user %s: %w", userID, err)
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
