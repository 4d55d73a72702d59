package engagementdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ErrNotFound indicates no reward row exists for the comment.
var ErrNotFound = errors.New("comment reward not found")

// CommentRewardDBImpl implements Repository on bun.
type CommentRewardDBImpl struct {
	DB *bun.DB
}

func (r *CommentRewardDBImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

// InsertRewardIfAbsent relies on the primary key on comment_id: the losing
// writer of a race hits the conflict clause and reports zero affected rows.
func (r *CommentRewardDBImpl) InsertRewardIfAbsent(ctx context.Context, db bun.IDB, reward *CommentReward) (bool, error) {
	res, err := r.idb(db).NewInsert().
		Model(reward).
		On("CONFLICT (comment_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert comment reward %s: %w", reward.CommentID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *CommentRewardDBImpl) GetReward(ctx context.Context, db bun.IDB, commentID sharedtypes.CommentID) (*CommentReward, error) {
	reward := &CommentReward{}
	err := r.idb(db).NewSelect().
		Model(reward).
		Where("comment_id = ?", commentID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch comment reward %s: %w", commentID, err)
	}
	return reward, nil
}

var _ Repository = (*CommentRewardDBImpl)(nil)
