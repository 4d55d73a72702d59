package userdb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// Repository is the persistence boundary for users.
type Repository interface {
	// GetUser returns the user row or ErrNotFound.
	GetUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*User, error)

	// GetUsersByIDs returns the rows for the given IDs; missing IDs are
	// simply absent from the result.
	GetUsersByIDs(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) ([]User, error)

	// EnsureUser inserts the row if it does not exist yet.
	EnsureUser(ctx context.Context, db bun.IDB, user *User) error

	// CreditPoints atomically adjusts the totals. Negative deltas clamp at
	// zero in SQL; totals never go negative.
	CreditPoints(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error
}
