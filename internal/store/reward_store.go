package store

import (
	"context"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
)

// RewardStore reads loyalty figures from the reward ledger tables. Accrual
// and redemption bookkeeping happen elsewhere; this store only answers the
// two queries the order service consumes.
type RewardStore struct {
	db *pgxpool.Pool
}

func NewRewardStore(db *pgxpool.Pool) *RewardStore {
	return &RewardStore{db: db}
}

// UserPoints returns the user's redeemable balance, 0 when no account
// exists yet.
func (s *RewardStore) UserPoints(ctx context.Context, shopID, userID string) (float64, error) {
	var points float64
	err := s.db.QueryRow(ctx, `
		SELECT points
		FROM reward_accounts
		WHERE shop_id = $1 AND user_id = $2
	`, shopID, userID).Scan(&points)
	if err != nil {
		if pkgerrors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, pkgerrors.Wrap(err, "query reward balance")
	}
	return points, nil
}

// OrderPoints returns the points an order of the given amount would earn
// under the shop's configured earn rate. Earned points round down.
func (s *RewardStore) OrderPoints(ctx context.Context, shopID string, amount float64) (float64, error) {
	var earnRate float64
	err := s.db.QueryRow(ctx, `
		SELECT reward_earn_rate
		FROM shops
		WHERE id = $1
	`, shopID).Scan(&earnRate)
	if err != nil {
		if pkgerrors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, pkgerrors.Wrap(err, "query shop earn rate")
	}
	if earnRate <= 0 || amount <= 0 {
		return 0, nil
	}
	return math.Floor(amount * earnRate), nil
}
