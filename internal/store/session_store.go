// Package store provides the Postgres-backed collaborators consumed by the
// order service.
package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"storefront/internal/checkout"
	"storefront/internal/order"
)

// SessionStore loads checkout sessions with catalog prices joined in.
type SessionStore struct {
	db *pgxpool.Pool
}

func NewSessionStore(db *pgxpool.Pool) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) FindSession(ctx context.Context, shopID, userID, sessionID string) (*checkout.Session, error) {
	var sess checkout.Session
	err := s.db.QueryRow(ctx, `
		SELECT id, shop_id, user_id
		FROM checkout_sessions
		WHERE id = $1 AND shop_id = $2 AND user_id = $3
	`, sessionID, shopID, userID).Scan(&sess.ID, &sess.ShopID, &sess.UserID)
	if err != nil {
		if pkgerrors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrSessionNotFound
		}
		return nil, pkgerrors.Wrap(err, "query checkout session")
	}

	rows, err := s.db.Query(ctx, `
		SELECT i.product_id, p.name, i.quantity, p.price, p.discount_price
		FROM checkout_session_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.session_id = $1
		ORDER BY i.position
	`, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "query session items")
	}
	defer rows.Close()

	for rows.Next() {
		var li checkout.LineItem
		if err := rows.Scan(&li.ProductID, &li.Name, &li.Quantity, &li.Price, &li.DiscountPrice); err != nil {
			return nil, pkgerrors.Wrap(err, "scan session item")
		}
		sess.Items = append(sess.Items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "iterate session items")
	}
	return &sess, nil
}
