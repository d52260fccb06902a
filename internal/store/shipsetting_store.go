package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"storefront/internal/rate"
)

// ShipSettingStore loads admin-authored shipment configurations. Ship
// options are stored as a jsonb blob per setting row; the countries column
// is a text[] of eligible destination country ids.
type ShipSettingStore struct {
	db *pgxpool.Pool
}

func NewShipSettingStore(db *pgxpool.Pool) *ShipSettingStore {
	return &ShipSettingStore{db: db}
}

func (s *ShipSettingStore) FindByCountry(ctx context.Context, shopID, countryID string) ([]rate.ShipSetting, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, shop_id, countries, options
		FROM ship_settings
		WHERE shop_id = $1 AND $2 = ANY(countries)
		ORDER BY position
	`, shopID, countryID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "query ship settings")
	}
	defer rows.Close()

	var settings []rate.ShipSetting
	for rows.Next() {
		var (
			setting rate.ShipSetting
			options []byte
		)
		if err := rows.Scan(&setting.ID, &setting.ShopID, &setting.CountryIDs, &options); err != nil {
			return nil, pkgerrors.Wrap(err, "scan ship setting")
		}
		if err := json.Unmarshal(options, &setting.Options); err != nil {
			return nil, pkgerrors.Wrapf(err, "decode ship options for setting %s", setting.ID)
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "iterate ship settings")
	}
	return settings, nil
}
