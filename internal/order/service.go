// Package order orchestrates shipping-fee rating and order-total
// computation over a checkout session.
package order

import (
	"context"

	"golang.org/x/sync/errgroup"

	"storefront/internal/checkout"
	"storefront/internal/locale"
	"storefront/internal/rate"
)

// SessionStore loads a checkout session with its line items' catalog price
// data populated.
type SessionStore interface {
	FindSession(ctx context.Context, shopID, userID, sessionID string) (*checkout.Session, error)
}

// ShipSettingStore loads the shipment configurations whose destination set
// includes the given country.
type ShipSettingStore interface {
	FindByCountry(ctx context.Context, shopID, countryID string) ([]rate.ShipSetting, error)
}

// RewardSource exposes the two loyalty-ledger queries this service
// consumes. The ledger itself lives elsewhere; figures are read, never
// computed here.
type RewardSource interface {
	// UserPoints returns the user's redeemable point balance.
	UserPoints(ctx context.Context, shopID, userID string) (float64, error)
	// OrderPoints returns the points an order of the given amount would earn.
	OrderPoints(ctx context.Context, shopID string, amount float64) (float64, error)
}

// Params identifies the checkout being rated.
type Params struct {
	ShopID    string
	UserID    string
	CountryID string
	SessionID string
	RegionID  string // Hong Kong sub-district, optional
	Locale    string
}

// Quote is the full rated-fee enumeration for a checkout.
type Quote struct {
	ItemsTotal float64         `json:"itemsTotal"`
	Fees       []rate.RatedFee `json:"fees"`
}

// Total is the resolved payable total for a chosen ship option.
type Total struct {
	ItemsTotal      float64     `json:"itemsTotal"`
	Shipping        float64     `json:"shipping"`
	ShippingExtra   float64     `json:"shippingExtra"`
	Tax             float64     `json:"tax"`
	UsedRewardTotal float64     `json:"usedRewardTotal"`
	Status          rate.Status `json:"status"`
	Total           float64     `json:"total"`
}

// RewardSummary carries the loyalty figures for the rewards endpoint.
type RewardSummary struct {
	Balance        float64 `json:"balance"`
	EarnablePoints float64 `json:"earnablePoints"`
}

// Service wires the stores and the locale resolver into the rating engine.
type Service struct {
	sessions SessionStore
	settings ShipSettingStore
	rewards  RewardSource
	names    locale.Resolver
}

// NewService builds a Service. rewards may be nil, in which case
// caller-supplied reward amounts are trusted as validated upstream and the
// rewards summary is unavailable.
func NewService(sessions SessionStore, settings ShipSettingStore, rewards RewardSource, names locale.Resolver) *Service {
	if names == nil {
		names = locale.NewResolver()
	}
	return &Service{
		sessions: sessions,
		settings: settings,
		rewards:  rewards,
		names:    names,
	}
}

// fetch loads the session and matching ship settings concurrently; the two
// reads are independent.
func (s *Service) fetch(ctx context.Context, p Params) (*checkout.Session, []rate.ShipSetting, error) {
	var (
		sess     *checkout.Session
		settings []rate.ShipSetting
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sess, err = s.sessions.FindSession(ctx, p.ShopID, p.UserID, p.SessionID)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.settings.FindByCountry(ctx, p.ShopID, p.CountryID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sess, settings, nil
}

// Calculate rates every ship option of every shipment configuration
// matching the destination country and returns the flattened list: per ship
// option, the single cheapest eligible fee plus all non-eligible ones.
func (s *Service) Calculate(ctx context.Context, p Params) (*Quote, error) {
	sess, settings, err := s.fetch(ctx, p)
	if err != nil {
		return nil, err
	}

	subtotal := sess.Subtotal()
	fees := make([]rate.RatedFee, 0)
	for _, setting := range settings {
		for _, opt := range setting.Options {
			fees = append(fees, rate.RateOption(opt, subtotal, p.RegionID, p.Locale, s.names)...)
		}
	}
	return &Quote{ItemsTotal: subtotal, Fees: fees}, nil
}

// CalculateTotal rates the checkout, resolves the caller-chosen ship option
// against the eligible fees, and folds shipping, surcharge, and redeemed
// reward points into the payable total. Tax is always zero. It either
// returns a complete Total or fails; there is no partial success.
func (s *Service) CalculateTotal(ctx context.Context, p Params, shipOptionID string, usedReward float64) (*Total, error) {
	quote, err := s.Calculate(ctx, p)
	if err != nil {
		return nil, err
	}

	var matched *rate.RatedFee
	for i := range quote.Fees {
		if quote.Fees[i].ShipOptionID == shipOptionID && quote.Fees[i].Eligible {
			matched = &quote.Fees[i]
			break
		}
	}
	if matched == nil {
		return nil, ErrShipOptionNotAvailable
	}

	if s.rewards != nil && usedReward > 0 {
		balance, err := s.rewards.UserPoints(ctx, p.ShopID, p.UserID)
		if err != nil {
			return nil, err
		}
		if usedReward > balance {
			return nil, ErrRewardExceedsBalance
		}
	}

	total := Total{
		ItemsTotal:      quote.ItemsTotal,
		Tax:             0,
		UsedRewardTotal: usedReward,
		Status:          matched.Status,
	}
	if matched.Fee != nil {
		total.Shipping = *matched.Fee
	}
	if matched.ExtraFee != nil {
		total.ShippingExtra = *matched.ExtraFee
	}
	total.Total = total.ItemsTotal + total.Shipping + total.ShippingExtra - total.UsedRewardTotal
	return &total, nil
}

// Rewards reports the user's redeemable balance and the points the current
// session would earn.
func (s *Service) Rewards(ctx context.Context, p Params) (*RewardSummary, error) {
	if s.rewards == nil {
		return &RewardSummary{}, nil
	}
	sess, err := s.sessions.FindSession(ctx, p.ShopID, p.UserID, p.SessionID)
	if err != nil {
		return nil, err
	}

	var summary RewardSummary
	subtotal := sess.Subtotal()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.Balance, err = s.rewards.UserPoints(ctx, p.ShopID, p.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		summary.EarnablePoints, err = s.rewards.OrderPoints(ctx, p.ShopID, subtotal)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}
