package rate

import "storefront/internal/locale"

// ShipType tags the delivery semantics of a ship option.
type ShipType string

const (
	ShipTypeBasic  ShipType = "basic"
	ShipTypeLocker ShipType = "courierLocker"
	ShipTypePickup ShipType = "storePickup"
)

// FeeType discriminates the fee-option variants.
type FeeType string

const (
	FeeTypeFlat FeeType = "flat"
	FeeTypeFree FeeType = "free"
)

// Status reports how a rated fee was resolved against region surcharges.
type Status string

const (
	// StatusRegular means no surcharge applied.
	StatusRegular Status = "regular"
	// StatusMissingRegionID means the option needs a region id before its
	// fee can be resolved; the caller should re-query with one.
	StatusMissingRegionID Status = "missingRegionId"
	// StatusExtraFeeAdded means a region surcharge was attached as extraFee.
	StatusExtraFeeAdded Status = "extraFeeAdded"
)

// FlatFeeSetting charges a fixed amount once the subtotal reaches the
// threshold.
type FlatFeeSetting struct {
	FlatAmount float64 `json:"flatAmount"`
	Threshold  float64 `json:"threshold"`
}

// FreeFeeSetting waives shipping once the subtotal reaches the threshold.
type FreeFeeSetting struct {
	Threshold float64 `json:"threshold"`
}

// FeeOption is one admin-authored pricing rule on a ship option. Exactly one
// of Flat/Free is set, matching Type.
type FeeOption struct {
	Name                   locale.Text     `json:"name"`
	Type                   FeeType         `json:"feeType"`
	Flat                   *FlatFeeSetting `json:"flat,omitempty"`
	Free                   *FreeFeeSetting `json:"free,omitempty"`
	ExcludeRegionSurcharge bool            `json:"excludeRegionSurcharge,omitempty"`
}

// RegionSurcharge adds a fixed amount on top of the base fee when shipping
// to the keyed sub-district.
type RegionSurcharge struct {
	RegionID string  `json:"regionId"`
	Amount   float64 `json:"amount"`
}

// ShipOption is one shipping method with its fee options and optional
// sub-district surcharge table.
type ShipOption struct {
	ID               string            `json:"id"`
	Type             ShipType          `json:"shipType"`
	Name             locale.Text       `json:"name"`
	FeeOptions       []FeeOption       `json:"feeOptions"`
	RegionSurcharges []RegionSurcharge `json:"regionSurcharges,omitempty"`
}

// SurchargeFor looks up the surcharge amount for a region id. Tables are
// small admin-authored lists, so a linear scan is fine.
func (o ShipOption) SurchargeFor(regionID string) (float64, bool) {
	for _, rs := range o.RegionSurcharges {
		if rs.RegionID == regionID {
			return rs.Amount, true
		}
	}
	return 0, false
}

// ShipSetting groups the ship options a shop offers for a set of
// destination countries. Authored by shop admins, read-only here.
type ShipSetting struct {
	ID         string       `json:"id"`
	ShopID     string       `json:"shopId"`
	CountryIDs []string     `json:"countryIds"`
	Options    []ShipOption `json:"options"`
}

// RatedFee is the per-fee-option rating output. Fee is nil when the option
// is not eligible or when its fee cannot be resolved without a region id.
type RatedFee struct {
	ShipOptionID     string    `json:"shipOptionId"`
	ShipType         ShipType  `json:"shipType"`
	FeeType          FeeType   `json:"feeType"`
	FeeName          string    `json:"feeName"`
	Fee              *float64  `json:"fee"`
	ExtraFee         *float64  `json:"extraFee,omitempty"`
	FeeOptionSetting FeeOption `json:"feeOptionSetting"`
	Eligible         bool      `json:"eligible"`
	Status           Status    `json:"status"`
}
