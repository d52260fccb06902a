// Package rate evaluates a shop's shipping fee options against a checkout
// subtotal and selects the cheapest chargeable option per ship option.
package rate

import "storefront/internal/locale"

// Evaluate rates one fee option against the subtotal. The returned fee is
// nil whenever the option is not eligible; a nil fee must never be read as
// free shipping. Unrecognized or malformed variants rate as ineligible so a
// partially migrated configuration cannot fail a whole request.
func (fo FeeOption) Evaluate(subtotal float64) (fee *float64, eligible bool) {
	switch fo.Type {
	case FeeTypeFlat:
		if fo.Flat == nil || subtotal < fo.Flat.Threshold {
			return nil, false
		}
		f := fo.Flat.FlatAmount
		return &f, true
	case FeeTypeFree:
		if fo.Free == nil || subtotal < fo.Free.Threshold {
			return nil, false
		}
		f := 0.0
		return &f, true
	default:
		return nil, false
	}
}

// applyRegionSurcharge resolves the sub-district surcharge state for a
// rated fee that already has a computed base fee:
//   - fee options excluding surcharges, and ship options with no surcharge
//     table, are left untouched;
//   - an empty region id against a non-empty table clears the fee and marks
//     the entry missingRegionId so the caller re-queries with a region;
//   - a matching table entry attaches its amount as extraFee, kept separate
//     from the base fee;
//   - a region with no table entry stays regular with no surcharge.
func applyRegionSurcharge(opt ShipOption, fo FeeOption, regionID string, rf *RatedFee) {
	if fo.ExcludeRegionSurcharge || len(opt.RegionSurcharges) == 0 {
		return
	}
	if rf.Fee == nil {
		// Ineligibility already explains the missing fee.
		return
	}
	if regionID == "" {
		rf.Fee = nil
		rf.Status = StatusMissingRegionID
		return
	}
	if amount, ok := opt.SurchargeFor(regionID); ok {
		rf.ExtraFee = &amount
		rf.Status = StatusExtraFeeAdded
	}
}

// RateOption rates every fee option of a ship option and returns the single
// cheapest eligible entry followed by all non-eligible entries in authored
// order. Non-eligible entries stay visible so the storefront can explain
// what would unlock them.
func RateOption(opt ShipOption, subtotal float64, regionID, loc string, names locale.Resolver) []RatedFee {
	if len(opt.FeeOptions) == 0 {
		return []RatedFee{}
	}

	rated := make([]RatedFee, 0, len(opt.FeeOptions))
	for _, fo := range opt.FeeOptions {
		fee, eligible := fo.Evaluate(subtotal)
		rf := RatedFee{
			ShipOptionID:     opt.ID,
			ShipType:         opt.Type,
			FeeType:          fo.Type,
			FeeName:          names.Resolve(loc, fo.Name),
			Fee:              fee,
			FeeOptionSetting: fo,
			Eligible:         eligible,
			Status:           StatusRegular,
		}
		applyRegionSurcharge(opt, fo, regionID, &rf)
		rated = append(rated, rf)
	}

	var (
		cheapest    *RatedFee
		nonEligible []RatedFee
	)
	for i := range rated {
		rf := rated[i]
		if !rf.Eligible {
			nonEligible = append(nonEligible, rf)
			continue
		}
		if cheapest == nil || feeLess(rf.Fee, cheapest.Fee) {
			cheapest = &rated[i]
		}
	}

	out := make([]RatedFee, 0, len(nonEligible)+1)
	if cheapest != nil {
		out = append(out, *cheapest)
	}
	return append(out, nonEligible...)
}

// feeLess orders fees for cheapest selection. A nil fee (missingRegionId)
// counts as the smallest value so an unresolved option is never displaced
// by a priced one; ties keep the first-declared option.
func feeLess(a, b *float64) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return *a < *b
	}
}
