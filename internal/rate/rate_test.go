package rate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/locale"
)

func flat(name string, amount, threshold float64) FeeOption {
	return FeeOption{
		Name: locale.Text{"en": name},
		Type: FeeTypeFlat,
		Flat: &FlatFeeSetting{FlatAmount: amount, Threshold: threshold},
	}
}

func free(name string, threshold float64) FeeOption {
	return FeeOption{
		Name: locale.Text{"en": name},
		Type: FeeTypeFree,
		Free: &FreeFeeSetting{Threshold: threshold},
	}
}

func localExpress() ShipOption {
	return ShipOption{
		ID:   "opt-local-express",
		Type: ShipTypeBasic,
		Name: locale.Text{"en": "Local Express"},
		FeeOptions: []FeeOption{
			flat("Flat $20", 20, 0),
			flat("Flat $10 over $50", 10, 50),
			free("Free over $100", 100),
		},
	}
}

func TestEvaluateFlat(t *testing.T) {
	t.Parallel()

	fo := flat("Flat $10 over $50", 10, 50)

	fee, eligible := fo.Evaluate(49.99)
	require.False(t, eligible)
	require.Nil(t, fee, "ineligible flat option must not report a fee")

	fee, eligible = fo.Evaluate(50)
	require.True(t, eligible)
	require.NotNil(t, fee)
	require.Equal(t, 10.0, *fee)
}

func TestEvaluateFree(t *testing.T) {
	t.Parallel()

	fo := free("Free over $100", 100)

	fee, eligible := fo.Evaluate(60)
	require.False(t, eligible)
	require.Nil(t, fee)

	fee, eligible = fo.Evaluate(100)
	require.True(t, eligible)
	require.NotNil(t, fee)
	require.Equal(t, 0.0, *fee)
}

func TestEvaluateUnknownFeeType(t *testing.T) {
	t.Parallel()

	fo := FeeOption{Name: locale.Text{"en": "Mystery"}, Type: FeeType("weightBased")}
	fee, eligible := fo.Evaluate(1000)
	require.False(t, eligible)
	require.Nil(t, fee)

	// A flat option with no flat settings is equally ineligible.
	fee, eligible = FeeOption{Type: FeeTypeFlat}.Evaluate(1000)
	require.False(t, eligible)
	require.Nil(t, fee)
}

func TestRateOptionLowSubtotalSelectsBaseFlat(t *testing.T) {
	t.Parallel()

	rated := RateOption(localExpress(), 9, "", "en", locale.NewResolver())
	require.Len(t, rated, 3)

	require.True(t, rated[0].Eligible)
	require.Equal(t, "Flat $20", rated[0].FeeName)
	require.NotNil(t, rated[0].Fee)
	require.Equal(t, 20.0, *rated[0].Fee)
	require.Equal(t, StatusRegular, rated[0].Status)

	require.False(t, rated[1].Eligible)
	require.Equal(t, "Flat $10 over $50", rated[1].FeeName)
	require.Nil(t, rated[1].Fee)
	require.False(t, rated[2].Eligible)
	require.Equal(t, "Free over $100", rated[2].FeeName)
	require.Nil(t, rated[2].Fee)
}

func TestRateOptionPicksCheapestEligible(t *testing.T) {
	t.Parallel()

	rated := RateOption(localExpress(), 60, "", "en", locale.NewResolver())
	require.Len(t, rated, 2)

	require.True(t, rated[0].Eligible)
	require.Equal(t, "Flat $10 over $50", rated[0].FeeName)
	require.Equal(t, 10.0, *rated[0].Fee)

	require.False(t, rated[1].Eligible)
	require.Equal(t, "Free over $100", rated[1].FeeName)
}

func TestRateOptionExactlyOneEligible(t *testing.T) {
	t.Parallel()

	for _, subtotal := range []float64{0, 9, 50, 60, 100, 300} {
		rated := RateOption(localExpress(), subtotal, "", "en", locale.NewResolver())
		var eligible int
		for _, rf := range rated {
			if rf.Eligible {
				eligible++
			}
		}
		require.Equal(t, 1, eligible, "subtotal %v", subtotal)
	}
}

func TestRateOptionTieKeepsDeclarationOrder(t *testing.T) {
	t.Parallel()

	opt := ShipOption{
		ID:   "opt-tie",
		Type: ShipTypeBasic,
		FeeOptions: []FeeOption{
			flat("First $15", 15, 0),
			flat("Second $15", 15, 0),
		},
	}
	rated := RateOption(opt, 10, "", "en", locale.NewResolver())
	require.Len(t, rated, 1)
	require.Equal(t, "First $15", rated[0].FeeName)
}

func TestRateOptionNoFeeOptions(t *testing.T) {
	t.Parallel()

	rated := RateOption(ShipOption{ID: "opt-empty"}, 100, "", "en", locale.NewResolver())
	require.Empty(t, rated)
}

func surchargedOption() ShipOption {
	opt := localExpress()
	opt.RegionSurcharges = []RegionSurcharge{
		{RegionID: "Ap Lei Chau", Amount: 88},
	}
	return opt
}

func TestRateOptionMissingRegion(t *testing.T) {
	t.Parallel()

	rated := RateOption(surchargedOption(), 9, "", "en", locale.NewResolver())
	require.Len(t, rated, 3)

	require.True(t, rated[0].Eligible)
	require.Equal(t, StatusMissingRegionID, rated[0].Status)
	require.Nil(t, rated[0].Fee, "fee stays unresolved until a region is supplied")
	require.Nil(t, rated[0].ExtraFee)
}

func TestRateOptionSurchargedRegion(t *testing.T) {
	t.Parallel()

	rated := RateOption(surchargedOption(), 9, "Ap Lei Chau", "en", locale.NewResolver())
	require.True(t, rated[0].Eligible)
	require.Equal(t, StatusExtraFeeAdded, rated[0].Status)
	require.NotNil(t, rated[0].Fee)
	require.Equal(t, 20.0, *rated[0].Fee, "base fee stays intact; surcharge is reported separately")
	require.NotNil(t, rated[0].ExtraFee)
	require.Equal(t, 88.0, *rated[0].ExtraFee)
}

func TestRateOptionUnrelatedRegion(t *testing.T) {
	t.Parallel()

	rated := RateOption(surchargedOption(), 9, "Wan Chai", "en", locale.NewResolver())
	require.True(t, rated[0].Eligible)
	require.Equal(t, StatusRegular, rated[0].Status)
	require.Equal(t, 20.0, *rated[0].Fee)
	require.Nil(t, rated[0].ExtraFee)
}

func TestRateOptionExcludeRegionSurcharge(t *testing.T) {
	t.Parallel()

	opt := surchargedOption()
	for i := range opt.FeeOptions {
		opt.FeeOptions[i].ExcludeRegionSurcharge = true
	}
	rated := RateOption(opt, 9, "", "en", locale.NewResolver())
	require.True(t, rated[0].Eligible)
	require.Equal(t, StatusRegular, rated[0].Status)
	require.Equal(t, 20.0, *rated[0].Fee)
	require.Nil(t, rated[0].ExtraFee)
}

func TestRateOptionUnresolvedFeeSortsSmallest(t *testing.T) {
	t.Parallel()

	// The flat option needs a region, the free option is exempt. The
	// unresolved entry must win selection over the priced one.
	opt := ShipOption{
		ID:   "opt-mixed",
		Type: ShipTypeBasic,
		FeeOptions: []FeeOption{
			flat("Flat $20", 20, 0),
			func() FeeOption {
				fo := free("Free over $5", 5)
				fo.ExcludeRegionSurcharge = true
				return fo
			}(),
		},
		RegionSurcharges: []RegionSurcharge{{RegionID: "Ap Lei Chau", Amount: 88}},
	}
	rated := RateOption(opt, 9, "", "en", locale.NewResolver())
	require.Len(t, rated, 1)
	require.Equal(t, StatusMissingRegionID, rated[0].Status)
	require.Nil(t, rated[0].Fee)
}
