package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestCalculateNoDiscount(t *testing.T) {
	got := Calculate(Input{
		ServicePrice:   d(100),
		CommissionRate: d(0.5),
	})

	assert.True(t, got.GovernmentTax.IsZero())
	assert.True(t, got.GrossTotal.Equal(d(100)), "gross was %s", got.GrossTotal)
	assert.True(t, got.FinalTotal.Equal(d(100)), "final was %s", got.FinalTotal)
	assert.True(t, got.CommissionBase.Equal(d(100)))
	assert.True(t, got.ManicuristEarnings.Equal(d(50)), "earnings was %s", got.ManicuristEarnings)
	assert.True(t, got.SpaNetEarnings.Equal(d(50)), "spa net was %s", got.SpaNetEarnings)
}

func TestCalculateDiscountAffectsCommission(t *testing.T) {
	got := Calculate(Input{
		ServicePrice:              d(100),
		CommissionRate:            d(0.5),
		DiscountAmount:            d(20),
		DiscountAffectsCommission: true,
	})

	assert.True(t, got.FinalTotal.Equal(d(80)), "final was %s", got.FinalTotal)
	assert.True(t, got.CommissionBase.Equal(d(80)), "base was %s", got.CommissionBase)
	assert.True(t, got.ManicuristEarnings.Equal(d(40)), "earnings was %s", got.ManicuristEarnings)
	assert.True(t, got.SpaNetEarnings.Equal(d(40)), "spa net was %s", got.SpaNetEarnings)
}

func TestCalculateDiscountSparesCommission(t *testing.T) {
	got := Calculate(Input{
		ServicePrice:              d(100),
		CommissionRate:            d(0.5),
		DiscountAmount:            d(20),
		DiscountAffectsCommission: false,
	})

	// The spa absorbs the discount: the manicurist still earns on the full price.
	assert.True(t, got.FinalTotal.Equal(d(80)))
	assert.True(t, got.CommissionBase.Equal(d(100)))
	assert.True(t, got.ManicuristEarnings.Equal(d(50)))
	assert.True(t, got.SpaNetEarnings.Equal(d(30)), "spa net was %s", got.SpaNetEarnings)
}

func TestCalculateFullBreakdown(t *testing.T) {
	got := Calculate(Input{
		ServicePrice:       d(100),
		KitCost:            d(8),
		TaxRate:            d(0.18),
		CommissionRate:     d(0.5),
		TransactionFeeRate: d(0.03),
	})

	// tax on the undiscounted price, fee on the discounted total
	assert.True(t, got.GovernmentTax.Equal(d(18)), "tax was %s", got.GovernmentTax)
	assert.True(t, got.GrossTotal.Equal(d(126)), "gross was %s", got.GrossTotal)
	assert.True(t, got.FinalTotal.Equal(d(126)))
	assert.True(t, got.TransactionFee.Equal(d(3.78)), "fee was %s", got.TransactionFee)
	assert.True(t, got.ManicuristEarnings.Equal(d(50)))
	assert.True(t, got.SpaNetEarnings.Equal(d(72.22)), "spa net was %s", got.SpaNetEarnings)
}

func TestCalculateDiscountClampsAtZero(t *testing.T) {
	got := Calculate(Input{
		ServicePrice:              d(30),
		CommissionRate:            d(0.4),
		DiscountAmount:            d(50),
		DiscountAffectsCommission: true,
	})

	assert.True(t, got.FinalTotal.IsZero(), "final was %s", got.FinalTotal)
	assert.True(t, got.CommissionBase.IsZero(), "base was %s", got.CommissionBase)
	assert.True(t, got.ManicuristEarnings.IsZero())
}

func TestCalculateIsPure(t *testing.T) {
	in := Input{
		ServicePrice:       d(75.5),
		KitCost:            d(5),
		TaxRate:            d(0.08),
		CommissionRate:     d(0.45),
		DiscountAmount:     d(10),
		TransactionFeeRate: d(0.029),
	}

	first := Calculate(in)
	second := Calculate(in)

	require.True(t, first.SpaNetEarnings.Equal(second.SpaNetEarnings))
	require.True(t, first.ManicuristEarnings.Equal(second.ManicuristEarnings))
	require.True(t, first.FinalTotal.Equal(second.FinalTotal))
}
