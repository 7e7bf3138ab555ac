package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func standardPolicy() FeePolicy {
	return FeePolicy{
		TaxRate:                 0.12,
		ServiceFeeRate:          0.10,
		InsuranceDailyRateCents: 3500, // 35.00/day
	}
}

func TestPriceBreakdown(t *testing.T) {
	// 5 days at 1000.00/day, insurance selected, no discount.
	base := RateQuote{DailyRateCents: 100000, SubtotalCents: 500000, Days: 5}

	t.Run("Full breakdown with insurance", func(t *testing.T) {
		q := PriceBreakdown(base, 500000, standardPolicy(), true, 0)
		assert.Equal(t, 5, q.Days)
		assert.Equal(t, int64(100000), q.DailyRateCents)
		assert.Equal(t, int64(500000), q.SubtotalCents)
		assert.Equal(t, int64(17500), q.InsuranceFeeCents) // 5 * 35.00
		assert.Equal(t, int64(50000), q.ServiceFeeCents)   // 10% of subtotal
		assert.Equal(t, int64(60000), q.TaxCents)          // 12% of subtotal
		assert.Equal(t, int64(627500), q.TotalCents)
		assert.Equal(t, int64(500000), q.SecurityDepositCents)
	})

	t.Run("Insurance declined", func(t *testing.T) {
		q := PriceBreakdown(base, 500000, standardPolicy(), false, 0)
		assert.Equal(t, int64(0), q.InsuranceFeeCents)
		assert.Equal(t, int64(610000), q.TotalCents)
	})

	t.Run("Tax base excludes insurance and fees", func(t *testing.T) {
		cheap := standardPolicy()
		pricey := standardPolicy()
		pricey.InsuranceDailyRateCents = 99900

		withCheap := PriceBreakdown(base, 0, cheap, true, 0)
		withPricey := PriceBreakdown(base, 0, pricey, true, 0)
		assert.Equal(t, withCheap.TaxCents, withPricey.TaxCents,
			"tax must be computed on subtotal only")
		assert.Equal(t, withCheap.ServiceFeeCents, withPricey.ServiceFeeCents)
	})

	t.Run("Discount reduces total", func(t *testing.T) {
		q := PriceBreakdown(base, 0, standardPolicy(), false, 10000)
		assert.Equal(t, int64(10000), q.DiscountCents)
		assert.Equal(t, int64(600000), q.TotalCents)
	})

	t.Run("Oversized discount clamps total at zero", func(t *testing.T) {
		q := PriceBreakdown(base, 0, standardPolicy(), true, 99999999)
		assert.Equal(t, int64(0), q.TotalCents)
	})

	t.Run("Half-up rounding on fee lines", func(t *testing.T) {
		// 10% of 1005 cents = 100.5 → rounds up to 101.
		odd := RateQuote{DailyRateCents: 1005, SubtotalCents: 1005, Days: 1}
		q := PriceBreakdown(odd, 0, FeePolicy{ServiceFeeRate: 0.10, TaxRate: 0}, false, 0)
		assert.Equal(t, int64(101), q.ServiceFeeCents)
	})

	t.Run("Zero-rate policy", func(t *testing.T) {
		q := PriceBreakdown(base, 0, FeePolicy{}, false, 0)
		assert.Equal(t, base.SubtotalCents, q.TotalCents)
	})

	t.Run("Corrupt policy panics", func(t *testing.T) {
		assert.Panics(t, func() {
			PriceBreakdown(base, 0, FeePolicy{TaxRate: 1.5}, false, 0)
		})
		assert.Panics(t, func() {
			PriceBreakdown(base, 0, FeePolicy{InsuranceDailyRateCents: -1}, false, 0)
		})
	})
}
