package pricing

import (
	"fmt"
	"math"
)

// FeePolicy is platform configuration, not per-booking state. Rates are
// fractions in [0, 1]; insurance is a flat per-day amount.
type FeePolicy struct {
	TaxRate                 float64
	ServiceFeeRate          float64
	InsuranceDailyRateCents int64
}

// PriceQuote is the full price breakdown for a proposed booking. All amounts
// are integer minor units; JSON names follow the marketplace booking schema.
type PriceQuote struct {
	Days                 int   `json:"total_days"`
	DailyRateCents       int64 `json:"daily_rate"`
	SubtotalCents        int64 `json:"subtotal"`
	InsuranceFeeCents    int64 `json:"insurance_fee"`
	ServiceFeeCents      int64 `json:"service_fee"`
	TaxCents             int64 `json:"tax_amount"`
	DiscountCents        int64 `json:"discount_amount"`
	TotalCents           int64 `json:"total_amount"`
	SecurityDepositCents int64 `json:"security_deposit"`
}

// PriceBreakdown applies insurance, service fee, tax, and discount on top of
// a resolved base rate. Tax and service fee are computed on the subtotal
// only — never on insurance or on each other. The total clamps at zero when
// a discount exceeds the sum; the deposit passes through unchanged.
func PriceBreakdown(base RateQuote, depositCents int64, policy FeePolicy, insuranceSelected bool, discountCents int64) PriceQuote {
	assertValidPolicy(policy)

	var insurance int64
	if insuranceSelected {
		insurance = policy.InsuranceDailyRateCents * int64(base.Days)
	}

	serviceFee := roundRateCents(base.SubtotalCents, policy.ServiceFeeRate)
	tax := roundRateCents(base.SubtotalCents, policy.TaxRate)

	total := base.SubtotalCents + insurance + serviceFee + tax - discountCents
	if total < 0 {
		total = 0
	}

	return PriceQuote{
		Days:                 base.Days,
		DailyRateCents:       base.DailyRateCents,
		SubtotalCents:        base.SubtotalCents,
		InsuranceFeeCents:    insurance,
		ServiceFeeCents:      serviceFee,
		TaxCents:             tax,
		DiscountCents:        discountCents,
		TotalCents:           total,
		SecurityDepositCents: depositCents,
	}
}

// roundRateCents applies a fractional rate to a cent amount, rounding
// half-up to the nearest cent.
func roundRateCents(amountCents int64, rate float64) int64 {
	return int64(math.Floor(float64(amountCents)*rate + 0.5))
}

func assertValidPolicy(p FeePolicy) {
	if p.TaxRate < 0 || p.TaxRate > 1 {
		panic(fmt.Sprintf("pricing: tax rate %v outside [0,1]", p.TaxRate))
	}
	if p.ServiceFeeRate < 0 || p.ServiceFeeRate > 1 {
		panic(fmt.Sprintf("pricing: service fee rate %v outside [0,1]", p.ServiceFeeRate))
	}
	if p.InsuranceDailyRateCents < 0 {
		panic(fmt.Sprintf("pricing: negative insurance daily rate %d", p.InsuranceDailyRateCents))
	}
}
