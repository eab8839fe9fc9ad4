package commission

import (
	"github.com/shopspring/decimal"
)

// Input carries every figure the breakdown depends on. Rates are fractions
// (0.18 = 18%), amounts are in the tenant's currency.
type Input struct {
	ServicePrice              decimal.Decimal
	KitCost                   decimal.Decimal
	TaxRate                   decimal.Decimal
	CommissionRate            decimal.Decimal
	DiscountAmount            decimal.Decimal
	DiscountAffectsCommission bool
	TransactionFeeRate        decimal.Decimal
}

// Breakdown is the full money split for one performed service. Kit cost and
// government tax are retained by the spa and never enter the commission base.
type Breakdown struct {
	GovernmentTax      decimal.Decimal `json:"government_tax"`
	GrossTotal         decimal.Decimal `json:"gross_total"`
	FinalTotal         decimal.Decimal `json:"final_total"`
	TransactionFee     decimal.Decimal `json:"transaction_fee"`
	CommissionBase     decimal.Decimal `json:"commission_base"`
	ManicuristEarnings decimal.Decimal `json:"manicurist_earnings"`
	SpaNetEarnings     decimal.Decimal `json:"spa_net_earnings"`
}

// Calculate produces the breakdown. The step order is part of the contract:
// tax applies to the undiscounted price, the discount applies to the gross
// total, and the transaction fee applies to the discounted total. Rounding,
// if any, happens at display time only.
func Calculate(in Input) Breakdown {
	governmentTax := in.ServicePrice.Mul(in.TaxRate)
	grossTotal := in.ServicePrice.Add(in.KitCost).Add(governmentTax)

	finalTotal := grossTotal.Sub(in.DiscountAmount)
	if finalTotal.IsNegative() {
		finalTotal = decimal.Zero
	}

	transactionFee := finalTotal.Mul(in.TransactionFeeRate)

	commissionBase := in.ServicePrice
	if in.DiscountAffectsCommission {
		commissionBase = in.ServicePrice.Sub(in.DiscountAmount)
		if commissionBase.IsNegative() {
			commissionBase = decimal.Zero
		}
	}

	manicuristEarnings := commissionBase.Mul(in.CommissionRate)
	spaNetEarnings := finalTotal.Sub(manicuristEarnings).Sub(transactionFee)

	return Breakdown{
		GovernmentTax:      governmentTax,
		GrossTotal:         grossTotal,
		FinalTotal:         finalTotal,
		TransactionFee:     transactionFee,
		CommissionBase:     commissionBase,
		ManicuristEarnings: manicuristEarnings,
		SpaNetEarnings:     spaNetEarnings,
	}
}
