package domain

import "math"

// DefaultVatRateBps is the standard UK VAT rate in basis points.
const DefaultVatRateBps = 2000

// roundPence rounds a float amount to the nearest whole penny.
func roundPence(v float64) int64 {
	return int64(math.Round(v))
}

// Recalculate derives totals and then the payment schedule from the current
// state. It is idempotent and safe to call at any time; with no model selected
// every derived field resets to zero rather than erroring.
func (c *Configuration) Recalculate() {
	c.Rehydrate()
	c.touch()
}

// Rehydrate recomputes the derived fields without bumping UpdatedAt. Used when
// loading persisted state: stored derived values are never trusted.
func (c *Configuration) Rehydrate() {
	c.Totals = c.calculateTotals()
	c.Schedule = c.calculatePaymentSchedule()
}

// calculateTotals is the pure totals derivation:
//
//	optionsTotal  = Σ(price × qty) + package price when enabled
//	buildSubtotal = basePrice + optionsTotal
//	totalExVat    = buildSubtotal + chassisCost
//	vatAmount     = round(totalExVat × rate)
//	totalIncVat   = totalExVat + vatAmount
func (c *Configuration) calculateTotals() Totals {
	if c.Model == nil {
		return Totals{}
	}

	optionsTotal := c.optionsTotalPence()
	buildSubtotal := c.basePricePence() + optionsTotal
	totalExVat := buildSubtotal + c.ChassisCostPence
	vatAmount := roundPence(float64(totalExVat) * float64(c.vatRateBps()) / 10000.0)

	return Totals{
		OptionsTotalPence:  optionsTotal,
		BuildSubtotalPence: buildSubtotal,
		TotalExVatPence:    totalExVat,
		VatAmountPence:     vatAmount,
		TotalIncVatPence:   totalExVat + vatAmount,
	}
}

func (c *Configuration) optionsTotalPence() int64 {
	var total int64
	for _, item := range c.SelectedOptions {
		total += item.PricePence * int64(item.Quantity)
	}
	if c.PioneerPackage {
		total += c.PioneerPricePence
	}
	return total
}
