package domain

// calculatePaymentSchedule derives the deposit/first/second/final split.
// The build balance after deposit is split three ways; the chassis (with VAT)
// is added entirely to the first payment. Rounding remainders land on the
// final payment so that
//
//	first + second + final == buildWithVat − deposit + chassisWithVat
//
// holds exactly. A deposit larger than the build total clamps the balance at
// zero; step-3 validation rejects that input before it reaches submission.
func (c *Configuration) calculatePaymentSchedule() PaymentSchedule {
	if c.Model == nil {
		return PaymentSchedule{}
	}

	rate := float64(c.vatRateBps()) / 10000.0

	chassisWithVat := roundPence(float64(c.ChassisCostPence) * (1 + rate))
	buildTotal := c.basePricePence() + c.optionsTotalPence()
	buildWithVat := roundPence(float64(buildTotal) * (1 + rate))

	balance := buildWithVat - c.DepositPence
	if balance < 0 {
		balance = 0
	}

	perThird := roundPence(float64(balance) / 3.0)
	first := perThird + chassisWithVat
	second := perThird
	final := balance - 2*perThird

	return PaymentSchedule{
		DepositPence:                  c.DepositPence,
		FirstPaymentPence:             first,
		SecondPaymentPence:            second,
		FinalPaymentPence:             final,
		ChassisWithVatPence:           chassisWithVat,
		BuildWithVatPence:             buildWithVat,
		BuildBalanceMinusDepositPence: balance,
	}
}
