package payroll

import "github.com/shopspring/decimal"

func cappedContribution(pay decimal.Decimal, rate, cap float64) decimal.Decimal {
	contribution := pay.Mul(decimal.NewFromFloat(rate))
	capped := decimal.NewFromFloat(cap)
	if contribution.GreaterThan(capped) {
		return capped
	}
	return contribution
}

// ComputeDeductions applies the statutory formulas to the prorated
// basic pay. Each component is rounded to centavos before the total is
// summed.
func ComputeDeductions(basicPay float64) DeductionBreakdown {
	pay := decimal.NewFromFloat(basicPay)

	sss := cappedContribution(pay, sssRate, sssCap).Round(2)
	philHealth := cappedContribution(pay, philHealthRate, philHealthCap).Round(2)
	pagIBIG := cappedContribution(pay, pagIBIGRate, pagIBIGCap).Round(2)

	taxable := pay.Sub(decimal.NewFromInt(taxExemption))
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	incomeTax := taxable.Mul(decimal.NewFromFloat(taxRate)).Round(2)

	total := sss.Add(philHealth).Add(pagIBIG).Add(incomeTax)

	return DeductionBreakdown{
		SSS:        sss.InexactFloat64(),
		PhilHealth: philHealth.InexactFloat64(),
		PagIBIG:    pagIBIG.InexactFloat64(),
		IncomeTax:  incomeTax.InexactFloat64(),
		Total:      total.InexactFloat64(),
	}
}
