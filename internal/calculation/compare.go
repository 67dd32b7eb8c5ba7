package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxgo/taxgo/internal/domain"
)

// CompareRegimes runs the same scenario through both regimes. The new
// regime wins only when it is strictly cheaper; ties go to the old
// regime.
func (c *Calculator) CompareRegimes(income decimal.Decimal, age int, deductions domain.DeductionSet) (*domain.RegimeComparison, error) {
	oldRegime, err := c.CalculateTax(income, age, domain.RegimeOld, deductions)
	if err != nil {
		return nil, err
	}
	newRegime, err := c.CalculateTax(income, age, domain.RegimeNew, deductions)
	if err != nil {
		return nil, err
	}

	savings := oldRegime.TotalTaxLiability.Sub(newRegime.TotalTaxLiability)
	better := domain.RegimeOld
	if savings.IsPositive() {
		better = domain.RegimeNew
	}

	return &domain.RegimeComparison{
		OldRegime:    oldRegime,
		NewRegime:    newRegime,
		Difference:   savings.Abs(),
		BetterRegime: better,
		Savings:      decimal.Max(decimal.Zero, savings),
	}, nil
}
