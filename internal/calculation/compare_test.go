package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxgo/taxgo/internal/domain"
)

func TestCompareRegimesNewWinsWithoutDeductions(t *testing.T) {
	calc := newTestCalculator(t)

	cmp, err := calc.CompareRegimes(decimal.NewFromInt(1500000), 35, nil)
	require.NoError(t, err)

	// Old: 262500 pre-cess; new: 187500 pre-cess. Savings (262500-187500)*1.04.
	rupeesEqual(t, 273000, cmp.OldRegime.TotalTaxLiability)
	rupeesEqual(t, 195000, cmp.NewRegime.TotalTaxLiability)
	assert.Equal(t, domain.RegimeNew, cmp.BetterRegime)
	rupeesEqual(t, 78000, cmp.Savings)
	rupeesEqual(t, 78000, cmp.Difference)
}

func TestCompareRegimesOldWinsWithHeavyDeductions(t *testing.T) {
	calc := newTestCalculator(t)

	deductions := domain.DeductionSet{
		domain.SectionStandard: decimal.NewFromInt(50000),
		domain.Section80C:      decimal.NewFromInt(150000),
		domain.SectionNPS:      decimal.NewFromInt(50000),
		domain.Section24B:      decimal.NewFromInt(200000),
		domain.SectionHRA:      decimal.NewFromInt(240000),
	}
	cmp, err := calc.CompareRegimes(decimal.NewFromInt(1200000), 35, deductions)
	require.NoError(t, err)

	// Old taxable drops to 510000; the new regime taxes the full 1200000.
	assert.Equal(t, domain.RegimeOld, cmp.BetterRegime)
	assert.True(t, cmp.OldRegime.TotalTaxLiability.LessThan(cmp.NewRegime.TotalTaxLiability))
	rupeesEqual(t, 0, cmp.Savings)
	assert.True(t, cmp.Difference.Equal(
		cmp.NewRegime.TotalTaxLiability.Sub(cmp.OldRegime.TotalTaxLiability)))
}

func TestCompareRegimesTieGoesToOld(t *testing.T) {
	calc := newTestCalculator(t)

	cmp, err := calc.CompareRegimes(decimal.Zero, 35, nil)
	require.NoError(t, err)

	rupeesEqual(t, 0, cmp.OldRegime.TotalTaxLiability)
	rupeesEqual(t, 0, cmp.NewRegime.TotalTaxLiability)
	assert.Equal(t, domain.RegimeOld, cmp.BetterRegime)
	rupeesEqual(t, 0, cmp.Savings)
	rupeesEqual(t, 0, cmp.Difference)
}

func TestCompareRegimesPropagatesValidation(t *testing.T) {
	calc := newTestCalculator(t)

	_, err := calc.CompareRegimes(decimal.NewFromInt(-100), 35, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidIncome)
}
