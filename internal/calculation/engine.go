package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxgo/taxgo/internal/domain"
)

// Calculator computes Indian income tax for one fiscal year. The policy
// table is resolved at construction and never mutated, so a Calculator is
// safe for concurrent use.
type Calculator struct {
	FiscalYear domain.FiscalYear
	Policy     *domain.TaxPolicy
	Logger     Logger

	// LegacyITROrdering reproduces the historical classifier ordering in
	// which the general business-income branch shadows the presumptive
	// ITR-4 branch. Off by default.
	LegacyITROrdering bool
}

// NewCalculator builds a calculator for the given fiscal year tag. An
// empty tag resolves to the current fiscal year.
func NewCalculator(fiscalYear string) (*Calculator, error) {
	var fy domain.FiscalYear
	if fiscalYear == "" {
		fy = domain.CurrentFiscalYear()
	} else {
		parsed, err := domain.ParseFiscalYear(fiscalYear)
		if err != nil {
			return nil, err
		}
		fy = parsed
	}

	policy, err := domain.PolicyForYear(fy)
	if err != nil {
		return nil, err
	}

	return &Calculator{
		FiscalYear: fy,
		Policy:     policy,
		Logger:     NopLogger{},
	}, nil
}

// SetLogger installs a logger; nil restores the no-op default.
func (c *Calculator) SetLogger(logger Logger) {
	if logger == nil {
		c.Logger = NopLogger{}
		return
	}
	c.Logger = logger
}

// CalculateTax runs the full single-regime pipeline: deduction
// resolution (old regime only), the progressive slab walk, the Section
// 87A rebate and the 4% education cess.
func (c *Calculator) CalculateTax(income decimal.Decimal, age int, regime domain.Regime, deductions domain.DeductionSet) (*domain.TaxComputation, error) {
	if income.IsNegative() {
		return nil, fmt.Errorf("%w: gross income %s", domain.ErrInvalidIncome, income)
	}
	if age < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidAge, age)
	}

	var eligible decimal.Decimal
	if regime == domain.RegimeOld {
		eligible = c.ResolveDeductions(deductions, age)
	}

	taxableIncome := income.Sub(eligible)
	if taxableIncome.IsNegative() {
		taxableIncome = decimal.Zero
	}

	band := domain.AgeBandForAge(age)
	slabTax := slabTax(taxableIncome, c.Policy.SlabsFor(regime, band))
	taxLiability := applyRebate(slabTax, taxableIncome, c.Policy.RebateFor(regime))
	cess := taxLiability.Mul(c.Policy.CessRate)

	c.Logger.Debugf("calculate_tax fy=%s regime=%s band=%s taxable=%s slab_tax=%s liability=%s",
		c.FiscalYear, regime, band, taxableIncome, slabTax, taxLiability)

	return &domain.TaxComputation{
		FiscalYear:         c.FiscalYear,
		Regime:             regime,
		GrossIncome:        income,
		TotalDeductions:    deductions.Total(),
		EligibleDeductions: eligible,
		TaxableIncome:      taxableIncome,
		TaxLiability:       taxLiability,
		EducationCess:      cess,
		TotalTaxLiability:  taxLiability.Add(cess),
	}, nil
}

// slabTax walks the ordered slab table, taxing the portion of income
// falling inside each bracket at that bracket's marginal rate.
func slabTax(taxableIncome decimal.Decimal, slabs []domain.TaxSlab) decimal.Decimal {
	tax := decimal.Zero
	for _, slab := range slabs {
		if taxableIncome.LessThanOrEqual(slab.Lower) {
			break
		}
		inSlab := decimal.Min(taxableIncome, slab.Upper).Sub(slab.Lower)
		if inSlab.IsPositive() {
			tax = tax.Add(inSlab.Mul(slab.Rate))
		}
	}
	return tax
}

// applyRebate subtracts the Section 87A rebate from the slab tax when
// taxable income sits at or below the regime's ceiling. The result never
// goes below zero.
func applyRebate(tax, taxableIncome decimal.Decimal, rule domain.RebateRule) decimal.Decimal {
	if taxableIncome.GreaterThan(rule.IncomeCeiling) {
		return tax
	}
	rebate := decimal.Min(rule.MaxRebate, tax)
	return tax.Sub(rebate)
}
