package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Regime selects between the two Indian income tax computation modes.
type Regime string

const (
	RegimeOld Regime = "old" // deduction-eligible, age-banded slabs
	RegimeNew Regime = "new" // no deductions, flatter slab ladder
)

// ParseRegime validates a regime tag.
func ParseRegime(s string) (Regime, error) {
	switch Regime(s) {
	case RegimeOld, RegimeNew:
		return Regime(s), nil
	}
	return "", fmt.Errorf("unknown tax regime %q (expected old or new)", s)
}

// AgeBand partitions taxpayers for old-regime slab selection. The new
// regime uses a single slab table regardless of age.
type AgeBand string

const (
	AgeBandGeneral     AgeBand = "general"      // under 60
	AgeBandSenior      AgeBand = "senior"       // 60 to 79
	AgeBandSuperSenior AgeBand = "super_senior" // 80 and above
)

// AgeBandForAge maps a taxpayer age to its slab band.
func AgeBandForAge(age int) AgeBand {
	switch {
	case age >= 80:
		return AgeBandSuperSenior
	case age >= 60:
		return AgeBandSenior
	default:
		return AgeBandGeneral
	}
}

// DeductionSet maps a statutory section code (e.g. "80C") to the amount
// claimed under it. Amounts are expected to be non-negative.
type DeductionSet map[string]decimal.Decimal

// Total sums every claimed amount, including sections the resolver does
// not recognize.
func (ds DeductionSet) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range ds {
		total = total.Add(amount)
	}
	return total
}

// TaxComputation is the result of a single-regime tax calculation.
type TaxComputation struct {
	FiscalYear         FiscalYear      `json:"fiscalYear"`
	Regime             Regime          `json:"regime"`
	GrossIncome        decimal.Decimal `json:"grossIncome"`
	TotalDeductions    decimal.Decimal `json:"totalDeductions"`    // as claimed, uncapped
	EligibleDeductions decimal.Decimal `json:"eligibleDeductions"` // always zero under the new regime
	TaxableIncome      decimal.Decimal `json:"taxableIncome"`
	TaxLiability       decimal.Decimal `json:"taxLiability"` // post-rebate, pre-cess
	EducationCess      decimal.Decimal `json:"educationCess"`
	TotalTaxLiability  decimal.Decimal `json:"totalTaxLiability"`
}

// RegimeComparison holds the same scenario computed under both regimes.
type RegimeComparison struct {
	OldRegime    *TaxComputation `json:"oldRegime"`
	NewRegime    *TaxComputation `json:"newRegime"`
	Difference   decimal.Decimal `json:"difference"` // |old - new|
	BetterRegime Regime          `json:"betterRegime"`
	Savings      decimal.Decimal `json:"savings"` // max(0, old - new)
}

// ITRForm is an Indian Income Tax Return form variant.
type ITRForm string

const (
	ITR1 ITRForm = "ITR-1" // Sahaj: salary/house property/other sources only
	ITR2 ITRForm = "ITR-2" // no business income
	ITR3 ITRForm = "ITR-3" // business or profession income
	ITR4 ITRForm = "ITR-4" // Sugam: presumptive business income
)

// IncomeSource tags a category of income feeding the ITR classifier.
type IncomeSource string

const (
	SourceSalary        IncomeSource = "salary"
	SourceHouseProperty IncomeSource = "house_property"
	SourceOtherSources  IncomeSource = "other_sources"
	SourceCapitalGains  IncomeSource = "capital_gains"
	SourceBusiness      IncomeSource = "business_income"
	SourcePresumptive   IncomeSource = "presumptive_income"
)

// IncomeProfile is the classifier input: the set of income sources plus
// the flags the form rules branch on.
type IncomeProfile struct {
	Sources           []IncomeSource `json:"sources"`
	HasCapitalGains   bool           `json:"hasCapitalGains"`
	HasForeignIncome  bool           `json:"hasForeignIncome"`
	HasBusinessIncome bool           `json:"hasBusinessIncome"`
}

// Has reports whether the profile contains the given source.
func (p IncomeProfile) Has(source IncomeSource) bool {
	for _, s := range p.Sources {
		if s == source {
			return true
		}
	}
	return false
}

// Recommendation names a concrete tax-saving instrument.
type Recommendation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TaxSavingSuggestion reports unused headroom under one deduction
// section. For uncapped sections (80E) Unlimited is set and MaxLimit and
// RemainingLimit are zero.
type TaxSavingSuggestion struct {
	Section         string           `json:"section"`
	Description     string           `json:"description"`
	CurrentAmount   decimal.Decimal  `json:"currentAmount"`
	MaxLimit        decimal.Decimal  `json:"maxLimit"`
	RemainingLimit  decimal.Decimal  `json:"remainingLimit"`
	Unlimited       bool             `json:"unlimited"`
	Recommendations []Recommendation `json:"recommendations"`
}
