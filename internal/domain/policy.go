package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Statutory section codes the policy tables refer to.
const (
	SectionStandard = "standard"
	Section80C      = "80C"
	Section80D      = "80D"
	Section80E      = "80E"
	Section80G      = "80G"
	Section80TTA    = "80TTA"
	Section80TTB    = "80TTB"
	Section24B      = "24B"
	SectionNPS      = "80CCD(1B)"
	SectionHRA      = "HRA"
)

// NoUpperBound marks the top slab of a table. Any realistic income sits
// far below it.
var NoUpperBound = decimal.New(1, 15) // 10^15

// TaxSlab is one income bracket taxed at a fixed marginal rate over
// [Lower, Upper).
type TaxSlab struct {
	Lower decimal.Decimal `yaml:"lower" json:"lower"`
	Upper decimal.Decimal `yaml:"upper" json:"upper"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
}

// RebateRule is the Section 87A waiver: taxpayers with taxable income at
// or below IncomeCeiling get up to MaxRebate knocked off their slab tax.
type RebateRule struct {
	IncomeCeiling decimal.Decimal `yaml:"income_ceiling" json:"income_ceiling"`
	MaxRebate     decimal.Decimal `yaml:"max_rebate" json:"max_rebate"`
}

// DeductionRule caps the amount creditable under one section. SeniorCap,
// when set, replaces Cap for taxpayers aged 60 and above. Uncapped
// sections pass the claimed amount through unchanged.
type DeductionRule struct {
	Section   string          `yaml:"section" json:"section"`
	Cap       decimal.Decimal `yaml:"cap" json:"cap"`
	SeniorCap decimal.Decimal `yaml:"senior_cap,omitempty" json:"seniorCap,omitempty"`
	Uncapped  bool            `yaml:"uncapped,omitempty" json:"uncapped,omitempty"`
}

// SavingOpportunity is one row of the advisor checklist: a section, its
// limit, and the fixed set of instruments recommended for it.
type SavingOpportunity struct {
	Section         string           `yaml:"section" json:"section"`
	Description     string           `yaml:"description" json:"description"`
	Limit           decimal.Decimal  `yaml:"limit,omitempty" json:"limit,omitempty"`
	Unlimited       bool             `yaml:"unlimited,omitempty" json:"unlimited,omitempty"`
	Recommendations []Recommendation `yaml:"recommendations" json:"recommendations"`
}

// TaxPolicy carries every fiscal-year-scoped constant the engine needs:
// slab tables, rebate rules, cess rate, section limits and the advisor
// checklist. Policies are immutable once registered.
type TaxPolicy struct {
	FiscalYear FiscalYear `yaml:"fiscal_year" json:"fiscal_year"`

	OldRegimeSlabs map[AgeBand][]TaxSlab `yaml:"old_regime_slabs" json:"old_regime_slabs"`
	NewRegimeSlabs []TaxSlab             `yaml:"new_regime_slabs" json:"new_regime_slabs"`

	OldRegimeRebate RebateRule `yaml:"old_regime_rebate" json:"old_regime_rebate"`
	NewRegimeRebate RebateRule `yaml:"new_regime_rebate" json:"new_regime_rebate"`

	CessRate decimal.Decimal `yaml:"cess_rate" json:"cess_rate"`

	// SectionLimits lists every statutory cap. ResolvedSections is the
	// subset the deduction resolver actually credits; sections outside it
	// (80TTA, 80TTB, ...) are tracked but never reduce taxable income.
	SectionLimits    []DeductionRule `yaml:"section_limits" json:"section_limits"`
	ResolvedSections []string        `yaml:"resolved_sections" json:"resolved_sections"`

	SavingOpportunities []SavingOpportunity `yaml:"saving_opportunities" json:"saving_opportunities"`
}

// SlabsFor selects the slab table for a regime and age band. The new
// regime ignores age entirely.
func (p *TaxPolicy) SlabsFor(regime Regime, band AgeBand) []TaxSlab {
	if regime == RegimeNew {
		return p.NewRegimeSlabs
	}
	return p.OldRegimeSlabs[band]
}

// RebateFor selects the Section 87A rule for a regime.
func (p *TaxPolicy) RebateFor(regime Regime) RebateRule {
	if regime == RegimeNew {
		return p.NewRegimeRebate
	}
	return p.OldRegimeRebate
}

// SectionRule looks up the cap rule for a section code.
func (p *TaxPolicy) SectionRule(section string) (DeductionRule, bool) {
	for _, rule := range p.SectionLimits {
		if rule.Section == section {
			return rule, true
		}
	}
	return DeductionRule{}, false
}

// policyRegistry is keyed by fiscal year. Registration happens at process
// startup (hardcoded tables plus any policy overlay file), before any
// concurrent use.
var policyRegistry = map[FiscalYear]*TaxPolicy{}

// RegisterPolicy adds or replaces a fiscal year's policy table.
func RegisterPolicy(p *TaxPolicy) {
	policyRegistry[p.FiscalYear] = p
}

// PolicyForYear resolves the policy table for a fiscal year. When no
// exact table exists, the most recent table starting at or before the
// requested year applies, matching how the revenue department carries
// rates forward until amended.
func PolicyForYear(fy FiscalYear) (*TaxPolicy, error) {
	if p, ok := policyRegistry[fy]; ok {
		return p, nil
	}

	var best *TaxPolicy
	for _, p := range policyRegistry {
		if p.FiscalYear.StartYear() > fy.StartYear() {
			continue
		}
		if best == nil || p.FiscalYear.StartYear() > best.FiscalYear.StartYear() {
			best = p
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicyYear, fy)
	}
	return best, nil
}

func rupees(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func rate(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func init() {
	RegisterPolicy(policy2023)
}

// policy2023 is the FY 2023-24 table. Old-regime slabs vary by age band;
// the new regime uses one ladder with a higher rebate ceiling.
var policy2023 = &TaxPolicy{
	FiscalYear: "2023-24",

	OldRegimeSlabs: map[AgeBand][]TaxSlab{
		AgeBandGeneral: {
			{rupees(0), rupees(250000), rate(0)},
			{rupees(250000), rupees(500000), rate(0.05)},
			{rupees(500000), rupees(1000000), rate(0.20)},
			{rupees(1000000), NoUpperBound, rate(0.30)},
		},
		AgeBandSenior: {
			{rupees(0), rupees(300000), rate(0)},
			{rupees(300000), rupees(500000), rate(0.05)},
			{rupees(500000), rupees(1000000), rate(0.20)},
			{rupees(1000000), NoUpperBound, rate(0.30)},
		},
		AgeBandSuperSenior: {
			{rupees(0), rupees(500000), rate(0)},
			{rupees(500000), rupees(1000000), rate(0.20)},
			{rupees(1000000), NoUpperBound, rate(0.30)},
		},
	},

	NewRegimeSlabs: []TaxSlab{
		{rupees(0), rupees(250000), rate(0)},
		{rupees(250000), rupees(500000), rate(0.05)},
		{rupees(500000), rupees(750000), rate(0.10)},
		{rupees(750000), rupees(1000000), rate(0.15)},
		{rupees(1000000), rupees(1250000), rate(0.20)},
		{rupees(1250000), rupees(1500000), rate(0.25)},
		{rupees(1500000), NoUpperBound, rate(0.30)},
	},

	OldRegimeRebate: RebateRule{IncomeCeiling: rupees(500000), MaxRebate: rupees(12500)},
	NewRegimeRebate: RebateRule{IncomeCeiling: rupees(700000), MaxRebate: rupees(25000)},

	CessRate: rate(0.04),

	SectionLimits: []DeductionRule{
		{Section: SectionStandard, Cap: rupees(50000)},
		{Section: Section80C, Cap: rupees(150000)},
		{Section: Section80D, Cap: rupees(25000), SeniorCap: rupees(50000)},
		{Section: SectionHRA, Uncapped: true},
		{Section: Section24B, Cap: rupees(200000)},
		{Section: SectionNPS, Cap: rupees(50000)},
		{Section: Section80TTA, Cap: rupees(10000)},
		{Section: Section80TTB, Cap: rupees(50000)},
		{Section: Section80E, Uncapped: true},
		{Section: Section80G, Uncapped: true},
	},

	ResolvedSections: []string{
		SectionStandard,
		Section80C,
		Section80D,
		SectionHRA,
		Section24B,
		SectionNPS,
	},

	SavingOpportunities: []SavingOpportunity{
		{
			Section:     Section80C,
			Description: "Tax deduction on investments like PPF, ELSS, NSC, etc.",
			Limit:       rupees(150000),
			Recommendations: []Recommendation{
				{Name: "ELSS Mutual Funds", Description: "Equity Linked Savings Scheme with 3-year lock-in"},
				{Name: "PPF", Description: "Public Provident Fund with 15-year lock-in"},
				{Name: "NPS Tier-1", Description: "National Pension System contribution"},
				{Name: "Tax Saving FD", Description: "5-year tax-saving fixed deposits"},
			},
		},
		{
			Section:     Section80D,
			Description: "Health Insurance Premium",
			Limit:       rupees(25000),
			Recommendations: []Recommendation{
				{Name: "Health Insurance", Description: "Medical insurance for self and family"},
				{Name: "Preventive Health Check-up", Description: "Up to ₹5,000 within the overall limit"},
			},
		},
		{
			Section:     SectionNPS,
			Description: "Additional deduction for NPS contribution",
			Limit:       rupees(50000),
			Recommendations: []Recommendation{
				{Name: "NPS Tier-1", Description: "Additional contribution to National Pension System"},
			},
		},
		{
			Section:     Section24B,
			Description: "Interest on Housing Loan",
			Limit:       rupees(200000),
			Recommendations: []Recommendation{
				{Name: "Home Loan", Description: "Interest paid on housing loan for self-occupied property"},
			},
		},
		{
			Section:     Section80E,
			Description: "Interest on Education Loan",
			Unlimited:   true,
			Recommendations: []Recommendation{
				{Name: "Education Loan Interest", Description: "Interest paid on loan taken for higher education"},
			},
		},
	},
}
