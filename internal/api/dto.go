// dto.go - request and response shapes for the tax API.
//
// These types decouple the engine's decimal-based domain model from the
// JSON contract: money crosses the wire as plain numbers.
package api

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxgo/taxgo/internal/domain"
)

// CalculateRequest is the input for /calculate and /compare.
type CalculateRequest struct {
	FiscalYear string `json:"fiscal_year,omitempty"`
	Age        int    `json:"age"`
	Regime     string `json:"regime,omitempty"` // "old" (default) or "new"

	GrossSalary         float64 `json:"gross_salary"`
	OtherIncome         float64 `json:"other_income,omitempty"`
	HousePropertyIncome float64 `json:"house_property_income,omitempty"`
	CapitalGains        float64 `json:"capital_gains,omitempty"`
	BusinessIncome      float64 `json:"business_income,omitempty"`
	PresumptiveIncome   bool    `json:"presumptive_income,omitempty"`
	ForeignIncome       bool    `json:"foreign_income,omitempty"`

	Deductions map[string]float64 `json:"deductions,omitempty"`
}

// GrossTotalIncome sums the component incomes.
func (r *CalculateRequest) GrossTotalIncome() decimal.Decimal {
	total := r.GrossSalary + r.OtherIncome + r.HousePropertyIncome + r.CapitalGains + r.BusinessIncome
	return decimal.NewFromFloat(total)
}

// DeductionSet converts the request's deduction map to the engine type.
func (r *CalculateRequest) DeductionSet() domain.DeductionSet {
	ds := make(domain.DeductionSet, len(r.Deductions))
	for section, amount := range r.Deductions {
		ds[section] = decimal.NewFromFloat(amount)
	}
	return ds
}

// IncomeProfile derives the ITR classifier input the same way the
// calculate pipeline does: nonzero components contribute their tags.
func (r *CalculateRequest) IncomeProfile() domain.IncomeProfile {
	var sources []domain.IncomeSource
	if r.GrossSalary > 0 {
		sources = append(sources, domain.SourceSalary)
	}
	if r.HousePropertyIncome != 0 {
		sources = append(sources, domain.SourceHouseProperty)
	}
	if r.OtherIncome > 0 {
		sources = append(sources, domain.SourceOtherSources)
	}
	if r.CapitalGains != 0 {
		sources = append(sources, domain.SourceCapitalGains)
	}
	if r.BusinessIncome != 0 {
		sources = append(sources, domain.SourceBusiness)
		if r.PresumptiveIncome {
			sources = append(sources, domain.SourcePresumptive)
		}
	}
	return domain.IncomeProfile{
		Sources:           sources,
		HasCapitalGains:   r.CapitalGains != 0,
		HasForeignIncome:  r.ForeignIncome,
		HasBusinessIncome: r.BusinessIncome != 0,
	}
}

// ComputationDTO is one regime's tax breakdown.
type ComputationDTO struct {
	FiscalYear         string  `json:"fiscal_year"`
	Regime             string  `json:"regime"`
	GrossIncome        float64 `json:"gross_income"`
	TotalDeductions    float64 `json:"total_deductions"`
	EligibleDeductions float64 `json:"eligible_deductions"`
	TaxableIncome      float64 `json:"taxable_income"`
	TaxLiability       float64 `json:"tax_liability"`
	EducationCess      float64 `json:"education_cess"`
	TotalTaxLiability  float64 `json:"total_tax_liability"`
}

func computationDTO(c *domain.TaxComputation) ComputationDTO {
	return ComputationDTO{
		FiscalYear:         string(c.FiscalYear),
		Regime:             string(c.Regime),
		GrossIncome:        c.GrossIncome.InexactFloat64(),
		TotalDeductions:    c.TotalDeductions.InexactFloat64(),
		EligibleDeductions: c.EligibleDeductions.InexactFloat64(),
		TaxableIncome:      c.TaxableIncome.InexactFloat64(),
		TaxLiability:       c.TaxLiability.InexactFloat64(),
		EducationCess:      c.EducationCess.InexactFloat64(),
		TotalTaxLiability:  c.TotalTaxLiability.InexactFloat64(),
	}
}

// CompareResponse is the two-regime comparison.
type CompareResponse struct {
	OldRegime    ComputationDTO `json:"old_regime"`
	NewRegime    ComputationDTO `json:"new_regime"`
	Difference   float64        `json:"difference"`
	BetterRegime string         `json:"better_regime"`
	Savings      float64        `json:"savings"`
}

func compareResponse(c *domain.RegimeComparison) CompareResponse {
	return CompareResponse{
		OldRegime:    computationDTO(c.OldRegime),
		NewRegime:    computationDTO(c.NewRegime),
		Difference:   c.Difference.InexactFloat64(),
		BetterRegime: string(c.BetterRegime),
		Savings:      c.Savings.InexactFloat64(),
	}
}

// SuggestionDTO is one flattened tax-saving suggestion. MaxLimit and
// RemainingLimit are omitted for uncapped sections.
type SuggestionDTO struct {
	Section        string   `json:"section"`
	Description    string   `json:"description"`
	CurrentAmount  float64  `json:"current_amount"`
	MaxLimit       *float64 `json:"max_limit,omitempty"`
	RemainingLimit *float64 `json:"remaining_limit,omitempty"`
	Unlimited      bool     `json:"unlimited,omitempty"`
	Recommendation string   `json:"recommendation"`
}

func suggestionDTOs(suggestions []domain.TaxSavingSuggestion) []SuggestionDTO {
	dtos := make([]SuggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		names := make([]string, 0, len(s.Recommendations))
		for _, rec := range s.Recommendations {
			names = append(names, rec.Name)
		}
		dto := SuggestionDTO{
			Section:        s.Section,
			Description:    s.Description,
			CurrentAmount:  s.CurrentAmount.InexactFloat64(),
			Unlimited:      s.Unlimited,
			Recommendation: strings.Join(names, ", "),
		}
		if !s.Unlimited {
			maxLimit := s.MaxLimit.InexactFloat64()
			remaining := s.RemainingLimit.InexactFloat64()
			dto.MaxLimit = &maxLimit
			dto.RemainingLimit = &remaining
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

// CalculateResponse mirrors the full pipeline result: the selected
// regime's breakdown plus the comparison verdict, the recommended form
// and the advisor output.
type CalculateResponse struct {
	FiscalYear           string          `json:"fiscal_year"`
	GrossTotalIncome     float64         `json:"gross_total_income"`
	TotalDeductions      float64         `json:"total_deductions"`
	EligibleDeductions   float64         `json:"eligible_deductions"`
	TaxableIncome        float64         `json:"taxable_income"`
	TaxPayable           float64         `json:"tax_payable"`
	EducationCess        float64         `json:"education_cess"`
	TotalTaxLiability    float64         `json:"total_tax_liability"`
	RecommendedITRForm   string          `json:"recommended_itr_form"`
	MonthlyInstallment   float64         `json:"monthly_tax_installment"`
	BetterRegime         string          `json:"better_regime"`
	RegimeSavings        float64         `json:"regime_savings"`
	TaxSavingPotential   float64         `json:"tax_saving_potential"`
	TaxSavingSuggestions []SuggestionDTO `json:"tax_saving_suggestions"`
}

// ITRFormRequest is the input for /itr-form.
type ITRFormRequest struct {
	IncomeSources     []string `json:"income_sources"`
	HasCapitalGains   bool     `json:"has_capital_gains"`
	HasForeignIncome  bool     `json:"has_foreign_income"`
	HasBusinessIncome bool     `json:"has_business_income"`
}

// ITRFormResponse is the classifier verdict.
type ITRFormResponse struct {
	ITRForm string `json:"itr_form"`
}

// SuggestionsRequest is the input for /suggestions.
type SuggestionsRequest struct {
	FiscalYear string             `json:"fiscal_year,omitempty"`
	Deductions map[string]float64 `json:"deductions"`
}

// FiscalYearResponse reports the current fiscal year and its range.
type FiscalYearResponse struct {
	FiscalYear string `json:"fiscal_year"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}
