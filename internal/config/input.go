package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/taxgo/taxgo/internal/domain"
)

// ScenarioInput is one taxpayer scenario as read from a YAML file.
type ScenarioInput struct {
	FiscalYear string   `yaml:"fiscal_year"`
	Taxpayer   Taxpayer `yaml:"taxpayer"`
	Income     Income   `yaml:"income"`

	// Deductions maps section codes to claimed amounts. Unknown sections
	// are carried through but never credited.
	Deductions map[string]decimal.Decimal `yaml:"deductions"`
}

// Taxpayer holds the person-level inputs.
type Taxpayer struct {
	Age    int    `yaml:"age"`
	Regime string `yaml:"regime"`
}

// Income holds the component incomes a scenario aggregates. The
// presumptive and foreign flags feed only the ITR classifier.
type Income struct {
	Salary        decimal.Decimal `yaml:"salary"`
	HouseProperty decimal.Decimal `yaml:"house_property"`
	OtherSources  decimal.Decimal `yaml:"other_sources"`
	CapitalGains  decimal.Decimal `yaml:"capital_gains"`
	Business      decimal.Decimal `yaml:"business_income"`
	Presumptive   bool            `yaml:"presumptive"`
	ForeignIncome bool            `yaml:"foreign_income"`
}

// InputParser handles parsing of scenario input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML file and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*ScenarioInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input ScenarioInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.Validate(&input); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &input, nil
}

// Validate checks a scenario for the errors the engine would otherwise
// reject mid-computation.
func (ip *InputParser) Validate(input *ScenarioInput) error {
	if input.FiscalYear != "" {
		if _, err := domain.ParseFiscalYear(input.FiscalYear); err != nil {
			return err
		}
	}
	if input.Taxpayer.Age < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAge, input.Taxpayer.Age)
	}
	if input.Taxpayer.Regime != "" {
		if _, err := domain.ParseRegime(input.Taxpayer.Regime); err != nil {
			return err
		}
	}

	components := map[string]decimal.Decimal{
		"salary":         input.Income.Salary,
		"house_property": input.Income.HouseProperty,
		"other_sources":  input.Income.OtherSources,
	}
	for name, amount := range components {
		if amount.IsNegative() {
			return fmt.Errorf("%w: %s is %s", domain.ErrInvalidIncome, name, amount)
		}
	}

	for section, amount := range input.Deductions {
		if amount.IsNegative() {
			return fmt.Errorf("deduction %s cannot be negative, got %s", section, amount)
		}
	}

	return nil
}

// GrossTotalIncome sums every income component. Capital gains and
// business income may be negative (losses) but the total may not.
func (in *ScenarioInput) GrossTotalIncome() decimal.Decimal {
	return in.Income.Salary.
		Add(in.Income.HouseProperty).
		Add(in.Income.OtherSources).
		Add(in.Income.CapitalGains).
		Add(in.Income.Business)
}

// Regime resolves the scenario's regime, defaulting to old.
func (in *ScenarioInput) Regime() domain.Regime {
	if in.Taxpayer.Regime == "" {
		return domain.RegimeOld
	}
	regime, err := domain.ParseRegime(in.Taxpayer.Regime)
	if err != nil {
		return domain.RegimeOld
	}
	return regime
}

// DeductionSet converts the raw map into the engine's type.
func (in *ScenarioInput) DeductionSet() domain.DeductionSet {
	ds := make(domain.DeductionSet, len(in.Deductions))
	for section, amount := range in.Deductions {
		ds[section] = amount
	}
	return ds
}

// IncomeProfile derives the classifier input from the component
// incomes: any nonzero component contributes its source tag, and the
// capital-gains/business flags follow the same nonzero test.
func (in *ScenarioInput) IncomeProfile() domain.IncomeProfile {
	var sources []domain.IncomeSource
	if in.Income.Salary.IsPositive() {
		sources = append(sources, domain.SourceSalary)
	}
	if !in.Income.HouseProperty.IsZero() {
		sources = append(sources, domain.SourceHouseProperty)
	}
	if in.Income.OtherSources.IsPositive() {
		sources = append(sources, domain.SourceOtherSources)
	}
	if !in.Income.CapitalGains.IsZero() {
		sources = append(sources, domain.SourceCapitalGains)
	}
	if !in.Income.Business.IsZero() {
		sources = append(sources, domain.SourceBusiness)
		if in.Income.Presumptive {
			sources = append(sources, domain.SourcePresumptive)
		}
	}

	return domain.IncomeProfile{
		Sources:           sources,
		HasCapitalGains:   !in.Income.CapitalGains.IsZero(),
		HasForeignIncome:  in.Income.ForeignIncome,
		HasBusinessIncome: !in.Income.Business.IsZero(),
	}
}
