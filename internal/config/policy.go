package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taxgo/taxgo/internal/domain"
)

// policyFile is the on-disk shape of a policy overlay: one or more
// fiscal-year tax tables that extend or replace the built-in ones.
type policyFile struct {
	Policies []domain.TaxPolicy `yaml:"policies"`
}

// LoadPolicyFile reads fiscal-year tax tables from a YAML overlay and
// registers them, so future budget years ship as data instead of code.
func LoadPolicyFile(filename string) ([]domain.FiscalYear, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", filename, err)
	}

	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}
	if len(file.Policies) == 0 {
		return nil, fmt.Errorf("policy file %s defines no policies", filename)
	}

	years := make([]domain.FiscalYear, 0, len(file.Policies))
	for i := range file.Policies {
		p := file.Policies[i]
		if _, err := domain.ParseFiscalYear(string(p.FiscalYear)); err != nil {
			return nil, err
		}
		if err := validatePolicy(&p); err != nil {
			return nil, fmt.Errorf("policy %s: %w", p.FiscalYear, err)
		}
		domain.RegisterPolicy(&p)
		years = append(years, p.FiscalYear)
	}
	return years, nil
}

// validatePolicy checks the structural invariants the slab walk relies
// on: each table must be contiguous, non-overlapping and start at zero.
func validatePolicy(p *domain.TaxPolicy) error {
	for band, slabs := range p.OldRegimeSlabs {
		if err := validateSlabs(slabs); err != nil {
			return fmt.Errorf("old regime %s slabs: %w", band, err)
		}
	}
	if err := validateSlabs(p.NewRegimeSlabs); err != nil {
		return fmt.Errorf("new regime slabs: %w", err)
	}
	if p.CessRate.IsNegative() {
		return fmt.Errorf("cess rate cannot be negative")
	}
	return nil
}

func validateSlabs(slabs []domain.TaxSlab) error {
	if len(slabs) == 0 {
		return fmt.Errorf("no slabs defined")
	}
	if !slabs[0].Lower.IsZero() {
		return fmt.Errorf("first slab must start at 0, got %s", slabs[0].Lower)
	}
	for i, slab := range slabs {
		if slab.Upper.LessThanOrEqual(slab.Lower) {
			return fmt.Errorf("slab %d has non-positive width", i)
		}
		if slab.Rate.IsNegative() {
			return fmt.Errorf("slab %d has negative rate", i)
		}
		if i > 0 && !slab.Lower.Equal(slabs[i-1].Upper) {
			return fmt.Errorf("slab %d does not start where slab %d ends", i, i-1)
		}
	}
	return nil
}
