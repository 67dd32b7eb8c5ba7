package output

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taxgo/taxgo/internal/domain"
)

// Report is the full result of one scenario run: the regime comparison,
// the recommended return form, the advisor output and the derived
// planning figures.
type Report struct {
	FiscalYear     domain.FiscalYear        `json:"fiscalYear"`
	SelectedRegime domain.Regime            `json:"selectedRegime"`
	Comparison     *domain.RegimeComparison `json:"comparison"`

	RecommendedForm domain.ITRForm `json:"recommendedForm"`

	// MonthlyInstallment spreads the selected regime's total liability
	// over twelve advance-tax payments.
	MonthlyInstallment decimal.Decimal              `json:"monthlyInstallment"`
	SavingPotential    decimal.Decimal              `json:"savingPotential"`
	Suggestions        []domain.TaxSavingSuggestion `json:"suggestions"`
}

// Selected returns the computation for the regime the report was run
// under.
func (r *Report) Selected() *domain.TaxComputation {
	if r.SelectedRegime == domain.RegimeNew {
		return r.Comparison.NewRegime
	}
	return r.Comparison.OldRegime
}

// Formatter renders a report in one output format.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// GetFormatterByName returns the formatter for a format name, or nil
// when the name is unknown.
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(name) {
	case "table", "console", "":
		return &TableFormatter{}
	case "json":
		return &JSONFormatter{Pretty: true}
	case "csv":
		return &CSVFormatter{}
	}
	return nil
}

// formatRupees renders an amount with Indian digit grouping: the last
// three digits, then groups of two (1234567 -> 12,34,567).
func formatRupees(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	if len(whole) > 3 {
		grouped := whole[len(whole)-3:]
		rest := whole[:len(whole)-3]
		for len(rest) > 2 {
			grouped = rest[len(rest)-2:] + "," + grouped
			rest = rest[:len(rest)-2]
		}
		whole = rest + "," + grouped
	}

	out := whole + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
