package output

import (
	"bytes"
	"encoding/csv"

	"github.com/taxgo/taxgo/internal/domain"
)

// CSVFormatter implements the summary CSV output (one row per regime).
type CSVFormatter struct{}

func (cf *CSVFormatter) Name() string { return "csv" }

func (cf *CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Regime", "GrossIncome", "DeductionsClaimed", "EligibleDeductions", "TaxableIncome", "TaxLiability", "EducationCess", "TotalTaxLiability", "Better"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, comp := range []*domain.TaxComputation{report.Comparison.OldRegime, report.Comparison.NewRegime} {
		better := ""
		if comp.Regime == report.Comparison.BetterRegime {
			better = "yes"
		}
		row := []string{
			string(comp.Regime),
			comp.GrossIncome.StringFixed(2),
			comp.TotalDeductions.StringFixed(2),
			comp.EligibleDeductions.StringFixed(2),
			comp.TaxableIncome.StringFixed(2),
			comp.TaxLiability.StringFixed(2),
			comp.EducationCess.StringFixed(2),
			comp.TotalTaxLiability.StringFixed(2),
			better,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
