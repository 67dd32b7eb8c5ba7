package output

import (
	"fmt"
	"strings"

	"github.com/taxgo/taxgo/internal/domain"
)

// TableFormatter renders a report as a console table.
type TableFormatter struct{}

func (tf *TableFormatter) Name() string { return "table" }

// Format generates the console report: the per-regime breakdown, the
// comparison verdict, the recommended ITR form and the advisor output.
func (tf *TableFormatter) Format(report *Report) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("INCOME TAX COMPUTATION\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Fiscal Year:      %s\n", report.FiscalYear))
	sb.WriteString(fmt.Sprintf("Selected Regime:  %s\n", report.SelectedRegime))
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 18

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
		nameWidth, "",
		numWidth, "Old Regime",
		numWidth, "New Regime"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	old := report.Comparison.OldRegime
	new_ := report.Comparison.NewRegime
	rows := []struct {
		label    string
		oldValue string
		newValue string
	}{
		{"Gross Income", formatRupees(old.GrossIncome), formatRupees(new_.GrossIncome)},
		{"Deductions Claimed", formatRupees(old.TotalDeductions), formatRupees(new_.TotalDeductions)},
		{"Eligible Deductions", formatRupees(old.EligibleDeductions), formatRupees(new_.EligibleDeductions)},
		{"Taxable Income", formatRupees(old.TaxableIncome), formatRupees(new_.TaxableIncome)},
		{"Tax Liability", formatRupees(old.TaxLiability), formatRupees(new_.TaxLiability)},
		{"Education Cess (4%)", formatRupees(old.EducationCess), formatRupees(new_.EducationCess)},
		{"Total Tax Liability", formatRupees(old.TotalTaxLiability), formatRupees(new_.TotalTaxLiability)},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
			nameWidth, row.label,
			numWidth, "₹"+row.oldValue,
			numWidth, "₹"+row.newValue))
	}
	sb.WriteString(strings.Repeat("=", 72) + "\n")

	sb.WriteString(fmt.Sprintf("\nBetter Regime: %s", report.Comparison.BetterRegime))
	if report.Comparison.Savings.IsPositive() {
		sb.WriteString(fmt.Sprintf(" (saves ₹%s)", formatRupees(report.Comparison.Savings)))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Recommended ITR Form:     %s\n", report.RecommendedForm))
	sb.WriteString(fmt.Sprintf("Monthly Tax Installment:  ₹%s\n", formatRupees(report.MonthlyInstallment)))

	if len(report.Suggestions) > 0 {
		sb.WriteString("\nTAX SAVING SUGGESTIONS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, s := range report.Suggestions {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", s.Section, s.Description))
			sb.WriteString(fmt.Sprintf("  Current: ₹%s   Limit: %s   Remaining: %s\n",
				formatRupees(s.CurrentAmount),
				limitString(s),
				remainingString(s)))
			names := make([]string, 0, len(s.Recommendations))
			for _, rec := range s.Recommendations {
				names = append(names, rec.Name)
			}
			sb.WriteString(fmt.Sprintf("  Consider: %s\n", strings.Join(names, ", ")))
		}
		sb.WriteString(fmt.Sprintf("\nTotal Saving Potential: ₹%s\n", formatRupees(report.SavingPotential)))
	}

	return []byte(sb.String()), nil
}

func limitString(s domain.TaxSavingSuggestion) string {
	if s.Unlimited {
		return "No upper limit"
	}
	return "₹" + formatRupees(s.MaxLimit)
}

func remainingString(s domain.TaxSavingSuggestion) string {
	if s.Unlimited {
		return "Full amount eligible"
	}
	return "₹" + formatRupees(s.RemainingLimit)
}
