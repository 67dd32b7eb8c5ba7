package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxgo/taxgo/internal/calculation"
	"github.com/taxgo/taxgo/internal/domain"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	calc, err := calculation.NewCalculator("2023-24")
	require.NoError(t, err)

	deductions := domain.DeductionSet{domain.Section80C: decimal.NewFromInt(100000)}
	cmp, err := calc.CompareRegimes(decimal.NewFromInt(1500000), 35, deductions)
	require.NoError(t, err)

	suggestions := calc.TaxSavingSuggestions(deductions)
	return &Report{
		FiscalYear:         calc.FiscalYear,
		SelectedRegime:     domain.RegimeOld,
		Comparison:         cmp,
		RecommendedForm:    domain.ITR1,
		MonthlyInstallment: cmp.OldRegime.TotalTaxLiability.Div(decimal.NewFromInt(12)),
		SavingPotential:    calculation.SavingPotential(suggestions),
		Suggestions:        suggestions,
	}
}

func TestGetFormatterByName(t *testing.T) {
	assert.IsType(t, &TableFormatter{}, GetFormatterByName("table"))
	assert.IsType(t, &TableFormatter{}, GetFormatterByName("console"))
	assert.IsType(t, &TableFormatter{}, GetFormatterByName(""))
	assert.IsType(t, &JSONFormatter{}, GetFormatterByName("JSON"))
	assert.IsType(t, &CSVFormatter{}, GetFormatterByName("csv"))
	assert.Nil(t, GetFormatterByName("xml"))
}

func TestTableFormatter(t *testing.T) {
	out, err := (&TableFormatter{}).Format(sampleReport(t))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "INCOME TAX COMPUTATION")
	assert.Contains(t, text, "Fiscal Year:      2023-24")
	assert.Contains(t, text, "Old Regime")
	assert.Contains(t, text, "New Regime")
	assert.Contains(t, text, "Recommended ITR Form:     ITR-1")
	assert.Contains(t, text, "TAX SAVING SUGGESTIONS")
	// 80E is uncapped, so its limit renders as a sentinel.
	assert.Contains(t, text, "No upper limit")
	// 80C has 50000 of headroom left after the claimed 100000.
	assert.Contains(t, text, "Remaining: ₹50,000.00")
}

func TestJSONFormatter(t *testing.T) {
	report := sampleReport(t)
	out, err := (&JSONFormatter{Pretty: true}).Format(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "2023-24", decoded["fiscalYear"])
	assert.Equal(t, "old", decoded["selectedRegime"])
	assert.Equal(t, "ITR-1", decoded["recommendedForm"])
	assert.NotNil(t, decoded["comparison"])
	assert.NotEmpty(t, decoded["suggestions"])
}

func TestCSVFormatter(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleReport(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per regime")

	assert.Equal(t, "Regime", records[0][0])
	assert.Equal(t, "old", records[1][0])
	assert.Equal(t, "new", records[2][0])
	// Exactly one regime carries the better marker.
	assert.NotEqual(t, records[1][8], records[2][8])
}

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		in       int64
		expected string
	}{
		{0, "0.00"},
		{999, "999.00"},
		{1000, "1,000.00"},
		{123456, "1,23,456.00"},
		{1234567, "12,34,567.00"},
		{150000000, "15,00,00,000.00"},
		{-1234567, "-12,34,567.00"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, formatRupees(decimal.NewFromInt(tc.in)), "input %d", tc.in)
	}
}
