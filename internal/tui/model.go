package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/help"
	"github.com/shopspring/decimal"

	"github.com/taxgo/taxgo/internal/calculation"
	"github.com/taxgo/taxgo/internal/domain"
)

// fieldKind says how a planner field is stepped.
type fieldKind int

const (
	fieldIncome fieldKind = iota
	fieldAge
	fieldDeduction
)

// field is one adjustable input row.
type field struct {
	label   string
	kind    fieldKind
	section string          // for fieldDeduction
	step    decimal.Decimal // per keypress
}

// Model is the interactive what-if planner: adjust income, age and
// deduction amounts and watch the regime comparison update live.
type Model struct {
	calc *calculation.Calculator

	income     decimal.Decimal
	age        int
	deductions domain.DeductionSet

	fields []field
	cursor int

	comparison  *domain.RegimeComparison
	suggestions []domain.TaxSavingSuggestion
	err         error

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel creates the planner seeded with a starting scenario.
func NewModel(calc *calculation.Calculator, income decimal.Decimal, age int, deductions domain.DeductionSet) Model {
	if deductions == nil {
		deductions = domain.DeductionSet{}
	}

	m := Model{
		calc:       calc,
		income:     income,
		age:        age,
		deductions: deductions,
		fields: []field{
			{label: "Gross Income", kind: fieldIncome, step: decimal.NewFromInt(50000)},
			{label: "Age", kind: fieldAge},
			{label: "Standard Deduction", kind: fieldDeduction, section: domain.SectionStandard, step: decimal.NewFromInt(10000)},
			{label: "80C Investments", kind: fieldDeduction, section: domain.Section80C, step: decimal.NewFromInt(10000)},
			{label: "80D Health Insurance", kind: fieldDeduction, section: domain.Section80D, step: decimal.NewFromInt(5000)},
			{label: "80CCD(1B) NPS", kind: fieldDeduction, section: domain.SectionNPS, step: decimal.NewFromInt(10000)},
			{label: "24B Home Loan Interest", kind: fieldDeduction, section: domain.Section24B, step: decimal.NewFromInt(10000)},
			{label: "HRA Exemption", kind: fieldDeduction, section: domain.SectionHRA, step: decimal.NewFromInt(10000)},
		},
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// recompute refreshes the comparison and suggestions after any change.
func (m *Model) recompute() {
	comparison, err := m.calc.CompareRegimes(m.income, m.age, m.deductions)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.comparison = comparison
	m.suggestions = m.calc.TaxSavingSuggestions(m.deductions)
}

// adjust steps the selected field by delta (+1 or -1 keypresses).
func (m *Model) adjust(delta int64) {
	f := m.fields[m.cursor]
	switch f.kind {
	case fieldIncome:
		m.income = decimal.Max(decimal.Zero, m.income.Add(f.step.Mul(decimal.NewFromInt(delta))))
	case fieldAge:
		m.age += int(delta)
		if m.age < 0 {
			m.age = 0
		}
	case fieldDeduction:
		next := m.deductions[f.section].Add(f.step.Mul(decimal.NewFromInt(delta)))
		if next.IsNegative() {
			next = decimal.Zero
		}
		m.deductions[f.section] = next
	}
	m.recompute()
}
