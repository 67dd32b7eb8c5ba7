package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxgo/taxgo/internal/calculation"
	"github.com/taxgo/taxgo/internal/domain"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	calc, err := calculation.NewCalculator("2023-24")
	require.NoError(t, err)
	return NewModel(calc, decimal.NewFromInt(1200000), 35, nil)
}

func TestNewModelComputesInitialComparison(t *testing.T) {
	m := newTestModel(t)

	require.NotNil(t, m.comparison)
	assert.True(t, m.comparison.OldRegime.GrossIncome.Equal(decimal.NewFromInt(1200000)))
	assert.NotEmpty(t, m.suggestions)
	assert.NoError(t, m.err)
}

func TestAdjustStepsAndClampsAtZero(t *testing.T) {
	m := newTestModel(t)

	// Income field is first; one step down is 50000.
	m.adjust(-1)
	assert.True(t, m.income.Equal(decimal.NewFromInt(1150000)))

	for i := 0; i < 100; i++ {
		m.adjust(-1)
	}
	assert.True(t, m.income.IsZero(), "income must clamp at zero, got %s", m.income)

	m.adjust(1)
	assert.True(t, m.comparison.OldRegime.GrossIncome.Equal(decimal.NewFromInt(50000)))
	assert.True(t, m.comparison.OldRegime.TotalTaxLiability.IsZero())
}

func TestAdjustDeductionRefreshesComparison(t *testing.T) {
	m := newTestModel(t)
	withoutDeductions := m.comparison.OldRegime.TotalTaxLiability

	// Move to the 80C field and add three steps (30000).
	for i := range m.fields {
		if m.fields[i].section == domain.Section80C {
			m.cursor = i
			break
		}
	}
	m.adjust(1)
	m.adjust(1)
	m.adjust(1)

	assert.True(t, m.deductions[domain.Section80C].Equal(decimal.NewFromInt(30000)))
	assert.True(t, m.comparison.OldRegime.TotalTaxLiability.LessThan(withoutDeductions))
	// The new regime ignores deductions.
	assert.True(t, m.comparison.NewRegime.EligibleDeductions.IsZero())
}

func TestUpdateHandlesKeys(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 1, m.cursor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.Equal(t, 0, m.cursor)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	assert.Equal(t, 120, m.width)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.NotNil(t, cmd, "q must quit")
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "Gross Income")
	assert.Contains(t, out, "OLD REGIME")
	assert.Contains(t, out, "NEW REGIME")
}
