package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taxgo/taxgo/internal/domain"
)

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Tax Planner — FY %s", m.calc.FiscalYear)))
	sb.WriteString("\n")

	sb.WriteString(m.renderFields())
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(errStyle.Render("error: " + m.err.Error()))
		sb.WriteString("\n")
	} else if m.comparison != nil {
		sb.WriteString(m.renderComparison())
		sb.WriteString("\n")
		sb.WriteString(m.renderHeadroom())
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) renderFields() string {
	var sb strings.Builder
	for i, f := range m.fields {
		cursor := "  "
		style := fieldStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedFieldStyle
		}

		var value string
		switch f.kind {
		case fieldIncome:
			value = "₹" + m.income.StringFixed(0)
		case fieldAge:
			value = fmt.Sprintf("%d", m.age)
		case fieldDeduction:
			value = "₹" + m.deductions[f.section].StringFixed(0)
		}

		sb.WriteString(style.Render(fmt.Sprintf("%s%-24s %12s", cursor, f.label, value)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderComparison() string {
	old := m.comparison.OldRegime
	new_ := m.comparison.NewRegime

	oldPanel := panelStyle
	newPanel := panelStyle
	if m.comparison.BetterRegime == domain.RegimeOld {
		oldPanel = betterPanelStyle
	} else {
		newPanel = betterPanelStyle
	}

	left := oldPanel.Render(renderRegime("OLD REGIME", old))
	right := newPanel.Render(renderRegime("NEW REGIME", new_))
	panels := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	verdict := fmt.Sprintf("Better: %s regime", m.comparison.BetterRegime)
	if m.comparison.Savings.IsPositive() {
		verdict += fmt.Sprintf(", saving ₹%s", m.comparison.Savings.StringFixed(0))
	}

	return panels + "\n" + verdictStyle.Render(verdict) + "\n"
}

func renderRegime(title string, c *domain.TaxComputation) string {
	var sb strings.Builder
	sb.WriteString(valueStyle.Render(title))
	sb.WriteString("\n")
	rows := []struct {
		label string
		value string
	}{
		{"Eligible deductions", c.EligibleDeductions.StringFixed(0)},
		{"Taxable income", c.TaxableIncome.StringFixed(0)},
		{"Tax liability", c.TaxLiability.StringFixed(0)},
		{"Education cess", c.EducationCess.StringFixed(0)},
		{"Total tax", c.TotalTaxLiability.StringFixed(0)},
	}
	for _, row := range rows {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-20s", row.label)))
		sb.WriteString(fmt.Sprintf(" ₹%10s\n", row.value))
	}
	return sb.String()
}

// renderHeadroom shows the top remaining deduction opportunities.
func (m Model) renderHeadroom() string {
	if len(m.suggestions) == 0 {
		return labelStyle.Render("All tracked deduction limits fully utilized.") + "\n"
	}

	var parts []string
	for _, s := range m.suggestions {
		if s.Unlimited {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s ₹%s left", s.Section, s.RemainingLimit.StringFixed(0)))
	}
	if len(parts) == 0 {
		return ""
	}
	return labelStyle.Render("Headroom: "+strings.Join(parts, "  ·  ")) + "\n"
}
