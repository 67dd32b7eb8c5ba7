package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/taxgo/taxgo/internal/calculation"
	"github.com/taxgo/taxgo/internal/config"
	"github.com/taxgo/taxgo/internal/domain"
	"github.com/taxgo/taxgo/internal/tui"
)

func main() {
	// Seed values when no scenario file is given.
	income := decimal.NewFromInt(1200000)
	age := 35
	deductions := domain.DeductionSet{}
	fiscalYear := ""

	if len(os.Args) > 1 {
		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
			os.Exit(1)
		}
		income = input.GrossTotalIncome()
		age = input.Taxpayer.Age
		deductions = input.DeductionSet()
		fiscalYear = input.FiscalYear
	}

	calc, err := calculation.NewCalculator(fiscalYear)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(calc, income, age, deductions)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
