package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxgo/taxgo/internal/domain"
)

// TaxSavingSuggestions diffs the claimed deductions against the policy's
// advisor checklist and reports unused headroom per section. This is a
// static lookup over policy data, not an optimization: each checklist row
// is emitted whenever its limit is not yet exhausted. Uncapped sections
// (80E) are suggested only when nothing is claimed under them.
func (c *Calculator) TaxSavingSuggestions(deductions domain.DeductionSet) []domain.TaxSavingSuggestion {
	suggestions := make([]domain.TaxSavingSuggestion, 0, len(c.Policy.SavingOpportunities))

	for _, opp := range c.Policy.SavingOpportunities {
		current := deductions[opp.Section]

		if opp.Unlimited {
			if current.IsPositive() {
				continue
			}
			suggestions = append(suggestions, domain.TaxSavingSuggestion{
				Section:         opp.Section,
				Description:     opp.Description,
				CurrentAmount:   decimal.Zero,
				Unlimited:       true,
				Recommendations: opp.Recommendations,
			})
			continue
		}

		if current.GreaterThanOrEqual(opp.Limit) {
			continue
		}
		suggestions = append(suggestions, domain.TaxSavingSuggestion{
			Section:         opp.Section,
			Description:     opp.Description,
			CurrentAmount:   current,
			MaxLimit:        opp.Limit,
			RemainingLimit:  opp.Limit.Sub(current),
			Recommendations: opp.Recommendations,
		})
	}

	return suggestions
}

// SavingPotential totals the remaining headroom across capped
// suggestions. Uncapped sections contribute nothing.
func SavingPotential(suggestions []domain.TaxSavingSuggestion) decimal.Decimal {
	total := decimal.Zero
	for _, s := range suggestions {
		if !s.Unlimited {
			total = total.Add(s.RemainingLimit)
		}
	}
	return total
}
