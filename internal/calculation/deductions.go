package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/taxgo/taxgo/internal/domain"
)

// ResolveDeductions turns raw claimed amounts into the eligible total
// for the old regime. Each whitelisted section is capped independently
// against its own limit and the capped values are summed; there is no
// cumulative ceiling. Sections outside the policy's resolver whitelist
// are ignored, even when the policy tracks a statutory limit for them.
func (c *Calculator) ResolveDeductions(deductions domain.DeductionSet, age int) decimal.Decimal {
	eligible := decimal.Zero
	senior := age >= 60

	for _, section := range c.Policy.ResolvedSections {
		claimed, ok := deductions[section]
		if !ok || !claimed.IsPositive() {
			continue
		}

		rule, ok := c.Policy.SectionRule(section)
		if !ok {
			c.Logger.Warnf("resolver section %s has no limit rule; skipping", section)
			continue
		}

		eligible = eligible.Add(cappedAmount(claimed, rule, senior))
	}

	return eligible
}

// cappedAmount applies one section's limit. HRA-style uncapped sections
// pass through; 80D swaps in the senior cap at age 60.
func cappedAmount(claimed decimal.Decimal, rule domain.DeductionRule, senior bool) decimal.Decimal {
	if rule.Uncapped {
		return claimed
	}
	cap := rule.Cap
	if senior && rule.SeniorCap.IsPositive() {
		cap = rule.SeniorCap
	}
	return decimal.Min(cap, claimed)
}
