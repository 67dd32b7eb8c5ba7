package calculation

import "github.com/taxgo/taxgo/internal/domain"

// itr1Sources are the only income sources ITR-1 (Sahaj) admits.
var itr1Sources = map[domain.IncomeSource]bool{
	domain.SourceSalary:        true,
	domain.SourceHouseProperty: true,
	domain.SourceOtherSources:  true,
}

// DetermineITRForm maps an income profile to the return form the
// taxpayer should file. First match wins:
//
//	ITR-1  salary/house property/other sources only, none of the flags
//	ITR-2  anything else without business income
//	ITR-4  presumptive business income
//	ITR-3  other business or profession income
//
// With LegacyITROrdering the ITR-3 branch is checked before ITR-4, which
// makes ITR-4 unreachable; that matches the classifier's historical
// behavior and is kept selectable for comparison.
func (c *Calculator) DetermineITRForm(profile domain.IncomeProfile) domain.ITRForm {
	if qualifiesITR1(profile) {
		return domain.ITR1
	}
	if !profile.HasBusinessIncome {
		return domain.ITR2
	}

	if c.LegacyITROrdering {
		return domain.ITR3
	}

	if profile.Has(domain.SourcePresumptive) {
		return domain.ITR4
	}
	return domain.ITR3
}

func qualifiesITR1(profile domain.IncomeProfile) bool {
	if len(profile.Sources) > 3 {
		return false
	}
	for _, source := range profile.Sources {
		if !itr1Sources[source] {
			return false
		}
	}
	return !profile.HasCapitalGains && !profile.HasForeignIncome && !profile.HasBusinessIncome
}
