package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Slab tables must be contiguous, non-overlapping and cover [0, inf) for
// the marginal walk to be correct.
func TestPolicySlabTablesAreContiguous(t *testing.T) {
	policy, err := PolicyForYear("2023-24")
	require.NoError(t, err)

	check := func(t *testing.T, slabs []TaxSlab) {
		require.NotEmpty(t, slabs)
		assert.True(t, slabs[0].Lower.IsZero(), "first slab must start at 0")
		for i := 1; i < len(slabs); i++ {
			assert.True(t, slabs[i].Lower.Equal(slabs[i-1].Upper),
				"slab %d lower %s must equal slab %d upper %s", i, slabs[i].Lower, i-1, slabs[i-1].Upper)
		}
		top := slabs[len(slabs)-1]
		assert.True(t, top.Upper.Equal(NoUpperBound), "top slab must be unbounded")
	}

	for band, slabs := range policy.OldRegimeSlabs {
		t.Run("old_"+string(band), func(t *testing.T) { check(t, slabs) })
	}
	t.Run("new", func(t *testing.T) { check(t, policy.NewRegimeSlabs) })
}

func TestPolicySectionLimits(t *testing.T) {
	policy, err := PolicyForYear("2023-24")
	require.NoError(t, err)

	rule, ok := policy.SectionRule(Section80C)
	require.True(t, ok)
	assert.True(t, rule.Cap.Equal(decimal.NewFromInt(150000)))

	rule, ok = policy.SectionRule(Section80D)
	require.True(t, ok)
	assert.True(t, rule.Cap.Equal(decimal.NewFromInt(25000)))
	assert.True(t, rule.SeniorCap.Equal(decimal.NewFromInt(50000)))

	rule, ok = policy.SectionRule(SectionHRA)
	require.True(t, ok)
	assert.True(t, rule.Uncapped)

	// Tracked statutory limits that the resolver nevertheless ignores.
	_, ok = policy.SectionRule(Section80TTA)
	assert.True(t, ok)
	assert.NotContains(t, policy.ResolvedSections, Section80TTA)
	assert.NotContains(t, policy.ResolvedSections, Section80TTB)

	_, ok = policy.SectionRule("80Z")
	assert.False(t, ok)
}

func TestPolicyForYearFallback(t *testing.T) {
	// Exact match.
	policy, err := PolicyForYear("2023-24")
	require.NoError(t, err)
	assert.Equal(t, FiscalYear("2023-24"), policy.FiscalYear)

	// Later years reuse the latest registered table.
	policy, err = PolicyForYear("2026-27")
	require.NoError(t, err)
	assert.Equal(t, FiscalYear("2023-24"), policy.FiscalYear)

	// Years before any table are an error.
	_, err = PolicyForYear("2010-11")
	assert.ErrorIs(t, err, ErrUnknownPolicyYear)
}

func TestDeductionSetTotal(t *testing.T) {
	ds := DeductionSet{
		Section80C: decimal.NewFromInt(150000),
		"80Z":      decimal.NewFromInt(7000), // unknown sections still count toward the claimed total
	}
	assert.True(t, ds.Total().Equal(decimal.NewFromInt(157000)))
}

func TestAgeBandForAge(t *testing.T) {
	assert.Equal(t, AgeBandGeneral, AgeBandForAge(0))
	assert.Equal(t, AgeBandGeneral, AgeBandForAge(59))
	assert.Equal(t, AgeBandSenior, AgeBandForAge(60))
	assert.Equal(t, AgeBandSenior, AgeBandForAge(79))
	assert.Equal(t, AgeBandSuperSenior, AgeBandForAge(80))
	assert.Equal(t, AgeBandSuperSenior, AgeBandForAge(100))
}
