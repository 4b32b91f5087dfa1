package regulation_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/errors"
	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
)

func TestRegistryList(t *testing.T) {
	r := regulation.NewRegistry()

	ids := r.List()
	require.NotEmpty(t, ids)
	assert.True(t, sort.StringsAreSorted(ids))
	assert.Contains(t, ids, regulation.GLBA)
	assert.Contains(t, ids, regulation.FCRA)
	assert.Contains(t, ids, regulation.TILA)
	assert.Contains(t, ids, regulation.EFTA)
	assert.Contains(t, ids, regulation.CCPACPRA)
	assert.Contains(t, ids, regulation.NYDFS)
}

func TestRegistryGet(t *testing.T) {
	r := regulation.NewRegistry()

	t.Run("known regulation", func(t *testing.T) {
		def, err := r.Get(regulation.GLBA)
		require.NoError(t, err)
		require.NotNil(t, def)
		assert.Equal(t, regulation.GLBA, def.ID)
		require.Len(t, def.Clauses, 2)
		assert.Equal(t, "Financial Privacy Notice", def.Clauses[0].Name)
		assert.Equal(t, "Data Safeguards Program", def.Clauses[1].Name)
		assert.Equal(t, regulation.RiskHigh, def.Clauses[0].RiskLevel)
		assert.Equal(t, "15 U.S.C. § 6801-6809", def.Clauses[0].LegalCitation)
	})

	t.Run("unknown regulation", func(t *testing.T) {
		def, err := r.Get("HIPAA")
		assert.Nil(t, def)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestRegistryForJurisdiction(t *testing.T) {
	r := regulation.NewRegistry()

	tests := []struct {
		name string
		code string
		want []string
	}{
		{
			name: "US defaults",
			code: "US",
			want: []string{regulation.CCPACPRA, regulation.EFTA, regulation.FCRA, regulation.GLBA, regulation.TILA},
		},
		{
			name: "global defaults",
			code: "global",
			want: []string{regulation.CCPACPRA},
		},
		{
			name: "unknown code yields empty set",
			code: "EU",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ForJurisdiction(tt.code)
			assert.Equal(t, tt.want, got)
			assert.True(t, sort.StringsAreSorted(got))
		})
	}
}

func TestRegistryForIndustry(t *testing.T) {
	r := regulation.NewRegistry()

	assert.Equal(t,
		[]string{regulation.EFTA, regulation.FCRA, regulation.GLBA, regulation.TILA},
		r.ForIndustry("lending"))
	assert.Empty(t, r.ForIndustry("aerospace"))
}

func TestDefinitionWildcards(t *testing.T) {
	r := regulation.NewRegistry()

	ccpa, err := r.Get(regulation.CCPACPRA)
	require.NoError(t, err)
	assert.True(t, ccpa.AppliesToIndustry("general"))
	assert.True(t, ccpa.AppliesToIndustry("anything_at_all"))
	assert.True(t, ccpa.AppliesToJurisdiction("US_CA"))
	assert.False(t, ccpa.AppliesToJurisdiction("EU"))

	glba, err := r.Get(regulation.GLBA)
	require.NoError(t, err)
	assert.False(t, glba.AppliesToIndustry("general"))
	assert.True(t, glba.AppliesToIndustry("banking"))
}

func TestRiskLevelRoundTrip(t *testing.T) {
	assert.Equal(t, "high", regulation.RiskHigh.String())
	assert.Equal(t, "medium", regulation.RiskMedium.String())
	assert.Equal(t, "low", regulation.RiskLow.String())
	assert.Equal(t, regulation.RiskHigh, regulation.ParseRiskLevel("high"))
	assert.Equal(t, regulation.RiskMedium, regulation.ParseRiskLevel("unrecognized"))

	data, err := regulation.RiskHigh.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"high"`, string(data))

	var lvl regulation.RiskLevel
	require.NoError(t, lvl.UnmarshalJSON([]byte(`"low"`)))
	assert.Equal(t, regulation.RiskLow, lvl)
}
