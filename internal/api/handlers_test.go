package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(NewHandler("2023-24"), nil))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestCalculateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/tax/calculate", map[string]any{
		"fiscal_year":  "2023-24",
		"age":          35,
		"regime":       "new",
		"gross_salary": 900000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "2023-24", body["fiscal_year"])
	assert.InDelta(t, 900000, body["gross_total_income"], 0.01)
	assert.InDelta(t, 60000, body["tax_payable"], 0.01)
	assert.InDelta(t, 2400, body["education_cess"], 0.01)
	assert.InDelta(t, 62400, body["total_tax_liability"], 0.01)
	assert.InDelta(t, 5200, body["monthly_tax_installment"], 0.01)
	assert.Equal(t, "ITR-1", body["recommended_itr_form"])
	assert.Equal(t, "new", body["better_regime"])
	assert.NotEmpty(t, body["tax_saving_suggestions"])
}

func TestCalculateEndpointDefaultsRegimeToOld(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/tax/calculate", map[string]any{
		"age":          35,
		"gross_salary": 1500000,
		"deductions":   map[string]float64{"80C": 200000, "80D": 30000},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.InDelta(t, 175000, body["eligible_deductions"], 0.01)
	assert.InDelta(t, 1325000, body["taxable_income"], 0.01)
	assert.InDelta(t, 218400, body["total_tax_liability"], 0.01)
}

func TestCalculateEndpointRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	t.Run("malformed JSON", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/tax/calculate", "application/json",
			bytes.NewReader([]byte("{not json")))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("negative income", func(t *testing.T) {
		resp, body := postJSON(t, srv.URL+"/api/tax/calculate", map[string]any{
			"age": 35, "gross_salary": -100000,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "income")
	})

	t.Run("invalid fiscal year", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/api/tax/calculate", map[string]any{
			"fiscal_year": "2023-26", "age": 35, "gross_salary": 500000,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown regime", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/api/tax/calculate", map[string]any{
			"age": 35, "gross_salary": 500000, "regime": "flat",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCompareEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/tax/compare", map[string]any{
		"age":          35,
		"gross_salary": 1500000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "new", body["better_regime"])
	assert.InDelta(t, 78000, body["savings"], 0.01)

	oldRegime, ok := body["old_regime"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 273000, oldRegime["total_tax_liability"], 0.01)
	newRegime, ok := body["new_regime"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 195000, newRegime["total_tax_liability"], 0.01)
}

func TestITRFormEndpoint(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name     string
		request  map[string]any
		expected string
	}{
		{
			name:     "salary only",
			request:  map[string]any{"income_sources": []string{"salary"}},
			expected: "ITR-1",
		},
		{
			name: "capital gains",
			request: map[string]any{
				"income_sources":    []string{"salary", "capital_gains"},
				"has_capital_gains": true,
			},
			expected: "ITR-2",
		},
		{
			name: "presumptive business",
			request: map[string]any{
				"income_sources":      []string{"presumptive_income"},
				"has_business_income": true,
			},
			expected: "ITR-4",
		},
		{
			name: "regular business",
			request: map[string]any{
				"income_sources":      []string{"salary", "business_income"},
				"has_business_income": true,
			},
			expected: "ITR-3",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := postJSON(t, srv.URL+"/api/tax/itr-form", tc.request)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.expected, body["itr_form"])
		})
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/tax/suggestions", map[string]any{
		"fiscal_year": "2023-24",
		"deductions":  map[string]float64{"80C": 150000},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	suggestions, ok := body["suggestions"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, suggestions)
	for _, raw := range suggestions {
		s := raw.(map[string]any)
		assert.NotEqual(t, "80C", s["section"], "exhausted section must not be suggested")
	}
}

func TestFiscalYearEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/tax/fiscal-year")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body FiscalYearResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.FiscalYear)
	assert.NotEmpty(t, body.StartDate)
	assert.NotEmpty(t, body.EndDate)
}
