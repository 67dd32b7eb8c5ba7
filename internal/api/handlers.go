// handlers.go - HTTP handlers over the tax calculation engine.
//
// Every handler follows the same shape: decode, validate through the
// engine, serialize. There is no persistence and no authentication; the
// engine is a pure function of its inputs.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxgo/taxgo/internal/calculation"
	"github.com/taxgo/taxgo/internal/domain"
)

var twelve = decimal.NewFromInt(12)

// Handler holds the handler dependencies.
type Handler struct {
	// DefaultFiscalYear applies when a request carries none. Empty means
	// "derive from today's date".
	DefaultFiscalYear string
}

// NewHandler creates a new handler.
func NewHandler(defaultFiscalYear string) *Handler {
	return &Handler{DefaultFiscalYear: defaultFiscalYear}
}

// calculatorFor builds a calculator for the request's fiscal year,
// falling back to the handler default.
func (h *Handler) calculatorFor(fiscalYear string) (*calculation.Calculator, error) {
	if fiscalYear == "" {
		fiscalYear = h.DefaultFiscalYear
	}
	return calculation.NewCalculator(fiscalYear)
}

// Calculate runs the full pipeline: regime comparison, ITR
// classification and tax-saving suggestions for one scenario.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	calc, err := h.calculatorFor(req.FiscalYear)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	regime := domain.RegimeOld
	if req.Regime != "" {
		regime, err = domain.ParseRegime(req.Regime)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	comparison, err := calc.CompareRegimes(req.GrossTotalIncome(), req.Age, req.DeductionSet())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	selected := comparison.OldRegime
	if regime == domain.RegimeNew {
		selected = comparison.NewRegime
	}

	suggestions := calc.TaxSavingSuggestions(req.DeductionSet())
	form := calc.DetermineITRForm(req.IncomeProfile())

	writeJSON(w, http.StatusOK, CalculateResponse{
		FiscalYear:           string(calc.FiscalYear),
		GrossTotalIncome:     selected.GrossIncome.InexactFloat64(),
		TotalDeductions:      selected.TotalDeductions.InexactFloat64(),
		EligibleDeductions:   selected.EligibleDeductions.InexactFloat64(),
		TaxableIncome:        selected.TaxableIncome.InexactFloat64(),
		TaxPayable:           selected.TaxLiability.InexactFloat64(),
		EducationCess:        selected.EducationCess.InexactFloat64(),
		TotalTaxLiability:    selected.TotalTaxLiability.InexactFloat64(),
		RecommendedITRForm:   string(form),
		MonthlyInstallment:   selected.TotalTaxLiability.Div(twelve).InexactFloat64(),
		BetterRegime:         string(comparison.BetterRegime),
		RegimeSavings:        comparison.Savings.InexactFloat64(),
		TaxSavingPotential:   calculation.SavingPotential(suggestions).InexactFloat64(),
		TaxSavingSuggestions: suggestionDTOs(suggestions),
	})
}

// Compare returns the old-vs-new regime comparison for one scenario.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	calc, err := h.calculatorFor(req.FiscalYear)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comparison, err := calc.CompareRegimes(req.GrossTotalIncome(), req.Age, req.DeductionSet())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, compareResponse(comparison))
}

// ITRForm classifies the income profile into a return form.
func (h *Handler) ITRForm(w http.ResponseWriter, r *http.Request) {
	var req ITRFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	calc, err := h.calculatorFor("")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sources := make([]domain.IncomeSource, 0, len(req.IncomeSources))
	for _, s := range req.IncomeSources {
		sources = append(sources, domain.IncomeSource(s))
	}

	form := calc.DetermineITRForm(domain.IncomeProfile{
		Sources:           sources,
		HasCapitalGains:   req.HasCapitalGains,
		HasForeignIncome:  req.HasForeignIncome,
		HasBusinessIncome: req.HasBusinessIncome,
	})

	writeJSON(w, http.StatusOK, ITRFormResponse{ITRForm: string(form)})
}

// Suggestions returns the tax-saving checklist diff for a deduction map.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req SuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	calc, err := h.calculatorFor(req.FiscalYear)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds := make(domain.DeductionSet, len(req.Deductions))
	for section, amount := range req.Deductions {
		ds[section] = decimal.NewFromFloat(amount)
	}

	writeJSON(w, http.StatusOK, map[string][]SuggestionDTO{
		"suggestions": suggestionDTOs(calc.TaxSavingSuggestions(ds)),
	})
}

// FiscalYear reports the current fiscal year and its date range.
func (h *Handler) FiscalYear(w http.ResponseWriter, r *http.Request) {
	fy := domain.CurrentFiscalYear()
	start, end := fy.Dates()
	writeJSON(w, http.StatusOK, FiscalYearResponse{
		FiscalYear: string(fy),
		StartDate:  start.Format(time.RFC3339),
		EndDate:    end.Format(time.RFC3339),
	})
}

// writeDomainError maps engine validation failures to 400s.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidIncome),
		errors.Is(err, domain.ErrInvalidAge),
		errors.Is(err, domain.ErrInvalidFiscalYear),
		errors.Is(err, domain.ErrUnknownPolicyYear):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
