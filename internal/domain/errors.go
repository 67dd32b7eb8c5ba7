package domain

import "errors"

// Validation failures surfaced by the engine. All are terminal for the
// call that produced them; nothing is retryable.
var (
	// ErrInvalidIncome is returned for negative gross or taxable income.
	ErrInvalidIncome = errors.New("income cannot be negative")

	// ErrInvalidAge is returned for a negative taxpayer age.
	ErrInvalidAge = errors.New("age cannot be negative")

	// ErrInvalidFiscalYear is returned for a malformed fiscal year tag.
	ErrInvalidFiscalYear = errors.New("invalid fiscal year")

	// ErrUnknownPolicyYear is returned when no tax policy table can be
	// resolved for a fiscal year.
	ErrUnknownPolicyYear = errors.New("no tax policy for fiscal year")
)
