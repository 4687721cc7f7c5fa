package calculation

import (
	"errors"

	"github.com/rpgo/dca-calculator/internal/domain"
)

var (
	// ErrInvalidDate reports a start date that is missing or not a real calendar date.
	// Callers suppress the result instead of surfacing an error banner.
	ErrInvalidDate = domain.ErrInvalidStartDate
	// ErrEmptySeries reports a price series with no observations.
	ErrEmptySeries = errors.New("price series is empty")
	// ErrNonPositiveContribution reports a monthly contribution that is zero or negative.
	ErrNonPositiveContribution = errors.New("monthly contribution must be positive")
	// ErrNonPositivePrice reports an eligible observation whose close is zero or negative.
	ErrNonPositivePrice = errors.New("closing price must be positive")
	// ErrNegativeRetirementAge reports a retirement age below zero.
	ErrNegativeRetirementAge = errors.New("retirement age cannot be negative")
)
