package service

import "github.com/pkg/errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidDeferralPeriod = errors.New("invalid deferral period")
	ErrRateNotConverged      = errors.New("implied rate did not converge")
)

// invalidInput wraps ErrInvalidInput so callers can match it with errors.Is.
func invalidInput(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}
