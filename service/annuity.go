package service

import (
	"math"

	"github.com/pkg/errors"

	"novated-lease/domain"
)

// AnnuityRequest describes a loan repaid monthly after a deferral period and
// closed out by a balloon. EstablishmentFee is part of Principal but carries
// no interest: it is spread evenly across the payments.
type AnnuityRequest struct {
	Principal        float64
	AnnualRatePct    float64
	TermMonths       int
	DeferMonths      int
	BalloonValue     float64
	EstablishmentFee float64
}

type AnnuityResult struct {
	PeriodicPayment float64
	NPayments       int
	MonthlyRate     float64
}

// EffectiveMonthlyRate converts a nominal annual rate to a monthly rate with
// daily compounding on a 365 day year.
func EffectiveMonthlyRate(annualRatePct float64) float64 {
	daily := annualRatePct / 100 / 365
	return math.Pow(1+daily, 365.0/12) - 1
}

// SolveAnnuity returns the monthly payment, rounded to the cent.
func SolveAnnuity(req AnnuityRequest) (AnnuityResult, error) {
	if err := validateAnnuity(req); err != nil {
		return AnnuityResult{}, err
	}

	r := EffectiveMonthlyRate(req.AnnualRatePct)
	n := req.TermMonths - req.DeferMonths
	payment := annuityPayment(req.Principal-req.EstablishmentFee, r, req.TermMonths, req.DeferMonths, req.BalloonValue)
	if req.EstablishmentFee > 0 {
		payment += req.EstablishmentFee / float64(n)
	}

	return AnnuityResult{
		PeriodicPayment: roundTo2Decimals(payment),
		NPayments:       n,
		MonthlyRate:     r,
	}, nil
}

func validateAnnuity(req AnnuityRequest) error {
	if req.Principal <= 0 {
		return invalidInput("principal must be positive, got %.2f", req.Principal)
	}
	if req.AnnualRatePct < 0 {
		return invalidInput("rate must not be negative, got %.4f", req.AnnualRatePct)
	}
	if req.TermMonths <= 0 {
		return invalidInput("term must be positive, got %d months", req.TermMonths)
	}
	if req.DeferMonths < 0 {
		return invalidInput("deferral must not be negative, got %d months", req.DeferMonths)
	}
	if req.EstablishmentFee < 0 || req.EstablishmentFee > req.Principal {
		return invalidInput("establishment fee %.2f outside principal %.2f", req.EstablishmentFee, req.Principal)
	}
	if req.TermMonths-req.DeferMonths <= 0 {
		return errors.Wrapf(ErrInvalidDeferralPeriod,
			"deferring %d months leaves no payments in a %d month term", req.DeferMonths, req.TermMonths)
	}
	return nil
}

// annuityPayment is the interest-bearing part of the payment: the balloon is
// discounted to time zero, the remainder grows through the deferral and is
// then repaid as an ordinary annuity.
func annuityPayment(principal, r float64, termMonths, deferMonths int, balloon float64) float64 {
	n := float64(termMonths - deferMonths)
	balloonPV := balloon / math.Pow(1+r, float64(termMonths))
	net := principal - balloonPV
	if r == 0 {
		return net / n
	}
	deferral := math.Pow(1+r, float64(deferMonths))
	return net * deferral * r / (1 - math.Pow(1+r, -n))
}

// Schedule lays out the loan month by month. Deferred months capitalise
// interest; the closing balance of the last month is the balloon, give or
// take the cent rounding of the payment.
func Schedule(req AnnuityRequest) ([]domain.ScheduleRow, error) {
	res, err := SolveAnnuity(req)
	if err != nil {
		return nil, err
	}

	var feeShare float64
	if req.EstablishmentFee > 0 {
		feeShare = req.EstablishmentFee / float64(res.NPayments)
	}

	rows := make([]domain.ScheduleRow, 0, req.TermMonths)
	balance := req.Principal - req.EstablishmentFee
	for month := 1; month <= req.TermMonths; month++ {
		interest := balance * res.MonthlyRate
		row := domain.ScheduleRow{
			Month:          month,
			OpeningBalance: roundTo2Decimals(balance),
			Interest:       roundTo2Decimals(interest),
		}
		if month > req.DeferMonths {
			repaid := res.PeriodicPayment - feeShare - interest
			balance -= repaid
			row.Payment = res.PeriodicPayment
			row.Principal = roundTo2Decimals(repaid)
			row.Fee = roundTo2Decimals(feeShare)
		} else {
			balance += interest
		}
		row.ClosingBalance = roundTo2Decimals(balance)
		rows = append(rows, row)
	}
	return rows, nil
}
