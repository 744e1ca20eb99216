package service

import (
	"context"

	"go.uber.org/zap"

	"novated-lease/domain"
)

type BYOService struct {
	calculator *BYOCalculator
	recorder   *Recorder
	logger     *zap.Logger
}

func NewBYOService(calculator *BYOCalculator, recorder *Recorder, logger *zap.Logger) *BYOService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BYOService{calculator: calculator, recorder: recorder, logger: logger}
}

type byoRecord struct {
	Input  domain.BYOInput  `json:"input"`
	Result domain.BYOResult `json:"result"`
}

type comparisonRecord struct {
	Input  domain.ComparisonInput  `json:"input"`
	Result domain.ComparisonReport `json:"result"`
}

func (s *BYOService) CalculateBYO(ctx context.Context, input domain.BYOInput) (domain.BYOResult, error) {
	result, err := s.calculator.Calculate(input)
	if err != nil {
		return domain.BYOResult{}, err
	}
	_, _ = s.recorder.Record(ctx, domain.RecordBYOQuote, byoRecord{Input: input, Result: result})
	return result, nil
}

// Compare prices the BYO side of the comparison and sets it against the
// user's existing quote.
func (s *BYOService) Compare(ctx context.Context, input domain.ComparisonInput) (domain.ComparisonReport, error) {
	byo, err := s.calculator.Calculate(input.BYO)
	if err != nil {
		return domain.ComparisonReport{}, err
	}
	comparison, err := s.calculator.Compare(byo, input.Existing)
	if err != nil {
		return domain.ComparisonReport{}, err
	}

	report := domain.ComparisonReport{BYO: byo, Comparison: comparison}
	_, _ = s.recorder.Record(ctx, domain.RecordComparison, comparisonRecord{Input: input, Result: report})
	return report, nil
}
