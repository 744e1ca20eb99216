package service

import (
	"context"

	"novated-lease/domain"
)

type QuoteService struct {
	analyzer *QuoteAnalyzer
	recorder *Recorder
}

func NewQuoteService(analyzer *QuoteAnalyzer, recorder *Recorder) *QuoteService {
	return &QuoteService{analyzer: analyzer, recorder: recorder}
}

type quoteAnalysisRecord struct {
	Input  domain.QuoteAnalysisInput `json:"input"`
	Result domain.QuoteAnalysis      `json:"result"`
}

func (s *QuoteService) AnalyzeQuote(ctx context.Context, input domain.QuoteAnalysisInput) (domain.QuoteAnalysis, error) {
	result, err := s.analyzer.Analyze(input)
	if err != nil {
		return domain.QuoteAnalysis{}, err
	}
	_, _ = s.recorder.Record(ctx, domain.RecordQuoteAnalysis, quoteAnalysisRecord{Input: input, Result: result})
	return result, nil
}
