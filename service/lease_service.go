package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"novated-lease/domain"
	"novated-lease/repository"
)

type LeaseService struct {
	calculator *LeaseCalculator
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	recorder   *Recorder
	logger     *zap.Logger
}

// NewLeaseService creates a LeaseService. cache and recorder may be nil.
func NewLeaseService(
	calculator *LeaseCalculator,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	recorder *Recorder,
	logger *zap.Logger,
) *LeaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaseService{
		calculator: calculator,
		cache:      cache,
		cacheTTL:   cacheTTL,
		recorder:   recorder,
		logger:     logger,
	}
}

type leaseRecord struct {
	Input  domain.LeaseInput  `json:"input"`
	Result domain.LeaseResult `json:"result"`
}

// CalculateLease runs the lease calculation, serving repeat inputs from the
// cache. Cache and persistence failures are logged only.
func (s *LeaseService) CalculateLease(
	ctx context.Context,
	input domain.LeaseInput,
) (domain.LeaseResult, error) {

	key, keyErr := cacheKey("lease", s.calculator.tables.Version, input)
	if keyErr == nil {
		if result, ok := s.cached(ctx, key); ok {
			s.record(ctx, input, result)
			return result, nil
		}
	}

	result, err := s.calculator.Calculate(input)
	if err != nil {
		return domain.LeaseResult{}, err
	}

	if keyErr == nil && s.cache != nil {
		if body, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, string(body), s.cacheTTL); err != nil {
				s.logger.Warn("failed to cache lease result", zap.String("key", key), zap.Error(err))
			}
		}
	}

	s.record(ctx, input, result)
	return result, nil
}

func (s *LeaseService) cached(ctx context.Context, key string) (domain.LeaseResult, bool) {
	if s.cache == nil {
		return domain.LeaseResult{}, false
	}
	val, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.LeaseResult{}, false
	}
	var result domain.LeaseResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return domain.LeaseResult{}, false
	}
	return result, true
}

func (s *LeaseService) record(ctx context.Context, input domain.LeaseInput, result domain.LeaseResult) {
	// best effort, the recorder logs failures
	_, _ = s.recorder.Record(ctx, domain.RecordLeaseQuote, leaseRecord{Input: input, Result: result})
}

// cacheKey hashes the canonical JSON of v. The tables version is part of the
// key so a new snapshot never serves stale figures.
func cacheKey(prefix, version string, v interface{}) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%016x", prefix, version, xxhash.Sum64(body)), nil
}
