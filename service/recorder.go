package service

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"novated-lease/domain"
	"novated-lease/repository"
)

// Recorder hands records to persistence under a timeout. A failed or slow
// save is logged and returned to the caller as a soft error; it never holds a
// calculation for longer than the timeout.
type Recorder struct {
	repo    repository.QuoteRepository
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewRecorder(repo repository.QuoteRepository, timeout time.Duration, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Recorder{repo: repo, timeout: timeout, logger: logger, now: time.Now}
}

type saveResult struct {
	record domain.QuoteRecord
	err    error
}

// Record saves payload as a new record and returns its id. The id is returned
// even when the save fails so callers can still reference the quote.
func (r *Recorder) Record(ctx context.Context, kind domain.RecordKind, payload interface{}) (string, error) {
	if r == nil || r.repo == nil {
		return "", nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		r.logger.Warn("failed to encode record", zap.String("kind", string(kind)), zap.Error(err))
		return "", errors.Wrap(err, "failed to encode record")
	}

	now := r.now()
	record := domain.QuoteRecord{
		ID:        uuid.NewString(),
		Kind:      kind,
		QuotedOn:  civil.DateOf(now),
		CreatedAt: now.UTC(),
		Payload:   body,
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan saveResult, 1)
	go func() {
		saved, err := r.repo.Save(ctx, record)
		done <- saveResult{record: saved, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			r.logger.Warn("failed to save record",
				zap.String("kind", string(kind)), zap.String("id", record.ID), zap.Error(res.err))
			return record.ID, res.err
		}
		if res.record.ID == "" {
			return record.ID, nil
		}
		return res.record.ID, nil
	case <-ctx.Done():
		r.logger.Warn("timed out saving record",
			zap.String("kind", string(kind)), zap.String("id", record.ID), zap.Duration("timeout", r.timeout))
		return record.ID, errors.Wrap(ctx.Err(), "save timed out")
	}
}
