package repository

import (
	"context"
	"sync"

	"novated-lease/domain"
)

// QuoteRepositoryMemory is an in-memory implementation of QuoteRepository.
type QuoteRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.QuoteRecord
}

// NewQuoteRepositoryMemory creates a new in-memory quote repository.
func NewQuoteRepositoryMemory() *QuoteRepositoryMemory {
	return &QuoteRepositoryMemory{
		data: []domain.QuoteRecord{},
	}
}

// Save stores the record in memory.
func (r *QuoteRepositoryMemory) Save(
	ctx context.Context,
	record domain.QuoteRecord,
) (domain.QuoteRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.QuoteRecord{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, record)
	return record, nil
}

// Records returns a copy of everything saved so far.
func (r *QuoteRepositoryMemory) Records() []domain.QuoteRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.QuoteRecord, len(r.data))
	copy(out, r.data)
	return out
}
