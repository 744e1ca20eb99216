package repository

import (
	"context"

	"go.uber.org/multierr"

	"novated-lease/domain"
)

// Fanout saves every record to all of its repositories. Every repository is
// attempted; their errors are combined.
type Fanout struct {
	repos []QuoteRepository
}

func NewFanout(repos ...QuoteRepository) *Fanout {
	return &Fanout{repos: repos}
}

func (f *Fanout) Save(ctx context.Context, record domain.QuoteRecord) (domain.QuoteRecord, error) {
	var errs error
	saved := record
	for _, repo := range f.repos {
		out, err := repo.Save(ctx, record)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		saved = out
	}
	return saved, errs
}
