package repository

import (
	"context"

	"novated-lease/domain"
)

// QuoteRepository persists quote and lead records. Implementations should
// honour ctx cancellation.
type QuoteRepository interface {
	Save(ctx context.Context, record domain.QuoteRecord) (domain.QuoteRecord, error)
}
