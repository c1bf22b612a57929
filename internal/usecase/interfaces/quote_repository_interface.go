package interfaces

import (
	"context"
	"time"

	"catering_quotes/internal/domain/entities"
)

// IQuoteRepository abstracts quote persistence. Two implementations exist: a
// DynamoDB document store and a local JSON-file fallback; callers never branch
// on which is active beyond reporting Source().
//
// Conventions (shared with the catalog repository):
//   - not-found reads return a zero-value entity and a nil error
//   - UpdateStatus stamps the lifecycle timestamp for the target status only
//     if it is not already present, and always refreshes UpdatedAt
type IQuoteRepository interface {
	Append(ctx context.Context, q entities.Quote) (entities.Quote, error)
	List(ctx context.Context) ([]entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus, at time.Time) (entities.Quote, error)
	Source() string
}
