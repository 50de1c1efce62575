package evaluate

import (
	"context"

	domrec "github.com/hirebase/assessrec/internal/domain/recommend"
)

// Recommender produces ranked recommendations for a query.
type Recommender interface {
	Recommend(ctx context.Context, req *domrec.Request) ([]domrec.Recommendation, error)
}
