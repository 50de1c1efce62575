package recommend

import (
	"context"

	"github.com/hirebase/assessrec/internal/index"
)

// Vectorizer is the fitted lexical vector space over the catalog.
type Vectorizer interface {
	Fitted() bool
	Vectorize(text string) index.Vector
	Vectors() []index.Vector
}

// Fetcher retrieves plain-text content from a URL.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}
