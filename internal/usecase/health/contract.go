package health

import "context"

// CatalogChecker reports whether catalog data and the fitted vector
// space are available.
type CatalogChecker interface {
	Ready() error
}

// CachePinger checks the fetched-content cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
