package domain

import "errors"

var (
	// ErrCatalogUnavailable signals that no catalog data is loaded.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrIndexNotFitted signals use of the lexical index before Fit.
	ErrIndexNotFitted = errors.New("index not fitted")
	// ErrFetchUnavailable signals that URL content could not be retrieved.
	ErrFetchUnavailable = errors.New("url content unavailable")
	// ErrNoLabeledData signals that no labeled test case matches a query.
	ErrNoLabeledData = errors.New("no labeled data for query")
)
