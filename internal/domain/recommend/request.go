package recommend

import (
	"fmt"
	"strings"
)

// Request parameter limits.
const (
	DefaultMaxResults = 10
	MaxMaxResults     = 10
	MaxQueryLength    = 16384
)

// Request is a validated recommendation query.
type Request struct {
	query      string
	url        string
	maxResults int
}

// NewRequest validates and normalizes recommendation parameters.
// maxResults is clamped to [1, 10]; 0 means the default of 10.
// A blank url is treated as absent.
func NewRequest(query, url string, maxResults int) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxMaxResults {
		maxResults = MaxMaxResults
	}
	return Request{
		query:      query,
		url:        strings.TrimSpace(url),
		maxResults: maxResults,
	}, nil
}

// Query returns the free-text query or job description.
func (r Request) Query() string { return r.query }

// URL returns the optional job posting URL ("" when absent).
func (r Request) URL() string { return r.url }

// MaxResults returns the result cap, always in [1, 10].
func (r Request) MaxResults() int { return r.maxResults }
