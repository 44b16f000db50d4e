// Package acquire implements the acquisition pipeline: it walks the resolver's
// candidate sources in order, fetching and extracting until one yields matches.
// Failures of individual candidates are absorbed; only the exhaustion of the
// whole list surfaces as an error.
package acquire

import "errors"

// Sentinel errors for acquisition.
var (
	// ErrExhaustedSources indicates that every candidate source either failed
	// or returned nothing usable. It wraps the last underlying error when one
	// exists.
	ErrExhaustedSources = errors.New("all candidate sources failed or returned nothing")
)
