package recommend

import "errors"

var (
	// ErrEmptyQuery rejects requests whose query is blank.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidTopN rejects non-positive result limits.
	ErrInvalidTopN = errors.New("top_n must be a positive integer")

	// ErrDimensionMismatch reports a query vector that does not match the
	// embedding matrix. The loader and the startup probe guarantee this
	// cannot happen; seeing it means a broken snapshot/model pairing, so it
	// surfaces as an internal error rather than a silent wrong answer.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
