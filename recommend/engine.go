package recommend

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"assessrec/catalog"
	"assessrec/embedding"
)

var urlPattern = regexp.MustCompile(`^https?://`)

// Extractor turns a job-posting URL into plain text.
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (string, error)
}

// Engine ranks catalog entries against a query. It holds the immutable
// snapshot and the embedding client for the process lifetime; every
// per-request structure is freshly allocated, so concurrent Recommend calls
// never share mutable state.
type Engine struct {
	embedder  embedding.Client
	snapshot  *catalog.Snapshot
	extractor Extractor
	logger    *zap.Logger
}

// Result is the outcome of one recommendation request. NoContent marks a
// query that normalized to nothing (URL with no extractable text); it is not
// an error and carries an empty, non-nil recommendation list.
type Result struct {
	Query           string
	NoContent       bool
	Recommendations []Record
}

func NewEngine(embedder embedding.Client, snapshot *catalog.Snapshot, extractor Extractor, logger *zap.Logger) *Engine {
	return &Engine{
		embedder:  embedder,
		snapshot:  snapshot,
		extractor: extractor,
		logger:    logger,
	}
}

// Recommend validates the request, normalizes the query, and runs the
// score/rank/shape pipeline against the catalog.
func (e *Engine) Recommend(ctx context.Context, query string, topN int) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if topN <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTopN, topN)
	}

	text := e.normalize(ctx, query)
	if strings.TrimSpace(text) == "" {
		return &Result{Query: query, NoContent: true, Recommendations: []Record{}}, nil
	}

	vectors, err := e.embedder.GetEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 query vector, got %d", len(vectors))
	}

	scores, err := Scores(vectors[0], e.snapshot.Embeddings)
	if err != nil {
		return nil, err
	}

	matches, err := Rank(e.snapshot.Items, scores, topN)
	if err != nil {
		return nil, err
	}

	return &Result{Query: query, Recommendations: Shape(matches)}, nil
}

// normalize resolves URL queries to extracted page text and leaves plain
// queries untouched. Extraction failure is not an error here: it resolves to
// an empty string, which Recommend reports as a NoContent result.
func (e *Engine) normalize(ctx context.Context, query string) string {
	if !urlPattern.MatchString(query) {
		return query
	}

	text, err := e.extractor.Extract(ctx, query)
	if err != nil {
		e.logger.Info("url extraction failed", zap.String("url", query), zap.Error(err))
		return ""
	}
	return text
}

// Verify embeds a probe text and checks its dimensionality against the
// snapshot. Run once at startup; a mismatch means the configured embedding
// model is not the one the snapshot was built with.
func (e *Engine) Verify(ctx context.Context) error {
	vectors, err := e.embedder.GetEmbeddings(ctx, []string{"dimension probe"})
	if err != nil {
		return fmt.Errorf("failed to probe embedding service: %w", err)
	}
	if len(vectors) != 1 {
		return fmt.Errorf("expected 1 probe vector, got %d", len(vectors))
	}
	if len(vectors[0]) != e.snapshot.Dimension {
		return fmt.Errorf("%w: model produces %d dimensions, snapshot has %d",
			ErrDimensionMismatch, len(vectors[0]), e.snapshot.Dimension)
	}
	return nil
}

// Model reports the snapshot's model name.
func (e *Engine) Model() string {
	return e.snapshot.Model
}

// Size reports the number of catalog rows.
func (e *Engine) Size() int {
	return len(e.snapshot.Items)
}
