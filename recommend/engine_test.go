package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"assessrec/catalog"
)

type stubEmbedder struct {
	vector    []float32
	err       error
	calls     int
	lastTexts []string
}

func (s *stubEmbedder) GetEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	s.lastTexts = texts
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vector
	}
	return out, nil
}

type stubExtractor struct {
	text  string
	err   error
	calls int
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.text, s.err
}

func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Model:     "all-MiniLM-L6-v2",
		Dimension: 2,
		Items: []catalog.Item{
			{Name: "Java Test", Link: "https://example.com/java"},
			{Name: "SQL Test", Link: "https://example.com/sql"},
			{Name: "Java Test", Link: "https://example.com/java-adv"},
		},
		Embeddings: [][]float32{
			{1, 0},
			{0, 1},
			{0.8, 0.6},
		},
	}
}

func newTestEngine(embedder *stubEmbedder, extractor *stubExtractor) *Engine {
	return NewEngine(embedder, testSnapshot(), extractor, zap.NewNop())
}

func TestRecommendRanksAndDedupes(t *testing.T) {
	// Query along (1,1): row 2 (the duplicate Java Test) scores highest,
	// so the surviving Java Test entry must carry row 2's link and score.
	embedder := &stubEmbedder{vector: []float32{1, 1}}
	engine := newTestEngine(embedder, &stubExtractor{})

	res, err := engine.Recommend(context.Background(), "java developer", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.NoContent {
		t.Fatalf("unexpected NoContent result")
	}
	if len(res.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(res.Recommendations))
	}

	first := res.Recommendations[0]
	if first.TestName != "Java Test" || first.Link != "https://example.com/java-adv" {
		t.Errorf("expected best-scoring Java Test row first, got %+v", first)
	}
	// cos((1,1),(0.8,0.6)) = 1.4/sqrt(2) ≈ 0.9899
	if first.Similarity != 0.99 {
		t.Errorf("expected similarity 0.99, got %v", first.Similarity)
	}
	if first.MatchPercentage != 99 {
		t.Errorf("expected 99%%, got %d", first.MatchPercentage)
	}

	if res.Recommendations[1].TestName != "SQL Test" {
		t.Errorf("expected SQL Test second, got %s", res.Recommendations[1].TestName)
	}
}

func TestRecommendPlainQuerySkipsExtraction(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0}}
	extractor := &stubExtractor{}
	engine := newTestEngine(embedder, extractor)

	if _, err := engine.Recommend(context.Background(), "hiring a data analyst", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if extractor.calls != 0 {
		t.Errorf("extractor must not be called for plain text queries")
	}
	if len(embedder.lastTexts) != 1 || embedder.lastTexts[0] != "hiring a data analyst" {
		t.Errorf("query text must be embedded verbatim, got %v", embedder.lastTexts)
	}
}

func TestRecommendURLQueryUsesExtractedText(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0}}
	extractor := &stubExtractor{text: "senior java engineer posting"}
	engine := newTestEngine(embedder, extractor)

	if _, err := engine.Recommend(context.Background(), "https://jobs.example.com/123", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if extractor.calls != 1 {
		t.Fatalf("expected 1 extraction call, got %d", extractor.calls)
	}
	if embedder.lastTexts[0] != "senior java engineer posting" {
		t.Errorf("expected extracted text to be embedded, got %q", embedder.lastTexts[0])
	}
}

func TestRecommendEmptyExtractionYieldsNoContent(t *testing.T) {
	testCases := []struct {
		name      string
		extractor *stubExtractor
	}{
		{"EmptyText", &stubExtractor{text: ""}},
		{"ExtractionError", &stubExtractor{err: errors.New("connection refused")}},
		{"WhitespaceOnly", &stubExtractor{text: "   \n\t"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			embedder := &stubEmbedder{vector: []float32{1, 0}}
			engine := newTestEngine(embedder, tc.extractor)

			res, err := engine.Recommend(context.Background(), "https://jobs.example.com/void", 5)
			if err != nil {
				t.Fatalf("extraction failure must not be an error, got %v", err)
			}

			if !res.NoContent {
				t.Errorf("expected NoContent result")
			}
			if res.Recommendations == nil || len(res.Recommendations) != 0 {
				t.Errorf("expected empty non-nil recommendations, got %v", res.Recommendations)
			}
			if embedder.calls != 0 {
				t.Errorf("no embedding call may happen without content, got %d", embedder.calls)
			}
		})
	}
}

func TestRecommendValidation(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0}}
	engine := newTestEngine(embedder, &stubExtractor{})
	ctx := context.Background()

	if _, err := engine.Recommend(ctx, "", 5); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("empty query: expected ErrEmptyQuery, got %v", err)
	}
	if _, err := engine.Recommend(ctx, "   ", 5); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("blank query: expected ErrEmptyQuery, got %v", err)
	}
	if _, err := engine.Recommend(ctx, "query", 0); !errors.Is(err, ErrInvalidTopN) {
		t.Errorf("topN=0: expected ErrInvalidTopN, got %v", err)
	}

	if embedder.calls != 0 {
		t.Errorf("validation errors must reject before any scoring work")
	}
}

func TestRecommendEmbedderFailure(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("service unavailable")}
	engine := newTestEngine(embedder, &stubExtractor{})

	if _, err := engine.Recommend(context.Background(), "query", 5); err == nil {
		t.Fatalf("expected error when embedding fails")
	}
}

func TestRecommendDeterministic(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.3, 0.7}}
	engine := newTestEngine(embedder, &stubExtractor{})
	ctx := context.Background()

	first, err := engine.Recommend(ctx, "analyst", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Recommend(ctx, "analyst", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated requests diverged:\n%+v\n%+v", first, second)
	}
}

func TestVerify(t *testing.T) {
	t.Run("MatchingDimension", func(t *testing.T) {
		engine := newTestEngine(&stubEmbedder{vector: []float32{1, 0}}, &stubExtractor{})
		if err := engine.Verify(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("MismatchedDimension", func(t *testing.T) {
		engine := newTestEngine(&stubEmbedder{vector: []float32{1, 0, 0}}, &stubExtractor{})
		err := engine.Verify(context.Background())
		if !errors.Is(err, ErrDimensionMismatch) {
			t.Fatalf("expected ErrDimensionMismatch, got %v", err)
		}
	})
}
