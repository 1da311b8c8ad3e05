package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestScoresKnownValues(t *testing.T) {
	query := []float32{1, 0}
	matrix := [][]float32{
		{1, 0},  // identical
		{0, 1},  // orthogonal
		{-1, 0}, // opposite
		{2, 0},  // same direction, different magnitude
	}

	scores, err := Scores(query, matrix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{1, 0, -1, 1}
	for i := range want {
		if math.Abs(scores[i]-want[i]) > 1e-9 {
			t.Errorf("score[%d] = %v, want %v", i, scores[i], want[i])
		}
	}
}

func TestScoresZeroVectors(t *testing.T) {
	t.Run("ZeroQuery", func(t *testing.T) {
		scores, err := Scores([]float32{0, 0}, [][]float32{{1, 2}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if scores[0] != 0 {
			t.Errorf("expected 0.0 for zero query, got %v", scores[0])
		}
	})

	t.Run("ZeroRow", func(t *testing.T) {
		scores, err := Scores([]float32{1, 2}, [][]float32{{0, 0}, {1, 2}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if scores[0] != 0 {
			t.Errorf("expected 0.0 for zero row, got %v", scores[0])
		}
		if math.IsNaN(scores[0]) || math.IsNaN(scores[1]) {
			t.Errorf("scores must never be NaN: %v", scores)
		}
	})
}

func TestScoresDimensionMismatch(t *testing.T) {
	_, err := Scores([]float32{1, 2, 3}, [][]float32{{1, 2}})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestScoresDeterministic(t *testing.T) {
	query := []float32{0.3, -0.7, 0.64}
	matrix := [][]float32{
		{0.11, 0.52, -0.9},
		{0.45, 0.45, 0.45},
		{-0.2, 0.33, 0.87},
	}

	first, err := Scores(query, matrix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Scores(query, matrix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scoring diverged: %v vs %v", first, second)
	}
}
