package recommend

import (
	"fmt"
	"math"
)

// Scores computes the cosine similarity of query against every matrix row in
// one pass. The query norm is computed once; each row costs a single scan.
// Zero-norm vectors on either side score 0.0 instead of propagating NaN.
func Scores(query []float32, matrix [][]float32) ([]float64, error) {
	var queryNorm float64
	for _, v := range query {
		queryNorm += float64(v) * float64(v)
	}
	queryNorm = math.Sqrt(queryNorm)

	scores := make([]float64, len(matrix))
	for i, row := range matrix {
		if len(row) != len(query) {
			return nil, fmt.Errorf("%w: query has %d dimensions, matrix row %d has %d",
				ErrDimensionMismatch, len(query), i, len(row))
		}

		var dot, rowNorm float64
		for j, v := range row {
			dot += float64(query[j]) * float64(v)
			rowNorm += float64(v) * float64(v)
		}

		if queryNorm == 0 || rowNorm == 0 {
			scores[i] = 0
			continue
		}
		scores[i] = dot / (queryNorm * math.Sqrt(rowNorm))
	}

	return scores, nil
}
