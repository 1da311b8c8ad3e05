package embedding

import "context"

type EmbeddingRequest struct {
	Inputs []string `json:"inputs"`
}

type EmbeddingResponse [][]float32

// Client maps texts to dense vectors. One vector per input text, in input
// order. A fixed model version produces identical vectors for identical
// texts; the ranking engine relies on that for reproducible results.
type Client interface {
	GetEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}
