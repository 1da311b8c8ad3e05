package catalog

// Item is one assessment entry from the catalog. Name is the identity key
// used for deduplication; every other field is passed through to responses
// untouched and plays no role in scoring.
type Item struct {
	Name          string `json:"name"`
	Link          string `json:"link"`
	RemoteTesting string `json:"remote_testing"`
	AdaptiveIRT   string `json:"adaptive_irt"`
	Duration      string `json:"duration"`
	TestTypes     string `json:"test_types"`
}

// Snapshot holds the catalog together with its precomputed embedding matrix.
// Embeddings[i] is the vector for Items[i]; the loader enforces the alignment
// and the snapshot is never mutated after Load, so concurrent readers need no
// locking.
type Snapshot struct {
	Model      string      `json:"model"`
	Dimension  int         `json:"dimension"`
	Items      []Item      `json:"items"`
	Embeddings [][]float32 `json:"embeddings"`
}
