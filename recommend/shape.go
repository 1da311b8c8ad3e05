package recommend

import "math"

// Record is the wire shape of a single recommendation. Field names follow
// the public API contract; all descriptive fields pass through from the
// catalog unchanged.
type Record struct {
	TestName        string  `json:"test_name"`
	Link            string  `json:"link"`
	RemoteTesting   string  `json:"remote_testing"`
	AdaptiveIRT     string  `json:"adaptive_irt"`
	Duration        string  `json:"duration"`
	TestTypes       string  `json:"test_types"`
	Similarity      float64 `json:"similarity"`
	MatchPercentage int     `json:"match_percentage"`
}

// Shape converts ranked matches into output records. Similarity is the raw
// score rounded half away from zero to 3 decimals; the percentage is the
// rounded score times 100, truncated toward zero.
func Shape(matches []Match) []Record {
	records := make([]Record, len(matches))
	for i, m := range matches {
		rounded := roundScore(m.Score)
		records[i] = Record{
			TestName:        m.Item.Name,
			Link:            m.Item.Link,
			RemoteTesting:   m.Item.RemoteTesting,
			AdaptiveIRT:     m.Item.AdaptiveIRT,
			Duration:        m.Item.Duration,
			TestTypes:       m.Item.TestTypes,
			Similarity:      rounded,
			MatchPercentage: int(math.Trunc(rounded * 100)),
		}
	}
	return records
}

func roundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}
