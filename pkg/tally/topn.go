package tally

import (
	"fmt"
	"sort"
)

// Count is one ranked key.
type Count struct {
	Key   string `json:"key" yaml:"key"`
	Value int    `json:"value" yaml:"value"`
}

// String formats the count as "key:value" (e.g., "typography-h2:14").
func (c Count) String() string {
	return fmt.Sprintf("%s:%d", c.Key, c.Value)
}

// Top returns the n most frequent keys. Ties are broken by key so the
// ranking is stable across runs.
func Top(counts map[string]int, n int) []Count {
	ss := make([]Count, 0, len(counts))
	for k, v := range counts {
		if v > 0 {
			ss = append(ss, Count{k, v})
		}
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}
	return ss[:limit]
}
