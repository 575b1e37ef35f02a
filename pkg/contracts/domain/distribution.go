package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ScoreDistribution is the published summary of one score column: ten
// histogram bin counts, the matching bin boundaries, and the headline
// statistics. Name, SynID and WikiID are attached by the distribution
// dataset transform and stay empty for bare calculations.
type ScoreDistribution struct {
	Distribution  []int        `json:"distribution"`
	Bins          [][2]float64 `json:"bins"`
	Min           float64      `json:"min"`
	Max           float64      `json:"max"`
	Mean          float64      `json:"mean"`
	FirstQuartile float64      `json:"first_quartile"`
	ThirdQuartile float64      `json:"third_quartile"`
	Name          string       `json:"name,omitempty"`
	SynID         string       `json:"syn_id,omitempty"`
	WikiID        string       `json:"wiki_id,omitempty"`
}

// DistributionSet is an insertion-ordered mapping from metric key to
// ScoreDistribution. It marshals to a JSON object whose keys appear in
// insertion order, so published files stay byte-stable across runs.
type DistributionSet struct {
	keys  []string
	byKey map[string]*ScoreDistribution
}

// NewDistributionSet returns an empty set.
func NewDistributionSet() *DistributionSet {
	return &DistributionSet{byKey: make(map[string]*ScoreDistribution)}
}

// Add appends a metric under the given key. Re-adding a key replaces the
// value but keeps the original position.
func (s *DistributionSet) Add(key string, d *ScoreDistribution) {
	if _, ok := s.byKey[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.byKey[key] = d
}

// Get returns the metric stored under key.
func (s *DistributionSet) Get(key string) (*ScoreDistribution, bool) {
	d, ok := s.byKey[key]
	return d, ok
}

// Keys returns the metric keys in insertion order.
func (s *DistributionSet) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of metrics.
func (s *DistributionSet) Len() int {
	return len(s.keys)
}

// MarshalJSON emits the set as a JSON object with keys in insertion
// order.
func (s *DistributionSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(s.byKey[k])
		if err != nil {
			return nil, fmt.Errorf("marshal metric %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
