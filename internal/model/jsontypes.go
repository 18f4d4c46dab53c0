package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSet is an ordered, duplicate-free string collection persisted as a JSON
// array. Order is insertion order, which matters for badges (earned order) and is
// harmless for completed lessons.
type StringSet []string

func (s StringSet) Contains(v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Add appends v if absent and reports whether the set changed.
func (s *StringSet) Add(v string) bool {
	if s.Contains(v) {
		return false
	}
	*s = append(*s, v)
	return true
}

func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		s = StringSet{}
	}
	return json.Marshal(s)
}

func (s *StringSet) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// Performance is one graded lesson outcome. Score is normalized to [0,1] and Time
// is elapsed seconds.
type Performance struct {
	Score float64 `json:"score"`
	Time  float64 `json:"time"`
}

type PerformanceMap map[string]Performance

func (m PerformanceMap) Value() (driver.Value, error) {
	if m == nil {
		m = PerformanceMap{}
	}
	return json.Marshal(m)
}

func (m *PerformanceMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

type CounterMap map[string]int

func (m CounterMap) Value() (driver.Value, error) {
	if m == nil {
		m = CounterMap{}
	}
	return json.Marshal(m)
}

func (m *CounterMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// BlobMap holds opaque per-lesson save data. Each game owns its own shape, so the
// values are kept as raw JSON and never interpreted server-side.
type BlobMap map[string]json.RawMessage

func (m BlobMap) Value() (driver.Value, error) {
	if m == nil {
		m = BlobMap{}
	}
	return json.Marshal(m)
}

func (m *BlobMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// AvatarCustomization is the full five-slot cosmetic record. Saves replace the
// whole record; there are no partial updates.
type AvatarCustomization struct {
	Face            string `json:"face"`
	Headwear        string `json:"headwear"`
	Eyewear         string `json:"eyewear"`
	Clothing        string `json:"clothing"`
	BackgroundColor string `json:"backgroundColor"`
}

func (a AvatarCustomization) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *AvatarCustomization) Scan(value interface{}) error {
	return scanJSON(value, a)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
