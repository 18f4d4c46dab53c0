package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and validates the catalog file. The returned catalog is immutable by
// convention: it is shared by reference across all services and never written to
// after this call.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if c.Badges == nil {
		c.Badges = map[string]Badge{}
	}
	if err := c.index(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}
