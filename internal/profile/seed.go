package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"talent-horizon/internal/domain"
)

//go:embed seed.json
var seedJSON []byte

// Seed returns the document a client starts with before any edit.
func Seed() (domain.Profile, error) {
	var p domain.Profile
	if err := json.Unmarshal(seedJSON, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("decode profile seed: %w", err)
	}
	return p, nil
}
