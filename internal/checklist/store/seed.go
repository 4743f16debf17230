package store

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"checkpoint/internal/checklist/models"
)

// Seed is the YAML checklist document:
//
//	order: [seguridad, gente]
//	pillars:
//	  - id: seguridad
//	    name: Seguridad
//	    standards:
//	      - id: S-1
//	        description: ...
//	        requirements:
//	          - id: S-1.1
//	            operational: ...
//	            guidance: ...
type Seed struct {
	Order   []string        `yaml:"order"`
	Pillars []models.Pillar `yaml:"pillars"`
}

// PillarOrder returns the display order declared by the seed, if any.
func (s Seed) PillarOrder() models.PillarOrder {
	return models.ParsePillarOrder(s.Order)
}

// ParseSeed decodes a seed document. Unknown keys are rejected.
func ParseSeed(r io.Reader) (Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if err == io.EOF {
			return Seed{}, fmt.Errorf("seed is empty")
		}
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	if len(seed.Pillars) == 0 {
		return Seed{}, fmt.Errorf("seed declares no pillars")
	}
	return seed, nil
}

// LoadSeed reads and decodes the seed file at path.
func LoadSeed(path string) (Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return Seed{}, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return ParseSeed(f)
}
