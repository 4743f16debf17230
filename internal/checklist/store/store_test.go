package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkpoint/internal/checklist/models"
	id "checkpoint/pkg/domain"
)

const seedYAML = `
order: [seguridad, gente]
pillars:
  - id: gente
    name: Gente
    standards:
      - id: G-1
        description: Induccion
        requirements:
          - id: G-1.1
            operational: Existe plan de induccion
            guidance: Ver registros
  - id: seguridad
    name: Seguridad
    standards:
      - id: S-1
        description: EPP
        requirements:
          - id: S-1.1
            operational: Uso de casco
          - id: S-1.2
            operational: Uso de guantes
`

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	assert.Equal(t, models.PillarOrder{"seguridad", "gente"}, seed.PillarOrder())
	require.Len(t, seed.Pillars, 2)
	assert.Equal(t, "Existe plan de induccion", seed.Pillars[0].Standards[0].Requirements[0].Operational)

	tree := models.NewTree(seed.Pillars)
	assert.Equal(t, 3, tree.TotalRequirements())
}

func TestParseSeedErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"no pillars", "order: [a]\n"},
		{"unknown field", "pillars:\n  - id: a\n    colour: red\n"},
		{"malformed", "pillars: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checklist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Len(t, seed.Pillars, 2)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	seed, err := ParseSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	s := NewInMemory(nil)
	tree, err := s.LoadTree(ctx)
	require.NoError(t, err)
	assert.Zero(t, tree.TotalRequirements())

	require.NoError(t, s.ReplaceTree(ctx, seed.Pillars))
	seed.Pillars[0].Name = "mutated"

	tree, err = s.LoadTree(ctx)
	require.NoError(t, err)
	p, ok := tree.Pillar("gente")
	require.True(t, ok)
	assert.Equal(t, "Gente", p.Name, "store keeps its own copy")

	n, err := s.CountRequirements(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	pid, sid, ok := tree.Locate(id.RequirementID("S-1.2"))
	require.True(t, ok)
	assert.Equal(t, id.PillarID("seguridad"), pid)
	assert.Equal(t, id.StandardID("S-1"), sid)
}
