package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditmodels "checkpoint/internal/audits/models"
	auditstore "checkpoint/internal/audits/store"
	"checkpoint/internal/bundle"
	"checkpoint/internal/cache"
	checklist "checkpoint/internal/checklist/models"
	checkliststore "checkpoint/internal/checklist/store"
	progressservice "checkpoint/internal/progress/service"
	id "checkpoint/pkg/domain"
)

const seedYAML = `order: [P2, P1]
pillars:
  - id: P1
    name: Seguridad
    standards:
      - id: S1
        description: Protección personal
        requirements:
          - id: R1
            operational: Uso de EPP
            guidance: Observar en planta
          - id: R2
            operational: Señalización
  - id: P2
    name: Gente
    standards:
      - id: S2
        description: Capacitación
        requirements:
          - id: R3
            operational: Plan anual
`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checklist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ee *exitErr
	require.True(t, errors.As(err, &ee), "expected exitErr, got %v", err)
	return ee.code
}

func TestSeedCommand(t *testing.T) {
	t.Run("dry run summarizes without a database", func(t *testing.T) {
		out, err := execute("seed", "--dry-run", "--database-url", "", writeSeed(t, seedYAML))
		require.NoError(t, err)
		assert.Equal(t, "pillars: 2, standards: 2, requirements: 3\n", out)
	})

	t.Run("duplicates are reported", func(t *testing.T) {
		dup := seedYAML + `  - id: P3
    name: Repetido
    standards:
      - id: S3
        requirements:
          - id: R1
            operational: Otra vez
`
		out, err := execute("seed", "--dry-run", writeSeed(t, dup))
		require.NoError(t, err)
		assert.Contains(t, out, "duplicate ids (first occurrence kept): requirement R1 reused by standard S3")
	})

	t.Run("unknown keys rejected", func(t *testing.T) {
		_, err := execute("seed", "--dry-run", writeSeed(t, "pilars: []\n"))
		assert.Equal(t, 2, exitCode(t, err))
	})

	t.Run("write needs a database url", func(t *testing.T) {
		_, err := execute("seed", "--database-url", "", writeSeed(t, seedYAML))
		assert.Equal(t, 2, exitCode(t, err))
	})
}

func TestRunSeed(t *testing.T) {
	ctx := context.Background()
	seed, err := checkliststore.ParseSeed(bytes.NewBufferString(seedYAML))
	require.NoError(t, err)

	t.Run("loads into an empty store", func(t *testing.T) {
		store := checkliststore.NewInMemory(nil)
		var out bytes.Buffer
		require.NoError(t, runSeed(ctx, &out, store, seed, false))
		n, _ := store.CountRequirements(ctx)
		assert.Equal(t, 3, n)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		store := checkliststore.NewInMemory(seed.Pillars[:1])
		err := runSeed(ctx, &bytes.Buffer{}, store, seed, false)
		assert.Equal(t, 2, exitCode(t, err))
		n, _ := store.CountRequirements(ctx)
		assert.Equal(t, 2, n)
	})

	t.Run("force replaces", func(t *testing.T) {
		store := checkliststore.NewInMemory(seed.Pillars[:1])
		require.NoError(t, runSeed(ctx, &bytes.Buffer{}, store, seed, true))
		n, _ := store.CountRequirements(ctx)
		assert.Equal(t, 3, n)
	})
}

func TestRunProgress(t *testing.T) {
	ctx := context.Background()
	seed, err := checkliststore.ParseSeed(bytes.NewBufferString(seedYAML))
	require.NoError(t, err)

	audits := auditstore.NewInMemory()
	loader := bundle.New(cache.New(time.Minute), checkliststore.NewInMemory(seed.Pillars), audits, audits)
	svc, err := progressservice.New(audits, loader, progressservice.WithPillarOrder(seed.PillarOrder()))
	require.NoError(t, err)

	audit, err := auditmodels.NewAudit(id.NewAuditID(), "PS-20240301-001", "Charata", nil, nil, "", time.Now())
	require.NoError(t, err)
	require.NoError(t, audits.CreateAudit(ctx, audit))
	require.NoError(t, audits.InsertResult(ctx, &auditmodels.Result{
		ID:            id.NewResultID(),
		AuditID:       audit.ID,
		PillarID:      "P1",
		StandardID:    "S1",
		RequirementID: "R1",
		Outcome:       id.OutcomeConforming,
	}))

	t.Run("table follows pillar order", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runProgress(ctx, &out, svc, audit.ID, "table"))
		got := out.String()
		assert.Contains(t, got, "PS-20240301-001  Charata  abierta  1/3 answered")
		assert.Less(t, bytes.Index(out.Bytes(), []byte("Gente")), bytes.Index(out.Bytes(), []byte("Seguridad")))
		assert.Contains(t, got, "50.0%")
		assert.Contains(t, got, "in_progress")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runProgress(ctx, &out, svc, audit.ID, "json"))
		var view progressservice.View
		require.NoError(t, json.Unmarshal(out.Bytes(), &view))
		assert.Equal(t, 1, view.Answered)
		assert.Equal(t, id.OutcomeConforming, view.Results["R1"])
		require.Len(t, view.Pillars, 2)
		assert.Equal(t, checklist.PillarOrder{"P2", "P1"}, checklist.PillarOrder{view.Pillars[0].ID, view.Pillars[1].ID})
	})

	t.Run("unknown audit", func(t *testing.T) {
		err := runProgress(ctx, &bytes.Buffer{}, svc, id.NewAuditID(), "table")
		assert.Equal(t, 3, exitCode(t, err))
	})
}
