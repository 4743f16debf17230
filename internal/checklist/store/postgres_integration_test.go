//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"checkpoint/internal/checklist/models"
	"checkpoint/internal/checklist/store"
	txcontext "checkpoint/pkg/platform/tx"
	"checkpoint/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	runner   *txcontext.Runner
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.runner = txcontext.NewRunner(s.postgres.DB, 0)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "action_plans", "results", "audits", "requirements", "standards", "pillars"))
}

func (s *PostgresStoreSuite) TestReplaceAndLoadKeepsOrder() {
	ctx := context.Background()
	pillars := []models.Pillar{
		{ID: "seguridad", Name: "Seguridad", Standards: []models.Standard{
			{ID: "S-2", Requirements: []models.Requirement{{ID: "S-2.1"}}},
			{ID: "S-1", Requirements: []models.Requirement{{ID: "S-1.2"}, {ID: "S-1.1"}}},
		}},
		{ID: "vacio", Name: "Vacio"},
	}
	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		return s.store.ReplaceTree(ctx, pillars)
	})
	s.Require().NoError(err)

	tree, err := s.store.LoadTree(ctx)
	s.Require().NoError(err)
	s.Equal(3, tree.TotalRequirements())
	s.Len(tree.Pillars(), 2)

	reqs := tree.Requirements("S-1")
	s.Require().Len(reqs, 2)
	s.Equal("S-1.2", string(reqs[0].ID))

	p, ok := tree.Pillar("seguridad")
	s.Require().True(ok)
	s.Equal("S-2", string(p.Standards[0].ID))

	n, err := s.store.CountRequirements(ctx)
	s.Require().NoError(err)
	s.Equal(3, n)
}

func (s *PostgresStoreSuite) TestReplaceRollsBackOnError() {
	ctx := context.Background()
	s.Require().NoError(s.store.ReplaceTree(ctx, []models.Pillar{{ID: "keep", Name: "Keep"}}))

	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.ReplaceTree(ctx, []models.Pillar{{ID: "new", Name: "New"}}); err != nil {
			return err
		}
		return context.Canceled
	})
	s.Require().Error(err)

	tree, err := s.store.LoadTree(ctx)
	s.Require().NoError(err)
	_, ok := tree.Pillar("keep")
	s.True(ok)
}
