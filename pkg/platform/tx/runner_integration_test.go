//go:build integration

package tx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"checkpoint/pkg/platform/tx"
	"checkpoint/pkg/testutil/containers"
)

type RunnerSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	runner   *tx.Runner
}

func TestRunnerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RunnerSuite))
}

func (s *RunnerSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.runner = tx.NewRunner(s.postgres.DB, 0)
}

func (s *RunnerSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "pillars"))
}

func (s *RunnerSuite) insertPillar(ctx context.Context, pillarID string) error {
	sqlTx, ok := tx.From(ctx)
	s.Require().True(ok, "expected a transaction on the context")
	_, err := sqlTx.ExecContext(ctx, `INSERT INTO pillars (id, name) VALUES ($1, $1)`, pillarID)
	return err
}

func (s *RunnerSuite) pillarCount() int {
	var n int
	s.Require().NoError(s.postgres.DB.QueryRow(`SELECT count(*) FROM pillars`).Scan(&n))
	return n
}

func (s *RunnerSuite) TestCommit() {
	err := s.runner.RunInTx(context.Background(), func(ctx context.Context) error {
		return s.insertPillar(ctx, "P1")
	})
	s.Require().NoError(err)
	s.Equal(1, s.pillarCount())
}

func (s *RunnerSuite) TestRollbackOnError() {
	boom := errors.New("boom")
	err := s.runner.RunInTx(context.Background(), func(ctx context.Context) error {
		s.Require().NoError(s.insertPillar(ctx, "P1"))
		return boom
	})
	s.ErrorIs(err, boom)
	s.Equal(0, s.pillarCount())
}

func (s *RunnerSuite) TestNestedJoinsOuter() {
	err := s.runner.RunInTx(context.Background(), func(ctx context.Context) error {
		outer, _ := tx.From(ctx)
		s.Require().NoError(s.insertPillar(ctx, "P1"))
		inner := s.runner.RunInTx(ctx, func(ctx context.Context) error {
			got, _ := tx.From(ctx)
			s.Same(outer, got)
			return s.insertPillar(ctx, "P2")
		})
		s.Require().NoError(inner)
		return errors.New("abort outer")
	})
	s.Error(err)
	s.Equal(0, s.pillarCount(), "inner work rolls back with the outer transaction")
}
