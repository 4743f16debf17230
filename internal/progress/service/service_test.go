package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ResultStore,BundleLoader,ActivityEmitter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"checkpoint/internal/activity"
	auditmodels "checkpoint/internal/audits/models"
	"checkpoint/internal/cache"
	checklist "checkpoint/internal/checklist/models"
	"checkpoint/internal/progress"
	"checkpoint/internal/progress/service/mocks"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
	"checkpoint/pkg/platform/sentinel"
	"checkpoint/pkg/requestcontext"
)

// =============================================================================
// Progress Service Test Suite
// =============================================================================
// Justification for unit tests: saving a result has a strict ordering
// (store, index, cache, activity) and must leave nothing behind on failure.
// Mocks let each step be asserted in sequence.

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *mocks.MockResultStore
	loader  *mocks.MockBundleLoader
	emitter *mocks.MockActivityEmitter
	service *Service
	audit   auditmodels.Audit
	now     time.Time
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockResultStore(s.ctrl)
	s.loader = mocks.NewMockBundleLoader(s.ctrl)
	s.emitter = mocks.NewMockActivityEmitter(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var err error
	s.service, err = New(s.store, s.loader,
		WithLogger(logger),
		WithActivityEmitter(s.emitter),
		WithPillarOrder(checklist.PillarOrder{"P2", "P1"}),
	)
	s.Require().NoError(err)

	s.now = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.audit = auditmodels.Audit{
		ID:       id.NewAuditID(),
		Number:   "PS-20240510-001",
		Location: "Charata",
		State:    auditmodels.AuditOpen,
	}
}

func (s *ServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func testTree() *checklist.Tree {
	return checklist.NewTree([]checklist.Pillar{
		{ID: "P1", Name: "Personas", Standards: []checklist.Standard{
			{ID: "S1", Requirements: []checklist.Requirement{{ID: "R1"}, {ID: "R2"}}},
		}},
		{ID: "P2", Name: "Procesos", Standards: []checklist.Standard{
			{ID: "S2", Requirements: []checklist.Requirement{{ID: "R3"}}},
		}},
	})
}

func (s *ServiceSuite) open(results ...auditmodels.Result) *Session {
	s.store.EXPECT().GetAudit(gomock.Any(), s.audit.ID).Return(&s.audit, nil)
	s.loader.EXPECT().Load(gomock.Any()).Return(&cache.Bundle{Tree: testTree()}, nil)
	s.store.EXPECT().LoadResults(gomock.Any(), s.audit.ID).Return(results, nil)
	sess, err := s.service.Open(s.ctx, s.audit.ID)
	s.Require().NoError(err)
	return sess
}

func (s *ServiceSuite) result(reqID id.RequirementID, outcome id.Outcome) auditmodels.Result {
	return auditmodels.Result{
		ID:            id.NewResultID(),
		AuditID:       s.audit.ID,
		PillarID:      "P1",
		StandardID:    "S1",
		RequirementID: reqID,
		Outcome:       outcome,
		RecordedAt:    s.now.Add(-time.Hour),
	}
}

// =============================================================================
// Constructor
// =============================================================================

func (s *ServiceSuite) TestNew() {
	s.Run("nil result store returns error", func() {
		_, err := New(nil, s.loader)
		s.Require().Error(err)
		s.Contains(err.Error(), "result store is required")
	})

	s.Run("nil loader returns error", func() {
		_, err := New(s.store, nil)
		s.Require().Error(err)
		s.Contains(err.Error(), "bundle loader is required")
	})
}

// =============================================================================
// Open and progress view
// =============================================================================

func (s *ServiceSuite) TestOpen() {
	s.Run("builds statuses from stored results", func() {
		sess := s.open(s.result("R1", id.OutcomeConforming))

		c := sess.Statuses()
		tally, ok := c.Standard("S1")
		s.Require().True(ok)
		s.Equal(progress.StatusInProgress, tally.Status)

		v := sess.View()
		s.Equal(3, v.Total)
		s.Equal(1, v.Answered)
		s.Require().Len(v.Pillars, 2)
		s.Equal(id.PillarID("P2"), v.Pillars[0].ID)
		s.Equal(progress.StatusPending, v.Pillars[0].Status)
		s.Equal(id.OutcomeConforming, v.Results["R1"])
	})

	s.Run("unknown audit is not found", func() {
		s.store.EXPECT().GetAudit(gomock.Any(), s.audit.ID).Return(nil, fmt.Errorf("audit: %w", sentinel.ErrNotFound))
		_, err := s.service.Open(s.ctx, s.audit.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unreachable store is unavailable", func() {
		s.store.EXPECT().GetAudit(gomock.Any(), s.audit.ID).Return(&s.audit, nil)
		s.loader.EXPECT().Load(gomock.Any()).Return(&cache.Bundle{Tree: testTree()}, nil)
		s.store.EXPECT().LoadResults(gomock.Any(), s.audit.ID).Return(nil, fmt.Errorf("query: %w", sentinel.ErrUnavailable))
		_, err := s.service.Open(s.ctx, s.audit.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("loader failure propagates", func() {
		s.store.EXPECT().GetAudit(gomock.Any(), s.audit.ID).Return(&s.audit, nil)
		s.loader.EXPECT().Load(gomock.Any()).Return(nil, dErrors.New(dErrors.CodeUnavailable, "checklist unavailable"))
		_, err := s.service.Open(s.ctx, s.audit.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *ServiceSuite) TestNext() {
	s.Run("returns following requirement", func() {
		sess := s.open()
		next, state, err := sess.Next("S1", "R1")
		s.Require().NoError(err)
		s.Equal(progress.NextFound, state)
		s.Equal(id.RequirementID("R2"), next.ID)
	})

	s.Run("last requirement has no next", func() {
		sess := s.open()
		_, state, err := sess.Next("S1", "R2")
		s.Require().NoError(err)
		s.Equal(progress.NextLast, state)
	})

	s.Run("unknown standard is not found", func() {
		sess := s.open()
		_, _, err := sess.Next("S9", "R1")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// =============================================================================
// SaveResult
// =============================================================================

func (s *ServiceSuite) TestSaveResultInsert() {
	sess := s.open()
	in := auditmodels.ResultInput{
		RequirementID: "R1",
		Outcome:       id.OutcomeNonConforming,
		Comment:       "extintor vencido",
		Attachments:   []auditmodels.Attachment{{Name: "foto.JPG", URL: "https://files/foto.JPG"}},
	}

	var inserted *auditmodels.Result
	gomock.InOrder(
		s.store.EXPECT().InsertResult(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *auditmodels.Result) error {
			inserted = r
			return nil
		}),
		s.loader.EXPECT().Invalidate(gomock.Any(), string(activity.ActionResultSaved)),
		s.emitter.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e activity.Event) error {
			s.Equal(activity.ActionResultSaved, e.Action)
			s.Equal(s.audit.ID, e.AuditID)
			s.Equal(id.OutcomeNonConforming, e.Outcome)
			s.Equal("Charata", e.Location)
			return nil
		}),
	)

	got, err := s.service.SaveResult(s.ctx, sess, in, nil)
	s.Require().NoError(err)
	s.Same(inserted, got)
	s.Equal(id.PillarID("P1"), got.PillarID)
	s.Equal(id.StandardID("S1"), got.StandardID)
	s.Equal(s.now, got.RecordedAt)
	s.Equal(auditmodels.AttachmentPhoto, got.Attachments[0].Kind)

	r, ok := sess.Result("R1")
	s.Require().True(ok)
	s.Equal(got.ID, r.ID)
	tally, _ := sess.Statuses().Standard("S1")
	s.Equal(1, tally.Answered)
}

func (s *ServiceSuite) TestSaveResultUpdatesCurrent() {
	s.Run("existing id is updated in place", func() {
		prev := s.result("R1", id.OutcomeNotObserved)
		sess := s.open(prev)
		s.store.EXPECT().GetResult(gomock.Any(), prev.ID).Return(&prev, nil)
		s.store.EXPECT().UpdateResult(gomock.Any(), gomock.Any()).Return(nil)
		s.loader.EXPECT().Invalidate(gomock.Any(), gomock.Any())
		s.emitter.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		got, err := s.service.SaveResult(s.ctx, sess, auditmodels.ResultInput{
			RequirementID: "R1",
			Outcome:       id.OutcomeConforming,
		}, &prev.ID)
		s.Require().NoError(err)
		s.Equal(prev.ID, got.ID)
		s.Equal(id.OutcomeConforming, got.Outcome)
		s.Equal(s.now, got.RecordedAt)
	})

	s.Run("without id the indexed result is updated", func() {
		prev := s.result("R1", id.OutcomeNotObserved)
		sess := s.open(prev)
		s.store.EXPECT().UpdateResult(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *auditmodels.Result) error {
			s.Equal(prev.ID, r.ID)
			return nil
		})
		s.loader.EXPECT().Invalidate(gomock.Any(), gomock.Any())
		s.emitter.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		_, err := s.service.SaveResult(s.ctx, sess, auditmodels.ResultInput{
			RequirementID: "R1",
			Outcome:       id.OutcomeConforming,
		}, nil)
		s.Require().NoError(err)
	})

	s.Run("existing id for another requirement conflicts", func() {
		prev := s.result("R2", id.OutcomeConforming)
		sess := s.open(prev)
		s.store.EXPECT().GetResult(gomock.Any(), prev.ID).Return(&prev, nil)

		_, err := s.service.SaveResult(s.ctx, sess, auditmodels.ResultInput{
			RequirementID: "R1",
			Outcome:       id.OutcomeConforming,
		}, &prev.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *ServiceSuite) TestSaveResultRejections() {
	s.Run("closed audit is read-only", func() {
		closedAt := s.now
		s.audit.State = auditmodels.AuditClosed
		s.audit.ClosedAt = &closedAt
		sess := s.open()

		_, err := s.service.SaveResult(s.ctx, sess, auditmodels.ResultInput{
			RequirementID: "R1",
			Outcome:       id.OutcomeConforming,
		}, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("invalid outcome", func() {
		sess := s.open()
		_, err := s.service.SaveResult(s.ctx, sess, auditmodels.ResultInput{
			RequirementID: "R1",
			Outcome:       "Conforme",
		}, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("requirement outside the checklist", func() {
		sess := s.open()
		_, err := s.service.SaveResult(s.ctx, sess, auditmodels.ResultInput{
			RequirementID: "R99",
			Outcome:       id.OutcomeConforming,
		}, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("result for another audit", func() {
		sess := s.open()
		_, err := s.service.SaveResult(s.ctx, sess, auditmodels.ResultInput{
			AuditID:       id.NewAuditID(),
			RequirementID: "R1",
			Outcome:       id.OutcomeConforming,
		}, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestSaveResultFailureLeavesStateUntouched() {
	sess := s.open()
	s.store.EXPECT().InsertResult(gomock.Any(), gomock.Any()).Return(fmt.Errorf("insert: %w", sentinel.ErrUnavailable))
	// No Invalidate or Emit expectations: gomock fails the test if they run.

	_, err := s.service.SaveResult(s.ctx, sess, auditmodels.ResultInput{
		RequirementID: "R1",
		Outcome:       id.OutcomeConforming,
	}, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))

	_, ok := sess.Result("R1")
	s.False(ok)
	_, ok = sess.Statuses().Standard("S1")
	s.True(ok)
	tally, _ := sess.Statuses().Standard("S1")
	s.Equal(0, tally.Answered)
}

func (s *ServiceSuite) TestSaveResultEmitFailureIsIgnored() {
	sess := s.open()
	s.store.EXPECT().InsertResult(gomock.Any(), gomock.Any()).Return(nil)
	s.loader.EXPECT().Invalidate(gomock.Any(), gomock.Any())
	s.emitter.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	_, err := s.service.SaveResult(s.ctx, sess, auditmodels.ResultInput{
		RequirementID: "R3",
		Outcome:       id.OutcomeConforming,
	}, nil)
	s.Require().NoError(err)

	tally, ok := sess.Statuses().Pillar("P2")
	s.Require().True(ok)
	s.Equal(progress.StatusCompleted, tally.Status)
}
