package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"checkpoint/internal/dashboard"
	"checkpoint/internal/dashboard/handler/mocks"
	"checkpoint/internal/dashboard/service"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
	"checkpoint/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  *chi.Mux
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *HandlerSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) get(path string) *httptest.ResponseRecorder {
	return testutil.Do(s.router, testutil.NewRequest(s.T(), http.MethodGet, path, nil))
}

func (s *HandlerSuite) TestCounters() {
	s.Run("ok", func() {
		s.service.EXPECT().Overview(gomock.Any()).Return(&service.Overview{
			Audits:  2,
			Results: dashboard.Counters{Conforming: 3, NonConforming: 1},
			Plans:   dashboard.PlanTally{Pending: 1},
		}, nil)

		rec := s.get("/dashboard/counters")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{
			"audits": 2,
			"total_requirements": 0,
			"results": {"C": 3, "NC": 1, "NO": 0, "NC Cerrada": 0},
			"action_plans": {"pending": 1, "in_progress": 0, "completed": 0}
		}`, rec.Body.String())
	})

	s.Run("snapshot unavailable", func() {
		s.service.EXPECT().Overview(gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "audits unavailable"))

		rec := s.get("/dashboard/counters")
		s.Equal(http.StatusServiceUnavailable, rec.Code)
	})
}

func (s *HandlerSuite) TestDistribution() {
	s.Run("ok", func() {
		auditID := id.NewAuditID()
		s.service.EXPECT().Audit(gomock.Any(), auditID).Return(&service.AuditSummary{
			AuditID:      auditID,
			Distribution: []dashboard.Slice{{Name: id.OutcomeConforming, Value: 1, Percentage: 100}},
		}, nil)

		rec := s.get("/dashboard/audits/" + auditID.String() + "/distribution")
		s.Require().Equal(http.StatusOK, rec.Code)
		got := testutil.Decode[service.AuditSummary](s.T(), rec)
		s.Equal(auditID, got.AuditID)
		s.Len(got.Distribution, 1)
	})

	s.Run("bad audit id", func() {
		s.Equal(http.StatusBadRequest, s.get("/dashboard/audits/nope/distribution").Code)
	})
}

func (s *HandlerSuite) TestHistory() {
	s.Run("default period is six months", func() {
		s.service.EXPECT().RequirementHistory(gomock.Any(), id.RequirementID("1.1.1"), dashboard.SixMonths).
			Return(&service.History{RequirementID: "1.1.1", Period: "6m"}, nil)

		rec := s.get("/dashboard/requirements/1.1.1/history")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("one year", func() {
		s.service.EXPECT().RequirementHistory(gomock.Any(), id.RequirementID("1.1.1"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.RequirementID, w dashboard.Window) (*service.History, error) {
				s.Equal(dashboard.OneYear, w)
				return &service.History{Period: w.Label}, nil
			})

		rec := s.get("/dashboard/requirements/1.1.1/history?period=1y")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"period":"1y"`)
	})

	s.Run("bad period", func() {
		rec := s.get("/dashboard/requirements/1.1.1/history?period=fortnight")
		testutil.AssertDomainError(s.T(), rec, dErrors.CodeInvalidInput)
	})

	s.Run("unknown requirement", func() {
		s.service.EXPECT().RequirementHistory(gomock.Any(), id.RequirementID("9.9"), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "requirement not found"))

		testutil.AssertDomainError(s.T(), s.get("/dashboard/requirements/9.9/history"), dErrors.CodeNotFound)
	})
}

func (s *HandlerSuite) TestLocations() {
	s.service.EXPECT().Locations(gomock.Any()).Return([]dashboard.LocationRow{
		{Location: "Charata", Counters: dashboard.Counters{Conforming: 2}},
	}, nil)

	rec := s.get("/dashboard/locations")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"locations":[{"name":"Charata","C":2,"NC":0,"NO":0,"NC Cerrada":0}]}`, rec.Body.String())
}
