package bundle

//go:generate mockgen -source=loader.go -destination=mocks/mocks.go -package=mocks TreeSource,AuditSource,PlanSource,Notifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	auditmodels "checkpoint/internal/audits/models"
	"checkpoint/internal/bundle/mocks"
	"checkpoint/internal/cache"
	checklist "checkpoint/internal/checklist/models"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
)

// =============================================================================
// Loader Test Suite
// =============================================================================
// Justification for unit tests: the loader decides when sources are read and
// when a bundle may enter the cache. Mocked sources make each path explicit.

type LoaderSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	tree     *mocks.MockTreeSource
	audits   *mocks.MockAuditSource
	plans    *mocks.MockPlanSource
	notifier *mocks.MockNotifier
	cache    *cache.Cache
	loader   *Loader
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderSuite))
}

func (s *LoaderSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.tree = mocks.NewMockTreeSource(s.ctrl)
	s.audits = mocks.NewMockAuditSource(s.ctrl)
	s.plans = mocks.NewMockPlanSource(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)
	s.cache = cache.New(time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.loader = New(s.cache, s.tree, s.audits, s.plans,
		WithLogger(logger),
		WithNotifier(s.notifier),
	)
}

func (s *LoaderSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *LoaderSuite) TearDownTest() {
	s.ctrl.Finish()
}

func sampleTree() *checklist.Tree {
	return checklist.NewTree([]checklist.Pillar{{
		ID:   "P1",
		Name: "Seguridad",
		Standards: []checklist.Standard{{
			ID: "S1",
			Requirements: []checklist.Requirement{
				{ID: "R1"}, {ID: "R2"}, {ID: "R3"},
			},
		}},
	}})
}

func (s *LoaderSuite) expectSources(times int) {
	s.tree.EXPECT().LoadTree(gomock.Any()).Return(sampleTree(), nil).Times(times)
	s.audits.EXPECT().ListAuditsWithResults(gomock.Any()).Return([]auditmodels.Audit{
		{ID: id.NewAuditID(), Location: "Charata", State: auditmodels.AuditOpen},
	}, nil).Times(times)
	s.plans.EXPECT().ListActionPlans(gomock.Any()).Return([]auditmodels.ActionPlan{
		{ID: id.NewActionPlanID(), ResultID: id.NewResultID(), State: auditmodels.PlanPending},
	}, nil).Times(times)
}

// =============================================================================
// Load
// =============================================================================

func (s *LoaderSuite) TestLoad() {
	s.Run("miss reads every source and caches the bundle", func() {
		s.expectSources(1)

		b, err := s.loader.Load(context.Background())
		s.Require().NoError(err)
		s.Equal(3, b.TotalRequirements)
		s.Len(b.Audits, 1)
		s.Len(b.ActionPlans, 1)

		cached, ok := s.cache.Read()
		s.Require().True(ok)
		s.Same(b, cached)
	})

	s.Run("hit does not touch the sources", func() {
		s.expectSources(1)

		first, err := s.loader.Load(context.Background())
		s.Require().NoError(err)
		second, err := s.loader.Load(context.Background())
		s.Require().NoError(err)
		s.Same(first, second)
	})

	s.Run("source failure is unavailable and nothing is cached", func() {
		s.tree.EXPECT().LoadTree(gomock.Any()).Return(sampleTree(), nil)
		s.audits.EXPECT().ListAuditsWithResults(gomock.Any()).Return(nil, errors.New("connection refused"))
		s.plans.EXPECT().ListActionPlans(gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := s.loader.Load(context.Background())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))

		_, ok := s.cache.Read()
		s.False(ok)
	})

	s.Run("concurrent misses share one fetch", func() {
		release := make(chan struct{})
		s.tree.EXPECT().LoadTree(gomock.Any()).DoAndReturn(func(context.Context) (*checklist.Tree, error) {
			<-release
			return sampleTree(), nil
		}).Times(1)
		s.audits.EXPECT().ListAuditsWithResults(gomock.Any()).Return(nil, nil).Times(1)
		s.plans.EXPECT().ListActionPlans(gomock.Any()).Return(nil, nil).Times(1)

		var wg sync.WaitGroup
		results := make([]*cache.Bundle, 4)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				b, err := s.loader.Load(context.Background())
				s.NoError(err)
				results[i] = b
			}(i)
		}
		close(release)
		wg.Wait()

		for _, b := range results {
			s.Require().NotNil(b)
			s.Equal(3, b.TotalRequirements)
		}
	})

	s.Run("caller cancellation returns timeout", func() {
		release := make(chan struct{})
		defer close(release)
		s.tree.EXPECT().LoadTree(gomock.Any()).DoAndReturn(func(context.Context) (*checklist.Tree, error) {
			<-release
			return sampleTree(), nil
		}).AnyTimes()
		s.audits.EXPECT().ListAuditsWithResults(gomock.Any()).Return(nil, nil).AnyTimes()
		s.plans.EXPECT().ListActionPlans(gomock.Any()).Return(nil, nil).AnyTimes()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.loader.Load(ctx)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

// =============================================================================
// Load across an invalidation
// =============================================================================

func (s *LoaderSuite) TestLoadAfterInvalidateDoesNotJoinEarlierFetch() {
	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})

	s.tree.EXPECT().LoadTree(gomock.Any()).Return(sampleTree(), nil).Times(2)
	s.plans.EXPECT().ListActionPlans(gomock.Any()).Return(nil, nil).Times(2)
	s.audits.EXPECT().ListAuditsWithResults(gomock.Any()).DoAndReturn(
		func(context.Context) ([]auditmodels.Audit, error) {
			if calls.Add(1) == 1 {
				close(entered)
				<-release
				return []auditmodels.Audit{{Location: "before-save"}}, nil
			}
			return []auditmodels.Audit{{Location: "after-save"}}, nil
		}).Times(2)
	s.notifier.EXPECT().Publish(gomock.Any(), "result_saved").Return(nil)

	early := make(chan *cache.Bundle, 1)
	go func() {
		b, err := s.loader.Load(context.Background())
		s.NoError(err)
		early <- b
	}()
	<-entered

	s.loader.Invalidate(context.Background(), "result_saved")

	late, err := s.loader.Load(context.Background())
	s.Require().NoError(err)
	s.Require().Len(late.Audits, 1)
	s.Equal("after-save", late.Audits[0].Location)
	s.Equal(int32(2), calls.Load())

	close(release)
	stale := <-early
	s.Require().NotNil(stale)
	s.Equal("before-save", stale.Audits[0].Location)

	cached, ok := s.cache.Read()
	s.Require().True(ok)
	s.Equal("after-save", cached.Audits[0].Location, "the fetch begun before the invalidation must not be cached")
}

func (s *LoaderSuite) TestRemoteInvalidationAlsoStartsFreshFetch() {
	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})

	s.tree.EXPECT().LoadTree(gomock.Any()).Return(sampleTree(), nil).Times(2)
	s.plans.EXPECT().ListActionPlans(gomock.Any()).Return(nil, nil).Times(2)
	s.audits.EXPECT().ListAuditsWithResults(gomock.Any()).DoAndReturn(
		func(context.Context) ([]auditmodels.Audit, error) {
			if calls.Add(1) == 1 {
				close(entered)
				<-release
				return nil, nil
			}
			return []auditmodels.Audit{{Location: "Bandera"}}, nil
		}).Times(2)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.loader.Load(context.Background())
	}()
	<-entered

	s.cache.InvalidateRemote()

	b, err := s.loader.Load(context.Background())
	close(release)
	<-done
	s.Require().NoError(err)
	s.Require().Len(b.Audits, 1)
	s.Equal("Bandera", b.Audits[0].Location)
}

// =============================================================================
// Invalidate
// =============================================================================

func (s *LoaderSuite) TestInvalidate() {
	s.Run("empties the cache and notifies peers", func() {
		s.expectSources(2)
		s.notifier.EXPECT().Publish(gomock.Any(), "result_saved").Return(nil)

		_, err := s.loader.Load(context.Background())
		s.Require().NoError(err)

		s.loader.Invalidate(context.Background(), "result_saved")
		_, ok := s.cache.Read()
		s.False(ok)

		_, err = s.loader.Load(context.Background())
		s.Require().NoError(err)
	})

	s.Run("broadcast failure still invalidates locally", func() {
		s.expectSources(1)
		s.notifier.EXPECT().Publish(gomock.Any(), "audit_created").Return(errors.New("redis down"))

		_, err := s.loader.Load(context.Background())
		s.Require().NoError(err)

		s.loader.Invalidate(context.Background(), "audit_created")
		_, ok := s.cache.Read()
		s.False(ok)
	})

	s.Run("without notifier only the local cache is cleared", func() {
		loader := New(s.cache, s.tree, s.audits, s.plans)
		s.cache.Write(&cache.Bundle{})

		loader.Invalidate(context.Background(), "manual")
		_, ok := s.cache.Read()
		s.False(ok)
	})
}
