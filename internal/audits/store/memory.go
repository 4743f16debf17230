// Package store persists audits, their results and action plans.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"checkpoint/internal/audits/models"
	id "checkpoint/pkg/domain"
	"checkpoint/pkg/platform/sentinel"
)

type resultKey struct {
	audit       id.AuditID
	requirement id.RequirementID
}

// InMemoryStore implements the audits store with maps. Records are copied on
// the way in and out so callers never share memory with the store.
type InMemoryStore struct {
	mu            sync.RWMutex
	audits        map[id.AuditID]models.Audit
	results       map[id.ResultID]models.Result
	resultsByKey  map[resultKey]id.ResultID
	plans         map[id.ActionPlanID]models.ActionPlan
	planForResult map[id.ResultID]id.ActionPlanID
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		audits:        make(map[id.AuditID]models.Audit),
		results:       make(map[id.ResultID]models.Result),
		resultsByKey:  make(map[resultKey]id.ResultID),
		plans:         make(map[id.ActionPlanID]models.ActionPlan),
		planForResult: make(map[id.ResultID]id.ActionPlanID),
	}
}

func (s *InMemoryStore) CreateAudit(_ context.Context, a *models.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.audits[a.ID]; ok {
		return fmt.Errorf("audit %s: %w", a.ID, sentinel.ErrConflict)
	}
	for _, existing := range s.audits {
		if existing.Number == a.Number {
			return fmt.Errorf("audit number %s: %w", a.Number, sentinel.ErrConflict)
		}
	}
	s.audits[a.ID] = copyAudit(*a)
	return nil
}

func (s *InMemoryStore) GetAudit(_ context.Context, auditID id.AuditID) (*models.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.audits[auditID]
	if !ok {
		return nil, fmt.Errorf("audit %s: %w", auditID, sentinel.ErrNotFound)
	}
	out := copyAudit(a)
	return &out, nil
}

func (s *InMemoryStore) UpdateAudit(_ context.Context, a *models.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.audits[a.ID]
	if !ok {
		return fmt.Errorf("audit %s: %w", a.ID, sentinel.ErrNotFound)
	}
	cur.State = a.State
	cur.ClosedAt = a.ClosedAt
	cur.Auditors = append([]string(nil), a.Auditors...)
	cur.Auditees = append([]string(nil), a.Auditees...)
	s.audits[a.ID] = cur
	return nil
}

func (s *InMemoryStore) CountAudits(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.audits), nil
}

// ListAuditsWithResults returns every audit, newest first, with its results.
func (s *InMemoryStore) ListAuditsWithResults(_ context.Context) ([]models.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byAudit := make(map[id.AuditID][]models.Result, len(s.audits))
	for _, r := range s.results {
		byAudit[r.AuditID] = append(byAudit[r.AuditID], copyResult(r))
	}
	out := make([]models.Audit, 0, len(s.audits))
	for _, a := range s.audits {
		c := copyAudit(a)
		c.Results = byAudit[a.ID]
		sortResults(c.Results)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Number > out[j].Number
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) LoadResults(_ context.Context, auditID id.AuditID) ([]models.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Result
	for _, r := range s.results {
		if r.AuditID == auditID {
			out = append(out, copyResult(r))
		}
	}
	sortResults(out)
	return out, nil
}

func (s *InMemoryStore) GetResult(_ context.Context, resultID id.ResultID) (*models.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[resultID]
	if !ok {
		return nil, fmt.Errorf("result %s: %w", resultID, sentinel.ErrNotFound)
	}
	out := copyResult(r)
	return &out, nil
}

// InsertResult stores a new result. A second result for the same audit and
// requirement is a conflict.
func (s *InMemoryStore) InsertResult(_ context.Context, r *models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := resultKey{audit: r.AuditID, requirement: r.RequirementID}
	if _, ok := s.resultsByKey[key]; ok {
		return fmt.Errorf("result for %s: %w", r.RequirementID, sentinel.ErrConflict)
	}
	if _, ok := s.results[r.ID]; ok {
		return fmt.Errorf("result %s: %w", r.ID, sentinel.ErrConflict)
	}
	s.results[r.ID] = copyResult(*r)
	s.resultsByKey[key] = r.ID
	return nil
}

// UpdateResult overwrites outcome, comment, attachments and recording time.
func (s *InMemoryStore) UpdateResult(_ context.Context, r *models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.results[r.ID]
	if !ok {
		return fmt.Errorf("result %s: %w", r.ID, sentinel.ErrNotFound)
	}
	cur.Outcome = r.Outcome
	cur.Comment = r.Comment
	cur.Attachments = append([]models.Attachment(nil), r.Attachments...)
	cur.RecordedAt = r.RecordedAt
	s.results[r.ID] = cur
	return nil
}

func (s *InMemoryStore) GetActionPlanByResult(_ context.Context, resultID id.ResultID) (*models.ActionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	planID, ok := s.planForResult[resultID]
	if !ok {
		return nil, fmt.Errorf("action plan for result %s: %w", resultID, sentinel.ErrNotFound)
	}
	p := copyPlan(s.plans[planID])
	return &p, nil
}

func (s *InMemoryStore) InsertActionPlan(_ context.Context, p *models.ActionPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.planForResult[p.ResultID]; ok {
		return fmt.Errorf("action plan for result %s: %w", p.ResultID, sentinel.ErrConflict)
	}
	s.plans[p.ID] = copyPlan(*p)
	s.planForResult[p.ResultID] = p.ID
	return nil
}

func (s *InMemoryStore) UpdateActionPlan(_ context.Context, p *models.ActionPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.plans[p.ID]
	if !ok {
		return fmt.Errorf("action plan %s: %w", p.ID, sentinel.ErrNotFound)
	}
	updated := copyPlan(*p)
	updated.ResultID = cur.ResultID
	updated.CreatedAt = cur.CreatedAt
	s.plans[p.ID] = updated
	return nil
}

func (s *InMemoryStore) ListActionPlans(_ context.Context) ([]models.ActionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ActionPlan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, copyPlan(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func sortResults(rs []models.Result) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].RequirementID < rs[j].RequirementID })
}

func copyAudit(a models.Audit) models.Audit {
	a.Auditors = append([]string(nil), a.Auditors...)
	a.Auditees = append([]string(nil), a.Auditees...)
	if a.ClosedAt != nil {
		t := *a.ClosedAt
		a.ClosedAt = &t
	}
	a.Results = nil
	return a
}

func copyResult(r models.Result) models.Result {
	r.Attachments = append([]models.Attachment(nil), r.Attachments...)
	return r
}

func copyPlan(p models.ActionPlan) models.ActionPlan {
	p.Evidence = append([]models.Attachment(nil), p.Evidence...)
	if p.CommitmentDate != nil {
		t := *p.CommitmentDate
		p.CommitmentDate = &t
	}
	return p
}
