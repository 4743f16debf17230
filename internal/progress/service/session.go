package service

import (
	"sync"

	auditmodels "checkpoint/internal/audits/models"
	checklist "checkpoint/internal/checklist/models"
	"checkpoint/internal/progress"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
)

// Session is one auditor's working view of an audit: the checklist tree from
// the current bundle plus the audit's results indexed by requirement.
// It is safe for concurrent use.
type Session struct {
	mu    sync.Mutex
	audit auditmodels.Audit
	tree  *checklist.Tree
	order checklist.PillarOrder
	index *progress.Index
	memo  progress.Memo
}

// View is the rendered progress of a session.
type View struct {
	AuditID   id.AuditID                        `json:"audit_id"`
	Number    string                            `json:"number"`
	Location  string                            `json:"location"`
	State     auditmodels.AuditState            `json:"state"`
	Total     int                               `json:"total"`
	Answered  int                               `json:"answered"`
	Pillars   []progress.PillarProgress         `json:"pillars"`
	Statuses  map[id.PillarID]progress.Status   `json:"pillar_statuses"`
	Standards map[id.StandardID]progress.Status `json:"standard_statuses"`
	Results   map[id.RequirementID]id.Outcome   `json:"results"`
}

func newSession(audit auditmodels.Audit, tree *checklist.Tree, order checklist.PillarOrder, results []auditmodels.Result) *Session {
	if len(order) == 0 {
		order = checklist.LexicalOrder(tree)
	}
	return &Session{
		audit: audit,
		tree:  tree,
		order: order,
		index: progress.NewIndex(results),
	}
}

func (s *Session) Audit() auditmodels.Audit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audit
}

func (s *Session) Tree() *checklist.Tree {
	return s.tree
}

// Statuses returns the completion rollup, recomputed only after a save.
func (s *Session) Statuses() progress.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memo.Completion(s.tree, s.index)
}

// Result returns the current result for reqID.
func (s *Session) Result(reqID id.RequirementID) (auditmodels.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Get(reqID)
}

// Next returns the requirement after current within standardID.
// Errors: CodeNotFound when the standard does not exist.
func (s *Session) Next(standardID id.StandardID, current id.RequirementID) (checklist.Requirement, progress.NextState, error) {
	std, ok := s.tree.Standard(standardID)
	if !ok {
		return checklist.Requirement{}, progress.NextUnknown, dErrors.New(dErrors.CodeNotFound, "standard not found")
	}
	next, state := progress.Next(std.Requirements, current)
	return next, state, nil
}

// View renders the session for transport.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.memo.Completion(s.tree, s.index)

	v := View{
		AuditID:   s.audit.ID,
		Number:    s.audit.Number,
		Location:  s.audit.Location,
		State:     s.audit.State,
		Total:     s.tree.TotalRequirements(),
		Pillars:   c.Ordered(s.tree, s.order),
		Statuses:  c.PillarStatuses(),
		Standards: c.StandardStatuses(),
		Results:   make(map[id.RequirementID]id.Outcome, s.index.Len()),
	}
	for _, r := range s.index.Results() {
		v.Results[r.RequirementID] = r.Outcome
	}
	for _, p := range s.tree.Pillars() {
		if t, ok := c.Pillar(p.ID); ok {
			v.Answered += t.Answered
		}
	}
	return v
}

func (s *Session) upsert(r auditmodels.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index.Upsert(r.RequirementID, r)
}
