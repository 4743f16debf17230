package progress

import (
	checklist "checkpoint/internal/checklist/models"
	id "checkpoint/pkg/domain"
)

// Status is the three-way completion state of a standard or pillar.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// StatusOf applies the completion rule to a (total, answered) pair. The bool
// is false when total is zero: such nodes have no status at all.
func StatusOf(total, answered int) (Status, bool) {
	switch {
	case total <= 0:
		return "", false
	case answered <= 0:
		return StatusPending, true
	case answered < total:
		return StatusInProgress, true
	default:
		return StatusCompleted, true
	}
}

// Tally is the rolled-up count for one node.
type Tally struct {
	Total    int    `json:"total"`
	Answered int    `json:"answered"`
	Status   Status `json:"status"`
}

// Percent is answered/total in [0, 100].
func (t Tally) Percent() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Answered) / float64(t.Total) * 100
}

func newTally(total, answered int) (Tally, bool) {
	st, ok := StatusOf(total, answered)
	if !ok {
		return Tally{}, false
	}
	return Tally{Total: total, Answered: answered, Status: st}, true
}

// Answers is the read side of a result index.
type Answers interface {
	Has(reqID id.RequirementID) bool
}

// Completion holds per-standard and per-pillar tallies. Nodes with zero
// requirements are absent.
type Completion struct {
	standards map[id.StandardID]Tally
	pillars   map[id.PillarID]Tally
}

// Aggregate rolls answers up the tree. It is a pure function of its inputs.
// Every pillar in the tree is counted, including pillars hidden from ordered
// display. Results for requirements the tree does not know contribute nothing.
func Aggregate(tree *checklist.Tree, answers Answers) Completion {
	c := Completion{
		standards: make(map[id.StandardID]Tally),
		pillars:   make(map[id.PillarID]Tally),
	}
	for _, p := range tree.Pillars() {
		var pillarTotal, pillarAnswered int
		for _, s := range p.Standards {
			total := len(s.Requirements)
			if total == 0 {
				continue
			}
			answered := 0
			for _, r := range s.Requirements {
				if answers != nil && answers.Has(r.ID) {
					answered++
				}
			}
			t, _ := newTally(total, answered)
			c.standards[s.ID] = t
			pillarTotal += total
			pillarAnswered += answered
		}
		if t, ok := newTally(pillarTotal, pillarAnswered); ok {
			c.pillars[p.ID] = t
		}
	}
	return c
}

// Standard returns the tally of a standard; false when it has no requirements
// or is unknown.
func (c Completion) Standard(standardID id.StandardID) (Tally, bool) {
	t, ok := c.standards[standardID]
	return t, ok
}

// Pillar returns the tally of a pillar; false when it has no requirements
// or is unknown.
func (c Completion) Pillar(pillarID id.PillarID) (Tally, bool) {
	t, ok := c.pillars[pillarID]
	return t, ok
}

// StandardStatuses returns the status tag of every standard that has one.
func (c Completion) StandardStatuses() map[id.StandardID]Status {
	out := make(map[id.StandardID]Status, len(c.standards))
	for k, t := range c.standards {
		out[k] = t.Status
	}
	return out
}

// PillarStatuses returns the status tag of every pillar that has one.
func (c Completion) PillarStatuses() map[id.PillarID]Status {
	out := make(map[id.PillarID]Status, len(c.pillars))
	for k, t := range c.pillars {
		out[k] = t.Status
	}
	return out
}

// PillarProgress is one card of the audit map, in display order.
type PillarProgress struct {
	ID        id.PillarID `json:"id"`
	Name      string      `json:"name"`
	Standards int         `json:"standards"`
	Total     int         `json:"total"`
	Answered  int         `json:"answered"`
	Percent   float64     `json:"percent"`
	Status    Status      `json:"status,omitempty"`
}

// Ordered lays out pillar progress following order. Pillars without
// requirements appear with zero counts and no status.
func (c Completion) Ordered(tree *checklist.Tree, order checklist.PillarOrder) []PillarProgress {
	pillars := tree.Ordered(order)
	out := make([]PillarProgress, 0, len(pillars))
	for _, p := range pillars {
		row := PillarProgress{ID: p.ID, Name: p.Name, Standards: len(p.Standards)}
		if t, ok := c.Pillar(p.ID); ok {
			row.Total = t.Total
			row.Answered = t.Answered
			row.Percent = t.Percent()
			row.Status = t.Status
		}
		out = append(out, row)
	}
	return out
}

// Memo caches the last Completion keyed on the tree and the index version.
// The zero value is ready to use. It is not safe for concurrent use.
type Memo struct {
	tree    *checklist.Tree
	index   *Index
	version uint64
	value   Completion
	valid   bool
}

// Completion returns Aggregate(tree, ix), recomputing only when the tree,
// the index or the index version changed.
func (m *Memo) Completion(tree *checklist.Tree, ix *Index) Completion {
	if m.valid && m.tree == tree && m.index == ix && m.version == ix.Version() {
		return m.value
	}
	m.tree, m.index, m.version = tree, ix, ix.Version()
	m.value = Aggregate(tree, ix)
	m.valid = true
	return m.value
}
