package models

import (
	"fmt"
	"sort"

	id "checkpoint/pkg/domain"
)

// Requirement is a leaf checklist item evaluated to produce a Result.
type Requirement struct {
	ID          id.RequirementID `json:"id" yaml:"id"`
	Operational string           `json:"operational_requirement" yaml:"operational"`
	Guidance    string           `json:"evaluation_guidance" yaml:"guidance"`
}

// Standard groups an ordered sequence of Requirements within a Pillar.
type Standard struct {
	ID           id.StandardID `json:"id" yaml:"id"`
	Description  string        `json:"description" yaml:"description"`
	Requirements []Requirement `json:"requirements" yaml:"requirements"`
}

// Pillar is the top-level checklist category.
type Pillar struct {
	ID        id.PillarID `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	Standards []Standard  `json:"standards" yaml:"standards"`
}

// Tree is the read-only, in-memory checklist keyed by business id at every
// level. Build it once per cache epoch with NewTree; the returned slices
// share storage with the tree and must not be modified.
//
// Invariants:
//   - each pillar, standard and requirement id resolves to exactly one node
//     (first occurrence wins, later duplicates are reported by Duplicates)
//   - standards and requirements keep the order of the source
//   - empty pillars and empty standards are kept; they contribute zero to totals
type Tree struct {
	pillars        []Pillar
	pillarIndex    map[id.PillarID]int
	standards      map[id.StandardID]*Standard
	standardPillar map[id.StandardID]id.PillarID
	requirementRef map[id.RequirementID]reqRef
	total          int
	duplicates     []string
}

type reqRef struct {
	pillar   id.PillarID
	standard id.StandardID
	index    int
}

// NewTree walks the loader output depth-first and indexes it.
func NewTree(source []Pillar) *Tree {
	t := &Tree{
		pillarIndex:    make(map[id.PillarID]int, len(source)),
		standards:      make(map[id.StandardID]*Standard),
		standardPillar: make(map[id.StandardID]id.PillarID),
		requirementRef: make(map[id.RequirementID]reqRef),
	}
	for _, p := range source {
		if _, dup := t.pillarIndex[p.ID]; dup {
			t.duplicates = append(t.duplicates, fmt.Sprintf("pillar %s", p.ID))
			continue
		}
		pillar := Pillar{ID: p.ID, Name: p.Name, Standards: make([]Standard, 0, len(p.Standards))}
		for _, s := range p.Standards {
			if _, dup := t.standardPillar[s.ID]; dup {
				t.duplicates = append(t.duplicates, fmt.Sprintf("standard %s in pillar %s", s.ID, p.ID))
				continue
			}
			t.standardPillar[s.ID] = p.ID
			pillar.Standards = append(pillar.Standards, t.copyStandard(p.ID, s))
		}
		t.pillarIndex[p.ID] = len(t.pillars)
		t.pillars = append(t.pillars, pillar)
	}
	// Pointers are taken after every append so they stay valid.
	for i := range t.pillars {
		for j := range t.pillars[i].Standards {
			s := &t.pillars[i].Standards[j]
			t.standards[s.ID] = s
		}
	}
	return t
}

func (t *Tree) copyStandard(pillarID id.PillarID, s Standard) Standard {
	out := Standard{ID: s.ID, Description: s.Description, Requirements: make([]Requirement, 0, len(s.Requirements))}
	seen := make(map[id.RequirementID]struct{}, len(s.Requirements))
	for _, r := range s.Requirements {
		if _, dup := seen[r.ID]; dup {
			t.duplicates = append(t.duplicates, fmt.Sprintf("requirement %s in standard %s", r.ID, s.ID))
			continue
		}
		seen[r.ID] = struct{}{}
		if _, elsewhere := t.requirementRef[r.ID]; elsewhere {
			t.duplicates = append(t.duplicates, fmt.Sprintf("requirement %s reused by standard %s", r.ID, s.ID))
		} else {
			t.requirementRef[r.ID] = reqRef{pillar: pillarID, standard: s.ID, index: len(out.Requirements)}
		}
		out.Requirements = append(out.Requirements, r)
		t.total++
	}
	return out
}

// Pillars returns every pillar in source order.
func (t *Tree) Pillars() []Pillar {
	if t == nil {
		return nil
	}
	return t.pillars
}

// Pillar looks up a pillar by business id.
func (t *Tree) Pillar(pillarID id.PillarID) (Pillar, bool) {
	if t == nil {
		return Pillar{}, false
	}
	i, ok := t.pillarIndex[pillarID]
	if !ok {
		return Pillar{}, false
	}
	return t.pillars[i], true
}

// Standard looks up a standard by business id.
func (t *Tree) Standard(standardID id.StandardID) (Standard, bool) {
	if t == nil {
		return Standard{}, false
	}
	s, ok := t.standards[standardID]
	if !ok {
		return Standard{}, false
	}
	return *s, true
}

// PillarOf returns the pillar owning standardID.
func (t *Tree) PillarOf(standardID id.StandardID) (id.PillarID, bool) {
	if t == nil {
		return "", false
	}
	p, ok := t.standardPillar[standardID]
	return p, ok
}

// Requirement looks up a requirement by business id.
func (t *Tree) Requirement(reqID id.RequirementID) (Requirement, bool) {
	if t == nil {
		return Requirement{}, false
	}
	ref, ok := t.requirementRef[reqID]
	if !ok {
		return Requirement{}, false
	}
	return t.standards[ref.standard].Requirements[ref.index], true
}

// Locate returns the pillar and standard that own reqID. Results carry these
// denormalized references for fast rollups.
func (t *Tree) Locate(reqID id.RequirementID) (id.PillarID, id.StandardID, bool) {
	if t == nil {
		return "", "", false
	}
	ref, ok := t.requirementRef[reqID]
	if !ok {
		return "", "", false
	}
	return ref.pillar, ref.standard, true
}

// Requirements returns the ordered requirements of a standard, or nil.
func (t *Tree) Requirements(standardID id.StandardID) []Requirement {
	s, ok := t.Standard(standardID)
	if !ok {
		return nil
	}
	return s.Requirements
}

// TotalRequirements is the number of requirement slots across the tree.
func (t *Tree) TotalRequirements() int {
	if t == nil {
		return 0
	}
	return t.total
}

// Duplicates lists the nodes dropped or shadowed while building the tree.
func (t *Tree) Duplicates() []string {
	if t == nil {
		return nil
	}
	return t.duplicates
}

// PillarOrder is the fixed display order of pillars. It is a value passed
// explicitly to Ordered; the tree's own iteration order is never used for display.
type PillarOrder []id.PillarID

// Ordered returns the pillars named by order, in that order. Ids in order that
// the tree does not know are skipped; pillars missing from order are omitted
// here but still count in every aggregate total.
func (t *Tree) Ordered(order PillarOrder) []Pillar {
	out := make([]Pillar, 0, len(order))
	seen := make(map[id.PillarID]struct{}, len(order))
	for _, pid := range order {
		if _, dup := seen[pid]; dup {
			continue
		}
		seen[pid] = struct{}{}
		if p, ok := t.Pillar(pid); ok {
			out = append(out, p)
		}
	}
	return out
}

// Unordered lists pillars present in the tree but absent from order, in
// source order. Callers log these; they are hidden from ordered display.
func (t *Tree) Unordered(order PillarOrder) []id.PillarID {
	listed := make(map[id.PillarID]struct{}, len(order))
	for _, pid := range order {
		listed[pid] = struct{}{}
	}
	var out []id.PillarID
	for _, p := range t.Pillars() {
		if _, ok := listed[p.ID]; !ok {
			out = append(out, p.ID)
		}
	}
	return out
}

// LexicalOrder builds an explicit order from the tree's pillar ids sorted
// lexically. Used when neither configuration nor the seed file supplies one.
func LexicalOrder(t *Tree) PillarOrder {
	order := make(PillarOrder, 0, len(t.Pillars()))
	for _, p := range t.Pillars() {
		order = append(order, p.ID)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	return order
}

// ParsePillarOrder converts configured ids into a PillarOrder.
func ParsePillarOrder(ids []string) PillarOrder {
	order := make(PillarOrder, 0, len(ids))
	for _, s := range ids {
		order = append(order, id.PillarID(s))
	}
	return order
}
