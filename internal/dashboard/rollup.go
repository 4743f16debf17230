// Package dashboard reduces the audit snapshot into the counters and series
// shown on the results dashboard. Every function here is a pure reduction.
package dashboard

import (
	"math"
	"sort"
	"time"

	auditmodels "checkpoint/internal/audits/models"
	id "checkpoint/pkg/domain"
)

// DefaultLocations are the plants compared on the location matrix.
var DefaultLocations = []string{"Charata", "Bandera", "Quimili"}

// Entry is one result with the location and creation time of its audit.
type Entry struct {
	auditmodels.Result
	Location       string    `json:"location"`
	AuditCreatedAt time.Time `json:"audit_created_at"`
}

// Flatten turns audits into one stream of entries, in audit then result order.
func Flatten(audits []auditmodels.Audit) []Entry {
	n := 0
	for _, a := range audits {
		n += len(a.Results)
	}
	out := make([]Entry, 0, n)
	for _, a := range audits {
		for _, r := range a.Results {
			out = append(out, Entry{Result: r, Location: a.Location, AuditCreatedAt: a.CreatedAt})
		}
	}
	return out
}

// Counters tallies results by outcome. Unknown outcomes are never counted.
type Counters struct {
	Conforming          int `json:"C"`
	NonConforming       int `json:"NC"`
	NotObserved         int `json:"NO"`
	NonConformingClosed int `json:"NC Cerrada"`
}

// Add counts o and reports whether it is a known outcome.
func (c *Counters) Add(o id.Outcome) bool {
	switch o {
	case id.OutcomeConforming:
		c.Conforming++
	case id.OutcomeNonConforming:
		c.NonConforming++
	case id.OutcomeNotObserved:
		c.NotObserved++
	case id.OutcomeNonConformingClosed:
		c.NonConformingClosed++
	default:
		return false
	}
	return true
}

// Count returns the tally for o.
func (c Counters) Count(o id.Outcome) int {
	switch o {
	case id.OutcomeConforming:
		return c.Conforming
	case id.OutcomeNonConforming:
		return c.NonConforming
	case id.OutcomeNotObserved:
		return c.NotObserved
	case id.OutcomeNonConformingClosed:
		return c.NonConformingClosed
	}
	return 0
}

func (c Counters) Total() int {
	return c.Conforming + c.NonConforming + c.NotObserved + c.NonConformingClosed
}

// GlobalCounters tallies every entry regardless of audit.
func GlobalCounters(entries []Entry) Counters {
	var c Counters
	for _, e := range entries {
		c.Add(e.Outcome)
	}
	return c
}

// Slice is one wedge of an audit's outcome distribution.
type Slice struct {
	Name       id.Outcome `json:"name"`
	Value      int        `json:"value"`
	Percentage float64    `json:"percentage"`
}

// AuditDistribution splits one audit's results by outcome. Percentages are
// taken over every result of the audit and rounded to one decimal; outcomes
// with no results are left out.
func AuditDistribution(a auditmodels.Audit) []Slice {
	total := len(a.Results)
	if total == 0 {
		return []Slice{}
	}
	var c Counters
	for _, r := range a.Results {
		c.Add(r.Outcome)
	}
	out := make([]Slice, 0, len(id.Outcomes))
	for _, o := range id.Outcomes {
		v := c.Count(o)
		if v == 0 {
			continue
		}
		out = append(out, Slice{Name: o, Value: v, Percentage: percent(v, total)})
	}
	return out
}

// HistoryPoint is one evaluation of a requirement, dated by its audit.
type HistoryPoint struct {
	Date     time.Time  `json:"date"`
	AuditID  id.AuditID `json:"audit_id"`
	Location string     `json:"location"`
	Outcome  id.Outcome `json:"outcome"`
	Counters Counters   `json:"counters"`
}

// RequirementHistory lists reqID's results whose audit was created at or
// after now minus the window, oldest first.
func RequirementHistory(entries []Entry, reqID id.RequirementID, w Window, now time.Time) []HistoryPoint {
	since := w.Since(now)
	out := make([]HistoryPoint, 0)
	for _, e := range entries {
		if e.RequirementID != reqID || e.AuditCreatedAt.Before(since) {
			continue
		}
		p := HistoryPoint{Date: e.AuditCreatedAt, AuditID: e.AuditID, Location: e.Location, Outcome: e.Outcome}
		p.Counters.Add(e.Outcome)
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// LocationRow is one row of the location comparison.
type LocationRow struct {
	Location string `json:"name"`
	Counters
}

// LocationMatrix tallies outcomes per location. Rows follow locations;
// entries from any other location are ignored.
func LocationMatrix(entries []Entry, locations []string) []LocationRow {
	rows := make([]LocationRow, len(locations))
	index := make(map[string]int, len(locations))
	for i, loc := range locations {
		rows[i].Location = loc
		if _, dup := index[loc]; !dup {
			index[loc] = i
		}
	}
	for _, e := range entries {
		if i, ok := index[e.Location]; ok {
			rows[i].Add(e.Outcome)
		}
	}
	return rows
}

// PlanTally counts action plans by state.
type PlanTally struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// PlanCounters tallies plans by state; unknown states are ignored.
func PlanCounters(plans []auditmodels.ActionPlan) PlanTally {
	var t PlanTally
	for _, p := range plans {
		switch p.State {
		case auditmodels.PlanPending:
			t.Pending++
		case auditmodels.PlanInProgress:
			t.InProgress++
		case auditmodels.PlanCompleted:
			t.Completed++
		}
	}
	return t
}

// ConformityScore is the audit report score. Not-observed results do not count.
type ConformityScore struct {
	Evaluated           int     `json:"evaluated"`
	Conforming          int     `json:"conforming"`
	NonConforming       int     `json:"non_conforming"`
	NonConformingClosed int     `json:"non_conforming_closed"`
	Percent             float64 `json:"percent"`
}

// Conformity scores results as (C + NC closed) / (C + NC + NC closed),
// as a percentage rounded to one decimal.
func Conformity(results []auditmodels.Result) ConformityScore {
	var c Counters
	for _, r := range results {
		c.Add(r.Outcome)
	}
	s := ConformityScore{
		Conforming:          c.Conforming,
		NonConforming:       c.NonConforming,
		NonConformingClosed: c.NonConformingClosed,
	}
	s.Evaluated = s.Conforming + s.NonConforming + s.NonConformingClosed
	if s.Evaluated > 0 {
		s.Percent = percent(s.Conforming+s.NonConformingClosed, s.Evaluated)
	}
	return s
}

func percent(part, total int) float64 {
	return math.Round(float64(part)*1000/float64(total)) / 10
}
