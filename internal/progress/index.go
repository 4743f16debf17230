package progress

import (
	"sort"

	auditmodels "checkpoint/internal/audits/models"
	id "checkpoint/pkg/domain"
)

// Index is the sparse map from requirement id to the current Result of one
// audit. At most one entry exists per requirement. Version increases on every
// mutation so callers can memoize derived state on (tree, index, version).
// The zero value is an empty index ready to use.
type Index struct {
	entries map[id.RequirementID]auditmodels.Result
	version uint64
}

// NewIndex builds an index from fetched results, applying Merge semantics.
func NewIndex(results []auditmodels.Result) *Index {
	ix := &Index{entries: make(map[id.RequirementID]auditmodels.Result, len(results))}
	ix.Merge(results)
	return ix
}

// Get returns the current result for reqID. The bool is false when the
// requirement has not been answered.
func (ix *Index) Get(reqID id.RequirementID) (auditmodels.Result, bool) {
	if ix == nil {
		return auditmodels.Result{}, false
	}
	r, ok := ix.entries[reqID]
	return r, ok
}

// Has reports whether reqID has a current result.
func (ix *Index) Has(reqID id.RequirementID) bool {
	_, ok := ix.Get(reqID)
	return ok
}

// Upsert records result as the current result for reqID, replacing any
// previous entry. Used for the optimistic local update after a durable save.
func (ix *Index) Upsert(reqID id.RequirementID, result auditmodels.Result) {
	ix.init(1)
	ix.entries[reqID] = result
	ix.version++
}

// Merge folds results into the index. When two results name the same
// requirement the one recorded later wins; on a tie the incoming one wins.
func (ix *Index) Merge(results []auditmodels.Result) {
	if len(results) == 0 {
		return
	}
	ix.init(len(results))
	for _, r := range results {
		if cur, ok := ix.entries[r.RequirementID]; ok && cur.RecordedAt.After(r.RecordedAt) {
			continue
		}
		ix.entries[r.RequirementID] = r
	}
	ix.version++
}

func (ix *Index) init(hint int) {
	if ix.entries == nil {
		ix.entries = make(map[id.RequirementID]auditmodels.Result, hint)
	}
}

// Len is the number of answered requirements.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Version identifies the current state of the index.
func (ix *Index) Version() uint64 {
	if ix == nil {
		return 0
	}
	return ix.version
}

// Results returns a snapshot sorted by requirement id.
func (ix *Index) Results() []auditmodels.Result {
	if ix == nil {
		return nil
	}
	out := make([]auditmodels.Result, 0, len(ix.entries))
	for _, r := range ix.entries {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequirementID < out[j].RequirementID })
	return out
}

// Clone returns an independent copy. Saves stage their optimistic update on a
// clone and swap it in only after the store write succeeded.
func (ix *Index) Clone() *Index {
	c := &Index{entries: make(map[id.RequirementID]auditmodels.Result, ix.Len()), version: ix.Version()}
	if ix != nil {
		for k, v := range ix.entries {
			c.entries[k] = v
		}
	}
	return c
}
