package progress

import (
	checklist "checkpoint/internal/checklist/models"
	id "checkpoint/pkg/domain"
)

// NextState is the outcome of a navigator lookup.
type NextState int

const (
	// NextFound means the returned requirement follows current.
	NextFound NextState = iota
	// NextLast means current is the last requirement of the standard.
	NextLast
	// NextUnknown means current is not in the list. This is a caller error.
	NextUnknown
)

func (s NextState) String() string {
	switch s {
	case NextFound:
		return "found"
	case NextLast:
		return "last"
	default:
		return "unknown"
	}
}

// Next returns the requirement following current in the ordered list.
func Next(reqs []checklist.Requirement, current id.RequirementID) (checklist.Requirement, NextState) {
	for i, r := range reqs {
		if r.ID != current {
			continue
		}
		if i+1 < len(reqs) {
			return reqs[i+1], NextFound
		}
		return checklist.Requirement{}, NextLast
	}
	return checklist.Requirement{}, NextUnknown
}
