package domain

import dErrors "checkpoint/pkg/domain-errors"

// Outcome is the recorded verdict for one requirement within one audit.
// Invariant: the value must be one of the four supported outcomes.
//
// The wire values are the ones already stored in the result collection, so
// they are kept verbatim.
type Outcome string

const (
	OutcomeConforming          Outcome = "C"
	OutcomeNonConforming       Outcome = "NC"
	OutcomeNotObserved         Outcome = "NO"
	OutcomeNonConformingClosed Outcome = "NC Cerrada"
)

// Outcomes lists every outcome in dashboard display order.
var Outcomes = []Outcome{
	OutcomeConforming,
	OutcomeNonConforming,
	OutcomeNotObserved,
	OutcomeNonConformingClosed,
}

var validOutcomes = map[Outcome]bool{
	OutcomeConforming:          true,
	OutcomeNonConforming:       true,
	OutcomeNotObserved:         true,
	OutcomeNonConformingClosed: true,
}

// ParseOutcome constructs an Outcome from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseOutcome(s string) (Outcome, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "outcome cannot be empty")
	}
	o := Outcome(s)
	if !o.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid outcome: "+s)
	}
	return o, nil
}

func (o Outcome) IsValid() bool {
	return validOutcomes[o]
}

func (o Outcome) String() string {
	return string(o)
}
