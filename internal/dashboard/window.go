package dashboard

import (
	"strings"
	"time"

	dErrors "checkpoint/pkg/domain-errors"
)

// Window is a lookback period. Years and Months are calendar offsets applied
// with AddDate, then Duration is subtracted.
type Window struct {
	Label    string        `json:"label"`
	Years    int           `json:"-"`
	Months   int           `json:"-"`
	Duration time.Duration `json:"-"`
}

var (
	SixMonths = Window{Label: "6m", Months: 6}
	OneYear   = Window{Label: "1y", Years: 1}
)

// DefaultWindow is used when no period is requested.
var DefaultWindow = SixMonths

// ParseWindow accepts "6m", "1y" or a Go duration such as "720h".
func ParseWindow(s string) (Window, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return DefaultWindow, nil
	case SixMonths.Label:
		return SixMonths, nil
	case OneYear.Label:
		return OneYear, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return Window{}, dErrors.New(dErrors.CodeInvalidInput, "period must be 6m, 1y or a positive duration")
	}
	return Window{Label: s, Duration: d}, nil
}

// Since returns the inclusive lower bound of the window ending at now.
func (w Window) Since(now time.Time) time.Time {
	return now.AddDate(-w.Years, -w.Months, 0).Add(-w.Duration)
}
