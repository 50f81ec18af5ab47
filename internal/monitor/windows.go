package monitor

import (
	"time"

	"github.com/aleister1102/outboundwatch/internal/common/timeutils"
	"github.com/aleister1102/outboundwatch/internal/config"
)

// Fallback SLA deadlines used when a step window carries none.
var (
	defaultProprietaryDeadline = timeutils.MustParseTimeOfDay("10:00:00")
	defaultDropDeadline        = timeutils.MustParseTimeOfDay("09:55:00")
)

type stepWindow struct {
	start, end  timeutils.TimeOfDay
	deadline    timeutils.TimeOfDay
	hasDeadline bool
}

// Schedule answers window and deadline questions for the configured steps.
type Schedule struct {
	windows map[string]stepWindow
}

// NewSchedule parses the configured step windows.
func NewSchedule(windows map[string]config.StepWindow) (*Schedule, error) {
	s := &Schedule{windows: make(map[string]stepWindow, len(windows))}
	for step, w := range windows {
		start, err := timeutils.ParseTimeOfDay(w.Start)
		if err != nil {
			return nil, err
		}
		end, err := timeutils.ParseTimeOfDay(w.End)
		if err != nil {
			return nil, err
		}
		parsed := stepWindow{start: start, end: end}
		if w.Deadline != "" {
			if parsed.deadline, err = timeutils.ParseTimeOfDay(w.Deadline); err != nil {
				return nil, err
			}
			parsed.hasDeadline = true
		}
		s.windows[step] = parsed
	}
	return s, nil
}

// InWindow reports whether now falls in step's window. A step without a
// window is always in window.
func (s *Schedule) InWindow(step string, now time.Time) bool {
	w, ok := s.windows[step]
	if !ok {
		return true
	}
	return timeutils.TimeOfDayOf(now).Within(w.start, w.end)
}

// Deadline returns step's deadline on now's local date, or fallback when the
// step has no configured deadline.
func (s *Schedule) Deadline(step string, fallback timeutils.TimeOfDay, now time.Time) time.Time {
	if w, ok := s.windows[step]; ok && w.hasDeadline {
		return w.deadline.On(now)
	}
	return fallback.On(now)
}
