package timeutils

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock offset from local midnight.
type TimeOfDay time.Duration

// ParseTimeOfDay accepts "HH:mm:ss" or "HH:mm".
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{LayoutTimeOnly, LayoutShortTime} {
		t, err := time.Parse(layout, value)
		if err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q: expected HH:mm:ss", value)
}

// MustParseTimeOfDay is ParseTimeOfDay for constants; it panics on bad input.
func MustParseTimeOfDay(value string) TimeOfDay {
	tod, err := ParseTimeOfDay(value)
	if err != nil {
		panic(err)
	}
	return tod
}

// NewTimeOfDay builds a TimeOfDay from its components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

// TimeOfDayOf extracts the wall-clock part of t in t's own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()) + TimeOfDay(time.Duration(t.Nanosecond()))
}

// On anchors the time of day to the calendar date of day, in day's location.
// The result is the wall-clock reading, so DST transitions do not shift it.
func (tod TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	dur := time.Duration(tod)
	h := int(dur / time.Hour)
	mi := int(dur % time.Hour / time.Minute)
	sec := int(dur % time.Minute / time.Second)
	ns := int(dur % time.Second)
	return time.Date(y, m, d, h, mi, sec, ns, day.Location())
}

// Within reports whether tod lies in [start, end], inclusive at both ends.
func (tod TimeOfDay) Within(start, end TimeOfDay) bool {
	return tod >= start && tod <= end
}

func (tod TimeOfDay) String() string {
	d := time.Duration(tod)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
