package scheduling

import (
	"errors"
	"fmt"
	"time"
)

var ErrTimeOfDayOutOfRange = errors.New("time of day must be between 00:00 and 24:00")

const day = 24 * time.Hour

// TimeOfDay is a duration since midnight in the closed range [0h, 24h].
type TimeOfDay struct {
	d time.Duration
}

func NewTimeOfDay(d time.Duration) (TimeOfDay, error) {
	if d < 0 || d > day {
		return TimeOfDay{}, ErrTimeOfDayOutOfRange
	}
	return TimeOfDay{d: d}, nil
}

// ParseTimeOfDay accepts "15:04" or "15:04:05"; "24:00" is allowed.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if s == "24:00" || s == "24:00:00" {
		return TimeOfDay{d: day}, nil
	}
	var err error
	for _, layout := range []string{"15:04:05", "15:04"} {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
}

// TimeOfDayOf is the wall-clock time of t in t's own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay{d: time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())}
}

func (t TimeOfDay) Duration() time.Duration { return t.d }

func (t TimeOfDay) Before(other TimeOfDay) bool { return t.d < other.d }

func (t TimeOfDay) After(other TimeOfDay) bool { return t.d > other.d }

func (t TimeOfDay) Compare(other TimeOfDay) int {
	switch {
	case t.d < other.d:
		return -1
	case t.d > other.d:
		return 1
	default:
		return 0
	}
}

// On places the time of day on the calendar date of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, int(t.d), date.Location())
}

// OnIfExists is On, but reports false when the wall-clock time is skipped on
// that date by a daylight saving transition.
func (t TimeOfDay) OnIfExists(date time.Time) (time.Time, bool) {
	at := t.On(date)
	return at, TimeOfDayOf(at).d == t.d%day
}

func (t TimeOfDay) String() string {
	total := int(t.d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
