package selection

import (
	"math"
	"sort"
	"time"
)

// TimeScale maps a time domain linearly onto a numeric range.
type TimeScale struct {
	d0, d1 time.Time
	r0, r1 float64
}

// NewTimeScale creates a time scale from [d0, d1] to [r0, r1].
func NewTimeScale(d0, d1 time.Time, r0, r1 float64) TimeScale {
	return TimeScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the scale's time domain.
func (s TimeScale) Domain() (time.Time, time.Time) {
	return s.d0, s.d1
}

// Map projects t into the range. A degenerate domain maps to the midpoint.
func (s TimeScale) Map(t time.Time) float64 {
	span := s.d1.Sub(s.d0)
	if span == 0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + float64(t.Sub(s.d0))/float64(span)*(s.r1-s.r0)
}

// Invert maps a range value back to a time. The range endpoints map exactly
// onto the domain endpoints.
func (s TimeScale) Invert(v float64) time.Time {
	switch {
	case s.r1 == s.r0:
		return s.d0
	case v == s.r0:
		return s.d0
	case v == s.r1:
		return s.d1
	}
	frac := (v - s.r0) / (s.r1 - s.r0)
	return s.d0.Add(time.Duration(frac * float64(s.d1.Sub(s.d0))))
}

// Nice extends the domain outward to round tick boundaries, aiming for
// about ten ticks.
func (s TimeScale) Nice() TimeScale {
	if !s.d1.After(s.d0) {
		return s
	}
	iv := chooseInterval(s.d1.Sub(s.d0) / 10)
	s.d0 = iv.floor(s.d0)
	s.d1 = iv.ceil(s.d1)
	return s
}

// LinearScale maps a numeric domain linearly onto a numeric range.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale creates a linear scale from [d0, d1] to [r0, r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map projects v into the range.
func (s LinearScale) Map(v float64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Invert maps a range value back into the domain.
func (s LinearScale) Invert(v float64) float64 {
	if s.r1 == s.r0 {
		return s.d0
	}
	return s.d0 + (v-s.r0)/(s.r1-s.r0)*(s.d1-s.d0)
}

// SqrtScale maps the square root of the domain linearly onto the range, so
// that circle areas stay proportional to the value.
type SqrtScale struct {
	inner LinearScale
}

// NewSqrtScale creates a square-root scale from [d0, d1] to [r0, r1].
func NewSqrtScale(d0, d1, r0, r1 float64) SqrtScale {
	return SqrtScale{inner: NewLinearScale(math.Sqrt(d0), math.Sqrt(d1), r0, r1)}
}

// Map projects v into the range.
func (s SqrtScale) Map(v float64) float64 {
	return s.inner.Map(math.Sqrt(v))
}

// timeInterval is a calendar-aligned tick interval.
type timeInterval struct {
	unit     time.Duration // nominal length of one unit
	step     int
	floorFn  func(t time.Time, step int) time.Time
	offsetFn func(t time.Time, n int) time.Time
}

func (iv timeInterval) duration() time.Duration {
	return iv.unit * time.Duration(iv.step)
}

func (iv timeInterval) floor(t time.Time) time.Time {
	return iv.floorFn(t, iv.step)
}

func (iv timeInterval) ceil(t time.Time) time.Time {
	f := iv.floor(t)
	if f.Equal(t) {
		return t
	}
	return iv.offsetFn(f, iv.step)
}

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

func floorSecond(t time.Time, step int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second()/step*step, 0, t.Location())
}

func floorMinute(t time.Time, step int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()/step*step, 0, 0, t.Location())
}

func floorHour(t time.Time, step int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()/step*step, 0, 0, 0, t.Location())
}

func floorDay(t time.Time, step int) time.Time {
	return time.Date(t.Year(), t.Month(), (t.Day()-1)/step*step+1, 0, 0, 0, 0, t.Location())
}

func floorWeek(t time.Time, _ int) time.Time {
	d := floorDay(t, 1)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func floorMonth(t time.Time, step int) time.Time {
	return time.Date(t.Year(), time.Month((int(t.Month())-1)/step*step+1), 1, 0, 0, 0, 0, t.Location())
}

func floorYear(t time.Time, step int) time.Time {
	return time.Date(t.Year()/step*step, time.January, 1, 0, 0, 0, 0, t.Location())
}

func addSeconds(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Second) }
func addMinutes(t time.Time, n int) time.Time { return t.Add(time.Duration(n) * time.Minute) }
func addHours(t time.Time, n int) time.Time   { return t.Add(time.Duration(n) * time.Hour) }
func addDays(t time.Time, n int) time.Time    { return t.AddDate(0, 0, n) }
func addWeeks(t time.Time, n int) time.Time   { return t.AddDate(0, 0, 7*n) }
func addMonths(t time.Time, n int) time.Time  { return t.AddDate(0, n, 0) }
func addYears(t time.Time, n int) time.Time   { return t.AddDate(n, 0, 0) }

// Sorted by duration.
var tickIntervals = []timeInterval{
	{time.Second, 1, floorSecond, addSeconds},
	{time.Second, 5, floorSecond, addSeconds},
	{time.Second, 15, floorSecond, addSeconds},
	{time.Second, 30, floorSecond, addSeconds},
	{time.Minute, 1, floorMinute, addMinutes},
	{time.Minute, 5, floorMinute, addMinutes},
	{time.Minute, 15, floorMinute, addMinutes},
	{time.Minute, 30, floorMinute, addMinutes},
	{time.Hour, 1, floorHour, addHours},
	{time.Hour, 3, floorHour, addHours},
	{time.Hour, 6, floorHour, addHours},
	{time.Hour, 12, floorHour, addHours},
	{day, 1, floorDay, addDays},
	{day, 2, floorDay, addDays},
	{week, 1, floorWeek, addWeeks},
	{month, 1, floorMonth, addMonths},
	{month, 3, floorMonth, addMonths},
	{year, 1, floorYear, addYears},
}

// chooseInterval picks the tick interval closest to target.
func chooseInterval(target time.Duration) timeInterval {
	i := sort.Search(len(tickIntervals), func(i int) bool {
		return tickIntervals[i].duration() > target
	})
	switch {
	case i == 0:
		return tickIntervals[0]
	case i == len(tickIntervals):
		step := tickStep(float64(target) / float64(year))
		return timeInterval{year, step, floorYear, addYears}
	}
	lo, hi := tickIntervals[i-1], tickIntervals[i]
	if float64(target)/float64(lo.duration()) < float64(hi.duration())/float64(target) {
		return lo
	}
	return hi
}

// tickStep rounds a raw step to 1, 2 or 5 times a power of ten.
func tickStep(raw float64) int {
	if raw <= 1 {
		return 1
	}
	pow := math.Pow(10, math.Floor(math.Log10(raw)))
	err := raw / pow
	switch {
	case err >= math.Sqrt(50):
		pow *= 10
	case err >= math.Sqrt(10):
		pow *= 5
	case err >= math.Sqrt(2):
		pow *= 2
	}
	return int(pow)
}
