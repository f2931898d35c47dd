package daterange

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("daterange: end must be after start")

// DateRange is a closed interval [Start, End] of booking time.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: start.UTC(), End: end.UTC()}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrInvalidRange
	}
	if !dr.End.After(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Hours() float64 {
	return dr.End.Sub(dr.Start).Hours()
}

// Contains reports whether other fits entirely inside dr. Boundary
// equality counts as contained: a request starting exactly when a
// window opens, or ending exactly when it closes, is accepted.
func (dr DateRange) Contains(other DateRange) bool {
	return !other.Start.Before(dr.Start) && !other.End.After(dr.End)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return !t.Before(dr.Start) && !t.After(dr.End)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.Start.Before(other.End) && other.Start.Before(dr.End)
}

func (dr DateRange) Adjacent(other DateRange) bool {
	return dr.End.Equal(other.Start) || dr.Start.Equal(other.End)
}

func (dr DateRange) Merge(other DateRange) (DateRange, bool) {
	if !(dr.Overlaps(other) || dr.Adjacent(other)) {
		return DateRange{}, false
	}
	start := dr.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := dr.End
	if other.End.After(end) {
		end = other.End
	}
	return DateRange{Start: start, End: end}, true
}
