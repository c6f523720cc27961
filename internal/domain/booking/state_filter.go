package booking

import (
	"time"

	"github.com/DmitryMisevra/shareit/internal/domain"
)

// StateFilter is a listing filter keyword. Time-based keywords are
// evaluated against the current instant at query time, not pre-computed.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter converts a keyword to a StateFilter, failing with an
// unsupported error for anything it does not recognize.
func ParseStateFilter(s string) (StateFilter, error) {
	switch f := StateFilter(s); f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	default:
		return "", domain.NewUnsupportedError("Unknown state: " + s)
	}
}

// Condition is the predicate over (start, end, status) derived from a
// state keyword. Repositories translate it to storage filters; Matches
// evaluates it in memory. Both listing operations share this single
// keyword-to-predicate table.
type Condition struct {
	StartAtOrBefore *time.Time // start <= t
	StartAfter      *time.Time // start > t
	EndBefore       *time.Time // end < t
	EndAtOrAfter    *time.Time // end >= t
	Status          *Status
}

// Condition builds the predicate for the keyword at the given instant.
func (f StateFilter) Condition(now time.Time) Condition {
	switch f {
	case FilterCurrent:
		return Condition{StartAtOrBefore: &now, EndAtOrAfter: &now}
	case FilterPast:
		return Condition{EndBefore: &now}
	case FilterFuture:
		return Condition{StartAfter: &now}
	case FilterWaiting:
		s := StatusWaiting
		return Condition{Status: &s}
	case FilterRejected:
		s := StatusRejected
		return Condition{Status: &s}
	default: // FilterAll
		return Condition{}
	}
}

// Matches evaluates the condition against a booking in memory.
func (c Condition) Matches(b *Booking) bool {
	if c.StartAtOrBefore != nil && b.Start().After(*c.StartAtOrBefore) {
		return false
	}
	if c.StartAfter != nil && !b.Start().After(*c.StartAfter) {
		return false
	}
	if c.EndBefore != nil && !b.End().Before(*c.EndBefore) {
		return false
	}
	if c.EndAtOrAfter != nil && b.End().Before(*c.EndAtOrAfter) {
		return false
	}
	if c.Status != nil && b.Status() != *c.Status {
		return false
	}
	return true
}
