package domain

import (
	"slices"
	"time"
)

// DateRange bounds every query. A nil bound is unbounded on that side.
type DateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

func (r DateRange) IsUnbounded() bool {
	return r.Start == nil && r.End == nil
}

// Contains reports whether t falls inside the range, inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Valid is false only when both bounds are set and start is after end.
func (r DateRange) Valid() bool {
	if r.Start == nil || r.End == nil {
		return true
	}
	return !r.Start.After(*r.End)
}

// Equal compares bounds by instant, not by pointer.
func (r DateRange) Equal(o DateRange) bool {
	return sameBound(r.Start, o.Start) && sameBound(r.End, o.End)
}

func sameBound(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Scope restricts queries to a set of user ids (organization filter).
// Nil UserIDs means unscoped; a non-nil empty slice matches nobody.
type Scope struct {
	UserIDs []string `json:"user_ids,omitempty"`
}

func (s Scope) Active() bool {
	return s.UserIDs != nil
}

// Empty is true for an active scope that can never match a row.
func (s Scope) Empty() bool {
	return s.Active() && len(s.UserIDs) == 0
}

func (s Scope) Equal(o Scope) bool {
	return s.Active() == o.Active() && slices.Equal(s.UserIDs, o.UserIDs)
}

// Filter is what every Query Layer fetch receives.
type Filter struct {
	Range DateRange
	Scope Scope
}

// Equal reports whether two filters select the same rows.
func (f Filter) Equal(o Filter) bool {
	return f.Range.Equal(o.Range) && f.Scope.Equal(o.Scope)
}
