// Package aggregate folds raw Query Layer rows into section summaries.
// Every function here is a pure reduction over its inputs.
package aggregate

import "sort"

// Entry is one ranked key.
type Entry struct {
	Key         string
	Count       int
	UniqueUsers int
}

// Tally counts occurrences per key and tracks the distinct actors behind
// each key. Keys remember the order they were first seen in; ranking
// keeps that order among equal counts.
type Tally struct {
	order  []string
	counts map[string]int
	users  map[string]map[string]struct{}
	total  int
}

func NewTally() *Tally {
	return &Tally{
		counts: make(map[string]int),
		users:  make(map[string]map[string]struct{}),
	}
}

// Add counts one occurrence of key. An empty userID is counted but not
// tracked as an actor.
func (t *Tally) Add(key, userID string) {
	t.AddN(key, userID, 1)
}

func (t *Tally) AddN(key, userID string, n int) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
	t.total += n

	if userID == "" {
		return
	}
	set, ok := t.users[key]
	if !ok {
		set = make(map[string]struct{})
		t.users[key] = set
	}
	set[userID] = struct{}{}
}

// Len is the number of distinct keys.
func (t *Tally) Len() int { return len(t.order) }

// Total is the sum of all counts.
func (t *Tally) Total() int { return t.total }

func (t *Tally) Count(key string) int { return t.counts[key] }

func (t *Tally) Unique(key string) int { return len(t.users[key]) }

// Keys returns the keys in first-seen order.
func (t *Tally) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Ranked sorts by count descending. Ties stay in first-seen order.
func (t *Tally) Ranked() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, Entry{Key: k, Count: t.counts[k], UniqueUsers: len(t.users[k])})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Top returns at most n ranked entries.
func (t *Tally) Top(n int) []Entry {
	ranked := t.Ranked()
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// distinct is a set of ids.
type distinct map[string]struct{}

func (d distinct) add(id string) {
	if id != "" {
		d[id] = struct{}{}
	}
}
