// Package controller implements the fetch/filter/state pattern shared
// by every collection view: a raw collection fetched from the server, a
// derived view filtered by local predicate state, and generation tokens
// that discard results landing after the view moved on.
//
// The consistency model is deliberately simple: a refresh replaces the
// raw collection wholesale, and every successful write is followed by a
// refresh instead of mutating locally. A failed write therefore leaves
// the raw collection untouched. Concurrent edits resolve last-write-wins
// in the view; there is no client-side conflict detection.
package controller

// Status of the most recent fetch.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
)

// List holds a fetched collection and its filtered view.
type List[T any] struct {
	raw    []T
	view   []T
	pred   func(T) bool
	status Status
	err    error
	gen    int
	loaded bool
}

// NewList returns an empty list with no predicate constraint.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Begin marks the list loading and returns the generation token the
// eventual Complete call must present. Starting a newer fetch
// invalidates every outstanding one.
func (l *List[T]) Begin() int {
	l.gen++
	l.status = StatusLoading
	return l.gen
}

// Complete applies a finished fetch. Results from a superseded
// generation are discarded and Complete reports false; the caller's
// view state is then left exactly as it was.
func (l *List[T]) Complete(gen int, items []T, err error) bool {
	if gen != l.gen {
		return false
	}
	if err != nil {
		l.status = StatusError
		l.err = err
		return true
	}
	l.raw = items
	l.loaded = true
	l.status = StatusIdle
	l.err = nil
	l.apply()
	return true
}

// SetPredicate replaces the filter and recomputes the view from the
// current raw collection. No network call is involved; passing nil
// removes every constraint.
func (l *List[T]) SetPredicate(pred func(T) bool) {
	l.pred = pred
	l.apply()
}

func (l *List[T]) apply() {
	if l.pred == nil {
		l.view = l.raw
		return
	}
	view := make([]T, 0, len(l.raw))
	for _, item := range l.raw {
		if l.pred(item) {
			view = append(view, item)
		}
	}
	l.view = view
}

// Items returns the filtered view.
func (l *List[T]) Items() []T { return l.view }

// Raw returns the last fetched collection, unfiltered.
func (l *List[T]) Raw() []T { return l.raw }

// Len returns the size of the filtered view.
func (l *List[T]) Len() int { return len(l.view) }

// RawLen returns the size of the raw collection.
func (l *List[T]) RawLen() int { return len(l.raw) }

// Loaded reports whether at least one fetch has completed successfully.
func (l *List[T]) Loaded() bool { return l.loaded }

// Status returns the current fetch status.
func (l *List[T]) Status() Status { return l.status }

// Err returns the error of the last failed fetch, if any.
func (l *List[T]) Err() error { return l.err }

// EmptyRaw reports a genuinely empty collection: the user should create
// something.
func (l *List[T]) EmptyRaw() bool { return l.loaded && len(l.raw) == 0 }

// EmptyFiltered reports a non-empty collection fully excluded by the
// predicate: the user should adjust the filter.
func (l *List[T]) EmptyFiltered() bool {
	return l.loaded && len(l.raw) > 0 && len(l.view) == 0
}
