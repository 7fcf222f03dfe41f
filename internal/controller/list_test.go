package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCompleteReplacesWholesale(t *testing.T) {
	l := NewList[int]()

	gen := l.Begin()
	require.True(t, l.Complete(gen, []int{1, 2, 3}, nil))
	assert.Equal(t, []int{1, 2, 3}, l.Items())

	gen = l.Begin()
	require.True(t, l.Complete(gen, []int{7}, nil))
	assert.Equal(t, []int{7}, l.Items(), "refresh replaces, never merges")
}

func TestListStaleGenerationDiscarded(t *testing.T) {
	l := NewList[string]()

	old := l.Begin()
	newer := l.Begin()

	require.True(t, l.Complete(newer, []string{"fresh"}, nil))
	require.False(t, l.Complete(old, []string{"stale"}, nil))

	assert.Equal(t, []string{"fresh"}, l.Items())
	assert.Equal(t, StatusIdle, l.Status())
}

func TestListStaleErrorDiscarded(t *testing.T) {
	l := NewList[string]()

	old := l.Begin()
	newer := l.Begin()
	require.True(t, l.Complete(newer, []string{"ok"}, nil))

	require.False(t, l.Complete(old, nil, errors.New("late failure")))
	assert.Equal(t, StatusIdle, l.Status(), "a stale failure must not mark the list errored")
	assert.NoError(t, l.Err())
}

func TestListErrorKeepsPreviousItems(t *testing.T) {
	l := NewList[int]()

	gen := l.Begin()
	require.True(t, l.Complete(gen, []int{1, 2}, nil))

	gen = l.Begin()
	require.True(t, l.Complete(gen, nil, errors.New("boom")))

	assert.Equal(t, StatusError, l.Status())
	assert.Equal(t, []int{1, 2}, l.Items(), "a failed refresh leaves the collection untouched")
	assert.True(t, l.Loaded())
}

func TestListPredicateIsLocal(t *testing.T) {
	l := NewList[int]()
	gen := l.Begin()
	require.True(t, l.Complete(gen, []int{1, 2, 3, 4, 5}, nil))

	l.SetPredicate(func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, l.Items())
	assert.Equal(t, 5, l.RawLen(), "filtering never touches the raw collection")

	l.SetPredicate(nil)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, l.Items())
}

func TestListEmptyRawVsEmptyFiltered(t *testing.T) {
	l := NewList[int]()
	assert.False(t, l.EmptyRaw(), "nothing is empty before the first load")
	assert.False(t, l.EmptyFiltered())

	gen := l.Begin()
	require.True(t, l.Complete(gen, nil, nil))
	assert.True(t, l.EmptyRaw())
	assert.False(t, l.EmptyFiltered())

	gen = l.Begin()
	require.True(t, l.Complete(gen, []int{1, 3}, nil))
	l.SetPredicate(func(n int) bool { return n%2 == 0 })
	assert.False(t, l.EmptyRaw())
	assert.True(t, l.EmptyFiltered())
}

func TestResourceStaleGenerationDiscarded(t *testing.T) {
	r := NewResource[string]()

	old := r.Begin()
	newer := r.Begin()

	require.True(t, r.Complete(newer, "fresh", nil))
	require.False(t, r.Complete(old, "stale", nil))

	assert.Equal(t, "fresh", r.Value())
	assert.True(t, r.Loaded())
}

func TestResourceErrorKeepsValue(t *testing.T) {
	r := NewResource[int]()

	gen := r.Begin()
	require.True(t, r.Complete(gen, 42, nil))

	gen = r.Begin()
	require.True(t, r.Complete(gen, 0, errors.New("boom")))

	assert.Equal(t, StatusError, r.Status())
	assert.Equal(t, 42, r.Value())
}
