package controller

// Resource holds a single fetched entity for a detail view. Each
// sub-collection of a detail view gets its own Resource or List so one
// failed fetch never blocks the others from populating.
type Resource[T any] struct {
	value  T
	status Status
	err    error
	gen    int
	loaded bool
}

// NewResource returns an empty, idle resource.
func NewResource[T any]() *Resource[T] {
	return &Resource[T]{}
}

// Begin marks the resource loading and returns the generation token.
func (r *Resource[T]) Begin() int {
	r.gen++
	r.status = StatusLoading
	return r.gen
}

// Complete applies a finished fetch, discarding stale generations.
func (r *Resource[T]) Complete(gen int, value T, err error) bool {
	if gen != r.gen {
		return false
	}
	if err != nil {
		r.status = StatusError
		r.err = err
		return true
	}
	r.value = value
	r.loaded = true
	r.status = StatusIdle
	r.err = nil
	return true
}

// Value returns the entity; meaningful only when Loaded.
func (r *Resource[T]) Value() T { return r.value }

// Loaded reports whether a fetch has completed successfully.
func (r *Resource[T]) Loaded() bool { return r.loaded }

// Status returns the current fetch status.
func (r *Resource[T]) Status() Status { return r.status }

// Err returns the error of the last failed fetch, if any.
func (r *Resource[T]) Err() error { return r.err }
