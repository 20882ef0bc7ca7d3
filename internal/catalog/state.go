package catalog

// Phase enumerates the lifecycle of an asynchronous load.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is a tagged load state: Idle, Loading, Loaded(data) or Failed(err).
// Data is only observable in Loaded and the error only in Failed, so
// combinations such as "not loading, no data, no error" cannot be built.
type State[T any] struct {
	phase Phase
	data  T
	err   error
}

// Idle returns the zero state.
func Idle[T any]() State[T] {
	return State[T]{}
}

// Loading returns a pending state.
func Loading[T any]() State[T] {
	return State[T]{phase: PhaseLoading}
}

// Loaded returns a completed state carrying data.
func Loaded[T any](data T) State[T] {
	return State[T]{phase: PhaseLoaded, data: data}
}

// Failed returns a terminal error state.
func Failed[T any](err error) State[T] {
	return State[T]{phase: PhaseFailed, err: err}
}

// Phase returns the state tag.
func (s State[T]) Phase() Phase {
	return s.phase
}

// Pending reports whether a load is in flight.
func (s State[T]) Pending() bool {
	return s.phase == PhaseLoading
}

// Data returns the loaded value and true when the state is Loaded.
func (s State[T]) Data() (T, bool) {
	if s.phase != PhaseLoaded {
		var zero T
		return zero, false
	}
	return s.data, true
}

// Err returns the failure cause when the state is Failed.
func (s State[T]) Err() error {
	if s.phase != PhaseFailed {
		return nil
	}
	return s.err
}
