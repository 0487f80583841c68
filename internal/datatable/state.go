package datatable

// State is a value the View reads and writes through. Leaving a Config
// state nil gives the View its own internal state; supplying one lets
// the caller own the value (controlled state). Both go through the same
// interface, so the View has a single code path.
//
// Values handed to Set are never modified afterwards. Implementations
// may keep them as they are.
type State[V any] interface {
	Get() V
	Set(V)
}

type localState[V any] struct{ v V }

func (s *localState[V]) Get() V  { return s.v }
func (s *localState[V]) Set(v V) { s.v = v }

// Local returns internal state starting at initial.
func Local[V any](initial V) State[V] {
	return &localState[V]{v: initial}
}

type controlledState[V any] struct {
	get func() V
	set func(V)
}

func (s controlledState[V]) Get() V  { return s.get() }
func (s controlledState[V]) Set(v V) { s.set(v) }

// Controlled returns state owned by the caller. set is the change
// callback; it is invoked with every new value.
func Controlled[V any](get func() V, set func(V)) State[V] {
	return controlledState[V]{get: get, set: set}
}
