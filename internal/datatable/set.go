package datatable

// Set is an immutable set of row identities. With and Without return new
// sets, so a Set handed to a State or a caller is never changed later.
type Set[K comparable] struct {
	m map[K]struct{}
}

// NewSet returns a set holding ids.
func NewSet[K comparable](ids ...K) Set[K] {
	m := make(map[K]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Set[K]{m: m}
}

// Has reports whether id is in the set.
func (s Set[K]) Has(id K) bool {
	_, ok := s.m[id]
	return ok
}

// Len returns the number of identities.
func (s Set[K]) Len() int { return len(s.m) }

// With returns a copy of s including ids.
func (s Set[K]) With(ids ...K) Set[K] {
	next := s.clone(len(ids))
	for _, id := range ids {
		next.m[id] = struct{}{}
	}
	return next
}

// Without returns a copy of s excluding ids.
func (s Set[K]) Without(ids ...K) Set[K] {
	next := s.clone(0)
	for _, id := range ids {
		delete(next.m, id)
	}
	return next
}

// Toggle returns a copy of s with id flipped.
func (s Set[K]) Toggle(id K) Set[K] {
	if s.Has(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// Keep returns the subset of s for which keep reports true.
func (s Set[K]) Keep(keep func(K) bool) Set[K] {
	next := Set[K]{m: make(map[K]struct{}, len(s.m))}
	for id := range s.m {
		if keep(id) {
			next.m[id] = struct{}{}
		}
	}
	return next
}

// Each calls fn for every identity, in no particular order.
func (s Set[K]) Each(fn func(K)) {
	for id := range s.m {
		fn(id)
	}
}

func (s Set[K]) clone(extra int) Set[K] {
	next := Set[K]{m: make(map[K]struct{}, len(s.m)+extra)}
	for id := range s.m {
		next.m[id] = struct{}{}
	}
	return next
}
