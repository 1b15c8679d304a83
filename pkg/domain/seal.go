package domain

// sealed holds a value that can be written exactly once.
// The zero value is unsealed.
type sealed[T any] struct {
	v *T
}

func (s *sealed[T]) seal(v T) bool {
	if s.v != nil {
		return false
	}
	s.v = &v
	return true
}

func (s *sealed[T]) get() (T, bool) {
	if s.v == nil {
		var zero T
		return zero, false
	}
	return *s.v, true
}

func (s *sealed[T]) ok() bool {
	return s.v != nil
}
