package domain

// NonEmptyOr returns s, or fallback when s is the zero value.
func NonEmptyOr[T comparable](s, fallback T) T {
	var zero T
	if s == zero {
		return fallback
	}
	return s
}

// ValueOr dereferences p, or returns fallback when p is nil.
func ValueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
