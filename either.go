package dispatch

// Either is a closed two-variant union: exactly one of the left or right
// payload is populated, decided at construction and never mutated. The
// zero value behaves as Left of L's zero value.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left constructs the left variant.
func Left[L, R any](v L) Either[L, R] {
	return Either[L, R]{left: v}
}

// Right constructs the right variant.
func Right[L, R any](v R) Either[L, R] {
	return Either[L, R]{right: v, isRight: true}
}

// IsLeft reports whether e holds the left variant.
func (e Either[L, R]) IsLeft() bool { return !e.isRight }

// MatchEither dispatches on the populated variant. Exactly one of the two
// branch functions runs.
func MatchEither[L, R, T any](e Either[L, R], left func(L) T, right func(R) T) T {
	if e.isRight {
		return right(e.right)
	}
	return left(e.left)
}
