// Package ordering relocates elements inside ordered sequences and keeps their
// zero-based order indices contiguous. It is shared by section-level and
// field-level reordering; drag-and-drop layers only need to translate a
// gesture into a (from, to) index pair.
package ordering

// Indexed is implemented by value types that carry an order index the engine
// may overwrite. WithOrder must return a copy and leave the receiver intact.
type Indexed[T any] interface {
	WithOrder(order int) T
	Position() int
}

// Move removes the element at from and reinserts it at to, shifting the
// elements in between by one position. The result is always a new slice. When
// either index is out of range, or they are equal, Move returns an unchanged
// copy of seq.
func Move[T any](seq []T, from, to int) []T {
	out := make([]T, len(seq))
	copy(out, seq)
	if from == to || !InRange(len(seq), from) || !InRange(len(seq), to) {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}

// Renumber returns a copy of seq with every element's order set to its index.
func Renumber[T Indexed[T]](seq []T) []T {
	out := make([]T, len(seq))
	for idx, item := range seq {
		out[idx] = item.WithOrder(idx)
	}
	return out
}

// Reorder moves one element and renumbers the result.
func Reorder[T Indexed[T]](seq []T, from, to int) []T {
	return Renumber(Move(seq, from, to))
}

// Contiguous reports whether the order indices of seq are exactly 0..n-1 in
// sequence.
func Contiguous[T Indexed[T]](seq []T) bool {
	for idx, item := range seq {
		if item.Position() != idx {
			return false
		}
	}
	return true
}

// InRange reports whether index addresses an element of a sequence of the
// given length.
func InRange(length, index int) bool {
	return index >= 0 && index < length
}
