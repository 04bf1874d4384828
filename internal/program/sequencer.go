// Package program owns the ordering rules for acts within a show. Positions
// are 1-based and dense: a show with N acts uses exactly the positions 1..N,
// no duplicates, no gaps. The functions here are pure; ActRepo applies the
// resulting windows inside a transaction.
package program

// AppendPosition returns the position for a newly created act given the
// current maximum position in the show (0 when the program is empty).
func AppendPosition(currentMax int) int {
	return currentMax + 1
}

// ValidPosition reports whether p is a usable target position in a program of
// n acts.
func ValidPosition(p, n int) bool {
	return p >= 1 && p <= n
}

// Shift is a renumbering window: every act whose position lies in [Lo, Hi]
// has Delta added to it.
type Shift struct {
	Lo, Hi, Delta int
}

// MoveShift returns the window of acts displaced when the act at position old
// moves to position p. The second return is false when old == p and nothing
// needs to shift.
func MoveShift(old, p int) (Shift, bool) {
	switch {
	case p < old:
		// Everything from p up to just below old slides down the program.
		return Shift{Lo: p, Hi: old - 1, Delta: +1}, true
	case p > old:
		// Everything above old up to p closes toward the vacated slot.
		return Shift{Lo: old + 1, Hi: p, Delta: -1}, true
	default:
		return Shift{}, false
	}
}

// CloseGapShift returns the window decremented after the act at position old
// is deleted, restoring density.
func CloseGapShift(old int) Shift {
	return Shift{Lo: old + 1, Hi: 1 << 30, Delta: -1}
}

// Dense reports whether positions is exactly the multiset {1..N}. Order of the
// input does not matter.
func Dense(positions []int) bool {
	n := len(positions)
	seen := make([]bool, n+1)
	for _, p := range positions {
		if p < 1 || p > n || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}
