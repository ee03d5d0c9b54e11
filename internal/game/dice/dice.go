// Package dice provides the randomness abstraction shared by the encounter
// simulator: uniform draws, weighted ticket draws, and dice expressions for rewards.
package dice

import "fmt"

// Source is the randomness provider for every draw in the simulator.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Float64 returns a value in [0, 1) built from src with millionth resolution.
//
// Postcondition: 0 <= result < 1.
func Float64(src Source) float64 {
	return float64(src.Intn(1_000_000)) / 1_000_000
}

// IntRange returns a value in [lo, hi] drawn uniformly from src.
// When hi <= lo, lo is returned without consuming a draw.
//
// Postcondition: lo <= result <= max(lo, hi).
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// RollResult holds the full audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "1d10"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string such as "1d10+2 → [7] +2 = 9".
func (r RollResult) String() string {
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}
