package dice

// Roll evaluates expr using src.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count and expr.Min() <= result.Total() <= expr.Max().
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{
		Expression: expr.Raw,
		Dice:       rolled,
		Modifier:   expr.Modifier,
	}
}

// Ticket draws an index from weights where each index owns weights[i] equally
// likely tickets. Non-positive weights own no tickets.
//
// Postcondition: Returns (i, true) with weights[i] > 0, or (-1, false) when no
// index owns a ticket.
func Ticket(src Source, weights []int) (int, bool) {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1, false
	}
	n := src.Intn(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if n < w {
			return i, true
		}
		n -= w
	}
	return -1, false
}
