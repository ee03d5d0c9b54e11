package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so every simulator draw leaves a debug trail.
// Roller itself satisfies Source.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn draws from the underlying Source without logging.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}

// Roll evaluates expr and logs the result at debug level.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// Pick draws a uniform index in [0, n) for the named purpose and logs it.
//
// Precondition: n > 0.
func (r *Roller) Pick(purpose string, n int) int {
	i := r.src.Intn(n)
	r.logger.Debug("dice pick",
		zap.String("purpose", purpose),
		zap.Int("choices", n),
		zap.Int("index", i),
	)
	return i
}

// PickWeighted draws an index from weights using Ticket and logs it.
//
// Postcondition: ok is false iff no weight is positive.
func (r *Roller) PickWeighted(purpose string, weights []int) (int, bool) {
	i, ok := Ticket(r.src, weights)
	r.logger.Debug("dice weighted pick",
		zap.String("purpose", purpose),
		zap.Ints("weights", weights),
		zap.Int("index", i),
		zap.Bool("ok", ok),
	)
	return i, ok
}
