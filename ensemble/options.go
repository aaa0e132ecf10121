package ensemble

import "go.uber.org/zap"

type Option func(*Ensemble)

// WithLogger sets the logger used for run summaries. The default discards
// everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Ensemble) {
		e.logger = logger
	}
}

// WithWorkers bounds the number of goroutines used for per-draw work. Zero
// or negative means one per CPU.
func WithWorkers(n int) Option {
	return func(e *Ensemble) {
		e.workers = n
	}
}
