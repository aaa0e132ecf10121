package ensemble

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sartorproj/gocarma/carp"
	"github.com/sartorproj/gocarma/internal/workpool"
)

// ErrEmpty is returned when an ensemble is built from no rows.
var ErrEmpty = errors.New("ensemble: no draws")

// Ensemble is a set of posterior draws of a CAR(p) model, all of the same
// order.
type Ensemble struct {
	Draws []Draw
	P     int

	runID   uuid.UUID
	logger  *zap.Logger
	workers int
}

// FromRows decodes sampler rows into draws, computing roots, polynomial
// coefficients and σ for each draw in parallel. All rows must have the same
// number of columns.
func FromRows(ctx context.Context, rows [][]float64, opts ...Option) (*Ensemble, error) {
	e := &Ensemble{
		runID:  uuid.Must(uuid.NewV7()),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("run_id", e.runID.String()))

	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	ncols := len(rows[0])
	for i, row := range rows {
		if len(row) != ncols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", carp.ErrShape, i, len(row), ncols)
		}
	}

	start := time.Now()
	e.P = ncols - 3
	e.Draws = make([]Draw, len(rows))
	err := workpool.Run(ctx, len(rows), e.workers, func(_ context.Context, i int) error {
		d, err := drawFromRow(rows[i])
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		e.Draws[i] = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("ensemble loaded",
		zap.Int("draws", len(e.Draws)),
		zap.Int("p", e.P),
		zap.Int("workers", workpool.Workers(e.workers)),
		zap.Duration("elapsed", time.Since(start)))

	return e, nil
}

// Len returns the number of draws.
func (e *Ensemble) Len() int {
	return len(e.Draws)
}

// RunID identifies this ensemble in log output.
func (e *Ensemble) RunID() uuid.UUID {
	return e.runID
}

func (e *Ensemble) sigmas() []float64 {
	out := make([]float64, len(e.Draws))
	for i := range e.Draws {
		out[i] = e.Draws[i].Sigma
	}
	return out
}

func (e *Ensemble) coefs() [][]float64 {
	out := make([][]float64, len(e.Draws))
	for i := range e.Draws {
		out[i] = e.Draws[i].Coefs
	}
	return out
}
