package service

import (
	"alcyxob/virtual-coach/internal/logger"
	"context"
	"time"
)

// compensationTimeout bounds each undo action, which runs even if the request was cancelled.
const compensationTimeout = 10 * time.Second

type compensation struct {
	name string
	undo func(ctx context.Context) error
}

// saga runs forward steps and remembers how to undo the ones that succeeded.
type saga struct {
	log  *logger.Logger
	done []compensation
}

func newSaga(log *logger.Logger) *saga {
	return &saga{log: log}
}

// step runs do. On success undo is registered; it may be nil when there is nothing to undo.
func (s *saga) step(ctx context.Context, name string, do, undo func(ctx context.Context) error) error {
	if err := do(ctx); err != nil {
		s.log.Warn("saga step failed", "step", name, "error", err)
		return err
	}
	if undo != nil {
		s.done = append(s.done, compensation{name: name, undo: undo})
	}
	return nil
}

// register adds undo ahead of its forward step, for writes that can partially
// apply before failing.
func (s *saga) register(name string, undo func(ctx context.Context) error) {
	s.done = append(s.done, compensation{name: name, undo: undo})
}

// compensate runs registered undo actions in reverse order. Failures are logged only.
func (s *saga) compensate(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i := len(s.done) - 1; i >= 0; i-- {
		c := s.done[i]
		undoCtx, cancel := context.WithTimeout(base, compensationTimeout)
		err := c.undo(undoCtx)
		cancel()
		recordCompensation(err)
		if err != nil {
			s.log.Error("compensation failed", "step", c.name, "error", err)
		}
	}
	s.done = nil
}
