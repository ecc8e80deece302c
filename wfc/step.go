package wfc

import (
	"context"
	"errors"
	"fmt"
)

// Step performs one unit of work: a single propagation update if any are
// pending, otherwise one random collapse. Reports whether anything was done.
//
// Errors: ErrContradiction (strict), ErrReentrant.
func (e *Engine) Step() (bool, error) {
	if err := e.enter("Step"); err != nil {
		return false, err
	}
	defer e.leave()
	return e.step()
}

func (e *Engine) step() (bool, error) {
	if e.stepPropagation() {
		return true, nil
	}
	return e.collapseRandom()
}

// Tick spends one pacing budget. A Tick issued while the engine is already
// running (for example from a Listener) is ignored.
//
// Errors: ErrContradiction (strict).
func (e *Engine) Tick() error {
	if err := e.enter("Tick"); err != nil {
		return nil
	}
	defer e.leave()
	_, err := e.tick()
	return err
}

// tick reports whether any work was done.
func (e *Engine) tick() (bool, error) {
	switch e.pacing.Mode {
	case PaceStep:
		progressed := false
		for i := 0; i < e.pacing.StepsPerTick; i++ {
			ok, err := e.step()
			if err != nil {
				return progressed, err
			}
			if !ok {
				break
			}
			progressed = true
		}
		return progressed, nil
	default:
		n := e.drain()
		collapsed, err := e.collapseRandom()
		if err != nil {
			return n > 0, err
		}
		n += e.drain()
		return n > 0 || collapsed, nil
	}
}

// Run ticks until no cell is undecided and the queue is empty, or ctx ends.
// In strict mode a contradiction stops the run with ErrContradiction; in
// non-strict mode the run completes around contradicted cells, which remain
// visible through Contradictions. A Run issued while the engine is already
// running is ignored.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.enter("Run"); err != nil {
		return nil
	}
	defer e.leave()
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("wfc: Run: %w", err)
		}
		progressed, err := e.tick()
		if err != nil {
			if errors.Is(err, ErrContradiction) {
				e.log.Info("run stopped", "reason", "contradiction", "cells", len(e.contradicted))
			}
			return err
		}
		if !progressed {
			break
		}
	}
	if err := e.contradictionErr("Run"); err != nil {
		return err
	}
	e.log.Info("run finished",
		"collapses", e.stats.Collapses, "propagations", e.stats.Propagations,
		"contradictions", len(e.contradicted))
	return nil
}
