package wfc

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// PaceMode selects how much work one Tick performs.
type PaceMode int

const (
	// PaceDrain propagates to a fixed point, collapses one cell and
	// propagates again.
	PaceDrain PaceMode = iota
	// PaceStep performs Pacing.StepsPerTick single steps.
	PaceStep
)

var paceNames = [...]string{"drain", "step"}

// String returns "drain" or "step".
func (m PaceMode) String() string {
	if m >= 0 && int(m) < len(paceNames) {
		return paceNames[m]
	}
	return fmt.Sprintf("PaceMode(%d)", int(m))
}

// ParsePaceMode maps "drain" or "step" (case-insensitive) to a PaceMode.
func ParsePaceMode(s string) (PaceMode, error) {
	for i, name := range paceNames {
		if strings.EqualFold(s, name) {
			return PaceMode(i), nil
		}
	}
	return PaceDrain, fmt.Errorf("wfc: unknown pace mode %q", s)
}

// Pacing is the per-Tick work budget. Wall-clock timing belongs to the host.
type Pacing struct {
	Mode         PaceMode
	StepsPerTick int
}

// DefaultPacing drains on every Tick.
func DefaultPacing() Pacing {
	return Pacing{Mode: PaceDrain, StepsPerTick: 1}
}

// engineConfig collects construction options.
type engineConfig struct {
	seed      int64
	strict    bool
	pacing    Pacing
	listeners []Listener
	logger    *slog.Logger
}

func defaultConfig() engineConfig {
	return engineConfig{
		strict: true,
		pacing: DefaultPacing(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithSeed fixes the random seed. Zero lets the engine pick one; the value
// actually used is reported by Engine.Seed.
func WithSeed(seed int64) Option {
	return func(c *engineConfig) { c.seed = seed }
}

// WithStrict selects whether ordering violations and contradictions are
// returned as errors (true, the default) or logged and tolerated.
func WithStrict(strict bool) Option {
	return func(c *engineConfig) { c.strict = strict }
}

// WithPacing sets the per-Tick work budget.
// Panics if the mode is unknown or StepsPerTick < 1.
func WithPacing(p Pacing) Option {
	if p.Mode != PaceDrain && p.Mode != PaceStep {
		panic(fmt.Sprintf("wfc: WithPacing(mode=%d): unknown mode", int(p.Mode)))
	}
	if p.StepsPerTick < 1 {
		panic(fmt.Sprintf("wfc: WithPacing(steps=%d): must be >= 1", p.StepsPerTick))
	}
	return func(c *engineConfig) { c.pacing = p }
}

// WithListener subscribes l to engine events. May be given more than once;
// listeners are called in registration order.
func WithListener(l Listener) Option {
	if l == nil {
		panic("wfc: WithListener(nil)")
	}
	return func(c *engineConfig) { c.listeners = append(c.listeners, l) }
}

// WithLogger routes engine diagnostics to logger. The default discards them.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic("wfc: WithLogger(nil)")
	}
	return func(c *engineConfig) { c.logger = logger }
}
