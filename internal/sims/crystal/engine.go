package crystal

import (
	"context"
	"io"
	"log/slog"

	"crystal-ca/internal/noise"
)

// Order selects how events taken from one bucket are consumed.
type Order int

const (
	// OrderLIFO pops the most recently scheduled event first.
	OrderLIFO Order = iota
	// OrderFIFO consumes events in scheduling order. Occupancy races resolve
	// differently, so output diverges from OrderLIFO for the same seeds.
	OrderFIFO
)

func (o Order) String() string {
	if o == OrderFIFO {
		return "fifo"
	}
	return "lifo"
}

// Stats summarizes a growth run.
type Stats struct {
	Seeds     int `yaml:"seeds"`
	Crystals  int `yaml:"crystals"`
	Mutations int `yaml:"mutations"`

	Rounds int `yaml:"rounds"`
	Ticks  int `yaml:"ticks"`
	// WastedRounds counts rounds that took events but placed none.
	WastedRounds int `yaml:"wasted_rounds"`

	Taken     int `yaml:"taken"`
	Discarded int `yaml:"discarded"`
	Placed    int `yaml:"placed"`
}

// Engine owns the grid, the delay ring and the random source of one run.
type Engine struct {
	cfg   Config
	grid  *Grid
	ring  *DelayRing
	rng   Source
	field noise.Field
	order Order
	log   *slog.Logger

	stats Stats
}

// Option customizes an Engine.
type Option func(*Engine)

// WithOrder sets the bucket consumption order.
func WithOrder(o Order) Option { return func(e *Engine) { e.order = o } }

// WithLogger routes round summaries to l at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithField sets the noise field that biases seed placement. Without one,
// seeds are placed uniformly.
func WithField(f noise.Field) Option { return func(e *Engine) { e.field = f } }

// NewEngine wires a grid and random source to a ring sized cfg.LatencyMax.
func NewEngine(cfg Config, grid *Grid, rng Source, opts ...Option) *Engine {
	e := &Engine{
		cfg:  cfg,
		grid: grid,
		ring: NewDelayRing(cfg.LatencyMax),
		rng:  rng,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Grid exposes the occupancy grid.
func (e *Engine) Grid() *Grid { return e.grid }

// Ring exposes the delay ring.
func (e *Engine) Ring() *DelayRing { return e.ring }

// Stats returns the counters accumulated so far.
func (e *Engine) Stats() Stats { return e.stats }

// Propagate schedules c's growth from (x, y) at tick t into all four
// directions. With probability MutProb the four events carry a single mutant
// instead, all due on the next tick.
func (e *Engine) Propagate(c *Crystal, x, y, t int) {
	next := c
	mutated := e.rng.Float64() < e.cfg.MutProb
	if mutated {
		next = c.Mutate(e.cfg, e.rng)
		e.stats.Mutations++
		e.stats.Crystals++
	}
	for _, dir := range Directions {
		delay := 1
		if !mutated {
			delay = c.Delay(dir)
		}
		dx, dy := dir.Offset()
		e.ring.Schedule(t, delay, PendingEvent{X: x + dx, Y: y + dy, Crystal: next})
	}
}

// Run drains the ring until a whole round finds every bucket empty. A round
// whose events were all discarded still counts as active. ctx is checked once
// per round; on cancellation Run returns the counters so far and ctx.Err().
func (e *Engine) Run(ctx context.Context) (Stats, error) {
	n := e.ring.Len()
	t := e.stats.Ticks
	for {
		if err := ctx.Err(); err != nil {
			return e.stats, err
		}
		idle := true
		placed := e.stats.Placed
		for i := 0; i < n; i, t = i+1, t+1 {
			idx := t % n
			events := e.ring.Take(idx)
			if len(events) > 0 {
				idle = false
				e.consume(events, t)
			}
			e.ring.Recycle(idx, events)
		}
		e.stats.Rounds++
		e.stats.Ticks = t
		if idle {
			break
		}
		if e.stats.Placed == placed {
			e.stats.WastedRounds++
		}
		e.log.Debug("round complete",
			"round", e.stats.Rounds,
			"tick", t,
			"placed", e.stats.Placed-placed,
			"filled", e.grid.Filled(),
			"pending", e.ring.Pending(),
		)
	}
	e.log.Debug("growth finished", "rounds", e.stats.Rounds, "ticks", e.stats.Ticks, "mutations", e.stats.Mutations)
	return e.stats, nil
}

func (e *Engine) consume(events []PendingEvent, t int) {
	e.stats.Taken += len(events)
	if e.order == OrderFIFO {
		for _, ev := range events {
			e.apply(ev, t)
		}
		return
	}
	for i := len(events) - 1; i >= 0; i-- {
		e.apply(events[i], t)
	}
}

func (e *Engine) apply(ev PendingEvent, t int) {
	if !e.grid.Contains(ev.X, ev.Y) || e.grid.Occupied(ev.X, ev.Y) {
		e.stats.Discarded++
		return
	}
	e.Propagate(ev.Crystal, ev.X, ev.Y, t)
	e.grid.Place(ev.X, ev.Y, ev.Crystal)
	e.stats.Placed++
}
