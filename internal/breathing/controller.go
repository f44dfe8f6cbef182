package breathing

import (
	"errors"
	"sync"
	"time"
)

const (
	// DefaultTotalDurationSeconds is the session target restored by Reset.
	DefaultTotalDurationSeconds = 60
	// DefaultTick is how often a running session counts down.
	DefaultTick = time.Second
)

var ErrInvalidDuration = errors.New("invalid duration: seconds must be > 0")

// Snapshot is the read-only view of a session published after every change.
type Snapshot struct {
	Phase                Phase  `json:"phase"`
	RemainingSeconds     int    `json:"remaining_seconds"`
	Running              bool   `json:"running"`
	Instruction          string `json:"instruction"`
	TotalDurationSeconds int    `json:"total_duration_seconds"`
}

// Ticker is the periodic driver owned by a running controller.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory builds a Ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Option customizes a Controller.
type Option func(*Controller)

// WithTick overrides the countdown interval.
func WithTick(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tick = d
		}
	}
}

// WithTickerFactory replaces the real clock, mainly for tests.
func WithTickerFactory(f TickerFactory) Option {
	return func(c *Controller) {
		if f != nil {
			c.newTicker = f
		}
	}
}

// WithConfig replaces the default breathing pattern.
func WithConfig(cfg Config) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// Controller owns one breathing session and the ticker that drives it.
// All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	cfg       Config
	tick      time.Duration
	newTicker TickerFactory

	phase       Phase
	remaining   int
	running     bool
	instruction string
	total       int

	// generation increments on every Start/Stop so a driver from an earlier
	// run can never touch the current state.
	generation uint64
	halt       chan struct{}

	subs   map[int]chan Snapshot
	nextID int

	lastActive time.Time
	closed     bool
}

// NewController returns a stopped controller showing the default target.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		cfg:       DefaultConfig(),
		tick:      DefaultTick,
		newTicker: newTimeTicker,
		subs:      make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.phase = c.cfg.Start
	c.total = DefaultTotalDurationSeconds
	c.remaining = c.total
	c.instruction = NotStartedInstruction
	c.lastActive = time.Now()
	return c
}

// Start begins (or re-arms) the cycle at the start phase.
func (c *Controller) Start() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.snapshot()
	}

	c.haltDriver()
	spec := c.cfg.Phases[c.cfg.Start]
	c.phase = c.cfg.Start
	c.remaining = spec.DurationSeconds
	c.instruction = spec.Instruction
	c.running = true
	c.touch()

	halt := make(chan struct{})
	c.halt = halt
	go c.drive(c.generation, halt, c.newTicker(c.tick))
	return c.publish()
}

// Stop halts the ticker and shows the configured total as the remaining time.
func (c *Controller) Stop() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	return c.publish()
}

// Reset stops the session and restores the default total duration.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.total = DefaultTotalDurationSeconds
	c.remaining = c.total
	return c.publish()
}

// SetTotalDuration changes the session target. The target is display-only:
// it never stops a running cycle.
func (c *Controller) SetTotalDuration(seconds int) (Snapshot, error) {
	if seconds <= 0 {
		return Snapshot{}, ErrInvalidDuration
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = seconds
	if !c.running {
		c.remaining = seconds
	}
	c.touch()
	return c.publish(), nil
}

// Tick advances a running session by one second. It is a no-op when stopped.
func (c *Controller) Tick() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return c.snapshot()
	}
	c.advance()
	return c.publish()
}

// Snapshot returns the current state without changing it.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Config returns the breathing pattern in use.
func (c *Controller) Config() Config {
	return c.cfg
}

// Subscribe returns a channel receiving the latest snapshot after every change.
// Slow readers only ever see the most recent value. Call the returned func to
// unsubscribe.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 1)
	id := c.nextID
	c.nextID++
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Idle reports whether the controller is stopped, has no subscribers and
// has not been touched since before cutoff.
func (c *Controller) Idle(cutoff time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.running && len(c.subs) == 0 && c.lastActive.Before(cutoff)
}

// Close stops the session and closes all subscriber channels.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopLocked()
	c.closed = true
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
}

func (c *Controller) drive(gen uint64, halt <-chan struct{}, t Ticker) {
	defer t.Stop()
	for {
		select {
		case <-halt:
			return
		case <-t.C():
			if !c.tickFrom(gen) {
				return
			}
		}
	}
}

// tickFrom applies a tick delivered by the driver of generation gen.
// It returns false once that driver is stale.
func (c *Controller) tickFrom(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || gen != c.generation {
		return false
	}
	c.advance()
	c.publish()
	return true
}

func (c *Controller) advance() {
	if c.remaining > 1 {
		c.remaining--
		return
	}
	c.phase, c.remaining, c.instruction = Transition(c.cfg, c.phase)
}

func (c *Controller) stopLocked() {
	c.haltDriver()
	c.running = false
	c.phase = c.cfg.Start
	c.remaining = c.total
	c.instruction = NotStartedInstruction
	c.touch()
}

func (c *Controller) haltDriver() {
	c.generation++
	if c.halt != nil {
		close(c.halt)
		c.halt = nil
	}
}

func (c *Controller) touch() {
	c.lastActive = time.Now()
}

func (c *Controller) keepAlive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
}

func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		Phase:                c.phase,
		RemainingSeconds:     c.remaining,
		Running:              c.running,
		Instruction:          c.instruction,
		TotalDurationSeconds: c.total,
	}
}

// publish must be called with mu held.
func (c *Controller) publish() Snapshot {
	s := c.snapshot()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
	return s
}
