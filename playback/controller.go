package playback

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ChristianF88/linsort/steps"
)

// DefaultInterval is the delay between two steps during playback
const DefaultInterval = 600 * time.Millisecond

// MinInterval is the fastest playback speed accepted by SetInterval
const MinInterval = 10 * time.Millisecond

// Controller replays an immutable step sequence. It owns the cursor and the
// timer; the sequence itself is never modified, so pausing, seeking or
// changing speed never requires regenerating it.
type Controller struct {
	mu       sync.Mutex
	seq      []steps.Step
	cursor   int
	interval time.Duration
	ticker   *time.Ticker
	stop     chan struct{}
	onStep   func(int, steps.Step)

	playing atomic.Bool
}

// New creates a controller positioned on the first step
func New(seq []steps.Step, interval time.Duration) *Controller {
	if interval < MinInterval {
		interval = DefaultInterval
	}
	return &Controller{
		seq:      seq,
		interval: interval,
	}
}

// Len returns the number of steps
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seq)
}

// Cursor returns the index of the current step
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Current returns the step under the cursor; ok is false for an empty sequence.
func (c *Controller) Current() (steps.Step, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.seq) == 0 {
		return steps.Step{}, 0, false
	}
	return c.seq[c.cursor], c.cursor, true
}

// AtEnd reports whether the cursor is on the last step (or the sequence is empty)
func (c *Controller) AtEnd() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor >= len(c.seq)-1
}

// Interval returns the current playback interval
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// Playing reports whether the timer is running
func (c *Controller) Playing() bool {
	return c.playing.Load()
}

// Tick advances the cursor by one step. It returns false at the end.
func (c *Controller) Tick() bool {
	_, _, ok := c.advance()
	return ok
}

func (c *Controller) advance() (steps.Step, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor >= len(c.seq)-1 {
		return steps.Step{}, c.cursor, false
	}
	c.cursor++
	return c.seq[c.cursor], c.cursor, true
}

// Back moves the cursor one step backwards. It returns false at the start.
func (c *Controller) Back() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor == 0 {
		return false
	}
	c.cursor--
	return true
}

// Seek moves the cursor to step i
func (c *Controller) Seek(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.seq) {
		return fmt.Errorf("step %d out of range [0, %d)", i, len(c.seq))
	}
	c.cursor = i
	return nil
}

// Play starts advancing the cursor every interval, calling onStep after each
// advance from the timer goroutine. Playback stops by itself on the last step.
// It returns false, doing nothing, when the sequence is empty, already at its
// end, or already playing.
func (c *Controller) Play(onStep func(int, steps.Step)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.seq) == 0 || c.cursor >= len(c.seq)-1 || c.stop != nil {
		return false
	}
	if onStep == nil {
		onStep = func(int, steps.Step) {}
	}
	c.onStep = onStep
	c.ticker = time.NewTicker(c.interval)
	c.stop = make(chan struct{})
	c.playing.Store(true)
	go c.run(c.ticker, c.stop, onStep)
	return true
}

// Resume continues playback with the callback of the last Play
func (c *Controller) Resume() bool {
	c.mu.Lock()
	onStep := c.onStep
	c.mu.Unlock()
	return c.Play(onStep)
}

func (c *Controller) run(ticker *time.Ticker, stop chan struct{}, onStep func(int, steps.Step)) {
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			step, idx, ok, last := c.advanceRun(stop)
			if ok {
				onStep(idx, step)
			}
			if !ok || last {
				c.finish(stop)
				return
			}
		}
	}
}

// advanceRun advances only while stop still identifies the active run, so a
// tick racing with Pause cannot move the cursor.
func (c *Controller) advanceRun(stop chan struct{}) (step steps.Step, idx int, ok, last bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != stop || c.cursor >= len(c.seq)-1 {
		return steps.Step{}, c.cursor, false, true
	}
	c.cursor++
	return c.seq[c.cursor], c.cursor, true, c.cursor >= len(c.seq)-1
}

// finish clears the timer state if it still belongs to this run
func (c *Controller) finish(stop chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == stop {
		c.stop = nil
		c.ticker = nil
		c.playing.Store(false)
	}
}

// Pause stops the timer and keeps the cursor where it is
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
		c.ticker = nil
	}
	c.playing.Store(false)
}

// Toggle pauses a running playback or resumes a paused one
func (c *Controller) Toggle(onStep func(int, steps.Step)) bool {
	if c.Playing() {
		c.Pause()
		return false
	}
	return c.Play(onStep)
}

// SetInterval changes the playback speed, replacing the running timer if any.
// Intervals below MinInterval are raised to it.
func (c *Controller) SetInterval(d time.Duration) {
	if d < MinInterval {
		d = MinInterval
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = d
	if c.ticker != nil {
		c.ticker.Reset(d)
	}
}

// Reset stops playback and moves the cursor back to the first step
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.cursor = 0
}

// Close stops playback and discards the sequence
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.seq = nil
	c.cursor = 0
	c.onStep = nil
}
