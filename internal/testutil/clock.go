package testutil

import (
	"fmt"
	"sync"
	"time"

	"cds-go/internal/cds"
)

// Reference is the instant FixedClock starts at: 2024-01-15 10:30:00 UTC.
var Reference = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// StubClock is a Clock driven by the test. With a non-zero step each Now call
// returns the current time and then moves it forward by step, so consecutive
// checkpoints get distinct times. Safe for concurrent use.
type StubClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewStubClock returns a clock that stays at t until moved.
func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// FixedClock returns a StubClock set to Reference.
func FixedClock() *StubClock {
	return NewStubClock(Reference)
}

// SteppingClock returns a clock starting at Reference that advances by step on every read.
func SteppingClock(step time.Duration) *StubClock {
	return &StubClock{now: Reference, step: step}
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Peek returns the time the next Now call will report, without stepping.
func (c *StubClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock by d; a negative d moves it back.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t.
func (c *StubClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// StubIDGenerator hands out checkpoint IDs "cp-1", "cp-2", ...
type StubIDGenerator struct {
	mu   sync.Mutex
	next int
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("cp-%d", g.next)
}

var (
	_ cds.Clock       = (*StubClock)(nil)
	_ cds.IDGenerator = (*StubIDGenerator)(nil)
)
