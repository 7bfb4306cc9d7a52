package testutil

import (
	"testing"
	"time"
)

func TestStubClock(t *testing.T) {
	t.Run("fixed clock does not move on read", func(t *testing.T) {
		c := FixedClock()
		if a, b := c.Now(), c.Now(); !a.Equal(Reference) || !b.Equal(Reference) {
			t.Errorf("Now() = %v, %v; want %v twice", a, b, Reference)
		}
	})

	t.Run("stepping clock advances after each read", func(t *testing.T) {
		c := SteppingClock(time.Second)
		first, second := c.Now(), c.Now()
		if !first.Equal(Reference) {
			t.Errorf("first Now() = %v, want %v", first, Reference)
		}
		if got := second.Sub(first); got != time.Second {
			t.Errorf("step = %v, want 1s", got)
		}
		if !c.Peek().Equal(Reference.Add(2 * time.Second)) {
			t.Errorf("Peek() = %v", c.Peek())
		}
	})

	t.Run("set and advance", func(t *testing.T) {
		c := FixedClock()
		at := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
		c.Set(at)
		c.Advance(-time.Minute)
		if got := c.Now(); !got.Equal(at.Add(-time.Minute)) {
			t.Errorf("Now() = %v, want %v", got, at.Add(-time.Minute))
		}
	})
}

func TestStubIDGenerator(t *testing.T) {
	g := NewStubIDGenerator()
	for _, want := range []string{"cp-1", "cp-2", "cp-3"} {
		if got := g.New(); got != want {
			t.Errorf("New() = %q, want %q", got, want)
		}
	}
}
