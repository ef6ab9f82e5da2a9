package clock

import (
	"testing"
	"time"
)

func TestSystem_Monotonic(t *testing.T) {
	c := System()

	first := c.Now()
	second := c.Now()

	if second.Before(first) {
		t.Errorf("Expected non-decreasing time, got %v then %v", first, second)
	}
}

func TestFake_Advance(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := NewFake(start)

	if !f.Now().Equal(start) {
		t.Errorf("Expected %v, got %v", start, f.Now())
	}

	f.Advance(90 * time.Minute)

	want := start.Add(90 * time.Minute)
	if !f.Now().Equal(want) {
		t.Errorf("Expected %v after advance, got %v", want, f.Now())
	}
}

func TestFake_Set(t *testing.T) {
	f := NewFake(time.Unix(0, 0))

	target := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	f.Set(target)

	if !f.Now().Equal(target) {
		t.Errorf("Expected %v, got %v", target, f.Now())
	}
}
