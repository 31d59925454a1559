package core

import (
	"testing"
	"time"
)

func TestClockFirstTickIsZero(t *testing.T) {
	c := NewClock(0)
	if dt := c.Tick(time.Unix(100, 0)); dt != 0 {
		t.Errorf("first Tick() = %v, expected 0", dt)
	}
}

func TestClockDeltas(t *testing.T) {
	base := time.Unix(100, 0)

	tests := []struct {
		name     string
		next     time.Time
		expected float64
	}{
		{"one frame", base.Add(16 * time.Millisecond), 0.016},
		{"backwards jump", base.Add(-time.Second), 0},
		{"long pause clamped", base.Add(5 * time.Second), 0.1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClock(100 * time.Millisecond)
			c.Tick(base)
			if dt := c.Tick(tc.next); dt != tc.expected {
				t.Errorf("Tick() = %v, expected %v", dt, tc.expected)
			}
		})
	}
}

func TestClockReset(t *testing.T) {
	c := NewClock(time.Second)
	c.Tick(time.Unix(0, 0))
	c.Reset()
	if dt := c.Tick(time.Unix(0, int64(500*time.Millisecond))); dt != 0 {
		t.Errorf("Tick() after Reset = %v, expected 0", dt)
	}
}

func TestInputFrameAxisDeadZone(t *testing.T) {
	tests := []struct {
		axis, expected float64
	}{
		{0.1, 0},
		{-0.19, 0},
		{0.5, 0.5},
		{-2, -1},
	}

	for _, tc := range tests {
		f := NewInputFrame()
		f.Axis = tc.axis
		if got := f.AxisValue(0.2); got != tc.expected {
			t.Errorf("AxisValue(%v) = %v, expected %v", tc.axis, got, tc.expected)
		}
	}
}

func TestInputFramePressImpliesHeld(t *testing.T) {
	f := NewInputFrame()
	f.Press(ActionFire)
	f.Hold(ActionLeft)

	if !f.WasPressed(ActionFire) || !f.IsHeld(ActionFire) {
		t.Error("pressed action should be pressed and held")
	}
	if f.WasPressed(ActionLeft) {
		t.Error("held action should not count as pressed")
	}

	f.Axis = 0.5
	f.Clear()
	if f.IsHeld(ActionLeft) || f.WasPressed(ActionFire) || f.Axis != 0 {
		t.Error("Clear should reset all actions and the axis")
	}
}

func TestMemorySlot(t *testing.T) {
	var slot MemorySlot
	if _, ok := slot.Load(); ok {
		t.Error("empty slot should report no record")
	}
	if err := slot.Store(SaveRecord{HighScore: 42}); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	rec, ok := slot.Load()
	if !ok || rec.HighScore != 42 {
		t.Errorf("Load() = %+v, %v; expected 42, true", rec, ok)
	}
}
