package core

import (
	"testing"
	"time"
)

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}

	for _, tc := range tests {
		cfg := RuntimeConfig{TickRate: tc.rate}
		if got := cfg.FrameInterval(); got != tc.want {
			t.Errorf("FrameInterval(%d) = %v, expected %v", tc.rate, got, tc.want)
		}
	}
}

func TestColorANSI(t *testing.T) {
	if ColorDefault.ANSI() != "" {
		t.Errorf("default color should have no code, got %q", ColorDefault.ANSI())
	}
	if ColorOrange.ANSI() != "208" {
		t.Errorf("orange = %q, expected 208", ColorOrange.ANSI())
	}
	if Color(250).ANSI() != "" {
		t.Error("unknown colors should fall back to default")
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionJump)
	if !f.Has(ActionJump) {
		t.Error("Set should mark action")
	}

	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear should remove actions")
	}
}
