package geometry

import (
	"math"
	"testing"
)

func TestThresholdRange(t *testing.T) {
	tests := []struct {
		name      string
		container Size
		element   Size
		borders   Borders
		want      Range
	}{
		{
			name:      "NoBorders",
			container: Size{Width: 800, Height: 600},
			element:   Size{Width: 100, Height: 50},
			want:      Range{MaxX: 700, MaxY: 550},
		},
		{
			name:      "WithBorders",
			container: Size{Width: 800, Height: 600},
			element:   Size{Width: 100, Height: 50},
			borders:   Borders{Horizontal: 4, Vertical: 2},
			want:      Range{MaxX: 696, MaxY: 548},
		},
		{
			name:      "ElementLargerThanContainer",
			container: Size{Width: 80, Height: 60},
			element:   Size{Width: 100, Height: 50},
			want:      Range{MaxX: -20, MaxY: 10},
		},
		{
			name:    "ZeroContainer",
			element: Size{Width: 100, Height: 50},
			want:    Range{MaxX: -100, MaxY: -50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ThresholdRange(tt.container, tt.element, tt.borders)
			if got != tt.want {
				t.Errorf("ThresholdRange() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	rng := Range{MaxX: 700, MaxY: 550}

	tests := []struct {
		name      string
		left, top float64
		rng       Range
		want      Correction
	}{
		{name: "WithinRange", left: 50, top: 30, rng: rng, want: Correction{}},
		{name: "AtOrigin", left: 0, top: 0, rng: rng, want: Correction{}},
		{name: "AtMax", left: 700, top: 550, rng: rng, want: Correction{}},
		{name: "ExceedsRight", left: 750, top: 30, rng: rng, want: Correction{X: -50}},
		{name: "ExceedsBottom", left: 50, top: 600, rng: rng, want: Correction{Y: -50}},
		{name: "BeforeLeft", left: -25, top: 30, rng: rng, want: Correction{X: 25}},
		{name: "BeforeTop", left: 50, top: -10, rng: rng, want: Correction{Y: 10}},
		{name: "BothAxes", left: 800, top: -20, rng: rng, want: Correction{X: -100, Y: 20}},
		{
			// Element larger than container: max is negative, so even the
			// origin exceeds the bound and the element pins to max.
			name: "NegativeMaxPinsToEdge",
			left: 0, top: 0,
			rng:  Range{MaxX: -20, MaxY: -5},
			want: Correction{X: -20, Y: -5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.left, tt.top, tt.rng)
			if got != tt.want {
				t.Errorf("Clamp(%v, %v, %+v) = %+v, want %+v", tt.left, tt.top, tt.rng, got, tt.want)
			}
		})
	}
}

// Applying a clamp correction must always land inside [0, max] when max is
// non-negative, on both axes, whatever the starting position.
func TestClampCorrectedPositionIsLegal(t *testing.T) {
	rng := Range{MaxX: 700, MaxY: 550}
	positions := []struct{ left, top float64 }{
		{-1000, -1000}, {-0.5, 550.5}, {0, 0}, {350, 275},
		{700, 550}, {701, 551}, {1e6, 1e6},
	}
	for _, p := range positions {
		c := Clamp(p.left, p.top, rng)
		left, top := p.left+c.X, p.top+c.Y
		if left < 0 || left > rng.MaxX || top < 0 || top > rng.MaxY {
			t.Errorf("corrected position (%v, %v) outside [0, %v]x[0, %v]", left, top, rng.MaxX, rng.MaxY)
		}
	}
}

// Clamping an already-clamped position must be a no-op.
func TestClampIdempotent(t *testing.T) {
	rng := Range{MaxX: 700, MaxY: 550}
	c := Clamp(950, -40, rng)
	left, top := 950+c.X, -40+c.Y

	if c2 := Clamp(left, top, rng); !c2.IsZero() {
		t.Errorf("second clamp = %+v, want zero", c2)
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	offsets := []Offset{
		{},
		{X: 50, Y: 30},
		{X: -12.25, Y: 0.1},
		{X: 700, Y: 550},
		{X: math.MaxFloat64, Y: -math.MaxFloat64},
		{X: math.SmallestNonzeroFloat64, Y: 1e-300},
	}
	for _, o := range offsets {
		got := DecodeOffset(EncodeOffset(o))
		if got != o {
			t.Errorf("round trip of %+v = %+v", o, got)
		}
	}
}

func TestEncodeOffsetNonFinite(t *testing.T) {
	got := DecodeOffset(EncodeOffset(Offset{X: math.NaN(), Y: math.Inf(1)}))
	if !got.IsZero() {
		t.Errorf("non-finite offset encoded to %+v, want zero", got)
	}
}

func TestDecodeOffsetMalformed(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte("not json"),
		[]byte(`{"x":"a","y":2}`),
		[]byte(`[1,2]`),
	}
	for _, in := range inputs {
		if got := DecodeOffset(in); !got.IsZero() {
			t.Errorf("DecodeOffset(%q) = %+v, want zero", in, got)
		}
	}
}

func TestModeSupported(t *testing.T) {
	if !ModeFixed.Supported() || !ModeAbsolute.Supported() {
		t.Error("fixed and absolute must be supported")
	}
	for _, m := range []Mode{"static", "relative", "sticky", ""} {
		if m.Supported() {
			t.Errorf("mode %q should not be supported", m)
		}
	}
}
