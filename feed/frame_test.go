package feed

import (
	"math"
	"testing"
)

func TestNewFrameRejectsUnevenSeries(t *testing.T) {
	_, err := NewFrame(map[string][]float64{
		Close: {1, 2, 3},
		ATR:   {1, 2},
	})
	if err == nil {
		t.Fatalf("expected uneven series lengths to be rejected")
	}
}

func TestNewFrameRejectsEmpty(t *testing.T) {
	if _, err := NewFrame(nil); err == nil {
		t.Fatalf("expected empty frame to be rejected")
	}
	if _, err := NewFrame(map[string][]float64{Close: {}}); err == nil {
		t.Fatalf("expected zero-bar frame to be rejected")
	}
}

func TestSnapshotOffsets(t *testing.T) {
	f, err := NewFrame(map[string][]float64{Close: {10, 11, 12}})
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	f.Next()
	f.Next() // bar index 1
	s := f.Snapshot()

	if v, ok := s.At(Close, 0); !ok || v != 11 {
		t.Fatalf("At(0) = %v/%v, want 11/true", v, ok)
	}
	if v, ok := s.At(Close, -1); !ok || v != 10 {
		t.Fatalf("At(-1) = %v/%v, want 10/true", v, ok)
	}
	// Reads before history and into the future must both fail.
	if _, ok := s.At(Close, -2); ok {
		t.Fatalf("read before the start of history succeeded")
	}
	if _, ok := s.At(Close, 1); ok {
		t.Fatalf("look-ahead read succeeded")
	}
	if _, ok := s.At("unknown", 0); ok {
		t.Fatalf("unknown series read succeeded")
	}
}

func TestSnapshotMasksNaN(t *testing.T) {
	f, _ := NewFrame(map[string][]float64{ATR: {math.NaN(), 2}})
	f.Next()
	s := f.Snapshot()
	if _, ok := s.At(ATR, 0); ok {
		t.Fatalf("NaN warm-up value reported as defined")
	}
	if !math.IsNaN(s.Value(ATR)) {
		t.Fatalf("Value should surface NaN for undefined bars")
	}
	f.Next()
	if v, ok := f.Snapshot().At(ATR, 0); !ok || v != 2 {
		t.Fatalf("defined bar read failed: %v/%v", v, ok)
	}
}

func TestCrossedAbove(t *testing.T) {
	f, _ := NewFrame(map[string][]float64{
		EMAFast: {1, 3, 4},
		EMASlow: {2, 2, 2},
	})
	f.Next()
	if f.Snapshot().CrossedAbove(EMAFast, EMASlow) {
		t.Fatalf("crossover reported on the first bar with no history")
	}
	f.Next()
	if !f.Snapshot().CrossedAbove(EMAFast, EMASlow) {
		t.Fatalf("golden cross not detected")
	}
	f.Next()
	if f.Snapshot().CrossedAbove(EMAFast, EMASlow) {
		t.Fatalf("crossover must only fire on the crossing bar")
	}
}

func TestCrossedBelow(t *testing.T) {
	f, _ := NewFrame(map[string][]float64{
		EMAFast: {3, 1},
		EMASlow: {2, 2},
	})
	f.Next()
	f.Next()
	if !f.Snapshot().CrossedBelow(EMAFast, EMASlow) {
		t.Fatalf("dead cross not detected")
	}
}

func TestFrameExhausts(t *testing.T) {
	f, _ := NewFrame(map[string][]float64{Close: {1, 2}})
	steps := 0
	for f.Next() {
		steps++
	}
	if steps != f.Len() || steps != 2 {
		t.Fatalf("iterated %d bars, want %d", steps, f.Len())
	}
	if f.Next() {
		t.Fatalf("Next returned true after exhaustion")
	}
}
