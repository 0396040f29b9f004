package strategy

import "testing"

func TestPriceBufferWindow(t *testing.T) {
	p := newPriceBuffer(3)
	for _, v := range []float64{5, 4, 3, 2, 1} {
		p.Add(v)
	}
	if p.Len() != 3 {
		t.Fatalf("Len = %d, want window of 3", p.Len())
	}
	if p.Last() != 1 {
		t.Fatalf("Last = %v, want 1", p.Last())
	}
}

func TestPriceBufferMin(t *testing.T) {
	p := newPriceBuffer(16)
	for _, v := range []float64{10, 7, 9, 8, 12} {
		p.Add(v)
	}
	if got := p.Min(3); got != 8 {
		t.Fatalf("Min(3) = %v, want 8", got)
	}
	if got := p.Min(100); got != 7 {
		t.Fatalf("Min over full history = %v, want 7", got)
	}
	empty := newPriceBuffer(4)
	if empty.Min(3) != 0 {
		t.Fatalf("empty buffer Min should be 0")
	}
}

func TestPriceBufferVolatility(t *testing.T) {
	p := newPriceBuffer(16)
	if p.Volatility() != 0 {
		t.Fatalf("volatility of empty buffer should be 0")
	}
	for _, v := range []float64{10, 11, 10, 11, 10} {
		p.Add(v)
	}
	if got := p.Volatility(); got != 1 {
		t.Fatalf("Volatility = %v, want 1 for unit moves", got)
	}
}
