package strategy

import "math"

// priceBuffer keeps a rolling window of recent bar lows and exposes the
// lightweight statistics the controller needs: the recent-low floor for
// post-exit stops and an average-move fallback when the ATR series is
// unusable.
type priceBuffer struct {
	max int
	buf []float64
}

func newPriceBuffer(max int) *priceBuffer {
	if max <= 0 {
		max = 16
	}
	return &priceBuffer{max: max}
}

func (p *priceBuffer) Add(v float64) {
	p.buf = append(p.buf, v)
	if len(p.buf) > p.max {
		p.buf = p.buf[len(p.buf)-p.max:]
	}
}

func (p *priceBuffer) Len() int {
	return len(p.buf)
}

func (p *priceBuffer) Last() float64 {
	if len(p.buf) == 0 {
		return 0
	}
	return p.buf[len(p.buf)-1]
}

// Min returns the lowest value over the last lookback entries (all of them
// when fewer are buffered), or 0 when empty.
func (p *priceBuffer) Min(lookback int) float64 {
	n := len(p.buf)
	if n == 0 {
		return 0
	}
	start := n - lookback
	if lookback <= 0 || start < 0 {
		start = 0
	}
	min := p.buf[start]
	for _, v := range p.buf[start+1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Volatility is the mean absolute bar-to-bar move over a short lookback.
func (p *priceBuffer) Volatility() float64 {
	n := len(p.buf)
	if n < 2 {
		return 0
	}
	lookback := 8
	if lookback >= n {
		lookback = n - 1
	}
	start := n - lookback - 1
	if start < 0 {
		start = 0
	}
	diffSum := 0.0
	count := 0
	for i := start + 1; i < n; i++ {
		diffSum += math.Abs(p.buf[i] - p.buf[i-1])
		count++
	}
	if count == 0 {
		return 0
	}
	return diffSum / float64(count)
}
