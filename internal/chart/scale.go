package chart

import (
	"math"
)

// Linear maps a continuous domain onto a continuous range
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear creates a linear scale from [d0, d1] to [r0, r1]
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map returns the range position of v. A degenerate domain maps to the
// middle of the range.
func (s Linear) Map(v float64) float64 {
	span := s.d1 - s.d0
	if span == 0 {
		return s.r0 + (s.r1-s.r0)/2
	}
	return s.r0 + (v-s.d0)/span*(s.r1-s.r0)
}

// Domain returns the domain bounds
func (s Linear) Domain() (float64, float64) {
	return s.d0, s.d1
}

// Ticks returns roughly count human-friendly values spanning the domain
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.d0, s.d1, count)
}

// TickStep returns the spacing between the values returned by Ticks
func (s Linear) TickStep(count int) float64 {
	return math.Abs(tickIncrementValue(s.d0, s.d1, count))
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec picks the integer tick bounds and increment for [start, stop].
// A negative increment means the step is 1/-inc.
func tickSpec(start, stop float64, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// Ticks returns evenly spaced round values between start and stop inclusive
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	i1, i2, inc := tickSpec(start, stop, float64(count))
	if i2 < i1 || math.IsInf(inc, 0) || inc == 0 {
		return nil
	}

	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := range ticks {
		if inc < 0 {
			ticks[i] = (i1 + float64(i)) / -inc
		} else {
			ticks[i] = (i1 + float64(i)) * inc
		}
	}
	if reverse {
		for l, r := 0, n-1; l < r; l, r = l+1, r-1 {
			ticks[l], ticks[r] = ticks[r], ticks[l]
		}
	}
	return ticks
}

func tickIncrementValue(start, stop float64, count int) float64 {
	if start > stop {
		start, stop = stop, start
	}
	if start == stop || count <= 0 {
		return 0
	}
	_, _, inc := tickSpec(start, stop, float64(count))
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}

// Band divides a continuous range into evenly spaced bands, one per category
type Band struct {
	domain    []string
	index     map[string]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBand creates a band scale over [r0, r1] with equal inner and outer padding
func NewBand(domain []string, r0, r1, padding float64) Band {
	return newBand(domain, r0, r1, padding, padding)
}

// NewPoint creates a point scale: categories spread over [r0, r1] with no band width
func NewPoint(domain []string, r0, r1 float64) Band {
	return newBand(domain, r0, r1, 1, 0)
}

func newBand(domain []string, r0, r1, inner, outer float64) Band {
	b := Band{index: make(map[string]int, len(domain))}
	for _, d := range domain {
		if _, ok := b.index[d]; ok {
			continue
		}
		b.index[d] = len(b.domain)
		b.domain = append(b.domain, d)
	}

	n := float64(len(b.domain))
	reverse := r1 < r0
	start, stop := r0, r1
	if reverse {
		start, stop = r1, r0
	}

	b.step = (stop - start) / math.Max(1, n-inner+outer*2)
	b.start = start + (stop-start-b.step*(n-inner))*0.5
	b.bandwidth = b.step * (1 - inner)

	if reverse {
		// Positions run from r0 downwards
		b.start = b.start + b.step*(n-1)
		b.step = -b.step
	}
	return b
}

// Map returns the start of the band for category c
func (b Band) Map(c string) (float64, bool) {
	i, ok := b.index[c]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Bandwidth returns the width of every band
func (b Band) Bandwidth() float64 {
	return b.bandwidth
}

// Domain returns the distinct categories in first-seen order
func (b Band) Domain() []string {
	return b.domain
}
