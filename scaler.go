package charts

import (
	"math"
)

const gridSteps = 5

type Scale struct {
	MinValue float64
	MaxValue float64
	MinNice  float64
	MaxNice  float64
	Step     float64
}

// NiceRange widens [min, max] to boundaries that are multiples of a step of
// the form k*10^n so that grid lines land on readable values. When the data
// touches a computed boundary on the far side of zero, the range is padded by
// one more step.
func NiceRange(min, max float64) (float64, float64, float64) {
	if max < min {
		min, max = max, min
	}
	if min == max {
		return min - 1, max + 1, 1
	}
	var (
		rough = (max - min) / gridSteps
		mag   = math.Pow(10, math.Floor(math.Log10(rough)))
		step  = math.Ceil(rough/mag) * mag
		lo    = math.Floor(min/step) * step
		hi    = math.Ceil(max/step) * step
	)
	if min > 0 {
		if min == lo {
			lo = math.Max(0, lo-step)
		}
		if max == hi {
			hi += step
		}
	}
	if max < 0 {
		if max == hi {
			hi = math.Min(0, hi+step)
		}
		if min == lo {
			lo -= step
		}
	}
	return lo, hi, step
}

func NewScale(min, max float64) Scale {
	lo, hi, step := NiceRange(min, max)
	return Scale{
		MinValue: min,
		MaxValue: max,
		MinNice:  lo,
		MaxNice:  hi,
		Step:     step,
	}
}

// ScaleOf scans every value of every series. An empty set gives the scale of
// the single value zero.
func ScaleOf(set []Series) Scale {
	var (
		min, max float64
		seen     bool
	)
	for _, s := range set {
		for _, pt := range s.Data {
			if !seen {
				min, max, seen = pt.Value, pt.Value, true
				continue
			}
			min = math.Min(min, pt.Value)
			max = math.Max(max, pt.Value)
		}
	}
	return NewScale(min, max)
}

func (s Scale) Extend() float64 {
	return s.MaxNice - s.MinNice
}

// Baseline is the value bars and filled areas grow from: zero when the range
// straddles it, the nearer boundary otherwise.
func (s Scale) Baseline() float64 {
	switch {
	case s.MinNice >= 0:
		return s.MinNice
	case s.MaxNice <= 0:
		return s.MaxNice
	default:
		return 0
	}
}

// Ticks returns the values of the horizontal grid lines, from the lowest.
func (s Scale) Ticks() []float64 {
	all := make([]float64, 0, gridSteps+1)
	for i := 0; i <= gridSteps; i++ {
		all = append(all, s.MinNice+s.Extend()*float64(i)/gridSteps)
	}
	return all
}

// Mapper converts indexes and values into positions inside the plot area of
// a surface of the given size.
type Mapper struct {
	Width   float64
	Height  float64
	Margin  Margin
	Scale   Scale
	Visible int
}

func (m Mapper) DrawingWidth() float64 {
	return m.Width - m.Margin.Horizontal()
}

func (m Mapper) DrawingHeight() float64 {
	return m.Height - m.Margin.Vertical()
}

func (m Mapper) X(index int) float64 {
	if m.Visible <= 1 {
		return m.Margin.Left + m.DrawingWidth()/2
	}
	return m.Margin.Left + (float64(index)/float64(m.Visible-1))*m.DrawingWidth()
}

func (m Mapper) Y(value float64) float64 {
	if m.Scale.MaxNice == m.Scale.MinNice {
		return m.Margin.Top + m.DrawingHeight()/2
	}
	return m.Margin.Top + ((m.Scale.MaxNice-value)/m.Scale.Extend())*m.DrawingHeight()
}

func (m Mapper) Center() (float64, float64) {
	return m.Margin.Left + m.DrawingWidth()/2, m.Margin.Top + m.DrawingHeight()/2
}

func (m Mapper) Bottom() float64 {
	return m.Height - m.Margin.Bottom
}

func (m Mapper) Right() float64 {
	return m.Width - m.Margin.Right
}
