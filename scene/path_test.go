package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathString(t *testing.T) {
	pat := NewPath()
	assert.True(t, pat.Empty())

	pat.AbsMoveTo(NewPos(0, 0))
	pat.AbsLineTo(NewPos(10.5, 0))
	pat.AbsCubicCurve(NewPos(20, 10), NewPos(12, 0), NewPos(18, 10))
	pat.AbsArcTo(NewPos(40, 10), 10, 10, 0, false, true)
	pat.ClosePath()

	assert.False(t, pat.Empty())
	assert.Equal(t, 5, pat.Len())
	assert.Equal(t, "M0,0 L10.5,0 C12,0 18,10 20,10 A10 10 0 0 1 40,10 Z", pat.String())
}

func TestPathLength(t *testing.T) {
	t.Run("lines", func(t *testing.T) {
		pat := NewPath()
		pat.AbsMoveTo(NewPos(0, 0))
		pat.AbsLineTo(NewPos(3, 4))
		pat.AbsLineTo(NewPos(3, 10))
		assert.InDelta(t, 11, pat.Length(), 1e-9)
		pat.ClosePath()
		assert.InDelta(t, 11+math.Hypot(3, 10), pat.Length(), 1e-9)
	})
	t.Run("straight-curve", func(t *testing.T) {
		pat := NewPath()
		pat.AbsMoveTo(NewPos(0, 0))
		pat.AbsCubicCurve(NewPos(30, 0), NewPos(10, 0), NewPos(20, 0))
		assert.InDelta(t, 30, pat.Length(), 1e-9)
	})
	t.Run("half-circle", func(t *testing.T) {
		pat := NewPath()
		pat.AbsMoveTo(NewPos(0, 0))
		pat.AbsArcTo(NewPos(20, 0), 10, 10, 0, false, true)
		assert.InDelta(t, 10*math.Pi, pat.Length(), 1e-9)
	})
	t.Run("large-arc", func(t *testing.T) {
		pat := NewPath()
		pat.AbsMoveTo(NewPos(10, 0))
		pat.AbsArcTo(NewPos(0, 10), 10, 10, 0, true, true)
		assert.InDelta(t, 1.5*math.Pi*10, pat.Length(), 1e-9)
	})
}

func TestPathExtend(t *testing.T) {
	a := NewPath()
	a.AbsMoveTo(NewPos(0, 0))
	b := NewPath()
	b.AbsLineTo(NewPos(5, 0))
	a.Extend(b)
	assert.Equal(t, "M0,0 L5,0", a.String())
	assert.InDelta(t, 5, a.Length(), 1e-9)
}

func TestLineLength(t *testing.T) {
	assert.Equal(t, 5.0, NewLine(NewPos(0, 0), NewPos(3, 4)).Length())
}
