package charts

import (
	"math"
	"strings"
	"testing"

	"github.com/midbel/ggraphs/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieSlices(t *testing.T) {
	set := []Series{
		NewSeries("sales", NewPoint("a", 1), NewPoint("b", 1), NewPoint("c", 2)),
	}
	slices, total := pieSlices(set)
	require.Len(t, slices, 3)
	assert.Equal(t, 4.0, total)

	var sum float64
	for _, s := range slices {
		sum += s.Angle()
	}
	assert.InDelta(t, 2*math.Pi, sum, 1e-12)
	assert.InDelta(t, math.Pi/2, slices[0].Angle(), 1e-12)
	assert.InDelta(t, math.Pi/2, slices[1].Angle(), 1e-12)
	assert.InDelta(t, math.Pi, slices[2].Angle(), 1e-12)
	assert.InDelta(t, -math.Pi/2, slices[0].Start, 1e-12)
	assert.InDelta(t, slices[0].End, slices[1].Start, 1e-12)
}

func TestPieSlicesAcrossSeries(t *testing.T) {
	set := []Series{
		NewSeries("a", NewPoint("x", 3)),
		NewSeries("b", NewPoint("x", 1)),
	}
	slices, total := pieSlices(set)
	require.Len(t, slices, 2)
	assert.Equal(t, 4.0, total)
	assert.Equal(t, 1, slices[1].Serie)
	assert.InDelta(t, 1.5*math.Pi, slices[0].Angle(), 1e-12)
}

func TestPieSlicesZeroTotal(t *testing.T) {
	slices, total := pieSlices([]Series{NewSeries("zero", NewPoint("a", 0), NewPoint("b", 0))})
	assert.Empty(t, slices)
	assert.Zero(t, total)
}

func TestRenderPieZeroTotal(t *testing.T) {
	in := testInput(TypePie, Values{"animation": false}, NewSeries("zero", NewPoint("a", 0), NewPoint("b", 0)))
	frame, err := Render(in)
	require.NoError(t, err)
	require.Len(t, frame.Warnings, 1)
	assert.ErrorIs(t, frame.Warnings[0], ErrDegenerateData)
	assert.Empty(t, findClass(frame.Document, "pie-group"))
}

func TestRenderPieLabels(t *testing.T) {
	in := testInput(TypePie, Values{"animation": false}, NewSeries("sales", NewPoint("a", 1), NewPoint("b", 1), NewPoint("c", 2)))
	frame, err := Render(in)
	require.NoError(t, err)
	assert.Empty(t, frame.Warnings)

	texts := collectTexts(frame.Document)
	assert.Contains(t, texts, "a: 25%")
	assert.Contains(t, texts, "c: 50%")

	groups := findClass(frame.Document, "pie-group")
	require.Len(t, groups, 1)
	var paths int
	for _, el := range groups[0].(*scene.Group).Children {
		if _, ok := el.(*scene.Path); ok {
			paths++
		}
	}
	assert.Equal(t, 3, paths)
}

func TestRenderPieSingleSlice(t *testing.T) {
	in := testInput(TypePie, Values{"animation": false, "showDataLabels": false}, NewSeries("all", NewPoint("a", 10)))
	frame, err := Render(in)
	require.NoError(t, err)

	var d string
	frame.Document.Walk(func(el scene.Element) bool {
		if p, ok := el.(*scene.Path); ok {
			d = p.String()
			return false
		}
		return true
	})
	assert.Equal(t, 2, strings.Count(d, "A"))
}

func TestRenderDonut(t *testing.T) {
	in := testInput(TypeDonut, Values{"animation": false}, NewSeries("sales", NewPoint("a", 30), NewPoint("b", 70)))
	frame, err := Render(in)
	require.NoError(t, err)

	assert.Contains(t, collectTexts(frame.Document), "Total: 100")
	var holes int
	frame.Document.Walk(func(el scene.Element) bool {
		if c, ok := el.(*scene.Circle); ok && c.Fill.Color == in.Config.Background {
			holes++
		}
		return true
	})
	assert.Equal(t, 1, holes)
}

func TestGaugeValue(t *testing.T) {
	pct, angle := gaugeValue(25, 100)
	assert.Equal(t, 25.0, pct)
	sweep := angle - gaugeStartAngle
	assert.InDelta(t, 0.25*1.5*math.Pi, sweep, 1e-12)

	pct, angle = gaugeValue(150, 100)
	assert.Equal(t, 150.0, pct)
	assert.InDelta(t, gaugeEndAngle, angle, 1e-12)

	_, angle = gaugeValue(-10, 100)
	assert.InDelta(t, gaugeStartAngle, angle, 1e-12)
}

func TestRenderGauge(t *testing.T) {
	in := testInput(TypeGauge, Values{"animation": false}, NewSeries("cpu", NewPoint("load", 25)))
	frame, err := Render(in)
	require.NoError(t, err)
	assert.Empty(t, frame.Warnings)

	texts := collectTexts(frame.Document)
	assert.Contains(t, texts, "25%")
	assert.Contains(t, texts, "load")
}

func TestRenderGaugeWithoutData(t *testing.T) {
	in := testInput(TypeGauge, Values{"animation": false})
	frame, err := Render(in)
	require.NoError(t, err)
	require.Len(t, frame.Warnings, 1)
	assert.ErrorIs(t, frame.Warnings[0], ErrDegenerateData)

	var paths int
	frame.Document.Walk(func(el scene.Element) bool {
		if _, ok := el.(*scene.Path); ok {
			paths++
		}
		return true
	})
	assert.Equal(t, 1, paths)
}

func TestDescribeArc(t *testing.T) {
	pat := describeArc(100, 100, 50, gaugeStartAngle, gaugeEndAngle)
	assert.InDelta(t, 50*1.5*math.Pi, pat.Length(), 1e-6)
	assert.Contains(t, pat.String(), " 1 0 ")
}
