package charts

import (
	"slices"
	"strings"
	"testing"

	"github.com/midbel/ggraphs/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput(kind ChartType, values Values, set ...Series) Input {
	opts := Values{"type": string(kind)}
	for k, v := range values {
		opts[k] = v
	}
	cfg, err := Resolve(opts, Environment{})
	if err != nil {
		panic(err)
	}
	var visible int
	if len(set) > 0 {
		visible = len(set[0].Data)
		if cfg.MaxDataPoints > 0 {
			visible = min(visible, cfg.MaxDataPoints)
		}
	}
	return Input{
		Prefix:  "test",
		Config:  *cfg,
		Layout:  ComputeLayout(*cfg, 800, 600),
		Scale:   ScaleOf(set),
		Series:  set,
		Visible: visible,
	}
}

func findClass(doc *scene.Document, class string) []scene.Element {
	var list []scene.Element
	doc.Walk(func(el scene.Element) bool {
		if slices.Contains(el.Attr().Class, class) {
			list = append(list, el)
		}
		return true
	})
	return list
}

func collectTexts(doc *scene.Document) []string {
	var list []string
	doc.Walk(func(el scene.Element) bool {
		if t, ok := el.(*scene.Text); ok {
			list = append(list, t.Content)
		}
		return true
	})
	return list
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		Type ChartType
		Want Renderer
	}{
		{Type: TypeLine, Want: LineRenderer{}},
		{Type: TypeBar, Want: BarRenderer{}},
		{Type: TypePie, Want: PieRenderer{}},
		{Type: TypeDonut, Want: PieRenderer{}},
		{Type: TypeGauge, Want: GaugeRenderer{}},
	}
	for _, tt := range tests {
		cfg := Default(Environment{})
		cfg.Type = tt.Type
		r, err := NewRenderer(cfg)
		require.NoError(t, err)
		assert.IsType(t, tt.Want, r)
		assert.Equal(t, tt.Type, r.Type())
	}

	cfg := Default(Environment{})
	cfg.Type = "radar"
	_, err := NewRenderer(cfg)
	assert.ErrorIs(t, err, ErrUnknownChartType)
}

func TestRenderLine(t *testing.T) {
	set := []Series{
		NewSeries("a", NewPoint("jan", 12), NewPoint("feb", 47), NewPoint("mar", 83)),
		NewSeries("b", NewPoint("jan", 20), NewPoint("feb", 30), NewPoint("mar", 40)),
	}
	in := testInput(TypeLine, Values{"animation": false}, set...)
	frame, err := Render(in)
	require.NoError(t, err)
	assert.Empty(t, frame.Warnings)
	assert.Empty(t, frame.Document.Timeline)

	lines := findClass(frame.Document, "lines")
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].(*scene.Group).Len())

	var markers []*scene.Circle
	frame.Document.Walk(func(el scene.Element) bool {
		if c, ok := el.(*scene.Circle); ok {
			markers = append(markers, c)
		}
		return true
	})
	require.Len(t, markers, 6)
	assert.Equal(t, "a: jan - 12", markers[0].Title)
	assert.Equal(t, in.Config.PointRadius, markers[0].Radius)

	texts := collectTexts(frame.Document)
	for _, str := range []string{"jan", "feb", "mar", "0", "100", "12", "83", "a", "b"} {
		assert.Contains(t, texts, str)
	}
	assert.Len(t, findClass(frame.Document, "legend"), 1)
}

func TestRenderLineCurve(t *testing.T) {
	in := testInput(TypeLine, Values{"animation": false, "curveType": "curve"}, NewSeries("a", NewPoint("x", 1), NewPoint("y", 5)))
	frame, err := Render(in)
	require.NoError(t, err)

	lines := findClass(frame.Document, "lines")
	require.Len(t, lines, 1)
	pat := lines[0].(*scene.Group).Children[0].(*scene.Path)
	assert.Contains(t, pat.String(), "C")
}

func TestRenderLineArea(t *testing.T) {
	in := testInput(TypeLine, Values{"fillArea": true}, NewSeries("a", NewPoint("x", 1), NewPoint("y", 5), NewPoint("z", 3)))
	frame, err := Render(in)
	require.NoError(t, err)

	lines := findClass(frame.Document, "lines")
	require.Len(t, lines, 1)
	children := lines[0].(*scene.Group).Children
	require.Len(t, children, 2)

	area := children[0].(*scene.Path)
	assert.True(t, strings.HasSuffix(area.String(), "Z"))
	assert.Equal(t, in.Config.FillOpacity, area.Fill.Opacity)
	assert.NotEmpty(t, area.ClipPath)
	require.Len(t, frame.Document.Defs, 1)
	assert.Equal(t, area.ClipPath, frame.Document.Defs[0].Attr().ID)
}

func TestRenderLineAnimated(t *testing.T) {
	in := testInput(TypeLine, Values{"animationDuration": 1500}, NewSeries("a", NewPoint("x", 1), NewPoint("y", 5)))
	frame, err := Render(in)
	require.NoError(t, err)
	require.NotEmpty(t, frame.Document.Timeline)

	var attrs []string
	for _, a := range frame.Document.Timeline {
		attrs = append(attrs, a.Attr)
		assert.NotNil(t, frame.Document.Find(a.Target), a.Target)
	}
	for _, want := range []string{"width", "stroke-dashoffset", "y2", "x2", "opacity", "r", scene.AttrTranslate} {
		assert.Contains(t, attrs, want)
	}
	assert.Equal(t, in.Config.Duration, frame.Document.Timeline.End())
}

func TestRenderEmpty(t *testing.T) {
	for _, kind := range []ChartType{TypeLine, TypeBar, TypePie} {
		frame, err := Render(testInput(kind, nil))
		require.NoError(t, err)
		assert.Empty(t, frame.Warnings)
		assert.Len(t, frame.Document.Elements, 1, "only the legend group")
	}
}

func TestRenderBar(t *testing.T) {
	set := []Series{
		NewSeries("a", NewPoint("q1", 10), NewPoint("q2", 20)),
		NewSeries("b", NewPoint("q1", 15), NewPoint("q2", 5)),
	}
	in := testInput(TypeBar, Values{"animation": false}, set...)
	frame, err := Render(in)
	require.NoError(t, err)

	bars := findClass(frame.Document, "bars")
	require.Len(t, bars, 1)

	var rects []*scene.Rect
	for _, el := range bars[0].(*scene.Group).Children {
		if r, ok := el.(*scene.Rect); ok {
			rects = append(rects, r)
		}
	}
	require.Len(t, rects, 4)

	var (
		mp    = Mapper{Width: 800, Height: 600, Margin: in.Layout.Margin, Scale: in.Scale, Visible: 2}
		group = mp.DrawingWidth() / 2
		width = group / 3
	)
	assert.InDelta(t, width, rects[0].W, 1e-9)
	assert.InDelta(t, mp.Y(in.Scale.MinNice)-mp.Y(10), rects[0].H, 1e-9)
	assert.InDelta(t, mp.Y(10), rects[0].Y, 1e-9)
	assert.InDelta(t, in.Layout.Margin.Left+width/3, rects[0].X, 1e-9)
}

func TestBarBounds(t *testing.T) {
	tests := []struct {
		Name  string
		Scale Scale
		Value float64
		From  float64
	}{
		{Name: "positive", Scale: Scale{MinNice: 20, MaxNice: 100}, Value: 60, From: 20},
		{Name: "negative", Scale: Scale{MinNice: -100, MaxNice: -20}, Value: -60, From: -20},
		{Name: "straddle-up", Scale: Scale{MinNice: -50, MaxNice: 50}, Value: 30, From: 0},
		{Name: "straddle-down", Scale: Scale{MinNice: -50, MaxNice: 50}, Value: -30, From: 0},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			c := newCanvas(Input{
				Layout: Layout{Width: 500, Height: 400, Margin: UniformMargin(50)},
				Scale:  tt.Scale,
			})
			y, h := BarRenderer{}.getBounds(c, tt.Value)
			assert.InDelta(t, min(c.Y(tt.Value), c.Y(tt.From)), y, 1e-9)
			abs := c.Y(tt.Value) - c.Y(tt.From)
			if abs < 0 {
				abs = -abs
			}
			assert.InDelta(t, abs, h, 1e-9)
		})
	}
}

func TestRenderTooltipFormatter(t *testing.T) {
	format := func(s Series, pt DataPoint) string {
		return strings.ToUpper(s.Name + "/" + pt.Label)
	}
	in := testInput(TypeBar, Values{"animation": false, "tooltipFormatter": format}, NewSeries("a", NewPoint("q1", 10)))
	frame, err := Render(in)
	require.NoError(t, err)

	var titles []string
	frame.Document.Walk(func(el scene.Element) bool {
		if str := el.Attr().Title; str != "" {
			titles = append(titles, str)
		}
		return true
	})
	assert.Equal(t, []string{"A/Q1"}, titles)
}

func TestRenderClickTargets(t *testing.T) {
	var clicked []Click
	values := Values{
		"animation": false,
		"onClick":   func(c Click) { clicked = append(clicked, c) },
	}
	in := testInput(TypeLine, values, NewSeries("a", NewPoint("x", 1), NewPoint("y", 2)))
	frame, err := Render(in)
	require.NoError(t, err)
	require.Len(t, frame.Clicks, 3)

	var kinds []ClickType
	for id, c := range frame.Clicks {
		el := frame.Document.Find(id)
		require.NotNil(t, el)
		assert.Equal(t, "pointer", el.Attr().Cursor)
		kinds = append(kinds, c.Type)
	}
	assert.ElementsMatch(t, []ClickType{ClickLine, ClickPoint, ClickPoint}, kinds)
}

func TestRenderLegendPositions(t *testing.T) {
	set := []Series{NewSeries("a", NewPoint("x", 1)), NewSeries("", NewPoint("x", 2))}
	tests := []struct {
		Position Position
		X, Y     float64
	}{
		{Position: PosTop, X: 50, Y: 0},
		{Position: PosBottom, X: 50, Y: 580},
		{Position: PosLeft, X: 10, Y: 40},
		{Position: PosRight, X: 800 - 150 - 110, Y: 40},
	}
	for _, tt := range tests {
		in := testInput(TypeBar, Values{"legendPosition": string(tt.Position)}, set...)
		frame, err := Render(in)
		require.NoError(t, err)

		legend := findClass(frame.Document, "legend")
		require.Len(t, legend, 1)
		children := legend[0].(*scene.Group).Children
		require.Len(t, children, 4)
		swatch := children[0].(*scene.Rect)
		assert.Equal(t, tt.X, swatch.X, tt.Position)
		assert.Equal(t, tt.Y, swatch.Y, tt.Position)
		assert.Equal(t, "Series 2", children[3].(*scene.Text).Content)
	}
}
