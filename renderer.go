package charts

import (
	"fmt"

	"github.com/midbel/ggraphs/scene"
)

// Input is everything a render pass reads. It is never modified.
type Input struct {
	Prefix  string
	Config  Config
	Layout  Layout
	Scale   Scale
	Series  []Series
	Visible int
}

// Frame is the result of a render pass: the document to display, the click
// targets registered while drawing and the warnings raised by the renderer.
type Frame struct {
	Document *scene.Document
	Clicks   map[string]Click
	Warnings []error
}

type Renderer interface {
	Type() ChartType
	render(*canvas)
}

func NewRenderer(cfg Config) (Renderer, error) {
	switch cfg.Type {
	case TypeLine:
		r := LineRenderer{
			Curve:       cfg.Curve,
			Fill:        cfg.FillArea,
			FillOpacity: cfg.FillOpacity,
			Width:       cfg.LineWidth,
			Radius:      cfg.PointRadius,
		}
		return r, nil
	case TypeBar:
		r := BarRenderer{
			BorderColor: cfg.BorderColor,
			BorderWidth: cfg.BorderWidth,
		}
		return r, nil
	case TypePie, TypeDonut:
		r := PieRenderer{
			Donut:       cfg.Type == TypeDonut,
			Thickness:   cfg.DonutThickness,
			Gap:         cfg.Gap,
			BorderColor: cfg.BorderColor,
			BorderWidth: cfg.BorderWidth,
		}
		return r, nil
	case TypeGauge:
		r := GaugeRenderer{
			Max:   cfg.MaxGaugeValue,
			Width: cfg.GaugeCurveWidth,
		}
		return r, nil
	default:
		return nil, UnknownChartTypeError{Type: string(cfg.Type)}
	}
}

// Render draws the series of in. It builds a complete new document and never
// touches a previous one.
func Render(in Input) (Frame, error) {
	r, err := NewRenderer(in.Config)
	if err != nil {
		return Frame{}, err
	}
	c := newCanvas(in)
	r.render(c)
	if in.Config.ShowLegend {
		c.doc.Append(c.drawLegend())
	}
	return c.frame(), nil
}

type canvas struct {
	Input
	Mapper

	doc      *scene.Document
	clicks   map[string]Click
	warnings []error
	seq      int
}

func newCanvas(in Input) *canvas {
	c := canvas{
		Input: in,
		Mapper: Mapper{
			Width:   in.Layout.Width,
			Height:  in.Layout.Height,
			Margin:  in.Layout.Margin,
			Scale:   in.Scale,
			Visible: in.Visible,
		},
		doc:    scene.NewDocument(in.Layout.Width, in.Layout.Height),
		clicks: make(map[string]Click),
	}
	if c.Prefix == "" {
		c.Prefix = "graph"
	}
	return &c
}

func (c *canvas) frame() Frame {
	return Frame{
		Document: c.doc,
		Clicks:   c.clicks,
		Warnings: c.warnings,
	}
}

func (c *canvas) warn(reason string) {
	c.warnings = append(c.warnings, DegenerateDataWarning{Reason: reason})
}

// identify gives el a document wide unique id unless it already has one.
func (c *canvas) identify(el scene.Element, kind string) string {
	a := el.Attr()
	if a.ID == "" {
		c.seq++
		a.ID = fmt.Sprintf("%s-%s-%d", c.Prefix, kind, c.seq)
	}
	return a.ID
}

func (c *canvas) colorOf(serie, point int) string {
	if serie < len(c.Series) && point >= 0 && point < len(c.Series[serie].Data) {
		if col := c.Series[serie].Data[point].Color; col != "" {
			return col
		}
	}
	return c.seriesColor(serie)
}

func (c *canvas) seriesColor(serie int) string {
	if serie < len(c.Series) && c.Series[serie].Color != "" {
		return c.Series[serie].Color
	}
	return c.Config.Colors.Color(serie)
}

func (c *canvas) visible(s Series) []DataPoint {
	if c.Mapper.Visible < len(s.Data) {
		return s.Data[:c.Mapper.Visible]
	}
	return s.Data
}

type LineRenderer struct {
	Curve       CurveType
	Fill        bool
	FillOpacity float64
	Width       float64
	Radius      float64
}

func (r LineRenderer) Type() ChartType {
	return TypeLine
}

const (
	leaderRise   = -15.0
	leaderLength = 5.0
)

func (r LineRenderer) render(c *canvas) {
	if c.Mapper.Visible == 0 {
		return
	}
	if c.Config.ShowGrid {
		c.doc.Append(c.drawHorizontalGrid())
		var xs []float64
		for i := 0; i < c.Mapper.Visible; i++ {
			xs = append(xs, c.X(i))
		}
		c.doc.Append(c.drawVerticalGrid(xs))
	}
	if c.Config.ShowAxisLabels && len(c.Series) > 0 {
		var xs []float64
		for i := 0; i < c.Mapper.Visible; i++ {
			xs = append(xs, c.X(i))
		}
		c.doc.Append(c.drawCategoryLabels(xs))
	}
	if c.Config.ShowAxis {
		c.doc.Append(c.drawAxes())
	}

	var clip string
	if c.animated() {
		clip = c.defineRevealClip()
	}
	lines := scene.NewGroup("lines")
	for i, s := range c.Series {
		var (
			color = c.seriesColor(i)
			data  = c.visible(s)
			pat   = r.getPath(c, data)
		)
		if pat.Empty() {
			continue
		}
		if r.Fill {
			area := r.getArea(c, pat, len(data))
			area.Fill = scene.NewFill(color)
			area.Fill.Opacity = r.FillOpacity
			area.ClipPath = clip
			lines.Append(area)
			pat.ClipPath = clip
		}
		pat.Stroke = scene.NewStroke(color, r.Width)
		c.animateStroke(pat, "line")
		if c.Config.OnClick != nil {
			c.clickable(pat, "line", Click{
				Type:   ClickLine,
				Series: s,
				Points: append([]DataPoint(nil), data...),
			})
		}
		lines.Append(pat)
	}
	c.doc.Append(lines)

	points := scene.NewGroup("points")
	for i, s := range c.Series {
		color := c.seriesColor(i)
		for j, pt := range c.visible(s) {
			r.drawPoint(c, points, s, pt, j, color)
		}
	}
	c.doc.Append(points)

	if c.Config.ShowCenterText && c.Config.HasCenterText {
		w, h := c.Width/2, c.Height/2
		c.doc.Append(c.centerText(c.Config.CenterText, w, h, "", "bold"))
	}
}

func (r LineRenderer) drawPoint(c *canvas, grp *scene.Group, s Series, pt DataPoint, index int, color string) {
	var (
		x    = c.X(index)
		y    = c.Y(pt.Value)
		rise = scene.NewPos(x+leaderLength, y+leaderRise)
		end  = scene.NewPos(rise.X+leaderLength, rise.Y)
	)
	vertical := scene.NewLine(scene.NewPos(x, y), rise)
	vertical.Stroke = scene.NewStroke(color, 1)
	c.animateAttr(vertical, "leader", "y2", y, rise.Y, leaderDuration, 0)
	grp.Append(vertical)

	horizontal := scene.NewLine(rise, end)
	horizontal.Stroke = scene.NewStroke(color, 1)
	c.animateAttr(horizontal, "tick", "x2", rise.X, end.X, leaderDuration, leaderDuration)
	grp.Append(horizontal)

	if c.Config.ShowDataLabels {
		label := c.dataLabel(c.labelContent(s, pt), end.X, end.Y, color)
		label.Anchor = "start"
		c.fadeIn(label, -leaderLength, leaderDuration)
		grp.Append(label)
	}

	marker := scene.NewCircle(scene.NewPos(x, y), r.Radius)
	marker.Fill = scene.NewFill(c.Config.Background)
	marker.Stroke = scene.NewStroke(color, 2)
	c.attachTooltip(marker, s, pt)
	if c.Config.OnClick != nil {
		c.clickable(marker, "point", Click{
			Type:   ClickPoint,
			Series: s,
			Points: []DataPoint{pt},
		})
	}
	c.animateAttr(marker, "point", "r", 0, r.Radius, c.Config.Duration, 0)
	c.animateAttr(marker, "point", "opacity", 0, 1, c.Config.Duration, 0)
	grp.Append(marker)
}

func (r LineRenderer) getPath(c *canvas, data []DataPoint) *scene.Path {
	pat := scene.NewPath()
	if len(data) == 0 {
		return pat
	}
	prev := scene.NewPos(c.X(0), c.Y(data[0].Value))
	pat.AbsMoveTo(prev)
	for i := 1; i < len(data); i++ {
		pos := scene.NewPos(c.X(i), c.Y(data[i].Value))
		if r.Curve == CurveCubic {
			var (
				third = (pos.X - prev.X) / 3
				ctrl1 = scene.NewPos(prev.X+third, prev.Y)
				ctrl2 = scene.NewPos(pos.X-third, pos.Y)
			)
			pat.AbsCubicCurve(pos, ctrl1, ctrl2)
		} else {
			pat.AbsLineTo(pos)
		}
		prev = pos
	}
	return pat
}

// getArea closes the outline of a series down to the baseline of the scale.
func (r LineRenderer) getArea(c *canvas, outline *scene.Path, count int) *scene.Path {
	var (
		base = c.Y(c.Mapper.Scale.Baseline())
		area = scene.NewPath()
	)
	area.Extend(outline)
	area.AbsLineTo(scene.NewPos(c.X(count-1), base))
	area.AbsLineTo(scene.NewPos(c.X(0), base))
	area.ClosePath()
	return area
}

type BarRenderer struct {
	BorderColor string
	BorderWidth float64
}

func (r BarRenderer) Type() ChartType {
	return TypeBar
}

const (
	barLabelAbove = 5.0
	barLabelBelow = 15.0
)

func (r BarRenderer) render(c *canvas) {
	if c.Mapper.Visible == 0 {
		return
	}
	var (
		count   = float64(len(c.Series))
		group   = c.DrawingWidth() / float64(c.Mapper.Visible)
		width   = group / (count + 1)
		gap     = (group - count*width) / (count + 1)
		origin  = c.Y(c.Mapper.Scale.Baseline())
		offsets = make([]float64, c.Mapper.Visible)
	)
	for i := range offsets {
		offsets[i] = c.Margin.Left + float64(i)*group
	}
	if c.Config.ShowGrid {
		c.doc.Append(c.drawHorizontalGrid())
		var xs []float64
		for _, x := range offsets {
			xs = append(xs, x+group)
		}
		c.doc.Append(c.drawVerticalGrid(xs))
	}
	if c.Config.ShowAxisLabels && len(c.Series) > 0 {
		var xs []float64
		for _, x := range offsets {
			xs = append(xs, x+group/2)
		}
		c.doc.Append(c.drawCategoryLabels(xs))
	}
	if c.Config.ShowAxis {
		c.doc.Append(c.drawAxes())
	}

	bars := scene.NewGroup("bars")
	for i, s := range c.Series {
		for j, pt := range c.visible(s) {
			var (
				x      = offsets[j] + gap + float64(i)*(width+gap)
				y, h   = r.getBounds(c, pt.Value)
				color  = c.colorOf(i, j)
				bar    = scene.NewRect(scene.NewPos(x, y), scene.NewDim(width, h))
				labelY = y - barLabelAbove
				fromY  = origin - barLabelAbove
			)
			bar.Fill = scene.NewFill(color)
			if r.BorderColor != "" {
				bar.Stroke = scene.NewStroke(r.BorderColor, r.BorderWidth)
			}
			c.attachTooltip(bar, s, pt)
			if c.Config.OnClick != nil {
				c.clickable(bar, "bar", Click{
					Type:   ClickBar,
					Series: s,
					Points: []DataPoint{pt},
				})
			}
			c.animateAttr(bar, "bar", "height", 0, h, c.Config.Duration, 0)
			c.animateAttr(bar, "bar", "y", origin, y, c.Config.Duration, 0)
			bars.Append(bar)

			if !c.Config.ShowDataLabels {
				continue
			}
			if pt.Value < 0 {
				labelY = y + h + barLabelBelow
				fromY = origin + barLabelBelow
			}
			label := c.dataLabel(c.labelContent(s, pt), x+width/2, labelY, color)
			label.Anchor = "middle"
			label.Baseline = ""
			c.animateAttr(label, "label", "y", fromY, labelY, c.Config.Duration, 0)
			bars.Append(label)
		}
	}
	c.doc.Append(bars)
}

// getBounds gives the top and the height of the bar of value. Bars grow from
// the zero line when the scale straddles it, from the nearer boundary
// otherwise.
func (r BarRenderer) getBounds(c *canvas, value float64) (float64, float64) {
	var (
		y = c.Y(value)
		s = c.Mapper.Scale
	)
	switch {
	case s.MinNice >= 0 && s.MaxNice >= 0:
		return y, c.Y(s.MinNice) - y
	case s.MinNice <= 0 && s.MaxNice <= 0:
		top := c.Y(s.MaxNice)
		return top, y - top
	default:
		zero := c.Y(0)
		if y < zero {
			return y, zero - y
		}
		return zero, y - zero
	}
}
