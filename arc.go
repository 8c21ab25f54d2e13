package charts

import (
	"math"

	"github.com/midbel/ggraphs/scene"
)

const (
	fullcircle = 2 * math.Pi
	halfcircle = math.Pi

	pieStartAngle     = -math.Pi / 2
	pieRadiusLegend   = 1.6
	pieRadiusNoLegend = 2.2
	pieLabelRadius    = 1.2
	pieLabelSpacing   = 5.0

	gaugeStartAngle     = -math.Pi * 0.75
	gaugeEndAngle       = math.Pi * 0.75
	gaugeRadiusLegend   = 1.8
	gaugeRadiusNoLegend = 2.0
	gaugeLabelOffset    = 30.0
)

type slice struct {
	Serie int
	Index int
	Start float64
	End   float64
}

func (s slice) Angle() float64 {
	return s.End - s.Start
}

func (s slice) Middle() float64 {
	return s.Start + s.Angle()/2
}

// pieSlices shares the full circle between all the points of all the series,
// clockwise from twelve o'clock. It returns nothing when the total is zero.
func pieSlices(set []Series) ([]slice, float64) {
	total := sumValues(set)
	if total == 0 {
		return nil, total
	}
	var (
		list  []slice
		angle = pieStartAngle
	)
	for i, s := range set {
		for j, pt := range s.Data {
			part := slice{
				Serie: i,
				Index: j,
				Start: angle,
				End:   angle + (pt.Value/total)*fullcircle,
			}
			list = append(list, part)
			angle = part.End
		}
	}
	return list, total
}

type PieRenderer struct {
	Donut       bool
	Thickness   float64
	Gap         float64
	BorderColor string
	BorderWidth float64
}

func (r PieRenderer) Type() ChartType {
	if r.Donut {
		return TypeDonut
	}
	return TypePie
}

func (r PieRenderer) render(c *canvas) {
	if len(c.Series) == 0 {
		return
	}
	slices, total := pieSlices(c.Series)
	if total == 0 {
		c.warn("total value of pie chart is 0: nothing to draw")
		return
	}
	var (
		cx, cy = c.Center()
		radius = r.getRadius(c)
		grp    = scene.NewGroup("pie-group")
	)
	for _, sl := range slices {
		var (
			serie = c.Series[sl.Serie]
			pt    = serie.Data[sl.Index]
			color = r.getColor(c, sl)
			pat   = r.getSlice(cx, cy, radius, sl)
		)
		pat.Rendering = "geometricPrecision"
		pat.Fill = scene.NewFill(color)
		pat.Stroke = r.getStroke(c)
		c.attachTooltip(pat, serie, pt)
		if c.Config.OnClick != nil {
			c.clickable(pat, "pie", Click{
				Type:   ClickPie,
				Series: serie,
				Points: []DataPoint{pt},
			})
		}
		c.animateStroke(pat, "slice")
		grp.Append(pat)

		if c.Config.ShowDataLabels {
			r.drawLabel(c, grp, sl, cx, cy, radius, color, c.pieLabel(pt, total))
		}
	}
	if r.Donut {
		hole := scene.NewCircle(scene.NewPos(cx, cy), math.Max(0, radius-r.Thickness))
		hole.Fill = scene.NewFill(c.Config.Background)
		if r.Gap <= 0 && r.BorderWidth > 0 {
			hole.Stroke = scene.NewStroke(r.getBorder(), r.BorderWidth)
		}
		grp.Append(hole)
	}
	c.doc.Append(grp)
	if c.Config.ShowCenterText {
		str := c.Config.CenterText
		if !c.Config.HasCenterText && r.Donut {
			str = "Total: " + formatValue(total)
		}
		if str != "" {
			txt := c.centerText(str, cx, cy, "middle", "bold")
			c.doc.Append(txt)
		}
	}
}

func (r PieRenderer) drawLabel(c *canvas, grp *scene.Group, sl slice, cx, cy, radius float64, color, content string) {
	var (
		mid    = sl.Middle()
		edge   = polar(cx, cy, radius, mid)
		anchor = polar(cx, cy, radius*pieLabelRadius, mid)
		right  = anchor.X > cx
		end    = anchor
		text   = anchor
		half   = c.Config.Duration / 2
	)
	if right {
		end.X += leaderLength
		text.X = end.X + pieLabelSpacing
	} else {
		end.X -= leaderLength
		text.X = end.X - pieLabelSpacing
	}
	leader := scene.NewLine(edge, anchor)
	leader.Stroke = scene.NewStroke(color, 1)
	c.animateAttr(leader, "leader", "x2", edge.X, anchor.X, leaderDuration, 0)
	c.animateAttr(leader, "leader", "y2", edge.Y, anchor.Y, leaderDuration, 0)
	grp.Append(leader)

	tick := scene.NewLine(anchor, end)
	tick.Stroke = scene.NewStroke(color, 1)
	c.animateAttr(tick, "tick", "x2", anchor.X, end.X, leaderDuration, half)
	grp.Append(tick)

	label := c.dataLabel(content, text.X, text.Y, color)
	shift := leaderLength + pieLabelSpacing
	if right {
		label.Anchor = "start"
		shift = -shift
	} else {
		label.Anchor = "end"
	}
	c.fadeIn(label, shift, half)
	grp.Append(label)
}

// getSlice draws a wedge from the center. A slice covering the whole circle
// is drawn as two half arcs since an arc can not end where it starts.
func (r PieRenderer) getSlice(cx, cy, radius float64, sl slice) *scene.Path {
	var (
		pat   = scene.NewPath()
		start = polar(cx, cy, radius, sl.Start)
		end   = polar(cx, cy, radius, sl.End)
	)
	pat.AbsMoveTo(scene.NewPos(cx, cy))
	pat.AbsLineTo(start)
	if sl.Angle() >= fullcircle-1e-9 {
		pat.AbsArcTo(polar(cx, cy, radius, sl.Middle()), radius, radius, 0, false, true)
	}
	pat.AbsArcTo(end, radius, radius, 0, sl.Angle() > halfcircle && sl.Angle() < fullcircle-1e-9, true)
	pat.ClosePath()
	return pat
}

func (r PieRenderer) getRadius(c *canvas) float64 {
	size := math.Min(c.DrawingWidth(), c.DrawingHeight())
	if c.Config.ShowLegend {
		return size / pieRadiusLegend
	}
	return size / pieRadiusNoLegend
}

// getColor cycles the palette per point so that the slices of one series can
// be told apart.
func (r PieRenderer) getColor(c *canvas, sl slice) string {
	var (
		serie = c.Series[sl.Serie]
		pt    = serie.Data[sl.Index]
	)
	switch {
	case pt.Color != "":
		return pt.Color
	case serie.Color != "":
		return serie.Color
	default:
		return c.Config.Colors.Color(sl.Index)
	}
}

func (r PieRenderer) getStroke(c *canvas) scene.Stroke {
	switch {
	case r.Gap > 0:
		return scene.NewStroke(c.Config.Background, r.Gap)
	case r.BorderWidth > 0:
		return scene.NewStroke(r.getBorder(), r.BorderWidth)
	default:
		return scene.Stroke{}
	}
}

func (r PieRenderer) getBorder() string {
	if r.BorderColor == "" {
		return "#000"
	}
	return r.BorderColor
}

type GaugeRenderer struct {
	Max   float64
	Width float64
}

func (r GaugeRenderer) Type() ChartType {
	return TypeGauge
}

// gaugeValue returns the percentage of value against max and the angle of
// the end of the value arc. The angle never leaves the background arc.
func gaugeValue(value, max float64) (float64, float64) {
	if max <= 0 {
		max = 100
	}
	var (
		pct   = (value / max) * 100
		ratio = math.Max(0, math.Min(1, pct/100))
	)
	return pct, gaugeStartAngle + ratio*(gaugeEndAngle-gaugeStartAngle)
}

func (r GaugeRenderer) render(c *canvas) {
	var (
		cx, cy = c.Center()
		radius = r.getRadius(c)
	)
	back := describeArc(cx, cy, radius, gaugeStartAngle, gaugeEndAngle)
	back.Stroke = scene.NewStroke(c.Config.GridColor, r.Width)
	c.doc.Append(back)

	if len(c.Series) == 0 || len(c.Series[0].Data) == 0 {
		c.warn("gauge has no data point: only the background is drawn")
		return
	}
	var (
		serie      = c.Series[0]
		pt         = serie.Data[0]
		pct, angle = gaugeValue(pt.Value, r.Max)
		color      = serie.Color
	)
	if color == "" {
		color = c.Config.Colors.Color(0)
	}
	arc := describeArc(cx, cy, radius, gaugeStartAngle, angle)
	arc.Stroke = scene.NewStroke(color, r.Width)
	arc.Stroke.LineCap = "round"
	if c.Config.OnClick != nil {
		c.clickable(arc, "gauge", Click{
			Type:   ClickGauge,
			Series: serie,
			Points: []DataPoint{pt},
		})
	}
	c.animateStroke(arc, "gauge")
	c.doc.Append(arc)

	if !c.Config.ShowCenterText {
		return
	}
	str := c.Config.CenterText
	if !c.Config.HasCenterText {
		str = formatValue(pct) + "%"
	}
	center := c.centerText(str, cx, cy, "", "bold")
	center.DominantBaseline = "middle"
	c.doc.Append(center)

	label := scene.NewText(pt.Label)
	label.Pos = scene.NewPos(cx, cy+gaugeLabelOffset)
	label.Anchor = "middle"
	label.Font = c.labelFont()
	label.Fill = scene.NewFill(c.Config.TextColor)
	c.doc.Append(label)
}

func (r GaugeRenderer) getRadius(c *canvas) float64 {
	size := math.Min(c.DrawingWidth(), c.DrawingHeight())
	if c.Config.ShowLegend {
		return size / gaugeRadiusLegend
	}
	return size / gaugeRadiusNoLegend
}

// describeArc draws the arc between two angles going backward from the end
// angle to the start angle.
func describeArc(cx, cy, radius, start, end float64) *scene.Path {
	var (
		pat  = scene.NewPath()
		from = polar(cx, cy, radius, end)
		to   = polar(cx, cy, radius, start)
	)
	pat.AbsMoveTo(from)
	pat.AbsArcTo(to, radius, radius, 0, end-start > halfcircle, false)
	return pat
}

func polar(cx, cy, radius, angle float64) scene.Pos {
	return scene.NewPos(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
}
