package charts

import (
	"math"
	"strconv"

	"github.com/midbel/ggraphs/scene"
)

type ClickType string

const (
	ClickPoint ClickType = "point"
	ClickBar   ClickType = "bar"
	ClickPie   ClickType = "pie"
	ClickGauge ClickType = "gauge"
	ClickLine  ClickType = "line"
)

// Click is given to the click callback. Points holds the visible points of
// the series for a line, the clicked point otherwise.
type Click struct {
	Type   ClickType
	Series Series
	Points []DataPoint
}

func (c Click) Point() (DataPoint, bool) {
	if len(c.Points) == 0 {
		return DataPoint{}, false
	}
	return c.Points[0], true
}

func (c *canvas) clickable(el scene.Element, kind string, click Click) {
	id := c.identify(el, kind)
	el.Attr().Cursor = "pointer"
	c.clicks[id] = click
}

func (c *canvas) attachTooltip(el scene.Element, s Series, pt DataPoint) {
	if !c.Config.ShowTooltip {
		return
	}
	a := el.Attr()
	a.Title = tooltipContent(c.Config, s, pt)
	a.Cursor = "pointer"
}

func tooltipContent(cfg Config, s Series, pt DataPoint) string {
	if cfg.Tooltip != nil {
		return cfg.Tooltip(s, pt)
	}
	return s.Name + ": " + pt.Label + " - " + strconv.FormatFloat(pt.Value, 'f', -1, 64)
}

func (c *canvas) labelContent(s Series, pt DataPoint) string {
	if c.Config.Type.circular() {
		return c.pieLabel(pt, sumValues(c.Series))
	}
	return formatValue(pt.Value)
}

func (c *canvas) pieLabel(pt DataPoint, total float64) string {
	if total == 0 {
		return pt.Label + ": 0%"
	}
	return pt.Label + ": " + formatValue(pt.Value/total*100) + "%"
}

func (c *canvas) dataLabel(str string, x, y float64, color string) *scene.Text {
	txt := scene.NewText(str)
	txt.Pos = scene.NewPos(x, y)
	txt.Baseline = "middle"
	txt.Font = c.labelFont()
	txt.Fill = scene.NewFill(color)
	return txt
}

func (c *canvas) centerText(str string, x, y float64, baseline, weight string) *scene.Text {
	txt := scene.NewText(str)
	txt.Pos = scene.NewPos(x, y)
	txt.Anchor = "middle"
	txt.Baseline = baseline
	txt.Font = c.mainFont()
	txt.Font.Weight = weight
	txt.Fill = scene.NewFill(c.Config.TextColor)
	return txt
}

const (
	legendPadding  = 10.0
	legendStrideX  = 120.0
	legendStrideY  = 25.0
	legendSwatch   = 20.0
	legendTextGap  = 25.0
	legendRightGap = 100.0
)

// drawLegend lines up one swatch and name per series along the side given by
// the legend position.
func (c *canvas) drawLegend() scene.Element {
	var (
		grp          = scene.NewGroup("legend")
		x, y, dx, dy float64
	)
	switch c.Config.LegendPosition {
	case PosTop:
		x, y, dx = c.Margin.Left, legendPadding, legendStrideX
	case PosLeft:
		x, y, dy = legendPadding, c.Margin.Top, legendStrideY
	case PosRight:
		x, y, dy = c.Width-c.Margin.Right-legendRightGap-legendPadding, c.Margin.Top, legendStrideY
	default:
		x, y, dx = c.Margin.Left, c.Height-legendPadding, legendStrideX
	}
	for i, s := range c.Series {
		var (
			px = x + float64(i)*dx
			py = y + float64(i)*dy
		)
		swatch := scene.NewRect(scene.NewPos(px, py-legendSwatch/2), scene.NewDim(legendSwatch, legendSwatch))
		swatch.Fill = scene.NewFill(c.seriesColor(i))

		name := s.Name
		if name == "" {
			name = "Series " + strconv.Itoa(i+1)
		}
		txt := scene.NewText(name)
		txt.Pos = scene.NewPos(px+legendTextGap, py+5)
		txt.Font = c.labelFont()
		txt.Fill = scene.NewFill(c.Config.TextColor)

		grp.Append(swatch, txt)
	}
	return grp
}

// formatValue prints integers without decimals and other values with one.
func formatValue(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
