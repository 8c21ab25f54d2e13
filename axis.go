package charts

import (
	"strings"

	"github.com/midbel/ggraphs/scene"
)

const (
	gridDash         = 5.0
	axisWidth        = 2.0
	axisLabelOffset  = 10.0
	categoryOffset   = 20.0
	categorySpacing  = 10.0
	categoryRotation = 45.0
)

func (c *canvas) drawHorizontalGrid() scene.Element {
	grp := scene.NewGroup("grid")
	for _, v := range c.Mapper.Scale.Ticks() {
		y := c.Y(v)
		li := scene.NewLine(scene.NewPos(c.Margin.Left, y), scene.NewPos(c.Right(), y))
		li.Stroke = gridStroke(c.Config.GridColor)
		grp.Append(li)
	}
	return grp
}

// drawVerticalGrid draws one dashed line per distinct position.
func (c *canvas) drawVerticalGrid(xs []float64) scene.Element {
	var (
		grp  = scene.NewGroup("vertical-grid")
		seen = make(map[float64]struct{})
	)
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		li := scene.NewLine(scene.NewPos(x, c.Margin.Top), scene.NewPos(x, c.Bottom()))
		li.Stroke = gridStroke(c.Config.GridColor)
		grp.Append(li)
	}
	return grp
}

func gridStroke(color string) scene.Stroke {
	sk := scene.NewStroke(color, 1)
	sk.Dash(gridDash, gridDash)
	return sk
}

// drawCategoryLabels writes the labels of the first series under the plot.
// Labels are rotated when they would not fit side by side.
func (c *canvas) drawCategoryLabels(xs []float64) scene.Element {
	var (
		grp    = scene.NewGroup("labels")
		labels = c.visible(c.Series[0])
		list   = make([]string, 0, len(labels))
	)
	for _, pt := range labels {
		list = append(list, pt.Label)
	}
	var (
		needed = textWidth(strings.Join(list, " "), c.Layout.LabelFontSize) + float64(c.Mapper.Visible)*categorySpacing
		rotate = c.DrawingWidth() < needed
		y      = c.Bottom() + categoryOffset
	)
	for i, str := range list {
		if i >= len(xs) {
			break
		}
		txt := scene.NewText(str)
		txt.Pos = scene.NewPos(xs[i], y)
		txt.Anchor = "middle"
		txt.Font = c.labelFont()
		txt.Fill = scene.NewFill(c.Config.TextColor)
		if rotate {
			txt.Transform = scene.Rotate(categoryRotation, xs[i], y)
		}
		grp.Append(txt)
	}
	return grp
}

// drawAxes draws the horizontal axis at the baseline of the scale, the
// vertical axis on the left of the plot and the value labels.
func (c *canvas) drawAxes() scene.Element {
	var (
		grp  = scene.NewGroup("axes")
		base = c.Y(c.Mapper.Scale.Baseline())
	)
	x := scene.NewLine(scene.NewPos(c.Margin.Left, base), scene.NewPos(c.Right(), base))
	x.Stroke = scene.NewStroke(c.Config.AxisColor, axisWidth)
	grp.Append(x)

	y := scene.NewLine(scene.NewPos(c.Margin.Left, c.Margin.Top), scene.NewPos(c.Margin.Left, c.Bottom()))
	y.Stroke = scene.NewStroke(c.Config.AxisColor, axisWidth)
	grp.Append(y)

	if !c.Config.ShowAxisLabels {
		return grp
	}
	for _, v := range c.Mapper.Scale.Ticks() {
		txt := scene.NewText(formatValue(v))
		txt.Pos = scene.NewPos(c.Margin.Left-axisLabelOffset, c.Y(v))
		txt.Anchor = "end"
		txt.Baseline = "middle"
		txt.Font = c.labelFont()
		txt.Fill = scene.NewFill(c.Config.TextColor)
		grp.Append(txt)
	}
	return grp
}

func (c *canvas) labelFont() scene.Font {
	f := scene.NewFont(c.Layout.LabelFontSize)
	f.Family = c.Config.FontFamily
	return f
}

func (c *canvas) mainFont() scene.Font {
	f := scene.NewFont(c.Layout.FontSize)
	f.Family = c.Config.FontFamily
	return f
}
