package charts

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func UniformMargin(v float64) Margin {
	return Margin{
		Top:    v,
		Right:  v,
		Bottom: v,
		Left:   v,
	}
}

func (m Margin) Horizontal() float64 {
	return m.Left + m.Right
}

func (m Margin) Vertical() float64 {
	return m.Top + m.Bottom
}

const (
	defaultMargin   = 50.0
	legendMargin    = 50.0
	legendSideSpace = 100.0
	circularMargin  = 20.0
	compactMargin   = 10.0

	minFontSize     = 10.0
	fontSizeDivisor = 20.0
)

// Layout is the geometry of one render pass.
type Layout struct {
	Width         float64
	Height        float64
	Margin        Margin
	FontSize      float64
	LabelFontSize float64
}

func ComputeLayout(cfg Config, width, height float64) Layout {
	size, label := fontSizes(cfg, width, height)
	return Layout{
		Width:         width,
		Height:        height,
		Margin:        margins(cfg),
		FontSize:      size,
		LabelFontSize: label,
	}
}

// fontSizes scales the text with the surface. Gauges keep the configured size.
func fontSizes(cfg Config, width, height float64) (float64, float64) {
	if cfg.Type == TypeGauge {
		return cfg.FontSize, cfg.FontSize * 0.5
	}
	size := math.Max(minFontSize, math.Min(cfg.FontSize, math.Min(width, height)/fontSizeDivisor))
	return size, size * 0.8
}

func margins(cfg Config) Margin {
	m := UniformMargin(defaultMargin)
	if cfg.ShowLegend {
		switch cfg.LegendPosition {
		case PosTop:
			m.Top += legendMargin
		case PosLeft:
			m.Left += legendSideSpace
		case PosRight:
			m.Right += legendSideSpace
		default:
			m.Bottom += legendMargin
		}
		return m
	}
	switch {
	case cfg.Type.circular():
		m = UniformMargin(circularMargin)
	case cfg.Type == TypeGauge:
		m = UniformMargin(cfg.GaugeCurveWidth / 2)
	case !cfg.ShowAxisLabels:
		m = UniformMargin(compactMargin)
	}
	return m
}

var measureFace font.Face = basicfont.Face7x13

// textWidth estimates the rendered width of str at the given font size from
// the metrics of a fixed 7x13 face.
func textWidth(str string, size float64) float64 {
	var (
		adv    = font.MeasureString(measureFace, str)
		height = float64(measureFace.Metrics().Height) / 64
	)
	if height == 0 {
		return 0
	}
	return float64(adv) / 64 * size / height
}
