package dash

import (
	"fmt"

	"github.com/midbel/ggraphs"
)

// Style holds the presentation settings shared by the charts of a dashboard.
// A chart style is merged over the global one: unset fields are inherited.
type Style struct {
	Type        string   `yaml:"type"`
	Palette     string   `yaml:"palette"`
	Colors      []string `yaml:"colors"`
	Stroke      string   `yaml:"stroke"`
	Fill        *bool    `yaml:"fill"`
	Width       float64  `yaml:"width"`
	Point       float64  `yaml:"point"`
	Curve       string   `yaml:"curve"`
	InnerRadius float64  `yaml:"inner-radius"`
	Legend      string   `yaml:"legend"`
	FontFamily  string   `yaml:"font-family"`
	FontSize    float64  `yaml:"font-size"`
}

func GlobalStyle() Style {
	return Style{
		Type:    string(charts.TypeLine),
		Palette: "default",
	}
}

func (s Style) merge(g Style) Style {
	if s.Type == "" {
		s.Type = g.Type
	}
	if s.Palette == "" && len(s.Colors) == 0 {
		s.Palette = g.Palette
		s.Colors = g.Colors
	}
	if s.Stroke == "" {
		s.Stroke = g.Stroke
	}
	if s.Fill == nil {
		s.Fill = g.Fill
	}
	if s.Width == 0 {
		s.Width = g.Width
	}
	if s.Point == 0 {
		s.Point = g.Point
	}
	if s.Curve == "" {
		s.Curve = g.Curve
	}
	if s.InnerRadius == 0 {
		s.InnerRadius = g.InnerRadius
	}
	if s.Legend == "" {
		s.Legend = g.Legend
	}
	if s.FontFamily == "" {
		s.FontFamily = g.FontFamily
	}
	if s.FontSize == 0 {
		s.FontSize = g.FontSize
	}
	return s
}

func (s Style) values() (charts.Values, error) {
	values := charts.Values{
		"type": s.Type,
	}
	switch {
	case len(s.Colors) > 0:
		values["colors"] = s.Colors
	case s.Palette != "":
		p, ok := charts.PaletteByName(s.Palette)
		if !ok {
			return nil, fmt.Errorf("%s: unknown palette", s.Palette)
		}
		values["colors"] = []string(p)
	}
	if s.Stroke != "" {
		values["borderColor"] = s.Stroke
	}
	if s.Fill != nil {
		values["fillArea"] = *s.Fill
	}
	if s.Width > 0 {
		values["lineWidth"] = s.Width
	}
	if s.Point > 0 {
		values["pointRadius"] = s.Point
	}
	if s.Curve != "" {
		values["curveType"] = s.Curve
	}
	if s.InnerRadius > 0 {
		values["donutThickness"] = s.InnerRadius
	}
	switch s.Legend {
	case "":
	case "none":
		values["showLegend"] = false
	default:
		values["legendPosition"] = s.Legend
	}
	if s.FontFamily != "" {
		values["fontFamily"] = s.FontFamily
	}
	if s.FontSize > 0 {
		values["fontSize"] = s.FontSize
	}
	return values, nil
}
