package charts

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"
)

// Values holds the options given by the caller, keyed by option name.
type Values map[string]any

type ChartType string

const (
	TypeLine  ChartType = "line"
	TypeBar   ChartType = "bar"
	TypePie   ChartType = "pie"
	TypeDonut ChartType = "donut"
	TypeGauge ChartType = "gauge"
)

func ParseChartType(str string) (ChartType, error) {
	switch t := ChartType(strings.ToLower(strings.TrimSpace(str))); t {
	case TypeLine, TypeBar, TypePie, TypeDonut, TypeGauge:
		return t, nil
	default:
		return "", UnknownChartTypeError{Type: str}
	}
}

func (t ChartType) circular() bool {
	return t == TypePie || t == TypeDonut
}

type Position string

const (
	PosTop    Position = "top"
	PosRight  Position = "right"
	PosBottom Position = "bottom"
	PosLeft   Position = "left"
)

func (p Position) Vertical() bool {
	return p == PosLeft || p == PosRight
}

type CurveType string

const (
	CurveLinear CurveType = "linear"
	CurveCubic  CurveType = "curve"
)

type (
	TooltipFunc func(Series, DataPoint) string
	ClickFunc   func(Click)
)

// Environment carries the computed style of the container the chart is
// mounted in. Zero fields fall back to browser like defaults.
type Environment struct {
	FontSize   float64
	FontFamily string
	Color      string
	Background string
}

const (
	DefaultFontSize   = 16.0
	DefaultFontFamily = "sans-serif"
	DefaultDebounce   = 200 * time.Millisecond
)

type Config struct {
	Type       ChartType
	Colors     Palette
	Background string
	TextColor  string
	FontFamily string
	FontSize   float64

	ShowGrid       bool
	GridColor      string
	AxisColor      string
	ShowAxis       bool
	ShowAxisLabels bool
	Curve          CurveType

	MaxGaugeValue   float64
	GaugeCurveWidth float64
	DonutThickness  float64
	CenterText      string
	HasCenterText   bool
	ShowCenterText  bool

	Gap         float64
	BorderWidth float64
	BorderColor string
	PointRadius float64
	LineWidth   float64
	FillArea    bool
	FillOpacity float64

	Animation bool
	Duration  time.Duration

	ShowLegend     bool
	LegendPosition Position
	ShowTooltip    bool
	ShowDataLabels bool
	Tooltip        TooltipFunc
	OnClick        ClickFunc

	MaxDataPoints  int
	ResizeDebounce time.Duration

	Table string
	Data  any
}

func Default(env Environment) Config {
	cfg := Config{
		Type:            TypeLine,
		Colors:          append(Palette(nil), DefaultPalette...),
		Background:      env.Background,
		TextColor:       env.Color,
		FontFamily:      env.FontFamily,
		FontSize:        env.FontSize,
		ShowGrid:        true,
		GridColor:       "#E0E0E0",
		AxisColor:       "#333333",
		ShowAxis:        true,
		ShowAxisLabels:  true,
		Curve:           CurveLinear,
		MaxGaugeValue:   100,
		GaugeCurveWidth: 20,
		DonutThickness:  50,
		ShowCenterText:  true,
		Gap:             2,
		BorderWidth:     1,
		BorderColor:     "#000000",
		PointRadius:     4,
		LineWidth:       2,
		FillOpacity:     0.1,
		Animation:       true,
		Duration:        time.Second,
		ShowLegend:      true,
		LegendPosition:  PosBottom,
		ShowTooltip:     true,
		ShowDataLabels:  true,
		MaxDataPoints:   20,
		ResizeDebounce:  DefaultDebounce,
	}
	if isTransparent(cfg.Background) {
		cfg.Background = DefaultBackgroundColor
	}
	if cfg.TextColor == "" {
		cfg.TextColor = contrastColor(cfg.Background)
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = DefaultFontFamily
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = DefaultFontSize
	}
	return cfg
}

// Resolve merges values over the defaults computed from env. Options are
// applied in name order so that errors are reported deterministically.
func Resolve(values Values, env Environment) (*Config, error) {
	cfg := Default(env)
	for _, k := range slices.Sorted(maps.Keys(values)) {
		if err := cfg.apply(k, values[k]); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// With returns a copy of the configuration with one option changed.
func (c Config) With(key string, value any) (Config, error) {
	x := c
	x.Colors = append(Palette(nil), c.Colors...)
	if err := x.apply(key, value); err != nil {
		return c, err
	}
	if err := x.validate(); err != nil {
		return c, err
	}
	return x, nil
}

func (c *Config) apply(key string, value any) error {
	set, ok := setters[key]
	if !ok {
		return nil
	}
	return set(c, key, value)
}

func (c *Config) validate() error {
	if len(c.Colors) == 0 {
		return ConfigurationError{Option: "colors", Reason: "must not be empty"}
	}
	switch c.LegendPosition {
	case PosTop, PosRight, PosBottom, PosLeft:
	default:
		return ConfigurationError{Option: "legendPosition", Reason: fmt.Sprintf("unknown position %q", c.LegendPosition)}
	}
	if math.IsNaN(c.MaxGaugeValue) || math.IsInf(c.MaxGaugeValue, 0) || c.MaxGaugeValue <= 0 {
		return ConfigurationError{Option: "maxGaugeValue", Reason: "must be a positive number"}
	}
	if c.MaxDataPoints < 0 {
		return ConfigurationError{Option: "maxDataPoints", Reason: "must not be negative"}
	}
	return nil
}

type setter func(*Config, string, any) error

var setters map[string]setter

func init() {
	setters = map[string]setter{
		"type":              setType,
		"colors":            setColors,
		"backgroundColor":   stringOption(func(c *Config) *string { return &c.Background }),
		"textColor":         stringOption(func(c *Config) *string { return &c.TextColor }),
		"fontFamily":        stringOption(func(c *Config) *string { return &c.FontFamily }),
		"fontSize":          numberOption(func(c *Config) *float64 { return &c.FontSize }),
		"showGrid":          boolOption(func(c *Config) *bool { return &c.ShowGrid }),
		"gridColor":         stringOption(func(c *Config) *string { return &c.GridColor }),
		"axisColor":         stringOption(func(c *Config) *string { return &c.AxisColor }),
		"showAxis":          boolOption(func(c *Config) *bool { return &c.ShowAxis }),
		"showAxisLabels":    boolOption(func(c *Config) *bool { return &c.ShowAxisLabels }),
		"curveType":         setCurve,
		"maxGaugeValue":     numberOption(func(c *Config) *float64 { return &c.MaxGaugeValue }),
		"gaugeCurveWidth":   numberOption(func(c *Config) *float64 { return &c.GaugeCurveWidth }),
		"donutThickness":    numberOption(func(c *Config) *float64 { return &c.DonutThickness }),
		"centerText":        setCenterText,
		"showCenterText":    boolOption(func(c *Config) *bool { return &c.ShowCenterText }),
		"gap":               numberOption(func(c *Config) *float64 { return &c.Gap }),
		"borderWidth":       numberOption(func(c *Config) *float64 { return &c.BorderWidth }),
		"borderColor":       stringOption(func(c *Config) *string { return &c.BorderColor }),
		"pointRadius":       numberOption(func(c *Config) *float64 { return &c.PointRadius }),
		"lineWidth":         numberOption(func(c *Config) *float64 { return &c.LineWidth }),
		"fillArea":          boolOption(func(c *Config) *bool { return &c.FillArea }),
		"fillOpacity":       numberOption(func(c *Config) *float64 { return &c.FillOpacity }),
		"animation":         boolOption(func(c *Config) *bool { return &c.Animation }),
		"animationDuration": durationOption(func(c *Config) *time.Duration { return &c.Duration }),
		"showLegend":        boolOption(func(c *Config) *bool { return &c.ShowLegend }),
		"legendPosition":    setLegendPosition,
		"showTooltip":       boolOption(func(c *Config) *bool { return &c.ShowTooltip }),
		"showDataLabels":    boolOption(func(c *Config) *bool { return &c.ShowDataLabels }),
		"tooltipFormatter":  setTooltip,
		"onClick":           setClick,
		"maxDataPoints":     setMaxDataPoints,
		"resizeDebounce":    durationOption(func(c *Config) *time.Duration { return &c.ResizeDebounce }),
		"table":             stringOption(func(c *Config) *string { return &c.Table }),
		"data":              setData,
	}
}

func setType(c *Config, key string, value any) error {
	str, ok := value.(string)
	if !ok {
		if t, ok := value.(ChartType); ok {
			str = string(t)
		} else {
			return typeError(key, "a string")
		}
	}
	t, err := ParseChartType(str)
	if err != nil {
		return err
	}
	c.Type = t
	return nil
}

func setColors(c *Config, key string, value any) error {
	var list Palette
	switch vs := value.(type) {
	case []string:
		list = append(list, vs...)
	case Palette:
		list = append(list, vs...)
	case []any:
		for _, v := range vs {
			str, ok := v.(string)
			if !ok {
				return typeError(key, "a sequence of strings")
			}
			list = append(list, str)
		}
	default:
		return typeError(key, "a sequence")
	}
	c.Colors = list
	return nil
}

func setCurve(c *Config, key string, value any) error {
	str, ok := value.(string)
	if !ok {
		return typeError(key, "a string")
	}
	switch t := CurveType(str); t {
	case CurveLinear, CurveCubic:
		c.Curve = t
	default:
		return ConfigurationError{Option: key, Reason: fmt.Sprintf("unknown curve %q", str)}
	}
	return nil
}

func setCenterText(c *Config, key string, value any) error {
	if value == nil {
		c.CenterText, c.HasCenterText = "", false
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return typeError(key, "a string")
	}
	c.CenterText, c.HasCenterText = str, true
	return nil
}

func setLegendPosition(c *Config, key string, value any) error {
	str, ok := value.(string)
	if !ok {
		if p, ok := value.(Position); ok {
			str = string(p)
		} else {
			return typeError(key, "a string")
		}
	}
	c.LegendPosition = Position(strings.ToLower(str))
	return nil
}

func setTooltip(c *Config, key string, value any) error {
	switch fn := value.(type) {
	case nil:
		c.Tooltip = nil
	case TooltipFunc:
		c.Tooltip = fn
	case func(Series, DataPoint) string:
		c.Tooltip = fn
	default:
		return typeError(key, "a func(Series, DataPoint) string")
	}
	return nil
}

func setClick(c *Config, key string, value any) error {
	switch fn := value.(type) {
	case nil:
		c.OnClick = nil
	case ClickFunc:
		c.OnClick = fn
	case func(Click):
		c.OnClick = fn
	default:
		return typeError(key, "a func(Click)")
	}
	return nil
}

func setMaxDataPoints(c *Config, key string, value any) error {
	f, ok := toFloat(value)
	if !ok {
		return typeError(key, "a number")
	}
	c.MaxDataPoints = int(f)
	return nil
}

func setData(c *Config, _ string, value any) error {
	c.Data = value
	return nil
}

func boolOption(get func(*Config) *bool) setter {
	return func(c *Config, key string, value any) error {
		b, ok := value.(bool)
		if !ok {
			return typeError(key, "a boolean")
		}
		*get(c) = b
		return nil
	}
}

func stringOption(get func(*Config) *string) setter {
	return func(c *Config, key string, value any) error {
		str, ok := value.(string)
		if !ok {
			return typeError(key, "a string")
		}
		*get(c) = str
		return nil
	}
}

func numberOption(get func(*Config) *float64) setter {
	return func(c *Config, key string, value any) error {
		f, ok := toFloat(value)
		if !ok {
			return typeError(key, "a number")
		}
		*get(c) = f
		return nil
	}
}

// durationOption accepts a number of milliseconds or a duration string.
func durationOption(get func(*Config) *time.Duration) setter {
	return func(c *Config, key string, value any) error {
		switch v := value.(type) {
		case time.Duration:
			*get(c) = v
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return ConfigurationError{Option: key, Reason: err.Error()}
			}
			*get(c) = d
		default:
			f, ok := toFloat(value)
			if !ok {
				return typeError(key, "a number of milliseconds or a duration")
			}
			*get(c) = time.Duration(f * float64(time.Millisecond))
		}
		return nil
	}
}

func typeError(key, what string) error {
	return ConfigurationError{
		Option: key,
		Reason: "must be " + what,
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
