package charts

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve(nil, Environment{})
	require.NoError(t, err)

	assert.Equal(t, TypeLine, cfg.Type)
	assert.Equal(t, DefaultPalette, cfg.Colors)
	assert.Equal(t, "#FF6B6B", cfg.Colors[0])
	assert.Len(t, cfg.Colors, 12)
	assert.Equal(t, DefaultBackgroundColor, cfg.Background)
	assert.Equal(t, DefaultTextColor, cfg.TextColor)
	assert.Equal(t, DefaultFontSize, cfg.FontSize)
	assert.Equal(t, time.Second, cfg.Duration)
	assert.Equal(t, PosBottom, cfg.LegendPosition)
	assert.Equal(t, 100.0, cfg.MaxGaugeValue)
	assert.Equal(t, 20, cfg.MaxDataPoints)
	assert.Equal(t, DefaultDebounce, cfg.ResizeDebounce)
	assert.True(t, cfg.ShowGrid)
	assert.False(t, cfg.FillArea)
	assert.False(t, cfg.HasCenterText)
}

func TestResolveEnvironment(t *testing.T) {
	env := Environment{
		FontSize:   14,
		FontFamily: "serif",
		Background: "rgb(20, 20, 20)",
	}
	cfg, err := Resolve(Values{}, env)
	require.NoError(t, err)
	assert.Equal(t, 14.0, cfg.FontSize)
	assert.Equal(t, "serif", cfg.FontFamily)
	assert.Equal(t, DefaultLightTextColor, cfg.TextColor)

	env.Color = "#123456"
	cfg, err = Resolve(Values{}, env)
	require.NoError(t, err)
	assert.Equal(t, "#123456", cfg.TextColor)
}

func TestResolveValues(t *testing.T) {
	values := Values{
		"type":              "donut",
		"colors":            []any{"#000", "#fff"},
		"showGrid":          false,
		"legendPosition":    "right",
		"maxGaugeValue":     250,
		"animationDuration": "1.5s",
		"maxDataPoints":     5,
		"centerText":        "hello",
		"curveType":         "curve",
		"resizeDebounce":    50,
		"unknownOption":     true,
	}
	cfg, err := Resolve(values, Environment{})
	require.NoError(t, err)
	assert.Equal(t, TypeDonut, cfg.Type)
	assert.Equal(t, Palette{"#000", "#fff"}, cfg.Colors)
	assert.False(t, cfg.ShowGrid)
	assert.Equal(t, PosRight, cfg.LegendPosition)
	assert.Equal(t, 250.0, cfg.MaxGaugeValue)
	assert.Equal(t, 1500*time.Millisecond, cfg.Duration)
	assert.Equal(t, 5, cfg.MaxDataPoints)
	assert.True(t, cfg.HasCenterText)
	assert.Equal(t, "hello", cfg.CenterText)
	assert.Equal(t, CurveCubic, cfg.Curve)
	assert.Equal(t, 50*time.Millisecond, cfg.ResizeDebounce)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		Name   string
		Values Values
		Option string
	}{
		{Name: "colors-not-sequence", Values: Values{"colors": "#fff"}, Option: "colors"},
		{Name: "colors-not-strings", Values: Values{"colors": []any{1, 2}}, Option: "colors"},
		{Name: "colors-empty", Values: Values{"colors": []string{}}, Option: "colors"},
		{Name: "grid-not-bool", Values: Values{"showGrid": "yes"}, Option: "showGrid"},
		{Name: "legend-not-string", Values: Values{"legendPosition": 1}, Option: "legendPosition"},
		{Name: "legend-unknown", Values: Values{"legendPosition": "middle"}, Option: "legendPosition"},
		{Name: "gauge-not-number", Values: Values{"maxGaugeValue": "100"}, Option: "maxGaugeValue"},
		{Name: "gauge-not-positive", Values: Values{"maxGaugeValue": 0}, Option: "maxGaugeValue"},
		{Name: "gauge-nan", Values: Values{"maxGaugeValue": math.NaN()}, Option: "maxGaugeValue"},
		{Name: "gauge-infinite", Values: Values{"maxGaugeValue": math.Inf(1)}, Option: "maxGaugeValue"},
		{Name: "curve-unknown", Values: Values{"curveType": "spline"}, Option: "curveType"},
		{Name: "formatter", Values: Values{"tooltipFormatter": "x"}, Option: "tooltipFormatter"},
		{Name: "click", Values: Values{"onClick": func() {}}, Option: "onClick"},
		{Name: "duration", Values: Values{"animationDuration": "soon"}, Option: "animationDuration"},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := Resolve(tt.Values, Environment{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)

			var cerr ConfigurationError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.Option, cerr.Option)
		})
	}
}

func TestResolveUnknownType(t *testing.T) {
	_, err := Resolve(Values{"type": "radar"}, Environment{})
	assert.ErrorIs(t, err, ErrUnknownChartType)
}

func TestConfigWith(t *testing.T) {
	cfg := Default(Environment{})
	next, err := cfg.With("gap", 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, next.Gap)
	assert.Equal(t, 2.0, cfg.Gap)

	_, err = cfg.With("legendPosition", "nowhere")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestParseChartType(t *testing.T) {
	for _, str := range []string{"line", "bar", "pie", "donut", "gauge", " Bar "} {
		_, err := ParseChartType(str)
		assert.NoError(t, err, str)
	}
	_, err := ParseChartType("scatter")
	var terr UnknownChartTypeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "scatter", terr.Type)
}

func TestPaletteByName(t *testing.T) {
	p, ok := PaletteByName("Tableau10")
	require.True(t, ok)
	assert.Len(t, p, 10)
	assert.Equal(t, "#4e79a7", p.Color(0))
	assert.Equal(t, "#4e79a7", p.Color(10))

	_, ok = PaletteByName("rainbow")
	assert.False(t, ok)
}
