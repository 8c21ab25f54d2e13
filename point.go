package charts

import (
	"fmt"
	"strconv"
	"strings"
)

type DataPoint struct {
	Label   string  `yaml:"label" json:"label"`
	Value   float64 `yaml:"value" json:"value"`
	Tooltip string  `yaml:"tooltip,omitempty" json:"tooltip,omitempty"`
	Color   string  `yaml:"color,omitempty" json:"color,omitempty"`
}

func NewPoint(label string, value float64) DataPoint {
	return DataPoint{
		Label: label,
		Value: value,
	}
}

// Append targets one series of the chart when several points are added at once.
type Append struct {
	SeriesIndex int
	Data        DataPoint
}

func decodePoint(v any) (DataPoint, error) {
	var pt DataPoint
	switch v := v.(type) {
	case DataPoint:
		return v, nil
	case map[string]any:
		label, err := decodeLabel(v["label"])
		if err != nil {
			return pt, err
		}
		pt.Label = label
		value, err := decodeValue(v["value"])
		if err != nil {
			return pt, err
		}
		pt.Value = value
		if pt.Tooltip, err = optionalString(v, "tooltip"); err != nil {
			return pt, err
		}
		if pt.Color, err = optionalString(v, "color"); err != nil {
			return pt, err
		}
		return pt, nil
	default:
		return pt, DataShapeError{Reason: fmt.Sprintf("point must be a mapping, got %T", v)}
	}
}

func decodeLabel(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		if f, ok := toFloat(v); ok {
			return formatValue(f), nil
		}
		return "", DataShapeError{Reason: fmt.Sprintf("label must be a string, got %T", v)}
	}
}

func decodeValue(v any) (float64, error) {
	if str, ok := v.(string); ok {
		return parseNumber(str)
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, DataShapeError{Reason: fmt.Sprintf("value must be a number, got %T", v)}
	}
	return f, nil
}

// parseNumber strips thousands separators and blanks before parsing. An
// empty string is read as zero.
func parseNumber(str string) (float64, error) {
	str = strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' || r == '\u00a0' {
			return -1
		}
		return r
	}, str)
	if str == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, DataShapeError{Reason: fmt.Sprintf("%q is not a number", str)}
	}
	return f, nil
}

func optionalString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	str, ok := v.(string)
	if !ok {
		return "", DataShapeError{Reason: fmt.Sprintf("%s must be a string, got %T", key, v)}
	}
	return str, nil
}
