package charts

import (
	"errors"
	"fmt"
)

type Series struct {
	Name  string      `yaml:"name" json:"name"`
	Color string      `yaml:"color,omitempty" json:"color,omitempty"`
	Data  []DataPoint `yaml:"data" json:"data"`
}

func NewSeries(name string, points ...DataPoint) Series {
	return Series{
		Name: name,
		Data: points,
	}
}

func (s Series) Total() float64 {
	var total float64
	for _, pt := range s.Data {
		total += pt.Value
	}
	return total
}

func (s Series) Labels() []string {
	var list []string
	for _, pt := range s.Data {
		list = append(list, pt.Label)
	}
	return list
}

func (s Series) clone() Series {
	x := s
	x.Data = append([]DataPoint(nil), s.Data...)
	return x
}

func cloneSeries(set []Series) []Series {
	list := make([]Series, len(set))
	for i := range set {
		list[i] = set[i].clone()
	}
	return list
}

func sumValues(set []Series) float64 {
	var total float64
	for _, s := range set {
		total += s.Total()
	}
	return total
}

// DecodeSeries normalizes the structures accepted as chart data: a slice of
// Series or a generic sequence of mappings as produced by yaml and json
// decoders.
func DecodeSeries(v any) ([]Series, error) {
	switch v := v.(type) {
	case []Series:
		return cloneSeries(v), nil
	case Series:
		return []Series{v.clone()}, nil
	case []map[string]any:
		list := make([]any, len(v))
		for i := range v {
			list[i] = v[i]
		}
		return decodeSeriesList(list)
	case []any:
		return decodeSeriesList(v)
	default:
		return nil, DataShapeError{Reason: fmt.Sprintf("series must be a sequence, got %T", v)}
	}
}

func decodeSeriesList(list []any) ([]Series, error) {
	set := make([]Series, 0, len(list))
	for i, v := range list {
		s, err := decodeSerie(v)
		if err != nil {
			return nil, fmt.Errorf("series #%d: %w", i, err)
		}
		set = append(set, s)
	}
	return set, nil
}

func decodeSerie(v any) (Series, error) {
	var s Series
	switch v := v.(type) {
	case Series:
		return v.clone(), nil
	case map[string]any:
		var err error
		if s.Name, err = optionalString(v, "name"); err != nil {
			return s, err
		}
		if s.Color, err = optionalString(v, "color"); err != nil {
			return s, err
		}
		var points []any
		switch data := v["data"].(type) {
		case nil:
		case []any:
			points = data
		case []map[string]any:
			for i := range data {
				points = append(points, data[i])
			}
		case []DataPoint:
			s.Data = append(s.Data, data...)
		default:
			return s, DataShapeError{Reason: fmt.Sprintf("data must be a sequence, got %T", data)}
		}
		for j, p := range points {
			pt, err := decodePoint(p)
			if err != nil {
				return s, fmt.Errorf("point #%d: %w", j, err)
			}
			s.Data = append(s.Data, pt)
		}
		return s, nil
	default:
		return s, DataShapeError{Reason: fmt.Sprintf("series must be a mapping, got %T", v)}
	}
}

// Table is the raw content of a tabular source: a header row and body rows
// whose first cell names the series.
type Table struct {
	Title  string
	Labels []string
	Rows   []TableRow
}

type TableRow struct {
	Title string
	Cells []string
}

// ProcessTable turns every row of the table into one series pairing the
// header labels with the numeric cells of the row.
func ProcessTable(t Table) ([]Series, error) {
	var (
		set  = make([]Series, 0, len(t.Rows))
		errs []error
	)
	for i, row := range t.Rows {
		s := Series{
			Name: row.Title,
		}
		for j, label := range t.Labels {
			var cell string
			if j < len(row.Cells) {
				cell = row.Cells[j]
			}
			value, err := parseNumber(cell)
			if err != nil {
				errs = append(errs, DataShapeError{
					Reason: fmt.Sprintf("row %d (%s), column %d (%s): %q is not a number", i+1, row.Title, j+1, label, cell),
				})
				continue
			}
			s.Data = append(s.Data, DataPoint{
				Label:   label,
				Value:   value,
				Tooltip: fmt.Sprintf("%s %s: %s", row.Title, label, formatValue(value)),
			})
		}
		set = append(set, s)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return set, nil
}
