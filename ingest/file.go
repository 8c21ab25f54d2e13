package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/ggraphs"
	"gopkg.in/yaml.v3"
)

// Source locates chart data on disk. Table names the table element of an html
// page; Sheet the sheet of a workbook.
type Source struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table,omitempty"`
	Sheet string `yaml:"sheet,omitempty"`
}

// Load reads the series of the source. The format is chosen from the
// extension of the file: yaml and json files hold series, the other formats
// hold a table.
func (s Source) Load() ([]charts.Series, error) {
	switch ext := strings.ToLower(filepath.Ext(s.Path)); ext {
	case ".yml", ".yaml", ".json":
		r, err := os.Open(s.Path)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return ReadSeries(r)
	default:
		t, err := s.LoadTable()
		if err != nil {
			return nil, err
		}
		return charts.ProcessTable(t)
	}
}

func (s Source) LoadTable() (charts.Table, error) {
	r, err := os.Open(s.Path)
	if err != nil {
		return charts.Table{}, err
	}
	defer r.Close()

	switch ext := strings.ToLower(filepath.Ext(s.Path)); ext {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx", ".xlsm":
		return ReadXLSX(r, s.Sheet)
	case ".html", ".htm":
		return ReadHTML(r, s.Table)
	default:
		return charts.Table{}, fmt.Errorf("%s: %w %q", s.Path, ErrFormat, ext)
	}
}

func LoadSeries(file string) ([]charts.Series, error) {
	return Source{Path: file}.Load()
}

// ReadSeries decodes a yaml (or json) document holding either a sequence of
// series or a mapping with a series key.
func ReadSeries(r io.Reader) ([]charts.Series, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	if m, ok := doc.(map[string]any); ok {
		doc = m["series"]
	}
	return charts.DecodeSeries(doc)
}
