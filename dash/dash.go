// Package dash renders a set of charts described in a yaml file, either into
// the containers of an html page or as standalone svg files.
package dash

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/midbel/ggraphs"
	"github.com/midbel/ggraphs/ingest"
	"gopkg.in/yaml.v3"
)

var (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Config is the content of a dashboard file.
type Config struct {
	Title  string  `yaml:"title"`
	Page   string  `yaml:"page"`
	Output string  `yaml:"output"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Style  Style   `yaml:"style"`
	Cells  []Cell  `yaml:"charts"`

	dir string
}

// Cell is one chart of the dashboard. ID names its container in the page; Path
// the svg file written when the dashboard has no page.
type Cell struct {
	ID      string         `yaml:"id"`
	Path    string         `yaml:"path"`
	Width   float64        `yaml:"width"`
	Height  float64        `yaml:"height"`
	Source  *ingest.Source `yaml:"source"`
	Style   Style          `yaml:"style"`
	Options charts.Values  `yaml:"options"`
}

func Default() Config {
	return Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Style:  GlobalStyle(),
	}
}

func Load(file string) (Config, error) {
	r, err := os.Open(file)
	if err != nil {
		return Config{}, err
	}
	defer r.Close()
	cfg, err := Decode(r)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", file, err)
	}
	cfg.dir = filepath.Dir(file)
	return cfg, nil
}

func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return cfg, err
	}
	cfg.Style = cfg.Style.merge(GlobalStyle())
	for i := range cfg.Cells {
		c := &cfg.Cells[i]
		if c.ID == "" {
			c.ID = fmt.Sprintf("chart-%d", i+1)
		}
		if c.Width <= 0 {
			c.Width = cfg.Width
		}
		if c.Height <= 0 {
			c.Height = cfg.Height
		}
	}
	return cfg, nil
}

// Resolve returns the path relative to the directory of the dashboard file.
func (c Config) Resolve(file string) string {
	if file == "" || filepath.IsAbs(file) || c.dir == "" {
		return file
	}
	return filepath.Join(c.dir, file)
}

// Values builds the options of a cell: its style merged over the global
// style, then its explicit options.
func (c Config) Values(cell Cell) (charts.Values, error) {
	values, err := cell.Style.merge(c.Style).values()
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", cell.ID, err)
	}
	for k, v := range cell.Options {
		values[k] = v
	}
	return values, nil
}

// Sources lists the files the charts read their data from.
func (c Config) Sources() []string {
	var list []string
	for _, cell := range c.Cells {
		if cell.Source != nil && cell.Source.Path != "" {
			list = append(list, c.Resolve(cell.Source.Path))
		}
	}
	return list
}
