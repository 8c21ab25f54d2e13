package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/ggraphs"
	"github.com/midbel/ggraphs/dash"
	"github.com/midbel/ggraphs/ingest"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var svgOptions struct {
	Type    string
	Width   float64
	Height  float64
	Output  string
	Table   string
	Sheet   string
	Palette string
	Options map[string]string
}

var svgCmd = &cobra.Command{
	Use:   "svg <file>",
	Short: "draw the series of a yaml, json, csv, xlsx or html file as one svg",
	Args:  cobra.ExactArgs(1),
	RunE:  runSVG,
}

func init() {
	flags := svgCmd.Flags()
	flags.StringVarP(&svgOptions.Type, "type", "t", string(charts.TypeLine), "chart type (line, bar, pie, donut, gauge)")
	flags.Float64Var(&svgOptions.Width, "width", dash.DefaultWidth, "width of the drawing")
	flags.Float64Var(&svgOptions.Height, "height", dash.DefaultHeight, "height of the drawing")
	flags.StringVarP(&svgOptions.Output, "output", "o", "", "output file (default: stdout)")
	flags.StringVar(&svgOptions.Table, "table", "", "id of the table to read from an html file")
	flags.StringVar(&svgOptions.Sheet, "sheet", "", "sheet to read from a workbook")
	flags.StringVar(&svgOptions.Palette, "palette", "", "name of a builtin palette")
	flags.StringToStringVar(&svgOptions.Options, "option", nil, "chart option as key=value (repeatable)")
}

func runSVG(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	src := ingest.Source{
		Path:  args[0],
		Table: svgOptions.Table,
		Sheet: svgOptions.Sheet,
	}
	set, err := src.Load()
	if err != nil {
		return err
	}
	values, err := parseOptions(svgOptions.Options)
	if err != nil {
		return err
	}
	values["type"] = svgOptions.Type
	values["data"] = set
	if svgOptions.Palette != "" {
		p, ok := charts.PaletteByName(svgOptions.Palette)
		if !ok {
			return fmt.Errorf("%s: unknown palette", svgOptions.Palette)
		}
		values["colors"] = p
	}

	const id = "graph"
	surface := dash.NewSurface()
	surface.Add(id, svgOptions.Width, svgOptions.Height)
	ch, err := charts.New(surface, id, values, charts.WithLogger(logger))
	if err != nil {
		return err
	}
	defer ch.Close()

	doc := surface.Document(id)
	if doc == nil {
		return fmt.Errorf("%s: nothing drawn", args[0])
	}
	var w io.Writer = cmd.OutOrStdout()
	if svgOptions.Output != "" {
		if err := os.MkdirAll(filepath.Dir(svgOptions.Output), 0o755); err != nil {
			return err
		}
		f, err := os.Create(svgOptions.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return doc.Render(w)
}

// parseOptions reads each value as yaml so that numbers, booleans and
// sequences keep their type.
func parseOptions(opts map[string]string) (charts.Values, error) {
	values := make(charts.Values)
	for k, str := range opts {
		var v any
		if err := yaml.Unmarshal([]byte(str), &v); err != nil {
			return nil, fmt.Errorf("option %s: %w", k, err)
		}
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		values[k] = v
	}
	return values, nil
}
