package dash

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/midbel/ggraphs"
	"github.com/midbel/ggraphs/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "standalone.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "weekly", cfg.Title)
	require.Len(t, cfg.Cells, 2)
	assert.Equal(t, 640.0, cfg.Cells[0].Width)
	assert.Equal(t, 300.0, cfg.Cells[1].Width)
	assert.Equal(t, filepath.Join("testdata", "visits.yaml"), cfg.Resolve("visits.yaml"))
	assert.Equal(t, []string{
		filepath.Join("testdata", "visits.yaml"),
		filepath.Join("testdata", "visits.yaml"),
	}, cfg.Sources())

	cfg, err = Decode(strings.NewReader("charts: [{}, {}]"))
	require.NoError(t, err)
	assert.Equal(t, "chart-1", cfg.Cells[0].ID)
	assert.Equal(t, DefaultWidth, cfg.Cells[1].Width)
	assert.Equal(t, "line", cfg.Style.Type)
}

func TestValues(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "standalone.yaml"))
	require.NoError(t, err)

	values, err := cfg.Values(cfg.Cells[1])
	require.NoError(t, err)
	assert.Equal(t, "donut", values["type"])
	assert.Equal(t, 40.0, values["donutThickness"])
	assert.Equal(t, false, values["showLegend"])
	assert.Equal(t, "week", values["centerText"])
	colors, ok := values["colors"].([]string)
	require.True(t, ok)
	assert.Equal(t, "#4e79a7", colors[0])

	cell := cfg.Cells[0]
	cell.Style.Palette = "rainbow"
	_, err = cfg.Values(cell)
	assert.ErrorContains(t, err, "rainbow")
}

func TestStyleMerge(t *testing.T) {
	fill := true
	global := Style{Type: "bar", Palette: "category10", Fill: &fill, Width: 3}
	s := Style{Colors: []string{"#000"}, Width: 1}.merge(global)
	assert.Equal(t, "bar", s.Type)
	assert.Empty(t, s.Palette)
	assert.Equal(t, []string{"#000"}, s.Colors)
	assert.Equal(t, 1.0, s.Width)
	require.NotNil(t, s.Fill)
	assert.True(t, *s.Fill)
}

func TestOpenStandalone(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "standalone.yaml"))
	require.NoError(t, err)
	out := t.TempDir()
	cfg.dir = out
	cfg.Cells[0].Source.Path = mustAbs(t, "testdata/visits.yaml")
	cfg.Cells[1].Source.Path = mustAbs(t, "testdata/visits.yaml")

	b, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer b.Close()

	ch, ok := b.Chart("share")
	require.True(t, ok)
	assert.Equal(t, charts.TypeDonut, ch.Type())
	assert.Len(t, ch.Data(), 1)

	require.NoError(t, b.Save())
	data, err := os.ReadFile(filepath.Join(out, "out", "traffic.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `viewBox="0 0 640 480"`)
	data, err = os.ReadFile(filepath.Join(out, "share.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "week")

	var str strings.Builder
	_, err = b.WriteTo(&str)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(str.String(), "<svg"))
}

func TestOpenWithPage(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "page.yaml"))
	require.NoError(t, err)

	b, err := Open(context.Background(), cfg, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer b.Close()

	traffic, ok := b.Chart("traffic")
	require.True(t, ok)
	assert.Equal(t, charts.TypeBar, traffic.Type())
	assert.Equal(t, 12.0, traffic.Config().FontSize)
	require.Len(t, traffic.Data(), 2)

	split, ok := b.Chart("split")
	require.True(t, ok)
	assert.Equal(t, charts.Palette{"#111111", "#222222"}, split.Config().Colors)

	assert.ErrorIs(t, b.Save(), ErrOutput)

	var str strings.Builder
	_, err = b.WriteTo(&str)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(str.String(), "<svg"))

	require.NoError(t, b.Resize("split", 200, 200))
	assert.Eventually(t, func() bool {
		return split.Layout().Width == 200
	}, time.Second, 5*time.Millisecond)
}

func TestOpenErrors(t *testing.T) {
	cfg := Default()
	cfg.Cells = []Cell{{ID: "a", Width: 100, Height: 100, Source: &ingest.Source{Path: "missing.yaml"}}}
	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)

	cfg, err = Decode(strings.NewReader("page: page.html\ncharts: [{id: nowhere}]"))
	require.NoError(t, err)
	cfg.dir = "testdata"
	_, err = Open(context.Background(), cfg)
	assert.ErrorIs(t, err, charts.ErrContainerNotFound)
}

func TestReloadAndWatch(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "visits.yaml")
	writeSeries(t, source, 10, 20)

	cfg, err := Decode(strings.NewReader(`
charts:
  - id: traffic
    source: {path: visits.yaml}
    options: {animation: false}
`))
	require.NoError(t, err)
	cfg.dir = dir

	b, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer b.Close()

	ch, _ := b.Chart("traffic")
	assert.Equal(t, 20.0, ch.Scale().MaxValue)

	writeSeries(t, source, 10, 50)
	require.NoError(t, b.Reload(context.Background()))
	assert.Equal(t, 50.0, ch.Scale().MaxValue)

	var saved atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- b.Watch(ctx, func() error {
			saved.Add(1)
			return nil
		})
	}()
	time.Sleep(100 * time.Millisecond)

	writeSeries(t, source, 10, 90)
	assert.Eventually(t, func() bool {
		return saved.Load() > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, 90.0, ch.Scale().MaxValue)

	cancel()
	require.NoError(t, <-done)
}

func writeSeries(t *testing.T, file string, values ...int) {
	t.Helper()
	var str strings.Builder
	str.WriteString("- name: visits\n  data:\n")
	for i, v := range values {
		fmt.Fprintf(&str, "    - {label: d%d, value: %d}\n", i, v)
	}
	require.NoError(t, os.WriteFile(file, []byte(str.String()), 0o644))
}

func mustAbs(t *testing.T, file string) string {
	t.Helper()
	abs, err := filepath.Abs(file)
	require.NoError(t, err)
	return abs
}
