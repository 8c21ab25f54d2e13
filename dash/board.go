package dash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/midbel/ggraphs"
	"github.com/midbel/ggraphs/page"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrOutput = errors.New("no output")

type Option func(*Board)

func WithLogger(logger *zap.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func WithDebounce(delay time.Duration) Option {
	return func(b *Board) {
		b.debounce = delay
	}
}

// Board owns the charts of a dashboard and the host they are drawn into.
type Board struct {
	cfg      Config
	logger   *zap.Logger
	debounce time.Duration

	host    charts.Host
	page    *page.Document
	surface *Surface

	mu     sync.Mutex
	charts map[string]*charts.Chart
}

// Open creates every chart of the dashboard. Charts are independent and are
// created concurrently.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Board, error) {
	b := Board{
		cfg:    cfg,
		logger: zap.NewNop(),
		charts: make(map[string]*charts.Chart),
	}
	for _, o := range opts {
		o(&b)
	}
	if cfg.Page != "" {
		doc, err := page.Load(cfg.Resolve(cfg.Page))
		if err != nil {
			return nil, err
		}
		b.page, b.host = doc, doc
	} else {
		b.surface = NewSurface()
		for _, c := range cfg.Cells {
			b.surface.Add(c.ID, c.Width, c.Height)
		}
		b.host = b.surface
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, cell := range cfg.Cells {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ch, err := b.open(cell)
			if err != nil {
				return fmt.Errorf("chart %s: %w", cell.ID, err)
			}
			b.mu.Lock()
			defer b.mu.Unlock()
			b.charts[cell.ID] = ch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		b.Close()
		return nil, err
	}
	b.logger.Info("dashboard ready", zap.Int("charts", len(b.charts)), zap.Bool("page", b.page != nil))
	return &b, nil
}

func (b *Board) open(cell Cell) (*charts.Chart, error) {
	values, err := b.cfg.Values(cell)
	if err != nil {
		return nil, err
	}
	if cell.Source != nil {
		src := *cell.Source
		src.Path = b.cfg.Resolve(src.Path)
		set, err := src.Load()
		if err != nil {
			return nil, err
		}
		values["data"] = set
	}
	opts := []charts.Option{
		charts.WithLogger(b.logger.With(zap.String("chart", cell.ID))),
	}
	if b.debounce > 0 {
		opts = append(opts, charts.WithDebounce(b.debounce))
	}
	return charts.New(b.host, cell.ID, values, opts...)
}

func (b *Board) Chart(id string) (*charts.Chart, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.charts[id]
	return ch, ok
}

// Reload reads the sources again and updates the data of the charts using
// them. Without files, every chart with a source is reloaded.
func (b *Board) Reload(ctx context.Context, files ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, cell := range b.cfg.Cells {
		if cell.Source == nil {
			continue
		}
		src := *cell.Source
		src.Path = b.cfg.Resolve(src.Path)
		if len(files) > 0 && !slices.Contains(files, src.Path) {
			continue
		}
		ch, ok := b.Chart(cell.ID)
		if !ok {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := src.Load()
			if err != nil {
				return fmt.Errorf("chart %s: %w", cell.ID, err)
			}
			b.logger.Debug("source reloaded", zap.String("chart", cell.ID), zap.String("file", src.Path))
			return ch.SetData(set)
		})
	}
	return g.Wait()
}

// Resize changes the size of the container of a chart. The chart is redrawn
// once its resize window has elapsed.
func (b *Board) Resize(id string, width, height float64) error {
	if b.page != nil {
		return b.page.Resize(id, width, height)
	}
	return b.surface.Resize(id, width, height)
}

// Save writes the dashboard: the updated page into the output file, or one
// svg file per chart when there is no page.
func (b *Board) Save() error {
	if b.page != nil {
		if b.cfg.Output == "" {
			return fmt.Errorf("%w: page output file is not set", ErrOutput)
		}
		return writeFile(b.cfg.Resolve(b.cfg.Output), b.page.WriteTo)
	}
	for _, cell := range b.cfg.Cells {
		doc := b.surface.Document(cell.ID)
		if doc == nil {
			continue
		}
		file := cell.Path
		if file == "" {
			file = filepath.Join(b.cfg.Output, cell.ID+".svg")
		}
		err := writeFile(b.cfg.Resolve(file), func(w io.Writer) (int64, error) {
			return 0, doc.Render(w)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteTo writes the page or, without page, the svg of every chart one after
// the other.
func (b *Board) WriteTo(w io.Writer) (int64, error) {
	if b.page != nil {
		return b.page.WriteTo(w)
	}
	for _, cell := range b.cfg.Cells {
		doc := b.surface.Document(cell.ID)
		if doc == nil {
			continue
		}
		if err := doc.Render(w); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.charts {
		ch.Close()
	}
}

func writeFile(file string, write func(io.Writer) (int64, error)) error {
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	w, err := os.Create(file)
	if err != nil {
		return err
	}
	if _, err := write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (b *Board) list() []*charts.Chart {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := make([]*charts.Chart, 0, len(b.charts))
	for _, ch := range b.charts {
		list = append(list, ch)
	}
	return list
}
