package charts

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/midbel/ggraphs/scene"
	"go.uber.org/zap"
)

type Option func(*Chart)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Chart) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebounce overrides the quiet window applied to resize notifications.
func WithDebounce(delay time.Duration) Option {
	return func(c *Chart) {
		if delay > 0 {
			c.config.ResizeDebounce = delay
		}
	}
}

// Chart owns the drawing surface of one container. It is safe for
// concurrent use: resize notifications are handled on their own goroutine.
type Chart struct {
	mu sync.Mutex

	id        string
	host      Host
	container Container
	config    Config
	logger    *zap.Logger

	data     []Series
	scale    Scale
	layout   Layout
	visible  int
	frame    Frame
	min, max float64

	debounce    *debouncer
	unsubscribe func()
	closed      bool
}

// New resolves the options against the environment of the container, loads
// the initial data (from the table or the data option) and starts listening
// for resize notifications of the host.
func New(host Host, id string, values Values, opts ...Option) (*Chart, error) {
	container, ok := host.Container(id)
	if !ok || container == nil {
		return nil, ContainerNotFoundError{ID: id}
	}
	cfg, err := Resolve(values, container.Environment())
	if err != nil {
		return nil, err
	}
	c := Chart{
		id:        id,
		host:      host,
		container: container,
		config:    *cfg,
		logger:    zap.NewNop(),
		scale:     NewScale(0, 0),
	}
	for _, o := range opts {
		o(&c)
	}
	c.logger = c.logger.With(zap.String("container", id))

	w, h := container.Size()
	c.layout = ComputeLayout(c.config, w, h)
	container.Replace(scene.NewDocument(w, h))

	switch {
	case c.config.Table != "":
		if err := c.Initialize(); err != nil {
			return nil, err
		}
	case c.config.Data != nil:
		if err := c.SetRawData(c.config.Data); err != nil {
			return nil, err
		}
	}
	c.debounce = newDebouncer(c.config.ResizeDebounce, c.handleResize)
	c.unsubscribe = host.Subscribe(c.debounce.Trigger)
	return &c, nil
}

// Initialize reloads the data from the source configured in the options and
// renders the chart. A missing table is not an error: the chart is drawn
// without data.
func (c *Chart) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.config.Table != "" {
		table, ok := c.host.Table(c.config.Table)
		if !ok {
			c.logger.Warn("table not found", zap.String("table", c.config.Table), zap.Error(DegenerateDataWarning{
				Reason: fmt.Sprintf("table with id %q not found", c.config.Table),
			}))
			c.render(c.config.Animation)
			return nil
		}
		set, err := ProcessTable(table)
		if err != nil {
			return err
		}
		c.replaceData(set)
	} else if c.config.Data != nil {
		set, err := DecodeSeries(c.config.Data)
		if err != nil {
			return err
		}
		c.replaceData(set)
	}
	c.render(c.config.Animation)
	return nil
}

func (c *Chart) SetData(set []Series) error {
	if set == nil {
		return DataShapeError{Reason: "series must be a sequence, got nil"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceData(cloneSeries(set))
	c.render(c.config.Animation)
	return nil
}

// SetRawData accepts the generic structures understood by DecodeSeries.
func (c *Chart) SetRawData(v any) error {
	set, err := DecodeSeries(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceData(set)
	c.render(c.config.Animation)
	return nil
}

func (c *Chart) AddDataPoint(pt DataPoint, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.appendPoint(pt, index); err != nil {
		c.logger.Error("point not added", zap.Error(err))
		return err
	}
	c.updateScale()
	c.render(c.config.Animation)
	return nil
}

// AddDataPoints appends every valid entry of list and redraws once without
// animation. Entries targeting a missing series are skipped and reported.
func (c *Chart) AddDataPoints(list []Append) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for _, a := range list {
		if err := c.appendPoint(a.Data, a.SeriesIndex); err != nil {
			c.logger.Error("point not added", zap.Error(err))
			errs = append(errs, err)
		}
	}
	c.updateScale()
	c.render(false)
	return errors.Join(errs...)
}

func (c *Chart) RenderGraph() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.render(c.config.Animation)
}

func (c *Chart) RedrawGraph(animate bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.render(animate)
}

func (c *Chart) SetType(t ChartType) error {
	kind, err := ParseChartType(string(t))
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Type = kind
	c.render(c.config.Animation)
	return nil
}

// SetOption changes one option and redraws the chart. Changing the data or
// table options reloads the data.
func (c *Chart) SetOption(key string, value any) error {
	c.mu.Lock()
	cfg, err := c.config.With(key, value)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.config = cfg
	if key == "resizeDebounce" && c.debounce != nil {
		c.debounce.SetDelay(cfg.ResizeDebounce)
	}
	switch key {
	case "table", "data":
		c.mu.Unlock()
		return c.Initialize()
	default:
		c.visible = c.visibleCount()
		c.render(c.config.Animation)
		c.mu.Unlock()
		return nil
	}
}

// Click dispatches a click on the element with the given id of the current
// frame to the click callback. It reports whether the element was clickable.
func (c *Chart) Click(id string) bool {
	c.mu.Lock()
	var (
		click, ok = c.frame.Clicks[id]
		fn        = c.config.OnClick
	)
	c.mu.Unlock()
	if !ok || fn == nil {
		return false
	}
	fn(click)
	return true
}

// Close stops listening for resize notifications and cancels a pending
// redraw. The last frame stays in the container.
func (c *Chart) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	if c.debounce != nil {
		c.debounce.Stop()
	}
}

func (c *Chart) Data() []Series {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneSeries(c.data)
}

func (c *Chart) Scale() Scale {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

func (c *Chart) Layout() Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout
}

func (c *Chart) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

func (c *Chart) Type() ChartType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.Type
}

func (c *Chart) Visible() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Document returns the last frame drawn successfully.
func (c *Chart) Document() *scene.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame.Document
}

func (c *Chart) handleResize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.logger.Debug("container resized")
	c.visible = c.visibleCount()
	c.render(c.config.Animation)
}

func (c *Chart) replaceData(set []Series) {
	c.data = set
	c.scale = ScaleOf(set)
	c.min, c.max = c.scale.MinValue, c.scale.MaxValue
	c.visible = c.visibleCount()
}

// appendPoint adds pt at the end of the series. When the series grows past
// the maximum number of points, its oldest point is dropped and the range is
// scanned again only if that point was one of its bounds.
func (c *Chart) appendPoint(pt DataPoint, index int) error {
	if index < 0 || index >= len(c.data) {
		return SeriesIndexError{Index: index, Count: len(c.data)}
	}
	empty := c.countPoints() == 0

	s := &c.data[index]
	s.Data = append(s.Data, pt)
	if empty {
		c.min, c.max = pt.Value, pt.Value
		return nil
	}
	if limit := c.config.MaxDataPoints; limit > 0 && len(s.Data) > limit {
		removed := s.Data[0]
		s.Data = append(s.Data[:0:0], s.Data[1:]...)
		if removed.Value == c.min || removed.Value == c.max {
			rescan := ScaleOf(c.data)
			c.min, c.max = rescan.MinValue, rescan.MaxValue
			return nil
		}
	}
	c.min = math.Min(c.min, pt.Value)
	c.max = math.Max(c.max, pt.Value)
	return nil
}

func (c *Chart) updateScale() {
	c.scale = NewScale(c.min, c.max)
	c.visible = c.visibleCount()
}

func (c *Chart) countPoints() int {
	var n int
	for _, s := range c.data {
		n += len(s.Data)
	}
	return n
}

func (c *Chart) visibleCount() int {
	if len(c.data) == 0 || len(c.data[0].Data) == 0 {
		return 0
	}
	n := len(c.data[0].Data)
	if c.config.MaxDataPoints == 0 {
		return n
	}
	return min(n, c.config.MaxDataPoints)
}

// render draws a complete new frame and swaps it in the container. When the
// pass fails, the error is logged and the previous frame stays in place.
func (c *Chart) render(animate bool) {
	cfg := c.config
	cfg.Animation = animate

	w, h := c.container.Size()
	c.layout = ComputeLayout(cfg, w, h)

	in := Input{
		Prefix:  c.id,
		Config:  cfg,
		Layout:  c.layout,
		Scale:   c.scale,
		Series:  c.data,
		Visible: c.visible,
	}
	frame, err := safeRender(in)
	if err != nil {
		c.logger.Error("render failed", zap.String("type", string(cfg.Type)), zap.Error(err))
		return
	}
	for _, w := range frame.Warnings {
		c.logger.Warn("render incomplete", zap.String("type", string(cfg.Type)), zap.Error(w))
	}
	c.frame = frame
	c.container.Replace(frame.Document)
}

func safeRender(in Input) (frame Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render: %v", r)
		}
	}()
	return Render(in)
}
