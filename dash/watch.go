package dash

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/midbel/ggraphs/page"
	"go.uber.org/zap"
)

const settleMargin = 50 * time.Millisecond

// Watch follows the files of the dashboard until ctx is done. A change of a
// source reloads the charts reading it. A change of the page resizes the
// charts whose container changed size. save is called once the charts have
// been redrawn.
func (b *Board) Watch(ctx context.Context, save func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	var (
		sources  = b.cfg.Sources()
		pagefile string
		dirs     []string
	)
	if b.cfg.Page != "" {
		pagefile = filepath.Clean(b.cfg.Resolve(b.cfg.Page))
	}
	for i := range sources {
		sources[i] = filepath.Clean(sources[i])
	}
	for _, f := range append(slices.Clone(sources), pagefile) {
		if f == "" {
			continue
		}
		if d := filepath.Dir(f); !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}
	b.logger.Info("watching dashboard files", zap.Strings("dirs", dirs))

	var (
		settle  = time.NewTimer(time.Hour)
		pending bool
	)
	settle.Stop()
	defer settle.Stop()

	schedule := func(delay time.Duration) {
		settle.Reset(delay)
		pending = true
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			b.logger.Error("watcher error", zap.Error(err))
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Clean(e.Name)
			switch {
			case name == pagefile:
				changed, err := b.refreshPage(name)
				if err != nil {
					b.logger.Error("page not reloaded", zap.String("file", name), zap.Error(err))
					continue
				}
				if changed {
					schedule(b.resizeDelay() + settleMargin)
				}
			case slices.Contains(sources, name):
				if err := b.Reload(ctx, name); err != nil {
					b.logger.Error("source not reloaded", zap.String("file", name), zap.Error(err))
					continue
				}
				schedule(settleMargin)
			}
		case <-settle.C:
			if !pending {
				continue
			}
			pending = false
			if err := save(); err != nil {
				b.logger.Error("dashboard not saved", zap.Error(err))
			}
		}
	}
}

// refreshPage reads the sizes of the containers in the new version of the
// page and resizes the charts whose container changed.
func (b *Board) refreshPage(file string) (bool, error) {
	doc, err := page.Load(file)
	if err != nil {
		return false, err
	}
	var (
		prev    = b.page.Sizes()
		next    = doc.Sizes()
		changed bool
	)
	for _, cell := range b.cfg.Cells {
		size, ok := next[cell.ID]
		if !ok || size == prev[cell.ID] {
			continue
		}
		b.logger.Debug("container resized", zap.String("chart", cell.ID), zap.Float64("width", size[0]), zap.Float64("height", size[1]))
		if err := b.Resize(cell.ID, size[0], size[1]); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}

func (b *Board) resizeDelay() time.Duration {
	if b.debounce > 0 {
		return b.debounce
	}
	var delay time.Duration
	for _, ch := range b.list() {
		delay = max(delay, ch.Config().ResizeDebounce)
	}
	return delay
}
