package dash

import (
	"fmt"
	"sync"

	"github.com/midbel/ggraphs"
	"github.com/midbel/ggraphs/scene"
)

// Surface hosts the charts of a dashboard without page. Each container keeps
// the last document drawn into it.
type Surface struct {
	mu     sync.Mutex
	frames map[string]*frame
	subs   map[int]func()
	next   int
}

func NewSurface() *Surface {
	return &Surface{
		frames: make(map[string]*frame),
		subs:   make(map[int]func()),
	}
}

func (s *Surface) Add(id string, width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[id] = &frame{
		width:  width,
		height: height,
	}
}

func (s *Surface) Container(id string) (charts.Container, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.frames[id]
	if !ok {
		return nil, false
	}
	return f, true
}

func (s *Surface) Table(string) (charts.Table, bool) {
	return charts.Table{}, false
}

func (s *Surface) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Surface) Resize(id string, width, height float64) error {
	s.mu.Lock()
	f, ok := s.frames[id]
	list := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		list = append(list, fn)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: container not found", id)
	}
	f.resize(width, height)
	for _, fn := range list {
		fn()
	}
	return nil
}

func (s *Surface) Document(id string) *scene.Document {
	s.mu.Lock()
	f, ok := s.frames[id]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return f.document()
}

type frame struct {
	mu     sync.Mutex
	width  float64
	height float64
	doc    *scene.Document
}

func (f *frame) Size() (float64, float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height
}

func (f *frame) Environment() charts.Environment {
	return charts.Environment{}
}

func (f *frame) Replace(doc *scene.Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc = doc
}

func (f *frame) resize(width, height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width, f.height = width, height
}

func (f *frame) document() *scene.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc
}
