// Package page hosts charts in an html document. Containers are the elements
// of the page and charts draw by replacing their svg child.
package page

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/midbel/ggraphs"
	"github.com/midbel/ggraphs/ingest"
	"github.com/midbel/ggraphs/scene"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	DefaultWidth  = 600.0
	DefaultHeight = 400.0
)

var ErrElement = errors.New("element not found")

type Document struct {
	mu   sync.Mutex
	root *html.Node

	subs map[int]func()
	next int
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{
		root: root,
		subs: make(map[int]func()),
	}, nil
}

func Load(file string) (*Document, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Parse(r)
}

func (d *Document) Container(id string) (charts.Container, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := ingest.FindByID(d.root, id)
	if n == nil {
		return nil, false
	}
	return &container{
		doc:  d,
		node: n,
	}, true
}

func (d *Document) Table(id string) (charts.Table, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ingest.FindTable(d.root, id)
}

func (d *Document) Subscribe(fn func()) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.next
	d.next++
	d.subs[id] = fn
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.subs, id)
	}
}

// Resize changes the size of the element with the given id and notifies
// every subscriber.
func (d *Document) Resize(id string, width, height float64) error {
	d.mu.Lock()
	n := ingest.FindByID(d.root, id)
	if n == nil {
		d.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrElement, id)
	}
	setAttr(n, "data-width", strconv.FormatFloat(width, 'f', -1, 64))
	setAttr(n, "data-height", strconv.FormatFloat(height, 'f', -1, 64))
	d.mu.Unlock()

	d.Notify()
	return nil
}

// Notify calls the subscribers outside of the lock of the document.
func (d *Document) Notify() {
	d.mu.Lock()
	list := make([]func(), 0, len(d.subs))
	for _, fn := range d.subs {
		list = append(list, fn)
	}
	d.mu.Unlock()
	for _, fn := range list {
		fn()
	}
}

// Sizes reports the size of every element with an id that is a possible
// chart container.
func (d *Document) Sizes() map[string][2]float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	sizes := make(map[string][2]float64)
	walk(d.root, func(n *html.Node) {
		id := ingest.Attr(n, "id")
		if id == "" || n.DataAtom == atom.Table {
			return
		}
		w, h := sizeOf(n)
		sizes[id] = [2]float64{w, h}
	})
	return sizes
}

func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cw := countWriter{w: w}
	bw := bufio.NewWriter(&cw)
	if err := html.Render(bw, d.root); err != nil {
		return cw.n, err
	}
	err := bw.Flush()
	return cw.n, err
}

func (d *Document) String() string {
	var str strings.Builder
	d.WriteTo(&str)
	return str.String()
}

type container struct {
	doc  *Document
	node *html.Node
}

func (c *container) Size() (float64, float64) {
	c.doc.mu.Lock()
	defer c.doc.mu.Unlock()
	return sizeOf(c.node)
}

// Environment collects the inherited inline styles of the element, the
// nearest declaration winning.
func (c *container) Environment() charts.Environment {
	c.doc.mu.Lock()
	defer c.doc.mu.Unlock()

	var env charts.Environment
	for n := c.node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		style := parseStyle(ingest.Attr(n, "style"))
		if env.FontSize == 0 {
			env.FontSize, _ = pixels(style["font-size"])
		}
		if env.FontFamily == "" {
			env.FontFamily = style["font-family"]
		}
		if env.Color == "" {
			env.Color = style["color"]
		}
		if env.Background == "" {
			if bg := style["background-color"]; bg != "" {
				env.Background = bg
			} else {
				env.Background = style["background"]
			}
		}
	}
	return env
}

// Replace removes the previous drawing of the element and appends the new
// one.
func (c *container) Replace(doc *scene.Document) {
	c.doc.mu.Lock()
	defer c.doc.mu.Unlock()
	for n := c.node.FirstChild; n != nil; {
		next := n.NextSibling
		if n.Type == html.ElementNode && n.Data == "svg" {
			c.node.RemoveChild(n)
		}
		n = next
	}
	if doc != nil {
		c.node.AppendChild(doc.Node())
	}
}

func sizeOf(n *html.Node) (float64, float64) {
	style := parseStyle(ingest.Attr(n, "style"))
	dim := func(key string, def float64) float64 {
		for _, str := range []string{ingest.Attr(n, "data-"+key), ingest.Attr(n, key), style[key]} {
			if v, ok := pixels(str); ok && v > 0 {
				return v
			}
		}
		return def
	}
	return dim("width", DefaultWidth), dim("height", DefaultHeight)
}

func parseStyle(str string) map[string]string {
	style := make(map[string]string)
	for _, decl := range strings.Split(str, ";") {
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		style[key] = strings.TrimSpace(value)
	}
	return style
}

func pixels(str string) (float64, bool) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "px")
	if str == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	return v, err == nil
}

func setAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
