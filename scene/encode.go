package scene

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const svgNamespace = "http://www.w3.org/2000/svg"

type node = html.Node

type Document struct {
	Width    float64
	Height   float64
	Label    string
	Defs     []Element
	Elements []Element
	Timeline Timeline
}

func NewDocument(width, height float64) *Document {
	return &Document{
		Width:  width,
		Height: height,
		Label:  "SVG Data Graph",
	}
}

func (d *Document) Append(els ...Element) {
	for _, e := range els {
		if e == nil {
			continue
		}
		d.Elements = append(d.Elements, e)
	}
}

func (d *Document) Define(els ...Element) {
	d.Defs = append(d.Defs, els...)
}

func (d *Document) Animate(as ...Animation) {
	d.Timeline = append(d.Timeline, as...)
}

// Walk visits every element of the document depth first, definitions
// included. Returning false from fn stops the walk.
func (d *Document) Walk(fn func(Element) bool) {
	var visit func([]Element) bool
	visit = func(els []Element) bool {
		for _, e := range els {
			if !fn(e) {
				return false
			}
			if p, ok := e.(Parent); ok {
				if !visit(p.Elements()) {
					return false
				}
			}
		}
		return true
	}
	if visit(d.Defs) {
		visit(d.Elements)
	}
}

func (d *Document) Find(id string) Element {
	if id == "" {
		return nil
	}
	var found Element
	d.Walk(func(e Element) bool {
		if e.Attr().ID == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// Node builds the svg element tree. Animations of the timeline are emitted
// as SMIL children of their target with fill=freeze, the animated attributes
// starting from their initial value.
func (d *Document) Node() *html.Node {
	enc := encoder{
		targets: d.Timeline.ByTarget(),
	}
	root := createNode("svg",
		attr("xmlns", svgNamespace),
		attr("width", "100%"),
		attr("height", "100%"),
		attr("viewBox", fmt.Sprintf("0 0 %s %s", Format(d.Width), Format(d.Height))),
		attr("role", "img"),
		attr("aria-label", d.Label),
	)
	if len(d.Defs) > 0 {
		defs := createNode("defs")
		for _, e := range d.Defs {
			defs.AppendChild(e.encode(&enc))
		}
		root.AppendChild(defs)
	}
	for _, e := range d.Elements {
		root.AppendChild(e.encode(&enc))
	}
	return root
}

func (d *Document) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := html.Render(bw, d.Node()); err != nil {
		return err
	}
	return bw.Flush()
}

func (d *Document) String() string {
	var str strings.Builder
	d.Render(&str)
	return str.String()
}

type encoder struct {
	targets map[string][]Animation
}

func (e *encoder) finish(n *html.Node, a *Attributes) *html.Node {
	if a.ID != "" {
		setAttr(n, "id", a.ID)
	}
	if len(a.Class) > 0 {
		setAttr(n, "class", strings.Join(a.Class, " "))
	}
	if a.Fill.Color != "" {
		setAttr(n, "fill", a.Fill.Color)
	}
	if a.Fill.Opacity > 0 {
		setAttr(n, "fill-opacity", Format(a.Fill.Opacity))
	}
	if s := a.Stroke; s.Color != "" {
		setAttr(n, "stroke", s.Color)
		if s.Width > 0 {
			setAttr(n, "stroke-width", Format(s.Width))
		}
		if s.Opacity > 0 {
			setAttr(n, "stroke-opacity", Format(s.Opacity))
		}
		if len(s.DashArray) > 0 {
			setAttr(n, "stroke-dasharray", formatList(s.DashArray, ","))
			if s.DashOffset != 0 {
				setAttr(n, "stroke-dashoffset", Format(s.DashOffset))
			}
		}
		if s.LineCap != "" {
			setAttr(n, "stroke-linecap", s.LineCap)
		}
	}
	if a.Cursor != "" {
		setAttr(n, "cursor", a.Cursor)
	}
	if a.ClipPath != "" {
		setAttr(n, "clip-path", "url(#"+a.ClipPath+")")
	}
	for _, k := range slices.Sorted(maps.Keys(a.Data)) {
		setAttr(n, "data-"+k, a.Data[k])
	}
	for _, k := range a.order {
		setAttr(n, k, a.overrides[k])
	}
	if a.Title != "" {
		t := createNode("title")
		t.AppendChild(&html.Node{
			Type: html.TextNode,
			Data: a.Title,
		})
		n.InsertBefore(t, n.FirstChild)
	}
	if a.ID == "" {
		return n
	}
	for _, anim := range e.targets[a.ID] {
		start := a.clone()
		start.order = nil
		start.overrides = nil
		start.Set(anim.Attr, anim.From...)
		for k, v := range start.overrides {
			setAttr(n, k, v)
		}
		n.AppendChild(smil(anim))
	}
	return n
}

func smil(a Animation) *html.Node {
	var n *html.Node
	if a.Attr == AttrTranslate {
		n = createNode("animateTransform",
			attr("attributeName", "transform"),
			attr("type", "translate"),
			attr("from", formatList(a.From, ",")),
			attr("to", formatList(a.To, ",")),
		)
	} else {
		n = createNode("animate",
			attr("attributeName", a.Attr),
			attr("from", formatList(a.From, " ")),
			attr("to", formatList(a.To, " ")),
		)
	}
	setAttr(n, "dur", formatDuration(a.Duration))
	if a.Begin > 0 {
		setAttr(n, "begin", formatDuration(a.Begin))
	}
	setAttr(n, "fill", "freeze")
	return n
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func (g *Group) encode(e *encoder) *node {
	n := createNode("g")
	if tf := g.Transform.String(); tf != "" {
		setAttr(n, "transform", tf)
	}
	for _, c := range g.Children {
		n.AppendChild(c.encode(e))
	}
	return e.finish(n, &g.Attributes)
}

func (c *ClipPath) encode(e *encoder) *node {
	n := createNode("clipPath")
	for _, el := range c.Children {
		n.AppendChild(el.encode(e))
	}
	return e.finish(n, &c.Attributes)
}

func (i *Line) encode(e *encoder) *node {
	n := createNode("line",
		attr("x1", Format(i.Starts.X)),
		attr("y1", Format(i.Starts.Y)),
		attr("x2", Format(i.Ends.X)),
		attr("y2", Format(i.Ends.Y)),
	)
	return e.finish(n, &i.Attributes)
}

func (r *Rect) encode(e *encoder) *node {
	n := createNode("rect",
		attr("x", Format(r.X)),
		attr("y", Format(r.Y)),
		attr("width", Format(r.W)),
		attr("height", Format(r.H)),
	)
	if tf := r.Transform.String(); tf != "" {
		setAttr(n, "transform", tf)
	}
	return e.finish(n, &r.Attributes)
}

func (c *Circle) encode(e *encoder) *node {
	n := createNode("circle",
		attr("cx", Format(c.X)),
		attr("cy", Format(c.Y)),
		attr("r", Format(c.Radius)),
	)
	return e.finish(n, &c.Attributes)
}

func (p *Path) encode(e *encoder) *node {
	n := createNode("path", attr("d", p.String()))
	if p.Rendering != "" {
		setAttr(n, "shape-rendering", p.Rendering)
	}
	if p.Fill.Color == "" {
		setAttr(n, "fill", "none")
	}
	return e.finish(n, &p.Attributes)
}

func (t *Text) encode(e *encoder) *node {
	n := createNode("text",
		attr("x", Format(t.X)),
		attr("y", Format(t.Y)),
	)
	if t.Anchor != "" {
		setAttr(n, "text-anchor", t.Anchor)
	}
	if t.Baseline != "" {
		setAttr(n, "alignment-baseline", t.Baseline)
	}
	if t.DominantBaseline != "" {
		setAttr(n, "dominant-baseline", t.DominantBaseline)
	}
	if t.Font.Size > 0 {
		setAttr(n, "font-size", Format(t.Font.Size))
	}
	if t.Font.Family != "" {
		setAttr(n, "font-family", t.Font.Family)
	}
	if t.Font.Weight != "" {
		setAttr(n, "font-weight", t.Font.Weight)
	}
	if tf := t.Transform.String(); tf != "" {
		setAttr(n, "transform", tf)
	}
	n.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: t.Content,
	})
	return e.finish(n, &t.Attributes)
}

func createNode(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:      html.ElementNode,
		DataAtom:  atom.Lookup([]byte(tag)),
		Data:      tag,
		Namespace: "svg",
		Attr:      attrs,
	}
}

func attr(key, value string) html.Attribute {
	return html.Attribute{
		Key: key,
		Val: value,
	}
}

func setAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, attr(key, value))
}
