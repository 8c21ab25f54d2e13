// Package scene holds the display independent drawing primitives produced by
// the chart renderers, the animation timeline attached to them and the
// drivers turning both into SVG markup.
package scene

import (
	"math"
	"strconv"
	"strings"
)

type Pos struct {
	X float64
	Y float64
}

func NewPos(x, y float64) Pos {
	return Pos{
		X: x,
		Y: y,
	}
}

func (p Pos) Distance(other Pos) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

type Dim struct {
	W float64
	H float64
}

func NewDim(w, h float64) Dim {
	return Dim{
		W: w,
		H: h,
	}
}

type Stroke struct {
	Color      string
	Width      float64
	Opacity    float64
	DashArray  []float64
	DashOffset float64
	LineCap    string
}

func NewStroke(color string, width float64) Stroke {
	return Stroke{
		Color: color,
		Width: width,
	}
}

func (s *Stroke) Dash(values ...float64) {
	s.DashArray = append(s.DashArray[:0], values...)
}

type Fill struct {
	Color   string
	Opacity float64
}

func NewFill(color string) Fill {
	return Fill{
		Color: color,
	}
}

type Font struct {
	Size   float64
	Family string
	Weight string
}

func NewFont(size float64) Font {
	return Font{
		Size: size,
	}
}

// Transform is rendered as translate(TX, TY) followed by rotate(RA, RX, RY).
type Transform struct {
	TX float64
	TY float64
	RA float64
	RX float64
	RY float64
}

func Translate(x, y float64) Transform {
	return Transform{
		TX: x,
		TY: y,
	}
}

func Rotate(angle, x, y float64) Transform {
	return Transform{
		RA: angle,
		RX: x,
		RY: y,
	}
}

func (t Transform) String() string {
	var parts []string
	if t.TX != 0 || t.TY != 0 {
		parts = append(parts, "translate("+Format(t.TX)+","+Format(t.TY)+")")
	}
	if t.RA != 0 {
		parts = append(parts, "rotate("+Format(t.RA)+", "+Format(t.RX)+", "+Format(t.RY)+")")
	}
	return strings.Join(parts, " ")
}

// Attributes are shared by every primitive. Values set through Set override
// the typed fields when the element is encoded.
type Attributes struct {
	ID       string
	Class    []string
	Title    string
	Fill     Fill
	Stroke   Stroke
	Cursor   string
	ClipPath string
	Data     map[string]string

	overrides map[string]string
	order     []string
}

func (a *Attributes) Attr() *Attributes {
	return a
}

// Set overrides the value of the given attribute. The translate pseudo
// attribute takes two values and replaces the transform of the element.
func (a *Attributes) Set(attr string, values ...float64) {
	if len(values) == 0 {
		return
	}
	key, val := attr, Format(values[0])
	if attr == AttrTranslate {
		key = "transform"
		y := 0.0
		if len(values) > 1 {
			y = values[1]
		}
		val = "translate(" + Format(values[0]) + "," + Format(y) + ")"
	}
	a.SetString(key, val)
}

func (a *Attributes) SetString(key, value string) {
	if a.overrides == nil {
		a.overrides = make(map[string]string)
	}
	if _, ok := a.overrides[key]; !ok {
		a.order = append(a.order, key)
	}
	a.overrides[key] = value
}

func (a *Attributes) Get(key string) (string, bool) {
	v, ok := a.overrides[key]
	return v, ok
}

func (a *Attributes) SetData(key, value string) {
	if a.Data == nil {
		a.Data = make(map[string]string)
	}
	a.Data[key] = value
}

func (a Attributes) clone() Attributes {
	x := a
	x.overrides = make(map[string]string, len(a.overrides))
	for k, v := range a.overrides {
		x.overrides[k] = v
	}
	x.order = append([]string(nil), a.order...)
	return x
}

type Element interface {
	Attr() *Attributes
	encode(*encoder) *node
}

type Parent interface {
	Element
	Elements() []Element
}

type Group struct {
	Attributes
	Transform Transform
	Children  []Element
}

func NewGroup(class ...string) *Group {
	var g Group
	g.Class = append(g.Class, class...)
	return &g
}

func (g *Group) Append(els ...Element) {
	for _, e := range els {
		if e == nil {
			continue
		}
		g.Children = append(g.Children, e)
	}
}

func (g *Group) Elements() []Element {
	return g.Children
}

func (g *Group) Len() int {
	return len(g.Children)
}

type ClipPath struct {
	Attributes
	Children []Element
}

func NewClipPath(id string, els ...Element) *ClipPath {
	var c ClipPath
	c.ID = id
	c.Children = append(c.Children, els...)
	return &c
}

func (c *ClipPath) Elements() []Element {
	return c.Children
}

type Line struct {
	Attributes
	Starts Pos
	Ends   Pos
}

func NewLine(starts, ends Pos) *Line {
	return &Line{
		Starts: starts,
		Ends:   ends,
	}
}

func (i *Line) Length() float64 {
	return i.Starts.Distance(i.Ends)
}

type Rect struct {
	Attributes
	Pos
	Dim
	Transform Transform
}

func NewRect(pos Pos, dim Dim) *Rect {
	return &Rect{
		Pos: pos,
		Dim: dim,
	}
}

type Circle struct {
	Attributes
	Pos
	Radius float64
}

func NewCircle(pos Pos, radius float64) *Circle {
	return &Circle{
		Pos:    pos,
		Radius: radius,
	}
}

type Text struct {
	Attributes
	Pos
	Content          string
	Font             Font
	Anchor           string
	Baseline         string
	DominantBaseline string
	Transform        Transform
}

func NewText(str string) *Text {
	return &Text{
		Content: str,
	}
}

// Format renders a coordinate with at most two decimals.
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatList(values []float64, sep string) string {
	parts := make([]string, len(values))
	for i := range values {
		parts[i] = Format(values[i])
	}
	return strings.Join(parts, sep)
}
