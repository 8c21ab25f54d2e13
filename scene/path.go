package scene

import (
	"math"
	"strings"
)

const curveSamples = 16

type command struct {
	op    byte
	pts   []Pos
	rx    float64
	ry    float64
	rot   float64
	large bool
	sweep bool
}

type Path struct {
	Attributes
	Rendering string

	cmds []command
}

func NewPath() *Path {
	return &Path{}
}

func (p *Path) AbsMoveTo(pos Pos) {
	p.cmds = append(p.cmds, command{op: 'M', pts: []Pos{pos}})
}

func (p *Path) AbsLineTo(pos Pos) {
	p.cmds = append(p.cmds, command{op: 'L', pts: []Pos{pos}})
}

func (p *Path) AbsCubicCurve(pos, ctrl1, ctrl2 Pos) {
	p.cmds = append(p.cmds, command{op: 'C', pts: []Pos{ctrl1, ctrl2, pos}})
}

func (p *Path) AbsArcTo(pos Pos, rx, ry, rot float64, large, sweep bool) {
	c := command{
		op:    'A',
		pts:   []Pos{pos},
		rx:    rx,
		ry:    ry,
		rot:   rot,
		large: large,
		sweep: sweep,
	}
	p.cmds = append(p.cmds, c)
}

func (p *Path) ClosePath() {
	p.cmds = append(p.cmds, command{op: 'Z'})
}

func (p *Path) Len() int {
	return len(p.cmds)
}

func (p *Path) Empty() bool {
	return len(p.cmds) == 0
}

// Extend appends the commands of other to p.
func (p *Path) Extend(other *Path) {
	p.cmds = append(p.cmds, other.cmds...)
}

func (p *Path) String() string {
	var str strings.Builder
	for i, c := range p.cmds {
		if i > 0 {
			str.WriteByte(' ')
		}
		str.WriteByte(c.op)
		switch c.op {
		case 'M', 'L':
			writePos(&str, c.pts[0])
		case 'C':
			for j, pt := range c.pts {
				if j > 0 {
					str.WriteByte(' ')
				}
				writePos(&str, pt)
			}
		case 'A':
			str.WriteString(Format(c.rx))
			str.WriteByte(' ')
			str.WriteString(Format(c.ry))
			str.WriteByte(' ')
			str.WriteString(Format(c.rot))
			str.WriteByte(' ')
			str.WriteString(flag(c.large))
			str.WriteByte(' ')
			str.WriteString(flag(c.sweep))
			str.WriteByte(' ')
			writePos(&str, c.pts[0])
		}
	}
	return str.String()
}

// Length approximates the total length of the path the way a browser
// getTotalLength would: exact for lines and circular arcs, sampled for
// cubic curves.
func (p *Path) Length() float64 {
	var (
		total float64
		curr  Pos
		start Pos
	)
	for _, c := range p.cmds {
		switch c.op {
		case 'M':
			curr = c.pts[0]
			start = curr
		case 'L':
			total += curr.Distance(c.pts[0])
			curr = c.pts[0]
		case 'C':
			total += cubicLength(curr, c.pts[0], c.pts[1], c.pts[2])
			curr = c.pts[2]
		case 'A':
			total += arcLength(curr, c.pts[0], (c.rx+c.ry)/2, c.large)
			curr = c.pts[0]
		case 'Z':
			total += curr.Distance(start)
			curr = start
		}
	}
	return total
}

func cubicLength(p0, p1, p2, p3 Pos) float64 {
	var (
		total float64
		prev  = p0
	)
	for i := 1; i <= curveSamples; i++ {
		t := float64(i) / curveSamples
		pt := cubicAt(p0, p1, p2, p3, t)
		total += prev.Distance(pt)
		prev = pt
	}
	return total
}

func cubicAt(p0, p1, p2, p3 Pos, t float64) Pos {
	var (
		u  = 1 - t
		a  = u * u * u
		b  = 3 * u * u * t
		c  = 3 * u * t * t
		d  = t * t * t
		pt Pos
	)
	pt.X = a*p0.X + b*p1.X + c*p2.X + d*p3.X
	pt.Y = a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y
	return pt
}

func arcLength(from, to Pos, radius float64, large bool) float64 {
	if radius <= 0 {
		return from.Distance(to)
	}
	half := from.Distance(to) / (2 * radius)
	if half > 1 {
		half = 1
	}
	theta := 2 * math.Asin(half)
	if large {
		theta = 2*math.Pi - theta
	}
	return radius * theta
}

func writePos(str *strings.Builder, pos Pos) {
	str.WriteString(Format(pos.X))
	str.WriteByte(',')
	str.WriteString(Format(pos.Y))
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
