package charts

import (
	"time"

	"github.com/midbel/ggraphs/scene"
)

const leaderDuration = 500 * time.Millisecond

func (c *canvas) animated() bool {
	return c.Config.Animation && c.Config.Duration > 0
}

// animateAttr registers a transition of attr on el. The element keeps its
// final geometry: drivers start it from the from value.
func (c *canvas) animateAttr(el scene.Element, kind, attr string, from, to float64, dur, begin time.Duration) {
	if !c.animated() {
		return
	}
	id := c.identify(el, kind)
	c.doc.Animate(scene.Animate(id, attr, from, to, dur).Delay(begin))
}

// animateStroke draws the outline of pat progressively by moving the dash
// offset from the length of the path to zero.
func (c *canvas) animateStroke(pat *scene.Path, kind string) {
	if !c.animated() {
		return
	}
	length := pat.Length()
	if length <= 0 {
		return
	}
	pat.Stroke.Dash(length)
	c.animateAttr(pat, kind, "stroke-dashoffset", length, 0, c.Config.Duration, 0)
}

// fadeIn makes a label appear while sliding it horizontally back to its
// position from the given shift.
func (c *canvas) fadeIn(txt *scene.Text, shift float64, begin time.Duration) {
	if !c.animated() {
		return
	}
	id := c.identify(txt, "label")
	c.animateAttr(txt, "label", "opacity", 0, 1, leaderDuration, begin)

	slide := scene.Animation{
		Target:   id,
		Attr:     scene.AttrTranslate,
		From:     []float64{shift, 0},
		To:       []float64{0, 0},
		Begin:    begin,
		Duration: leaderDuration,
	}
	c.doc.Animate(slide)
}

// defineRevealClip adds to the document a clip rectangle whose width grows
// from zero to the plot width and returns its id.
func (c *canvas) defineRevealClip() string {
	rect := scene.NewRect(scene.NewPos(c.Margin.Left, c.Margin.Top), scene.NewDim(c.DrawingWidth(), c.DrawingHeight()))
	c.identify(rect, "reveal")
	clip := scene.NewClipPath("")
	id := c.identify(clip, "clip")
	clip.Children = append(clip.Children, rect)
	c.doc.Define(clip)
	c.animateAttr(rect, "reveal", "width", 0, c.DrawingWidth(), c.Config.Duration, 0)
	return id
}
