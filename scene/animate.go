package scene

import (
	"time"
)

// AttrTranslate is the pseudo attribute used to animate a translation.
const AttrTranslate = "translate"

// Animation describes a bounded linear transition of one attribute of the
// element identified by Target.
type Animation struct {
	Target   string
	Attr     string
	From     []float64
	To       []float64
	Begin    time.Duration
	Duration time.Duration
}

func Animate(target, attr string, from, to float64, dur time.Duration) Animation {
	return Animation{
		Target:   target,
		Attr:     attr,
		From:     []float64{from},
		To:       []float64{to},
		Duration: dur,
	}
}

func (a Animation) Delay(begin time.Duration) Animation {
	a.Begin = begin
	return a
}

func (a Animation) End() time.Duration {
	return a.Begin + a.Duration
}

// At returns the interpolated values at the elapsed time t.
func (a Animation) At(t time.Duration) []float64 {
	progress := 1.0
	switch {
	case t <= a.Begin:
		progress = 0
	case a.Duration > 0 && t < a.End():
		progress = float64(t-a.Begin) / float64(a.Duration)
	}
	values := make([]float64, len(a.To))
	for i := range a.To {
		var from float64
		if i < len(a.From) {
			from = a.From[i]
		}
		values[i] = from + (a.To[i]-from)*progress
	}
	return values
}

type Timeline []Animation

func (t Timeline) End() time.Duration {
	var end time.Duration
	for _, a := range t {
		if e := a.End(); e > end {
			end = e
		}
	}
	return end
}

func (t Timeline) For(target string) []Animation {
	var list []Animation
	for _, a := range t {
		if a.Target == target {
			list = append(list, a)
		}
	}
	return list
}

// ByTarget groups the animations by target, keeping their order.
func (t Timeline) ByTarget() map[string][]Animation {
	set := make(map[string][]Animation)
	for _, a := range t {
		set[a.Target] = append(set[a.Target], a)
	}
	return set
}

// Apply evaluates every animation of the timeline at the elapsed time at and
// writes the resulting values onto the elements of doc. It is the driver for
// hosts that tick frames themselves instead of relying on SMIL.
func (t Timeline) Apply(doc *Document, at time.Duration) {
	for _, a := range t {
		el := doc.Find(a.Target)
		if el == nil {
			continue
		}
		el.Attr().Set(a.Attr, a.At(at)...)
	}
}

// Frames samples the timeline every step until its end, calling fn with the
// elapsed time after the document has been updated.
func (t Timeline) Frames(doc *Document, step time.Duration, fn func(time.Duration)) {
	if step <= 0 {
		return
	}
	end := t.End()
	for at := time.Duration(0); ; at += step {
		if at > end {
			at = end
		}
		t.Apply(doc, at)
		fn(at)
		if at >= end {
			break
		}
	}
}
