package rig

import "sort"

type Keyframe struct {
	Frame float64 `yaml:"frame"`
	Value float64 `yaml:"value"`
}

// Curve is an animation curve of one channel. Points are kept sorted by frame.
type Curve struct {
	Ref    ChannelRef `yaml:"path"`
	Points []Keyframe `yaml:"points"`
}

// Insert adds a keyframe, replacing any existing point at the same frame.
func (c *Curve) Insert(frame, value float64) {
	i := sort.Search(len(c.Points), func(i int) bool { return c.Points[i].Frame >= frame })
	if i < len(c.Points) && c.Points[i].Frame == frame {
		c.Points[i].Value = value
		return
	}
	c.Points = append(c.Points, Keyframe{})
	copy(c.Points[i+1:], c.Points[i:])
	c.Points[i] = Keyframe{Frame: frame, Value: value}
}

// Evaluate returns the linearly interpolated value at frame.
func (c *Curve) Evaluate(frame float64) float64 {
	n := len(c.Points)
	if n == 0 {
		return 0
	}
	if frame <= c.Points[0].Frame {
		return c.Points[0].Value
	}
	if frame >= c.Points[n-1].Frame {
		return c.Points[n-1].Value
	}
	i := sort.Search(n, func(i int) bool { return c.Points[i].Frame >= frame })
	p0, p1 := c.Points[i-1], c.Points[i]
	t := (frame - p0.Frame) / (p1.Frame - p0.Frame)
	return p0.Value + (p1.Value-p0.Value)*t
}

func (c *Curve) Clone() *Curve {
	return &Curve{Ref: c.Ref, Points: append([]Keyframe(nil), c.Points...)}
}

type Action struct {
	Name   string   `yaml:"name"`
	Curves []*Curve `yaml:"curves"`
}

func (a *Action) Find(ref ChannelRef) *Curve {
	for _, c := range a.Curves {
		if c.Ref == ref {
			return c
		}
	}
	return nil
}

// Ensure returns the curve of ref, creating an empty one if needed.
func (a *Action) Ensure(ref ChannelRef) *Curve {
	if c := a.Find(ref); c != nil {
		return c
	}
	c := &Curve{Ref: ref}
	a.Curves = append(a.Curves, c)
	return c
}

// RemoveFunc removes every curve for which f returns true and returns the removed curves.
func (a *Action) RemoveFunc(f func(c *Curve) bool) []*Curve {
	var removed []*Curve
	kept := a.Curves[:0]
	for _, c := range a.Curves {
		if f(c) {
			removed = append(removed, c)
		} else {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(a.Curves); i++ {
		a.Curves[i] = nil
	}
	a.Curves = kept
	return removed
}
