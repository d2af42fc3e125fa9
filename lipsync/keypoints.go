package lipsync

import "github.com/binzume/lipsync/rig"

// AddKeyPoints replaces the points of c with values keyed at frames 1..len(values).
func AddKeyPoints(c *rig.Curve, values []float64) {
	c.Points = make([]rig.Keyframe, len(values))
	for n, v := range values {
		c.Points[n] = rig.Keyframe{Frame: float64(n + 1), Value: v}
	}
}
