package lipsync

import (
	"strings"

	"github.com/binzume/lipsync/rig"
	"github.com/binzume/lipsync/viseme"
)

// boneTarget is the panel bone coordinate driven by a face shape.
type boneTarget struct {
	Bone   string
	Axis   int
	Factor float64
}

func (t boneTarget) ref() rig.ChannelRef {
	return rig.BoneLocation(t.Bone, t.Axis)
}

// boneFactor resolves a face shape to its panel bone. Shapes with a _left/_right suffix
// target the .L/.R bone; the factor is negated for LOC_X on the right side only.
func (e *Engine) boneFactor(ob *rig.Object, key string) (boneTarget, bool) {
	basis, suffix := key, ""
	if i := strings.LastIndex(key, "_"); i >= 0 {
		if s := key[i+1:]; s == "left" || s == "right" {
			basis, suffix = key[:i], s
		}
	}
	d, ok := e.Registry.BoneDriver(basis)
	if !ok {
		return boneTarget{}, false
	}

	t := boneTarget{Bone: d.Bone, Factor: d.Factor()}
	switch suffix {
	case "left":
		t.Bone += ".L"
	case "right":
		t.Bone += ".R"
	}
	switch d.Channel {
	case viseme.ChannelLocX:
		t.Axis = 0
		if suffix == "right" {
			t.Factor = -t.Factor
		}
	case viseme.ChannelLocZ:
		t.Axis = 2
	default:
		return boneTarget{}, false
	}
	if t.Factor == 0 || ob.Bone(t.Bone) == nil {
		return boneTarget{}, false
	}
	return t, true
}

func (e *Engine) setPanelKey(ob *rig.Object, key string, value float64) bool {
	t, ok := e.boneFactor(ob, key)
	if !ok {
		return false
	}
	ob.Bone(t.Bone).Location[t.Axis] = ob.GetScale() * value / t.Factor
	return true
}

// panelValue inverts setPanelKey.
func (e *Engine) panelValue(ob *rig.Object, key string) (float64, bool) {
	t, ok := e.boneFactor(ob, key)
	if !ok {
		return 0, false
	}
	return ob.Bone(t.Bone).Location[t.Axis] * t.Factor / ob.GetScale(), true
}
