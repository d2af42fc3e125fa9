package lipsync

import (
	"fmt"
	"sort"

	"github.com/binzume/lipsync/mmd"
	"github.com/binzume/lipsync/rig"
)

// shapeChannel is where a face shape weight is stored under the active mode.
type shapeChannel struct {
	Owner *rig.Object
	Ref   rig.ChannelRef
	Scale float64
}

func (e *Engine) shapeChannels(ob *rig.Object, key string) []shapeChannel {
	var channels []shapeChannel
	switch m := SelectMode(ob).(type) {
	case DriverMode:
		channels = append(channels, shapeChannel{Owner: m.Rig, Ref: rig.Property(DriverPrefix + key), Scale: 1})
	case PanelMode:
		if t, ok := e.boneFactor(m.Rig, key); ok {
			channels = append(channels, shapeChannel{Owner: m.Rig, Ref: t.ref(), Scale: m.Rig.GetScale() / t.Factor})
		}
	case DirectMode:
		for _, mesh := range m.Meshes {
			if mesh.ShapeKey(key) != nil {
				channels = append(channels, shapeChannel{Owner: mesh, Ref: rig.ShapeKeyValue(key), Scale: 1})
			}
		}
	default:
		panic(fmt.Sprintf("lipsync: unhandled mode %T", m))
	}
	return channels
}

// ImportMorphs keys the morph channels of a VMD animation onto ob's face shapes.
// names maps morph names to shape key names; unmapped morphs use their own name.
// VMD frame 0 is keyed at startFrame. Returns the number of imported morphs.
func (e *Engine) ImportMorphs(ob *rig.Object, anim *mmd.Animation, names map[string]string, startFrame int) (int, error) {
	if err := e.enter(Loading); err != nil {
		return 0, err
	}
	defer e.leave()
	if ob == nil {
		return 0, nil
	}

	morphs := anim.GetMorphChannels()
	targets := make([]string, 0, len(morphs))
	for name := range morphs {
		targets = append(targets, name)
	}
	sort.Strings(targets)

	imported := 0
	for _, target := range targets {
		key := target
		if mapped, ok := names[target]; ok {
			key = mapped
		}
		channels := e.shapeChannels(ob, key)
		if len(channels) == 0 {
			e.logf("%s: morph %q has no face shape %q, skipped", ob.Name, target, key)
			continue
		}
		m := morphs[target]
		for _, ch := range channels {
			for n, f := range m.Frames {
				v := float64(m.Weights[n]) * ch.Scale
				if _, err := ch.Owner.SetKeyframe(ch.Ref, float64(int(f)+startFrame), v); err != nil {
					return imported, err
				}
			}
		}
		imported++
	}
	return imported, nil
}
