package lipsync

import (
	"fmt"
	"strings"

	"github.com/binzume/lipsync/rig"
	"github.com/binzume/lipsync/viseme"
)

func isMouthDriver(ref rig.ChannelRef) bool {
	return ref.Kind == rig.ChannelProperty &&
		strings.HasPrefix(ref.Name, DriverPrefix) &&
		viseme.IsMouthShape(ref.Name[len(DriverPrefix):])
}

func isMouthShapeKey(ref rig.ChannelRef) bool {
	return ref.Kind == rig.ChannelShapeKey && viseme.IsMouthShape(ref.Name)
}

// DeleteLipsync removes the mouth shape curves of ob's active representation and zeroes
// the mouth shape channels. Other curves are left untouched.
func (e *Engine) DeleteLipsync(ob *rig.Object) error {
	if err := e.enter(Deleting); err != nil {
		return err
	}
	defer e.leave()

	switch m := SelectMode(ob).(type) {
	case DriverMode:
		if m.Rig.Action != nil {
			removed := m.Rig.Action.RemoveFunc(func(c *rig.Curve) bool { return isMouthDriver(c.Ref) })
			e.logf("%s: %d lipsync curves removed", m.Rig.Name, len(removed))
		}
		for _, key := range e.Registry.MouthShapes() {
			m.Rig.SetProp(DriverPrefix+key, 0)
		}
	case PanelMode:
		targets := map[rig.ChannelRef]bool{}
		for _, key := range e.Registry.MouthShapes() {
			if t, ok := e.boneFactor(m.Rig, key); ok {
				targets[t.ref()] = true
			}
		}
		if m.Rig.Action != nil {
			removed := m.Rig.Action.RemoveFunc(func(c *rig.Curve) bool { return targets[c.Ref] })
			e.logf("%s: %d lipsync curves removed", m.Rig.Name, len(removed))
		}
		for ref := range targets {
			if err := m.Rig.SetValue(ref, 0); err != nil {
				return err
			}
		}
	case DirectMode:
		for _, mesh := range m.Meshes {
			e.deleteLipsyncMesh(mesh)
		}
	default:
		panic(fmt.Sprintf("lipsync: unhandled mode %T", m))
	}
	return nil
}

func (e *Engine) deleteLipsyncMesh(mesh *rig.Object) {
	if mesh.ShapeKeys == nil {
		return
	}
	if act := mesh.ShapeKeys.Action; act != nil {
		removed := act.RemoveFunc(func(c *rig.Curve) bool { return isMouthShapeKey(c.Ref) })
		e.logf("%s: %d lipsync curves removed", mesh.Name, len(removed))
	}
	for _, key := range e.Registry.MouthShapes() {
		if k := mesh.ShapeKey(key); k != nil {
			k.Value = 0
		}
	}
}
