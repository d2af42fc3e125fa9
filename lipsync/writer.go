package lipsync

import (
	"fmt"

	"github.com/binzume/lipsync/rig"
)

// SetViseme zeroes every mouth shape of ob and then applies the weights of the named viseme.
// If useKey is set, every mouth shape channel is keyed at frame.
// An unknown viseme fails before anything is written.
func (e *Engine) SetViseme(ob *rig.Object, name string, useKey bool, frame int) error {
	weights, err := e.Registry.Resolve(name)
	if err != nil {
		return err
	}
	mouth := e.Registry.MouthShapes()

	switch m := SelectMode(ob).(type) {
	case DriverMode:
		for _, key := range mouth {
			m.Rig.SetProp(DriverPrefix+key, 0)
		}
		for _, w := range weights {
			m.Rig.SetProp(DriverPrefix+w.Key, w.Weight)
		}
		if useKey {
			for _, key := range mouth {
				if err := e.insertKey(m.Rig, rig.Property(DriverPrefix+key), frame); err != nil {
					return err
				}
			}
		}
	case PanelMode:
		for _, key := range mouth {
			e.setPanelKey(m.Rig, key, 0)
		}
		for _, w := range weights {
			e.setPanelKey(m.Rig, w.Key, w.Weight)
		}
		if useKey {
			for _, key := range mouth {
				t, ok := e.boneFactor(m.Rig, key)
				if !ok {
					continue
				}
				if err := e.insertKey(m.Rig, t.ref(), frame); err != nil {
					return err
				}
			}
		}
	case DirectMode:
		for _, mesh := range m.Meshes {
			if mesh.ShapeKeys == nil {
				continue
			}
			for _, key := range mouth {
				if k := mesh.ShapeKey(key); k != nil {
					k.Value = 0
				}
			}
			for _, w := range weights {
				if k := mesh.ShapeKey(w.Key); k != nil {
					k.Value = w.Weight
				}
			}
			if useKey {
				for _, key := range mouth {
					if mesh.ShapeKey(key) == nil {
						continue
					}
					if err := e.insertKey(mesh, rig.ShapeKeyValue(key), frame); err != nil {
						return err
					}
				}
			}
		}
	default:
		panic(fmt.Sprintf("lipsync: unhandled mode %T", m))
	}
	return nil
}

// insertKey keys one channel. Unsupported channels are logged and skipped.
func (e *Engine) insertKey(ob *rig.Object, ref rig.ChannelRef, frame int) error {
	res, err := ob.InsertKeyframe(ref, float64(frame))
	if err != nil {
		return err
	}
	if res == rig.KeyUnsupported {
		e.logf("%s: cannot key %v, skipped", ob.Name, ref)
	}
	return nil
}

// MouthValues reads the current mouth shape weights of ob in its active representation.
// Shapes that are not channels of the representation are omitted.
func (e *Engine) MouthValues(ob *rig.Object) map[string]float64 {
	values := map[string]float64{}
	switch m := SelectMode(ob).(type) {
	case DriverMode:
		for _, key := range e.Registry.MouthShapes() {
			if v, ok := m.Rig.Prop(DriverPrefix + key); ok {
				values[key] = v
			}
		}
	case PanelMode:
		for _, key := range e.Registry.MouthShapes() {
			if v, ok := e.panelValue(m.Rig, key); ok {
				values[key] = v
			}
		}
	case DirectMode:
		for _, mesh := range m.Meshes {
			for _, key := range e.Registry.MouthShapes() {
				if _, done := values[key]; done {
					continue
				}
				if k := mesh.ShapeKey(key); k != nil {
					values[key] = k.Value
				}
			}
		}
	default:
		panic(fmt.Sprintf("lipsync: unhandled mode %T", m))
	}
	return values
}
