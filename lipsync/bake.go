package lipsync

import (
	"strings"

	"github.com/binzume/lipsync/rig"
)

// BakeFaceAnim moves the face shape driver curves of a DriverMode rig onto the shape key
// curves of its face meshes, then removes the driver properties and clears DriverMode.
// Rigs in other modes are left alone.
func (e *Engine) BakeFaceAnim(ob *rig.Object) error {
	if err := e.enter(Baking); err != nil {
		return err
	}
	defer e.leave()

	if _, ok := SelectMode(ob).(DriverMode); !ok {
		e.logf("bake: %v does not use face shape drivers", objectName(ob))
		return nil
	}
	if ob.Action == nil {
		return nil
	}

	keypoints := map[string][]rig.Keyframe{}
	var order []string
	removed := ob.Action.RemoveFunc(func(c *rig.Curve) bool {
		return c.Ref.Kind == rig.ChannelProperty && strings.HasPrefix(c.Ref.Name, DriverPrefix)
	})
	for _, c := range removed {
		key := c.Ref.Name[len(DriverPrefix):]
		if _, ok := keypoints[key]; !ok {
			order = append(order, key)
		}
		keypoints[key] = append([]rig.Keyframe(nil), c.Points...)
	}
	for _, name := range ob.PropNames() {
		if strings.HasPrefix(name, DriverPrefix) {
			ob.DeleteProp(name)
		}
	}
	ob.FaceShapeDrivers = false

	for _, mesh := range ob.Meshes() {
		if mesh.ShapeKeys == nil {
			continue
		}
		mesh.RemoveDrivers()
		for _, key := range order {
			k := mesh.ShapeKey(key)
			if k == nil {
				continue
			}
			for _, p := range keypoints[key] {
				if _, err := mesh.SetKeyframe(rig.ShapeKeyValue(k.Name), p.Frame, p.Value); err != nil {
					return err
				}
			}
		}
	}
	e.logf("%s: %d face curves baked", ob.Name, len(order))
	return nil
}

func objectName(ob *rig.Object) string {
	if ob == nil {
		return "<nil>"
	}
	return ob.Name
}
