package lipsync

import (
	"errors"
	"reflect"
	"testing"

	"github.com/binzume/lipsync/rig"
	"github.com/binzume/lipsync/viseme"
)

func expectedMouth(e *Engine, name string, present func(key string) bool) map[string]float64 {
	values := map[string]float64{}
	for _, key := range e.Registry.MouthShapes() {
		if present(key) {
			values[key] = 0
		}
	}
	weights, _ := e.Registry.Resolve(name)
	for _, w := range weights {
		if _, ok := values[w.Key]; ok {
			values[w.Key] = w.Weight
		}
	}
	return values
}

func TestSetVisemeDriver(t *testing.T) {
	e := newTestEngine(t)
	ob := newDriverRig()

	for _, name := range []string{"AH", "EE", "Rest", "AH"} {
		if err := e.SetViseme(ob, name, false, 1); err != nil {
			t.Fatal(err)
		}
		expected := expectedMouth(e, name, func(string) bool { return true })
		if got := e.MouthValues(ob); !reflect.DeepEqual(got, expected) {
			t.Error(name, got, expected)
		}
	}

	before := map[string]float64{}
	for k, v := range ob.Props {
		before[k] = v
	}
	e.SetViseme(ob, "AH", false, 1)
	if !reflect.DeepEqual(before, ob.Props) {
		t.Error("SetViseme must be idempotent", before, ob.Props)
	}

	ob.UpdateDrivers()
	if v := ob.Children[0].ShapeKey("mouth_open").Value; v != 0.75 {
		t.Error("driven shape key", v)
	}
}

func TestSetVisemeModes(t *testing.T) {
	e := newTestEngine(t)
	for _, c := range []struct {
		name    string
		ob      *rig.Object
		present func(key string) bool
	}{
		{"driver", newDriverRig(), func(string) bool { return true }},
		{"panel", newPanelRig(), func(string) bool { return true }},
		{"direct", newDirectRig(), func(key string) bool { return key != "mouth_up_left" && key != "mouth_up_right" && key != "tongue_up" }},
		{"mesh", newFaceMesh("face"), func(string) bool { return true }},
	} {
		for _, vis := range []string{"AH", "EE", "Smile"} {
			if err := e.SetViseme(c.ob, vis, false, 1); err != nil {
				t.Fatal(c.name, err)
			}
			first := e.MouthValues(c.ob)
			if expected := expectedMouth(e, vis, c.present); !reflect.DeepEqual(first, expected) {
				t.Error(c.name, vis, first, expected)
			}
			e.SetViseme(c.ob, vis, false, 1)
			if second := e.MouthValues(c.ob); !reflect.DeepEqual(first, second) {
				t.Error(c.name, vis, "not idempotent", first, second)
			}
		}
	}
}

func TestSetVisemePanelFactor(t *testing.T) {
	e := newTestEngine(t)
	ob := newPanelRig()
	ob.Scale = 2

	e.SetViseme(ob, "EE", false, 1)
	if l, r := ob.Bone("p_corner.L").Location[0], ob.Bone("p_corner.R").Location[0]; l != 0.25 || r != -0.25 {
		t.Error("LOC_X must flip sign on the right side", l, r)
	}
	if v := ob.Bone("p_lips").Location[2]; v != 0.125 {
		t.Error("lips", v)
	}

	e.SetViseme(ob, "Smile", false, 1)
	if l, r := ob.Bone("p_corner_up.L").Location[2], ob.Bone("p_corner_up.R").Location[2]; l != 0.25 || r != 0.25 {
		t.Error("LOC_Z must not flip sign", l, r)
	}
	if l := ob.Bone("p_corner.L").Location[0]; l != 0 {
		t.Error("previous viseme not cleared", l)
	}

	e.SetViseme(ob, "BrowsUp", false, 1)
	if v := ob.Bone("p_tongue").Location[2]; v != -0.25 {
		t.Error("negative factor", v)
	}

	noBones := rig.NewArmature("rig")
	noBones.FacePanel = true
	if err := e.SetViseme(noBones, "AH", true, 1); err != nil {
		t.Error("missing panel bones must be skipped", err)
	}
}

func TestSetVisemeKeyframes(t *testing.T) {
	e := newTestEngine(t)

	ob := newDriverRig()
	e.SetViseme(ob, "AH", true, 7)
	for _, key := range e.Registry.MouthShapes() {
		c := ob.Action.Find(rig.Property(DriverPrefix + key))
		if c == nil || len(c.Points) != 1 || c.Points[0].Frame != 7 {
			t.Error("driver key", key, c)
		}
	}
	if c := ob.Action.Find(rig.Property(DriverPrefix + "brow_mid_up_left")); c != nil {
		t.Error("non mouth shapes must not be keyed", c)
	}

	panel := newPanelRig()
	e.SetViseme(panel, "AH", true, 3)
	if c := panel.Action.Find(rig.BoneLocation("p_mouth", 2)); c == nil || c.Points[0] != (rig.Keyframe{Frame: 3, Value: 0.375}) {
		t.Error("panel key", c)
	}
	if c := panel.Action.Find(rig.BoneLocation("p_corner.R", 0)); c == nil || c.Points[0].Value != 0 {
		t.Error("zero channels must be keyed", c)
	}

	direct := newDirectRig()
	e.SetViseme(direct, "AH", true, 2)
	face := direct.Children[0]
	if c := face.ShapeKeys.Action.Find(rig.ShapeKeyValue("mouth_open")); c == nil || c.Points[0] != (rig.Keyframe{Frame: 2, Value: 0.75}) {
		t.Error("shape key", c)
	}
	if face.ShapeKeys.Action.Find(rig.ShapeKeyValue("tongue_up")) != nil {
		t.Error("missing shape keys must be skipped")
	}
	if body := direct.Children[1]; body.ShapeKeys.Action != nil || body.ShapeKey("mouth_open").Value != 0 {
		t.Error("meshes without face shapes must be untouched")
	}
}

func TestSetVisemeUnknown(t *testing.T) {
	e := newTestEngine(t)
	ob := newDriverRig()
	e.SetViseme(ob, "AH", false, 1)

	var ve *viseme.UnknownVisemeError
	if err := e.SetViseme(ob, "Zorp", true, 1); !errors.As(err, &ve) {
		t.Error("expected UnknownVisemeError", err)
	}
	if v, _ := ob.Prop(DriverPrefix + "mouth_open"); v != 0.75 || ob.Action != nil {
		t.Error("rig must be unchanged", v, ob.Action)
	}
}
