package lipsync

import (
	"testing"

	"github.com/binzume/lipsync/mmd"
	"github.com/binzume/lipsync/rig"
)

func TestImportMorphs(t *testing.T) {
	e := newTestEngine(t)
	anim := &mmd.Animation{Morph: []*mmd.AnimationMorphSample{
		{Target: "あ", Frame: 10, Value: 1},
		{Target: "あ", Frame: 0, Value: 0},
		{Target: "lips_part", Frame: 4, Value: 0.5},
		{Target: "まばたき", Frame: 0, Value: 1},
	}}
	names := map[string]string{"あ": "mouth_open"}

	ob := newDirectRig()
	n, err := e.ImportMorphs(ob, anim, names, 1)
	if err != nil || n != 2 {
		t.Fatal(n, err)
	}
	act := ob.Children[0].ShapeKeys.Action
	c := act.Find(rig.ShapeKeyValue("mouth_open"))
	if len(curvePoints(c)) != 2 || c.Points[0] != (rig.Keyframe{Frame: 1, Value: 0}) || c.Points[1] != (rig.Keyframe{Frame: 11, Value: 1}) {
		t.Error("mouth_open", curvePoints(c))
	}
	if c := act.Find(rig.ShapeKeyValue("lips_part")); c == nil || c.Points[0] != (rig.Keyframe{Frame: 5, Value: 0.5}) {
		t.Error("lips_part", c)
	}

	panel := newPanelRig()
	if n, err := e.ImportMorphs(panel, anim, names, 0); err != nil || n != 2 {
		t.Fatal(n, err)
	}
	if c := panel.Action.Find(rig.BoneLocation("p_mouth", 2)); c == nil || c.Points[1] != (rig.Keyframe{Frame: 10, Value: 0.5}) {
		t.Error("panel", c)
	}

	driver := newDriverRig()
	if n, err := e.ImportMorphs(driver, anim, names, 0); err != nil || n != 3 {
		t.Fatal(n, err)
	}
	if c := driver.Action.Find(rig.Property(DriverPrefix + "まばたき")); c == nil {
		t.Error("driver mode keys every morph")
	}
}
