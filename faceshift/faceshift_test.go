package faceshift

import (
	"errors"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/binzume/lipsync/geom"
	"github.com/binzume/lipsync/rig"
)

const testBVH = `HIERARCHY
ROOT Head
{
	OFFSET 0 0 0
	CHANNELS 6 Xposition Yposition Zposition Zrotation Xrotation Yrotation
	JOINT Neck
	{
		OFFSET 0 0 0
		CHANNELS 6 Xposition Yposition Zposition Zrotation Xrotation Yrotation
	}
	JOINT Blendshapes
	{
		OFFSET 0 0 0
		CHANNELS 6 Xposition Yposition Zposition Zrotation Xrotation Yrotation
		JOINT JawOpen
		{
			OFFSET 0 0 0
			CHANNELS 6 Xposition Yposition Zposition Zrotation Xrotation Yrotation
		}
		JOINT EyeBlink_L
		{
			OFFSET 0 0 0
			CHANNELS 6 Xposition Yposition Zposition Zrotation Xrotation Yrotation
		}
	}
}
MOTION
Frames: 2
Frame Time: 0.033333
0 0 0 0 0 0  0 0 0 90 0 0  0 0 0 0 0 0  0 0 0 0 0 45  0 0 0 0 0 90
0 0 0 0 0 0  0 0 0 0 0 0  0 0 0 0 0 0  0 0 0 0 0 90  0 0 0 0 0 0
`

func newFaceRig() *rig.Object {
	ob := rig.NewArmature("rig")
	ob.AddBone("neck")
	ob.SetProp(ShapePrefix+"JawDrop", 0)
	return ob
}

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(testBVH), newFaceRig(), true)
	if err != nil {
		t.Fatal(err)
	}
	if m.Warning != "" {
		t.Error("warning", m.Warning)
	}

	jaw := m.Props[ShapePrefix+"JawDrop"]
	if len(jaw) != 2 || jaw[0] != 0.5 || jaw[1] != 1 {
		t.Error("JawDrop", jaw)
	}
	blink := m.Props[ShapePrefix+"LeftUpperLidClosed"]
	if len(blink) != 2 || blink[0] != 1 || blink[1] != 0 {
		t.Error("LeftUpperLidClosed", blink)
	}

	neck := m.Bones["neck"]
	if len(neck) != 2 || math.Abs(neck[0].X-math.Pi/2) > 1e-9 || neck[0].Order != geom.RotationOrderHostZXY {
		t.Error("neck", neck)
	}
	if _, ok := m.Bones["neck02"]; ok {
		t.Error("bones missing from the rig must be ignored")
	}

	m, _ = Parse(strings.NewReader(testBVH), newFaceRig(), false)
	if len(m.Bones) != 0 {
		t.Error("head motion must be ignored", m.Bones)
	}
}

func TestParseWarnings(t *testing.T) {
	unknown := strings.Replace(testBVH, "JOINT EyeBlink_L", "JOINT Grin", 1)
	m, err := Parse(strings.NewReader(unknown), nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(m.Warning, "Grin") {
		t.Error("warning", m.Warning)
	}

	v13 := strings.Replace(testBVH, "JOINT EyeBlink_L", "JOINT LipsTogether", 1)
	m, _ = Parse(strings.NewReader(v13), nil, false)
	if !strings.Contains(m.Warning, "1.3") {
		t.Error("warning", m.Warning)
	}
}

func TestParseErrors(t *testing.T) {
	var fe *FormatError
	noShapes := "HIERARCHY\nROOT Head\nJOINT Neck\nMOTION\n"
	if _, err := Parse(strings.NewReader(noShapes), nil, false); !errors.As(err, &fe) || fe.Line != 4 {
		t.Error("expected FormatError", err)
	}
	short := strings.Replace(testBVH, "0 0 0 0 0 0  0 0 0 0 0 0  0 0 0 0 0 0  0 0 0 0 0 90  0 0 0 0 0 0", "0 0 0", 1)
	if _, err := Parse(strings.NewReader(short), nil, false); !errors.As(err, &fe) {
		t.Error("expected FormatError", err)
	}
}

func TestAssignMotion(t *testing.T) {
	ob := newFaceRig()
	ob.SetProp("unrelated", 1)
	ob.Action = &rig.Action{Curves: []*rig.Curve{{Ref: rig.Property("unrelated")}}}

	m, err := Parse(strings.NewReader(testBVH), ob, true)
	if err != nil {
		t.Fatal(err)
	}
	var logs strings.Builder
	if err := AssignMotion(ob, m, log.New(&logs, "", 0)); err != nil {
		t.Fatal(err)
	}

	if ob.Action.Find(rig.Property("unrelated")) != nil {
		t.Error("the previous action must be replaced")
	}
	jaw := ob.Action.Find(rig.Property(ShapePrefix + "JawDrop"))
	if jaw == nil || len(jaw.Points) != 2 || jaw.Points[0] != (rig.Keyframe{Frame: 1, Value: 0.5}) || jaw.Points[1] != (rig.Keyframe{Frame: 2, Value: 1}) {
		t.Error("JawDrop", jaw)
	}
	if !strings.Contains(logs.String(), "Missing pose: "+ShapePrefix+"LeftUpperLidClosed") {
		t.Error("missing pose must be logged", logs.String())
	}
	if ob.Action.Find(rig.Property(ShapePrefix+"LeftUpperLidClosed")) != nil {
		t.Error("missing property must not get a curve")
	}

	w := ob.Action.Find(rig.BoneRotation("neck", 0))
	x := ob.Action.Find(rig.BoneRotation("neck", 1))
	if w == nil || x == nil || len(w.Points) != 2 {
		t.Fatal("neck curves", w, x)
	}
	if math.Abs(w.Points[0].Value-math.Sqrt(0.5)) > 1e-9 || math.Abs(x.Points[0].Value-math.Sqrt(0.5)) > 1e-9 {
		t.Error("neck rotation", w.Points[0], x.Points[0])
	}
	if w.Points[1].Value != 1 || x.Points[1].Value != 0 {
		t.Error("neck rest rotation", w.Points[1], x.Points[1])
	}
}
