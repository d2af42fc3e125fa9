package viseme

import (
	"errors"
	"strings"
	"testing"
)

func TestIsMouthShape(t *testing.T) {
	for name, expected := range map[string]bool{
		"mouth_open":       true,
		"lips_part":        true,
		"tongue_up":        true,
		"brow_mid_up_left": false,
		"mou":              false,
		"":                 false,
	} {
		if IsMouthShape(name) != expected {
			t.Error("IsMouthShape", name)
		}
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(&Tables{
		FaceShapes: []string{"tongue_up", "brow_mid_up_left", "mouth_open", "lips_part"},
		Visemes: map[string][]ShapeWeight{
			"AH": {{"mouth_open", 0.7}, {"lips_part", 1}},
		},
		Moho: map[string]string{"AI": "AH"},
	})

	mouth := reg.MouthShapes()
	if strings.Join(mouth, ",") != "lips_part,mouth_open,tongue_up" {
		t.Error("mouth shapes", mouth)
	}
	if !reg.IsMouthShape("mouth_open") || reg.IsMouthShape("brow_mid_up_left") {
		t.Error("IsMouthShape")
	}

	w, err := reg.Resolve("AH")
	if err != nil || len(w) != 2 || w[0] != (ShapeWeight{"mouth_open", 0.7}) {
		t.Error("Resolve", w, err)
	}
	w[0].Weight = 0
	if w2, _ := reg.Resolve("AH"); w2[0].Weight != 0.7 {
		t.Error("Resolve must return a copy")
	}

	var ve *UnknownVisemeError
	if _, err := reg.Resolve("Zorp"); !errors.As(err, &ve) || ve.Name != "Zorp" {
		t.Error("expected UnknownVisemeError", err)
	}

	if name, err := reg.ResolveMoho("AI"); err != nil || name != "AH" {
		t.Error("ResolveMoho", name, err)
	}
	var se *UnknownSymbolError
	if _, err := reg.ResolveMoho("Zorp"); !errors.As(err, &se) || se.Symbol != "Zorp" {
		t.Error("expected UnknownSymbolError", err)
	}
}

func TestLoad(t *testing.T) {
	faceShapes := `{"targets": {"mouth_open": [], "lips_part": [], "eye_closed_left": []}}`
	visemes := `{
		"layout": [["Rest", "AH"]],
		"visemes": {"Rest": [], "AH": [["mouth_open", 0.5]]},
		"moho": {"rest": "Rest", "AI": "AH"}
	}`
	drivers := "mouth_open: {bone: p_mouth_mid, channel: LOC_Z, coord: [0, -2.5], min: 0, max: 1}\n"

	reg, err := Load(strings.NewReader(faceShapes), strings.NewReader(visemes), strings.NewReader(drivers))
	if err != nil {
		t.Fatal(err)
	}
	if len(reg.MouthShapes()) != 2 || len(reg.FaceShapes()) != 3 {
		t.Error("shapes", reg.MouthShapes(), reg.FaceShapes())
	}
	if l := reg.Layout(); len(l) != 1 || l[0][1] != "AH" {
		t.Error("layout", l)
	}
	d, ok := reg.BoneDriver("mouth_open")
	if !ok || d.Bone != "p_mouth_mid" || d.Channel != ChannelLocZ || d.Factor() != -2.5 {
		t.Error("bone driver", d)
	}

	if _, err := Load(strings.NewReader(faceShapes), strings.NewReader(`{"visemes": {}, "moho": {"AI": "AH"}}`), strings.NewReader(drivers)); err == nil {
		t.Error("moho symbol mapped to an undefined viseme must fail")
	}
	if _, err := Load(strings.NewReader(faceShapes), strings.NewReader(visemes), strings.NewReader("x: {bone: b, channel: ROT_X, coord: [0, 1]}")); err == nil {
		t.Error("unsupported channel must fail")
	}
	if _, err := Load(strings.NewReader(faceShapes), strings.NewReader(`{"visemes": {"AH": [["mouth_open"]]}}`), strings.NewReader(drivers)); err == nil {
		t.Error("malformed shape weight must fail")
	}
}

func TestDefault(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	reg2, _ := Default()
	if reg != reg2 {
		t.Error("Default must be loaded once")
	}

	for _, name := range reg.VisemeNames() {
		weights, _ := reg.Resolve(name)
		for _, w := range weights {
			if !reg.IsMouthShape(w.Key) {
				t.Error("viseme", name, "uses a non mouth shape", w.Key)
			}
		}
	}
	for _, row := range reg.Layout() {
		for _, name := range row {
			if _, err := reg.Resolve(name); err != nil {
				t.Error("layout", err)
			}
		}
	}
	for _, key := range reg.MouthShapes() {
		basis := key
		if i := strings.LastIndex(key, "_"); i >= 0 && (key[i+1:] == "left" || key[i+1:] == "right") {
			basis = key[:i]
		}
		if _, ok := reg.BoneDriver(basis); !ok {
			t.Error("no bone driver for", key)
		}
	}
}
