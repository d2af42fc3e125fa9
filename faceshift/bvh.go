// Package faceshift imports FaceShift BVH captures onto face rigs.
package faceshift

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/binzume/lipsync/geom"
	"github.com/binzume/lipsync/rig"
)

type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("faceshift: line %d: %s", e.Line, e.Msg)
	}
	return "faceshift: " + e.Msg
}

// Motion is the per-frame content of a FaceShift capture.
type Motion struct {
	// Bones holds one rotation per frame for each rig bone.
	Bones map[string][]*geom.EulerAngles
	// Props holds one strength per frame for each "Mfa" property.
	Props map[string][]float64
	// Warning is set when the file does not look like a supported FaceShift export.
	Warning string
}

// Parse reads a FaceShift BVH stream. Head joints are mapped to bones of ob when useHead is set.
func Parse(r io.Reader, ob *rig.Object, useHead bool) (*Motion, error) {
	m := &Motion{Bones: map[string][]*geom.EulerAngles{}, Props: map[string][]float64{}}
	props := map[int]string{}
	bones := map[int][]string{}
	readingBlendShapes := false
	readingMotion := false
	isFaceshift13 := false
	firstUnknown := ""
	idx := 0
	const deg = math.Pi / 180

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for s.Scan() {
		line++
		words := strings.Fields(s.Text())
		if len(words) == 0 {
			continue
		}
		if readingMotion {
			value := func(i int) (float64, error) {
				if i >= len(words) {
					return 0, &FormatError{Line: line, Msg: fmt.Sprintf("missing channel %d", i)}
				}
				v, err := strconv.ParseFloat(words[i], 64)
				if err != nil {
					return 0, &FormatError{Line: line, Msg: err.Error()}
				}
				return v, nil
			}
			for i, bnames := range bones {
				var angles [3]float64
				for n := range angles {
					v, err := value(i + 3 + n)
					if err != nil {
						return nil, err
					}
					angles[n] = v * deg
				}
				for _, bone := range bnames {
					m.Bones[bone] = append(m.Bones[bone], geom.NewEuler(angles[0], angles[1], angles[2], geom.RotationOrderHostZXY))
				}
			}
			for i, prop := range props {
				v, err := value(i + 5)
				if err != nil {
					return nil, err
				}
				m.Props[prop] = append(m.Props[prop], v/90)
			}
			continue
		}

		switch words[0] {
		case "JOINT":
			if len(words) < 2 {
				return nil, &FormatError{Line: line, Msg: "JOINT without name"}
			}
			joint := words[1]
			idx += 6
			if readingBlendShapes {
				shape, ok := FaceShiftShapes[joint]
				if !ok {
					if firstUnknown == "" {
						firstUnknown = joint
					}
					if joint == "LipsTogether" {
						isFaceshift13 = true
					}
					continue
				}
				prop := ShapePrefix + shape
				props[idx] = prop
				m.Props[prop] = nil
			} else if joint == "Blendshapes" {
				readingBlendShapes = true
			} else if useHead {
				for _, bname := range FaceShiftBones[joint] {
					if ob != nil && ob.Bone(bname) != nil {
						bones[idx] = append(bones[idx], bname)
						m.Bones[bname] = nil
					}
				}
			}
		case "MOTION":
			if !readingBlendShapes {
				return nil, &FormatError{Line: line, Msg: "This is not a FaceShift BVH file"}
			}
			readingBlendShapes = false
		case "Frame":
			readingMotion = true
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if isFaceshift13 {
		m.Warning = "This seems to be a Faceshift 1.3 file. Only Faceshift 1.2 and lower are supported."
	} else if firstUnknown != "" {
		m.Warning = "This does not seem to be a Faceshift BVH file. First unknown shape: " + firstUnknown
	}
	return m, nil
}

func Load(path string, ob *rig.Object, useHead bool) (*Motion, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Parse(r, ob, useHead)
}
