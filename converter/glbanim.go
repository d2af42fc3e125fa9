package converter

import (
	"log"
	"sort"

	"github.com/binzume/lipsync/rig"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

type AnimationOption struct {
	FPS        float64
	StartFrame float64
}

var DefaultAnimationOption = AnimationOption{FPS: 30, StartFrame: 1}

type morphTarget struct {
	node  uint32
	names []string
}

func targetNames(extras interface{}) []string {
	m, ok := extras.(map[string]interface{})
	if !ok {
		return nil
	}
	switch names := m["targetNames"].(type) {
	case []string:
		return names
	case []interface{}:
		var result []string
		for _, n := range names {
			s, _ := n.(string)
			result = append(result, s)
		}
		return result
	}
	return nil
}

func morphTargets(doc *gltf.Document) []*morphTarget {
	var targets []*morphTarget
	for i, n := range doc.Nodes {
		if n.Mesh == nil || int(*n.Mesh) >= len(doc.Meshes) {
			continue
		}
		mesh := doc.Meshes[*n.Mesh]
		if len(mesh.Primitives) == 0 {
			continue
		}
		names := targetNames(mesh.Extras)
		if names == nil {
			names = targetNames(n.Extras)
		}
		if len(names) > 0 {
			targets = append(targets, &morphTarget{node: uint32(i), names: names})
		}
	}
	return targets
}

func findTarget(doc *gltf.Document, targets []*morphTarget, mesh *rig.Object) *morphTarget {
	for _, t := range targets {
		n := doc.Nodes[t.node]
		if n.Name == mesh.Name || doc.Meshes[*n.Mesh].Name == mesh.Name {
			return t
		}
	}
	for _, t := range targets {
		for _, name := range t.names {
			if mesh.ShapeKey(name) != nil {
				return t
			}
		}
	}
	return nil
}

func shapeKeyCurves(mesh *rig.Object) map[string]*rig.Curve {
	curves := map[string]*rig.Curve{}
	if mesh.ShapeKeys == nil || mesh.ShapeKeys.Action == nil {
		return curves
	}
	for _, c := range mesh.ShapeKeys.Action.Curves {
		if c.Ref.Kind == rig.ChannelShapeKey && len(c.Points) > 0 {
			curves[c.Ref.Name] = c
		}
	}
	return curves
}

func curveFrames(curves map[string]*rig.Curve, start float64) []float64 {
	set := map[float64]bool{}
	for _, c := range curves {
		for _, p := range c.Points {
			if p.Frame >= start {
				set[p.Frame] = true
			}
		}
	}
	frames := make([]float64, 0, len(set))
	for f := range set {
		frames = append(frames, f)
	}
	sort.Float64s(frames)
	return frames
}

// sampleWeights returns len(frames)*len(names) weights, frame major.
func sampleWeights(mesh *rig.Object, names []string, curves map[string]*rig.Curve, frames []float64) []float32 {
	weights := make([]float32, len(frames)*len(names))
	for ti, tname := range names {
		c := curves[tname]
		var rest float64
		if sk := mesh.ShapeKey(tname); sk != nil {
			rest = sk.Value
		}
		for fi, f := range frames {
			v := rest
			if c != nil {
				v = c.Evaluate(f)
			}
			weights[fi*len(names)+ti] = float32(v)
		}
	}
	return weights
}

// AddShapeKeyAnimation adds an animation named name that drives the morph weights of doc
// from the shape-key curves of meshes. Returns the number of channels written.
func AddShapeKeyAnimation(doc *gltf.Document, name string, meshes []*rig.Object, opt *AnimationOption) int {
	if opt == nil {
		opt = &DefaultAnimationOption
	}
	fps := opt.FPS
	if fps <= 0 {
		fps = DefaultAnimationOption.FPS
	}
	targets := morphTargets(doc)
	a := gltf.Animation{Name: name}

	for _, mesh := range meshes {
		curves := shapeKeyCurves(mesh)
		if len(curves) == 0 {
			continue
		}
		t := findTarget(doc, targets, mesh)
		if t == nil {
			log.Println("No morph targets for mesh:", mesh.Name)
			continue
		}
		frames := curveFrames(curves, opt.StartFrame)
		if len(frames) == 0 {
			continue
		}

		keys := make([]float32, len(frames))
		for i, f := range frames {
			keys[i] = float32((f - opt.StartFrame) / fps)
		}
		weights := sampleWeights(mesh, t.names, curves, frames)

		keysAcc := modeler.WriteAccessor(doc, gltf.TargetArrayBuffer, keys)
		weightsAcc := modeler.WriteAccessor(doc, gltf.TargetArrayBuffer, weights)

		a.Samplers = append(a.Samplers, &gltf.AnimationSampler{
			Input:         gltf.Index(uint32(keysAcc)),
			Output:        gltf.Index(uint32(weightsAcc)),
			Interpolation: gltf.InterpolationLinear,
		})
		a.Channels = append(a.Channels, &gltf.Channel{
			Sampler: gltf.Index(uint32(len(a.Samplers) - 1)),
			Target: gltf.ChannelTarget{
				Node: gltf.Index(t.node),
				Path: gltf.TRSWeights,
			},
		})
	}

	if len(a.Channels) > 0 {
		doc.Animations = append(doc.Animations, &a)
	}
	return len(a.Channels)
}
