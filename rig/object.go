package rig

import (
	"errors"
	"fmt"
	"sort"
)

type ObjectType string

const (
	TypeArmature ObjectType = "armature"
	TypeMesh     ObjectType = "mesh"
)

// KeyResult is the outcome of a keyframe insertion that did not fail hard.
type KeyResult int

const (
	KeyInserted KeyResult = iota
	KeyUnsupported
)

var ErrNoChannel = errors.New("channel not found")

type PoseBone struct {
	Location [3]float64
	// W, X, Y, Z
	Rotation [4]float64
}

type yamlPoseBone struct {
	Location []float64 `yaml:"location,flow"`
	Rotation []float64 `yaml:"rotation,flow"`
}

func (b *PoseBone) MarshalYAML() (interface{}, error) {
	return &yamlPoseBone{Location: b.Location[:], Rotation: b.Rotation[:]}, nil
}

func (b *PoseBone) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v yamlPoseBone
	if err := unmarshal(&v); err != nil {
		return err
	}
	b.Rotation = [4]float64{1, 0, 0, 0}
	copy(b.Location[:], v.Location)
	copy(b.Rotation[:], v.Rotation)
	return nil
}

type ShapeKey struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
	// Driver is the rig property driving Value. Empty if not driven.
	Driver string `yaml:"driver,omitempty"`
}

type ShapeKeys struct {
	Blocks []*ShapeKey `yaml:"blocks"`
	Action *Action     `yaml:"action,omitempty"`
}

func (s *ShapeKeys) Get(name string) *ShapeKey {
	for _, k := range s.Blocks {
		if k.Name == name {
			return k
		}
	}
	return nil
}

// Object is an armature or a mesh of the host scene.
type Object struct {
	Name string     `yaml:"name"`
	Type ObjectType `yaml:"type"`

	FaceShapeDrivers bool    `yaml:"faceShapeDrivers,omitempty"`
	FacePanel        bool    `yaml:"facePanel,omitempty"`
	HasFaceShapes    bool    `yaml:"hasFaceShapes,omitempty"`
	Scale            float64 `yaml:"scale,omitempty"`

	Props     map[string]float64   `yaml:"props,omitempty"`
	Bones     map[string]*PoseBone `yaml:"bones,omitempty"`
	ShapeKeys *ShapeKeys           `yaml:"shapeKeys,omitempty"`
	Action    *Action              `yaml:"action,omitempty"`
	Children  []*Object            `yaml:"children,omitempty"`
}

func NewArmature(name string) *Object {
	return &Object{Name: name, Type: TypeArmature, Scale: 1, Props: map[string]float64{}, Bones: map[string]*PoseBone{}}
}

func NewMesh(name string, shapeKeys ...string) *Object {
	ob := &Object{Name: name, Type: TypeMesh, HasFaceShapes: true}
	if len(shapeKeys) > 0 {
		ob.ShapeKeys = &ShapeKeys{}
		for _, k := range shapeKeys {
			ob.ShapeKeys.Blocks = append(ob.ShapeKeys.Blocks, &ShapeKey{Name: k})
		}
	}
	return ob
}

// GetScale returns the rig scale, 1 if unset.
func (ob *Object) GetScale() float64 {
	if ob.Scale == 0 {
		return 1
	}
	return ob.Scale
}

func (ob *Object) Prop(name string) (float64, bool) {
	v, ok := ob.Props[name]
	return v, ok
}

// SetProp sets a custom property, creating it if needed.
func (ob *Object) SetProp(name string, v float64) {
	if ob.Props == nil {
		ob.Props = map[string]float64{}
	}
	ob.Props[name] = v
}

func (ob *Object) DeleteProp(name string) {
	delete(ob.Props, name)
}

// PropNames returns the custom property names in sorted order.
func (ob *Object) PropNames() []string {
	names := make([]string, 0, len(ob.Props))
	for name := range ob.Props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (ob *Object) Bone(name string) *PoseBone {
	return ob.Bones[name]
}

func (ob *Object) AddBone(name string) *PoseBone {
	if ob.Bones == nil {
		ob.Bones = map[string]*PoseBone{}
	}
	b := &PoseBone{Rotation: [4]float64{1, 0, 0, 0}}
	ob.Bones[name] = b
	return b
}

func (ob *Object) ShapeKey(name string) *ShapeKey {
	if ob.ShapeKeys == nil {
		return nil
	}
	return ob.ShapeKeys.Get(name)
}

// Meshes returns the face meshes animated through ob: ob itself if it is a mesh,
// or its mesh children carrying face shapes if it is an armature.
func (ob *Object) Meshes() []*Object {
	switch ob.Type {
	case TypeMesh:
		return []*Object{ob}
	case TypeArmature:
		var meshes []*Object
		for _, child := range ob.Children {
			if child.Type == TypeMesh && child.HasFaceShapes {
				meshes = append(meshes, child)
			}
		}
		return meshes
	}
	return nil
}

// ActionFor returns the action holding curves of ref, or nil if none.
func (ob *Object) ActionFor(ref ChannelRef) *Action {
	if ref.Kind == ChannelShapeKey {
		if ob.ShapeKeys == nil {
			return nil
		}
		return ob.ShapeKeys.Action
	}
	return ob.Action
}

func (ob *Object) ensureAction(ref ChannelRef) (*Action, error) {
	if ref.Kind == ChannelShapeKey {
		if ob.ShapeKeys == nil {
			return nil, fmt.Errorf("%s: %w: %v", ob.Name, ErrNoChannel, ref)
		}
		if ob.ShapeKeys.Action == nil {
			ob.ShapeKeys.Action = &Action{Name: ob.Name + "KeyAction"}
		}
		return ob.ShapeKeys.Action, nil
	}
	if ob.Action == nil {
		ob.Action = &Action{Name: ob.Name + "Action"}
	}
	return ob.Action, nil
}

func (ob *Object) Value(ref ChannelRef) (float64, error) {
	switch ref.Kind {
	case ChannelProperty:
		if v, ok := ob.Props[ref.Name]; ok {
			return v, nil
		}
	case ChannelBoneLocation:
		if b := ob.Bone(ref.Name); b != nil && ref.Index >= 0 && ref.Index < 3 {
			return b.Location[ref.Index], nil
		}
	case ChannelBoneRotation:
		if b := ob.Bone(ref.Name); b != nil && ref.Index >= 0 && ref.Index < 4 {
			return b.Rotation[ref.Index], nil
		}
	case ChannelShapeKey:
		if k := ob.ShapeKey(ref.Name); k != nil {
			return k.Value, nil
		}
	}
	return 0, fmt.Errorf("%s: %w: %v", ob.Name, ErrNoChannel, ref)
}

// SetValue writes a channel. Properties are created on demand; other channels must exist.
func (ob *Object) SetValue(ref ChannelRef, v float64) error {
	switch ref.Kind {
	case ChannelProperty:
		ob.SetProp(ref.Name, v)
		return nil
	case ChannelBoneLocation:
		if b := ob.Bone(ref.Name); b != nil && ref.Index >= 0 && ref.Index < 3 {
			b.Location[ref.Index] = v
			return nil
		}
	case ChannelBoneRotation:
		if b := ob.Bone(ref.Name); b != nil && ref.Index >= 0 && ref.Index < 4 {
			b.Rotation[ref.Index] = v
			return nil
		}
	case ChannelShapeKey:
		if k := ob.ShapeKey(ref.Name); k != nil {
			k.Value = v
			return nil
		}
	}
	return fmt.Errorf("%s: %w: %v", ob.Name, ErrNoChannel, ref)
}

// InsertKeyframe records the current value of ref at frame.
// A missing custom property cannot be keyed and yields KeyUnsupported.
func (ob *Object) InsertKeyframe(ref ChannelRef, frame float64) (KeyResult, error) {
	if ref.Kind == ChannelProperty {
		if _, ok := ob.Props[ref.Name]; !ok {
			return KeyUnsupported, nil
		}
	}
	v, err := ob.Value(ref)
	if err != nil {
		return KeyUnsupported, err
	}
	act, err := ob.ensureAction(ref)
	if err != nil {
		return KeyUnsupported, err
	}
	act.Ensure(ref).Insert(frame, v)
	return KeyInserted, nil
}

// SetKeyframe writes value to ref and keys it at frame.
func (ob *Object) SetKeyframe(ref ChannelRef, frame, value float64) (KeyResult, error) {
	if err := ob.SetValue(ref, value); err != nil {
		return KeyUnsupported, err
	}
	return ob.InsertKeyframe(ref, frame)
}

// RemoveDrivers unbinds every driven shape key of ob.
func (ob *Object) RemoveDrivers() {
	if ob.ShapeKeys == nil {
		return
	}
	for _, k := range ob.ShapeKeys.Blocks {
		k.Driver = ""
	}
}

// UpdateDrivers copies driver property values of rig into the driven shape keys of its meshes.
func (ob *Object) UpdateDrivers() {
	for _, mesh := range ob.Meshes() {
		if mesh.ShapeKeys == nil {
			continue
		}
		for _, k := range mesh.ShapeKeys.Blocks {
			if k.Driver == "" {
				continue
			}
			if v, ok := ob.Prop(k.Driver); ok {
				k.Value = v
			}
		}
	}
}
