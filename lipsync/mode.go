package lipsync

import "github.com/binzume/lipsync/rig"

// Mode is the active face animation representation of a rig:
// DriverMode, PanelMode or DirectMode.
type Mode interface {
	mode()
}

// DriverMode stores face shapes in "Mhf" custom properties of the rig.
type DriverMode struct {
	Rig *rig.Object
}

// PanelMode stores face shapes as locations of face panel bones.
type PanelMode struct {
	Rig *rig.Object
}

// DirectMode writes shape key values of the face meshes. Meshes may be empty.
type DirectMode struct {
	Meshes []*rig.Object
}

func (DriverMode) mode() {}
func (PanelMode) mode()  {}
func (DirectMode) mode() {}

// SelectMode classifies ob. Drivers take precedence over the panel.
func SelectMode(ob *rig.Object) Mode {
	switch {
	case ob == nil:
		return DirectMode{}
	case ob.FaceShapeDrivers:
		return DriverMode{Rig: ob}
	case ob.FacePanel:
		return PanelMode{Rig: ob}
	default:
		return DirectMode{Meshes: ob.Meshes()}
	}
}
