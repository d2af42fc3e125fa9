// Package viseme holds the static viseme, Moho symbol and mouth-shape tables.
package viseme

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MouthPrefixes are the name prefixes of shape keys used by lip-sync.
var MouthPrefixes = []string{"mout", "lips", "tong"}

// IsMouthShape reports whether a face-shape name belongs to the mouth shape set.
func IsMouthShape(name string) bool {
	if len(name) < 4 {
		return false
	}
	for _, p := range MouthPrefixes {
		if name[0:4] == p {
			return true
		}
	}
	return false
}

// ShapeWeight is one shape key of a viseme. Encoded as ["name", weight].
type ShapeWeight struct {
	Key    string
	Weight float64
}

func (s *ShapeWeight) UnmarshalJSON(data []byte) error {
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("shape weight: want [name, weight], got %s", data)
	}
	key, ok1 := raw[0].(string)
	weight, ok2 := raw[1].(float64)
	if !ok1 || !ok2 {
		return fmt.Errorf("shape weight: want [name, weight], got %s", data)
	}
	s.Key, s.Weight = key, weight
	return nil
}

func (s ShapeWeight) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{s.Key, s.Weight})
}

const (
	ChannelLocX = "LOC_X"
	ChannelLocZ = "LOC_Z"
)

// BoneDriver maps a face shape basis name to a face panel bone.
type BoneDriver struct {
	Bone    string    `yaml:"bone"`
	Channel string    `yaml:"channel"`
	Coord   []float64 `yaml:"coord,flow"`
	Min     float64   `yaml:"min"`
	Max     float64   `yaml:"max"`
}

// Factor returns the shape weight per unit of bone offset, 0 if undefined.
func (d *BoneDriver) Factor() float64 {
	if len(d.Coord) < 2 {
		return 0
	}
	return d.Coord[1]
}

type UnknownVisemeError struct {
	Name string
}

func (e *UnknownVisemeError) Error() string {
	return "unknown viseme: " + e.Name
}

type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return "unknown Moho symbol: " + e.Symbol
}

// Tables is the raw content of a Registry.
type Tables struct {
	FaceShapes  []string
	Visemes     map[string][]ShapeWeight
	Moho        map[string]string
	Layout      [][]string
	BoneDrivers map[string]*BoneDriver
}

// Registry is an immutable set of lookup tables.
type Registry struct {
	visemes     map[string][]ShapeWeight
	moho        map[string]string
	layout      [][]string
	faceShapes  []string
	mouthShapes []string
	mouthSet    map[string]bool
	boneDrivers map[string]*BoneDriver
}

func NewRegistry(t *Tables) *Registry {
	r := &Registry{
		visemes:     map[string][]ShapeWeight{},
		moho:        map[string]string{},
		mouthSet:    map[string]bool{},
		boneDrivers: map[string]*BoneDriver{},
	}
	for name, weights := range t.Visemes {
		r.visemes[name] = append([]ShapeWeight(nil), weights...)
	}
	for sym, name := range t.Moho {
		r.moho[sym] = name
	}
	for _, row := range t.Layout {
		r.layout = append(r.layout, append([]string(nil), row...))
	}
	for name, d := range t.BoneDrivers {
		c := *d
		c.Coord = append([]float64(nil), d.Coord...)
		r.boneDrivers[name] = &c
	}
	r.faceShapes = append([]string(nil), t.FaceShapes...)
	sort.Strings(r.faceShapes)
	for _, name := range r.faceShapes {
		if IsMouthShape(name) && !r.mouthSet[name] {
			r.mouthShapes = append(r.mouthShapes, name)
			r.mouthSet[name] = true
		}
	}
	return r
}

// Resolve returns the shape weights of a viseme.
func (r *Registry) Resolve(name string) ([]ShapeWeight, error) {
	weights, ok := r.visemes[name]
	if !ok {
		return nil, &UnknownVisemeError{Name: name}
	}
	return append([]ShapeWeight(nil), weights...), nil
}

// ResolveMoho returns the viseme name of a Moho phoneme symbol.
func (r *Registry) ResolveMoho(symbol string) (string, error) {
	name, ok := r.moho[symbol]
	if !ok {
		return "", &UnknownSymbolError{Symbol: symbol}
	}
	return name, nil
}

// MouthShapes returns the sorted mouth shape set.
func (r *Registry) MouthShapes() []string {
	return append([]string(nil), r.mouthShapes...)
}

func (r *Registry) IsMouthShape(name string) bool {
	return r.mouthSet[name]
}

func (r *Registry) FaceShapes() []string {
	return append([]string(nil), r.faceShapes...)
}

// VisemeNames returns all viseme names in sorted order.
func (r *Registry) VisemeNames() []string {
	names := make([]string, 0, len(r.visemes))
	for name := range r.visemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Layout returns the viseme button rows.
func (r *Registry) Layout() [][]string {
	var layout [][]string
	for _, row := range r.layout {
		layout = append(layout, append([]string(nil), row...))
	}
	return layout
}

func (r *Registry) BoneDriver(basis string) (BoneDriver, bool) {
	d, ok := r.boneDrivers[basis]
	if !ok {
		return BoneDriver{}, false
	}
	return *d, true
}
