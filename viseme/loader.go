package viseme

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sync"

	yaml "gopkg.in/yaml.v2"
)

//go:embed data
var dataFS embed.FS

const (
	defaultFaceShapes  = "data/faceshapes.mxa"
	defaultVisemes     = "data/visemes.mxa"
	defaultBoneDrivers = "data/bonedrivers.yaml"
)

type faceShapesFile struct {
	Targets map[string]json.RawMessage `json:"targets"`
}

type visemesFile struct {
	Layout  [][]string               `json:"layout"`
	Visemes map[string][]ShapeWeight `json:"visemes"`
	Moho    map[string]string        `json:"moho"`
}

// ParseFaceShapes returns the target names of a face-shapes resource.
func ParseFaceShapes(r io.Reader) ([]string, error) {
	var f faceShapesFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("faceshapes: %w", err)
	}
	if f.Targets == nil {
		return nil, fmt.Errorf("faceshapes: no targets")
	}
	names := make([]string, 0, len(f.Targets))
	for name := range f.Targets {
		names = append(names, name)
	}
	return names, nil
}

// ParseBoneDrivers reads a bone driver table keyed by shape basis name.
func ParseBoneDrivers(r io.Reader) (map[string]*BoneDriver, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	drivers := map[string]*BoneDriver{}
	if err := yaml.Unmarshal(data, &drivers); err != nil {
		return nil, fmt.Errorf("bonedrivers: %w", err)
	}
	for name, d := range drivers {
		if d == nil {
			return nil, fmt.Errorf("bonedrivers: %s: empty entry", name)
		}
		if len(d.Coord) != 2 {
			return nil, fmt.Errorf("bonedrivers: %s: coord must have 2 elements", name)
		}
		if d.Channel != ChannelLocX && d.Channel != ChannelLocZ {
			return nil, fmt.Errorf("bonedrivers: %s: unsupported channel %q", name, d.Channel)
		}
	}
	return drivers, nil
}

// Load builds a registry from a face-shapes resource, a visemes resource and a bone driver table.
func Load(faceShapes, visemes, boneDrivers io.Reader) (*Registry, error) {
	shapes, err := ParseFaceShapes(faceShapes)
	if err != nil {
		return nil, err
	}
	var vf visemesFile
	if err := json.NewDecoder(visemes).Decode(&vf); err != nil {
		return nil, fmt.Errorf("visemes: %w", err)
	}
	for sym, name := range vf.Moho {
		if _, ok := vf.Visemes[name]; !ok {
			return nil, fmt.Errorf("visemes: moho symbol %q maps to undefined viseme %q", sym, name)
		}
	}
	drivers, err := ParseBoneDrivers(boneDrivers)
	if err != nil {
		return nil, err
	}
	return NewRegistry(&Tables{
		FaceShapes:  shapes,
		Visemes:     vf.Visemes,
		Moho:        vf.Moho,
		Layout:      vf.Layout,
		BoneDrivers: drivers,
	}), nil
}

func openResource(path, embedded string) (io.ReadCloser, error) {
	if path != "" {
		return os.Open(path)
	}
	data, err := dataFS.ReadFile(embedded)
	if err != nil {
		return nil, err
	}
	return ioutil.NopCloser(bytes.NewReader(data)), nil
}

// LoadFiles loads a registry from resource files. Empty paths use the built-in resources.
func LoadFiles(faceShapesPath, visemesPath, boneDriversPath string) (*Registry, error) {
	var readers []io.ReadCloser
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()
	for _, p := range [][2]string{
		{faceShapesPath, defaultFaceShapes},
		{visemesPath, defaultVisemes},
		{boneDriversPath, defaultBoneDrivers},
	} {
		r, err := openResource(p[0], p[1])
		if err != nil {
			return nil, err
		}
		readers = append(readers, r)
	}
	return Load(readers[0], readers[1], readers[2])
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry of the built-in resources, loaded on first use.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = LoadFiles("", "", "")
	})
	return defaultRegistry, defaultErr
}
