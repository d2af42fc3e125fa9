package rig

import (
	"io"
	"io/ioutil"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Scene is a set of top level objects, stored as YAML.
type Scene struct {
	Objects []*Object `yaml:"objects"`
}

func ParseScene(r io.Reader) (*Scene, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, err
	}
	return &scene, nil
}

func LoadScene(path string) (*Scene, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return ParseScene(r)
}

func WriteScene(scene *Scene, w io.Writer) error {
	data, err := yaml.Marshal(scene)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func SaveScene(scene *Scene, path string) error {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return WriteScene(scene, w)
}

// Find returns the object named name, searching children depth first.
func (s *Scene) Find(name string) *Object {
	var find func(objs []*Object) *Object
	find = func(objs []*Object) *Object {
		for _, ob := range objs {
			if ob.Name == name {
				return ob
			}
			if found := find(ob.Children); found != nil {
				return found
			}
		}
		return nil
	}
	return find(s.Objects)
}
