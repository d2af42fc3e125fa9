package main

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"

	"github.com/binzume/lipsync/converter"
	"github.com/binzume/lipsync/viseme"
)

type Config struct {
	// Resource files. Empty uses the built-in tables.
	FaceShapes  string `json:"faceShapes"`
	Visemes     string `json:"visemes"`
	BoneDrivers string `json:"boneDrivers"`

	MohoOffset *int    `json:"mohoOffset"`
	FPS        float64 `json:"fps"`

	MorphMappings []*MorphMapping `json:"morphMappings"`

	Preset string `json:"preset"`
}

// MorphMapping maps a VMD morph to a face shape.
type MorphMapping struct {
	Name       string `json:"name"`
	TargetName string `json:"targetName"`
}

const defaultMohoOffset = 1

func (c *Config) GetMohoOffset() int {
	if c.MohoOffset == nil {
		return defaultMohoOffset
	}
	return *c.MohoOffset
}

func (c *Config) AnimationOption() *converter.AnimationOption {
	opt := converter.DefaultAnimationOption
	if c.FPS > 0 {
		opt.FPS = c.FPS
	}
	return &opt
}

func (c *Config) MorphNames() map[string]string {
	names := map[string]string{}
	for _, m := range c.MorphMappings {
		if m.Name != "" && m.TargetName != "" {
			names[m.Name] = m.TargetName
		}
	}
	return names
}

func (c *Config) LoadRegistry() (*viseme.Registry, error) {
	if c.FaceShapes == "" && c.Visemes == "" && c.BoneDrivers == "" {
		return viseme.Default()
	}
	return viseme.LoadFiles(c.FaceShapes, c.Visemes, c.BoneDrivers)
}

// merge fills unset fields of c from base.
func (c *Config) merge(base *Config) {
	if c.FaceShapes == "" {
		c.FaceShapes = base.FaceShapes
	}
	if c.Visemes == "" {
		c.Visemes = base.Visemes
	}
	if c.BoneDrivers == "" {
		c.BoneDrivers = base.BoneDrivers
	}
	if c.MohoOffset == nil {
		c.MohoOffset = base.MohoOffset
	}
	if c.FPS == 0 {
		c.FPS = base.FPS
	}
	c.MorphMappings = append(base.MorphMappings, c.MorphMappings...)
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// LoadConfig reads a JSON config file. Paths in the file are relative to it.
func LoadConfig(path string) (*Config, error) {
	return loadConfig(path, 0)
}

func loadConfig(path string, depth int) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Config
	if err := json.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	conf.FaceShapes = resolvePath(dir, conf.FaceShapes)
	conf.Visemes = resolvePath(dir, conf.Visemes)
	conf.BoneDrivers = resolvePath(dir, conf.BoneDrivers)

	if conf.Preset != "" && depth < 4 {
		preset, err := loadConfig(resolvePath(dir, conf.Preset), depth+1)
		if err != nil {
			return nil, err
		}
		conf.merge(preset)
	}
	return &conf, nil
}
