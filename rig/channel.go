package rig

import (
	"fmt"
	"strconv"
	"strings"
)

type ChannelKind int

const (
	ChannelProperty ChannelKind = iota
	ChannelBoneLocation
	ChannelBoneRotation
	ChannelShapeKey
)

// ChannelRef addresses one animatable scalar of an object.
// Name is the property, bone or shape key name; Index is the array index for bone channels.
type ChannelRef struct {
	Kind  ChannelKind
	Name  string
	Index int
}

func Property(name string) ChannelRef {
	return ChannelRef{Kind: ChannelProperty, Name: name}
}

func BoneLocation(bone string, axis int) ChannelRef {
	return ChannelRef{Kind: ChannelBoneLocation, Name: bone, Index: axis}
}

// BoneRotation addresses a rotation quaternion component (0:W 1:X 2:Y 3:Z).
func BoneRotation(bone string, index int) ChannelRef {
	return ChannelRef{Kind: ChannelBoneRotation, Name: bone, Index: index}
}

func ShapeKeyValue(key string) ChannelRef {
	return ChannelRef{Kind: ChannelShapeKey, Name: key}
}

// String returns the host data path of the channel.
func (c ChannelRef) String() string {
	switch c.Kind {
	case ChannelProperty:
		return fmt.Sprintf("[%q]", c.Name)
	case ChannelBoneLocation:
		return fmt.Sprintf("pose.bones[%q].location[%d]", c.Name, c.Index)
	case ChannelBoneRotation:
		return fmt.Sprintf("pose.bones[%q].rotation_quaternion[%d]", c.Name, c.Index)
	case ChannelShapeKey:
		return fmt.Sprintf("key_blocks[%q].value", c.Name)
	}
	return fmt.Sprintf("<unknown channel %d>", c.Kind)
}

// ParseChannelRef parses a path produced by ChannelRef.String.
func ParseChannelRef(path string) (ChannelRef, error) {
	name, rest, ok := quotedName(path)
	if !ok {
		return ChannelRef{}, fmt.Errorf("invalid channel path: %q", path)
	}
	switch {
	case strings.HasPrefix(path, "[") && rest == "":
		return Property(name), nil
	case strings.HasPrefix(path, "key_blocks[") && rest == ".value":
		return ShapeKeyValue(name), nil
	case strings.HasPrefix(path, "pose.bones["):
		if idx, ok := arrayIndex(rest, ".location"); ok && idx >= 0 && idx < 3 {
			return BoneLocation(name, idx), nil
		}
		if idx, ok := arrayIndex(rest, ".rotation_quaternion"); ok && idx >= 0 && idx < 4 {
			return BoneRotation(name, idx), nil
		}
	}
	return ChannelRef{}, fmt.Errorf("invalid channel path: %q", path)
}

// quotedName extracts the first ["..."] subscript and returns the text after it.
func quotedName(path string) (string, string, bool) {
	start := strings.Index(path, "[\"")
	if start < 0 {
		return "", "", false
	}
	end := strings.Index(path[start+2:], "\"]")
	if end < 0 {
		return "", "", false
	}
	quoted := path[start+1 : start+2+end+1]
	name, err := strconv.Unquote(quoted)
	if err != nil {
		return "", "", false
	}
	return name, path[start+2+end+2:], true
}

func arrayIndex(s, prefix string) (int, bool) {
	if !strings.HasPrefix(s, prefix+"[") || !strings.HasSuffix(s, "]") {
		return 0, false
	}
	n, err := strconv.Atoi(s[len(prefix)+1 : len(s)-1])
	return n, err == nil
}

func (c ChannelRef) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c *ChannelRef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var path string
	if err := unmarshal(&path); err != nil {
		return err
	}
	ref, err := ParseChannelRef(path)
	if err != nil {
		return err
	}
	*c = ref
	return nil
}
