package faceshift

import (
	"log"
	"sort"

	"github.com/binzume/lipsync/lipsync"
	"github.com/binzume/lipsync/rig"
)

// AssignMotion replaces the action of ob with curves built from m.
// Bones get rotation quaternion curves, shapes get property curves; frames start at 1.
// Shapes without a rig property are logged and skipped.
func AssignMotion(ob *rig.Object, m *Motion, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	ob.Action = nil

	bnames := make([]string, 0, len(m.Bones))
	for bname := range m.Bones {
		bnames = append(bnames, bname)
	}
	sort.Strings(bnames)
	for _, bname := range bnames {
		for n := 0; n < 4; n++ {
			if _, err := ob.InsertKeyframe(rig.BoneRotation(bname, n), 1); err != nil {
				return err
			}
		}
	}

	props := make([]string, 0, len(m.Props))
	for prop := range m.Props {
		props = append(props, prop)
	}
	sort.Strings(props)
	for _, prop := range props {
		res, err := ob.InsertKeyframe(rig.Property(prop), 1)
		if err != nil {
			return err
		}
		if res == rig.KeyUnsupported {
			logger.Println("Missing pose:", prop)
		}
	}
	if ob.Action == nil {
		return nil
	}

	for _, c := range ob.Action.Curves {
		switch c.Ref.Kind {
		case rig.ChannelBoneRotation:
			points := make([]float64, 0, len(m.Bones[c.Ref.Name]))
			for _, euler := range m.Bones[c.Ref.Name] {
				points = append(points, euler.ToQuaternion().WXYZ()[c.Ref.Index])
			}
			lipsync.AddKeyPoints(c, points)
		case rig.ChannelProperty:
			lipsync.AddKeyPoints(c, m.Props[c.Ref.Name])
		}
	}
	return nil
}
