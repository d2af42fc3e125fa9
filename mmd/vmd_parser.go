package mmd

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const vmdFormat = "Vocaloid Motion Data 0002"

// VMDParser is parser for .vmd animation.
type VMDParser struct {
	baseParser
}

type Animation struct {
	Name  string
	Bone  []*AnimationBoneSample
	Morph []*AnimationMorphSample
}

type AnimationBoneSample struct {
	Target   string
	Frame    int
	Position Vector3
	Rotation Vector4
	Params   [64]byte
}

type AnimationMorphSample struct {
	Target string
	Frame  int
	Value  float32
}

// MorphChannel is the samples of one morph sorted by frame.
type MorphChannel struct {
	Target  string
	Frames  []uint32
	Weights []float32
}

func (a *Animation) GetMorphChannels() map[string]*MorphChannel {
	sort.SliceStable(a.Morph, func(i, j int) bool { return a.Morph[i].Frame < a.Morph[j].Frame })

	r := map[string]*MorphChannel{}
	for _, s := range a.Morph {
		ch, ok := r[s.Target]
		if !ok {
			ch = &MorphChannel{Target: s.Target}
			r[s.Target] = ch
		}
		ch.Frames = append(ch.Frames, uint32(s.Frame))
		ch.Weights = append(ch.Weights, s.Value)
	}
	return r
}

// NewVMDParser returns new parser.
func NewVMDParser(r io.Reader) *VMDParser {
	return &VMDParser{baseParser: baseParser{r: r}}
}

// Parse animation data.
func (p *VMDParser) Parse() (*Animation, error) {
	var anim Animation

	formatName := p.readString(30)
	if p.err != nil {
		return nil, p.err
	}
	if formatName != vmdFormat {
		return nil, fmt.Errorf("Format error: %v != %v", formatName, vmdFormat)
	}

	anim.Name = p.readString(20)

	frames := p.readInt()
	for i := 0; i < frames && p.err == nil; i++ {
		sample := &AnimationBoneSample{}
		sample.Target = p.readString(15)
		sample.Frame = p.readInt()
		p.read(&sample.Position)
		p.read(&sample.Rotation)
		p.read(&sample.Params)
		anim.Bone = append(anim.Bone, sample)
	}

	frames = p.readInt()
	for i := 0; i < frames && p.err == nil; i++ {
		sample := &AnimationMorphSample{}
		sample.Target = p.readString(15)
		sample.Frame = p.readInt()
		p.read(&sample.Value)
		anim.Morph = append(anim.Morph, sample)
	}

	return &anim, p.err
}

func (p *VMDParser) readString(len int) string {
	b := make([]byte, len)
	if p.read(b) != nil {
		return ""
	}
	utf8Data, _, _ := transform.Bytes(japanese.ShiftJIS.NewDecoder(), bytes.SplitN(b, []byte{0}, 2)[0])
	return string(utf8Data)
}
