package mmd

import (
	"encoding/binary"
	"io"
)

type baseParser struct {
	r   io.Reader
	err error
}

func (p *baseParser) read(v interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.err = binary.Read(p.r, binary.LittleEndian, v)
	return p.err
}

func (p *baseParser) readInt() int {
	var v uint32
	p.read(&v)
	return int(v)
}
