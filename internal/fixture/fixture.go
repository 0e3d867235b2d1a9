// Package fixture builds synthetic UView files for tests.
package fixture

import (
	"bytes"
	"encoding/binary"
	"math"
)

// File describes a synthetic file. Zero values give a 2x2 image using the
// simple layout with an empty leem data block.
type File struct {
	ID         string
	Width      int16
	Height     int16
	Recipe     []byte
	Ticks      uint64
	Selector   int16 // Leem data version.
	MarkupSize int16
	Markup     []byte // Markup records, without the 4 bytes header.
	LeemData   []byte
	Pixels     []uint16 // In file order, bottom row first.
}

// Bytes encodes f.
func (f File) Bytes() []byte {
	var b bytes.Buffer
	w := func(vs ...interface{}) {
		for _, v := range vs {
			binary.Write(&b, binary.LittleEndian, v)
		}
	}
	zero := func(n int) { b.Write(make([]byte, n)) }

	if f.ID == "" {
		f.ID = "UKSOFT2001"
	}
	if f.Width == 0 && f.Height == 0 {
		f.Width, f.Height = 2, 2
	}

	id := make([]byte, 20)
	copy(id, f.ID)
	b.Write(id)
	w(int16(104), int16(2), int16(16))
	zero(6 + 8)
	w(f.Width, f.Height, int16(1), int16(len(f.Recipe)))
	zero(56)
	b.Write(pad(f.Recipe, 128))

	w(int16(288), int16(1), int16(0), int16(4095), f.Ticks)
	w(int16(0), int16(0), byte(0), byte(0))
	w(f.MarkupSize, int16(0), f.Selector)

	if f.Selector <= 2 {
		b.Write(pad(f.LeemData, 240))
		zero(20)
	} else {
		zero(260)
		if f.MarkupSize > 0 {
			n := 128 * (int(f.MarkupSize)/128 + 1)
			b.Write(pad(append(make([]byte, 4), f.Markup...), n))
		}
		b.Write(pad(f.LeemData, int(f.Selector)))
	}

	pixels := f.Pixels
	if pixels == nil {
		pixels = make([]uint16, int(f.Width)*int(f.Height))
	}
	w(pixels)
	return b.Bytes()
}

func pad(p []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, p)
	return out
}

// Record returns a leem data record.
func Record(tag byte, parts ...[]byte) []byte {
	p := []byte{tag}
	for _, part := range parts {
		p = append(p, part...)
	}
	return p
}

// Field returns a standard leem data record "name unit NUL float32".
func Field(tag byte, name string, unit byte, v float32) []byte {
	return Record(tag, []byte(name), []byte{'0' + unit, 0}, Float(v))
}

// Float encodes v.
func Float(v float32) []byte {
	p := make([]byte, 4)
	binary.LittleEndian.PutUint32(p, math.Float32bits(v))
	return p
}

// LeemData joins records and appends the end tag.
func LeemData(records ...[]byte) []byte {
	var p []byte
	for _, r := range records {
		p = append(p, r...)
	}
	return append(p, 255)
}

// Marker returns a 24 bytes point marker record.
func Marker(x, y, radius uint16) []byte {
	return words(24, 6, x, y, radius)
}

// CrossSection returns a 14 bytes arbitrary cross section record.
func CrossSection(x0, y0, x1, y1 uint16) []byte {
	return words(14, 3, x0, y0, x1, y1)
}

func words(n int, vs ...uint16) []byte {
	p := make([]byte, n)
	for i, v := range vs {
		binary.LittleEndian.PutUint16(p[2*i:], v)
	}
	return p
}

// Ramp returns width*height pixels counting up from 0 in file order.
func Ramp(width, height int) []uint16 {
	p := make([]uint16, width*height)
	for i := range p {
		p[i] = uint16(i)
	}
	return p
}
