package uview

import (
	"bytes"
	"fmt"
	"time"
)

//------------------------//
// Header parser          //
//------------------------//

// Header holds the fixed-layout preamble of a UView file.
type Header struct {
	ID           string
	Size         int
	Version      int
	BitsPerPixel int
	Width        int
	Height       int
	ImageCount   int
	RecipeSize   int
	Recipe       []byte // Attached recipe, nil when RecipeSize is 0.

	ImageHeaderSize    int
	ImageHeaderVersion int
	ColorScaleLow      int
	ColorScaleHigh     int
	Ticks              uint64 // 100 ns ticks since 1601-01-01.
	Timestamp          time.Time
	MaskXShift         int
	MaskYShift         int
	UseMask            byte
	MarkupSize         int
	Spin               int
	LeemDataVersion    int // Layout selector.

	// LeemDataOffset is the absolute offset of the leem data block.
	LeemDataOffset int
}

// Extended reports whether the header uses the layout with a variable
// leem data block and an optional markup block.
func (h *Header) Extended() bool {
	return h.LeemDataVersion > simpleLayoutMax
}

// blocks are the variable regions located by the header parser.
type blocks struct {
	markup   []byte // nil when absent
	leemData []byte
}

// parseHeader reads the preamble from c, which must be positioned at the
// start of the file. On success c is positioned after the leem data block.
func parseHeader(c *cursor) (h *Header, b blocks, err error) {
	h = &Header{}
	defer func() {
		if e, ok := err.(errShort); ok {
			err = FormatError(fmt.Sprintf("truncated header at offset %d: need %d bytes, have %d", e.off, e.want, e.have))
		}
	}()

	id, err := c.read(fileIDLen)
	if err != nil {
		return nil, b, err
	}
	if i := bytes.IndexByte(id, 0); i >= 0 {
		id = id[:i]
	}
	h.ID, _ = decodeText(id)

	fields := []*int{&h.Size, &h.Version, &h.BitsPerPixel}
	if err = readInt16s(c, fields...); err != nil {
		return nil, b, err
	}
	if err = c.skip(6 + 8); err != nil { // alignment, spare
		return nil, b, err
	}
	if err = readInt16s(c, &h.Width, &h.Height); err != nil {
		return nil, b, err
	}
	if h.Width <= 0 || h.Height <= 0 {
		return nil, b, FormatError(fmt.Sprintf("invalid dimensions %dx%d", h.Width, h.Height))
	}
	if err = readInt16s(c, &h.ImageCount, &h.RecipeSize); err != nil {
		return nil, b, err
	}
	if err = c.skip(56); err != nil { // spare
		return nil, b, err
	}

	// The recipe lives in a fixed slot so the image header lands on the
	// same offset whatever its length.
	if h.RecipeSize < 0 || h.RecipeSize > recipeSlotLen {
		return nil, b, FormatError(fmt.Sprintf("invalid recipe size %d", h.RecipeSize))
	}
	slot, err := c.read(recipeSlotLen)
	if err != nil {
		return nil, b, err
	}
	if h.RecipeSize > 0 {
		h.Recipe = append([]byte(nil), slot[:h.RecipeSize]...)
	}

	if err = readInt16s(c, &h.ImageHeaderSize, &h.ImageHeaderVersion, &h.ColorScaleLow, &h.ColorScaleHigh); err != nil {
		return nil, b, err
	}
	if h.Ticks, err = c.uint64(); err != nil {
		return nil, b, err
	}
	h.Timestamp = DecodeTimestamp(h.Ticks)
	if err = readInt16s(c, &h.MaskXShift, &h.MaskYShift); err != nil {
		return nil, b, err
	}
	if h.UseMask, err = c.uint8(); err != nil {
		return nil, b, err
	}
	if err = c.skip(1); err != nil { // spare
		return nil, b, err
	}
	if err = readInt16s(c, &h.MarkupSize, &h.Spin, &h.LeemDataVersion); err != nil {
		return nil, b, err
	}

	var leemDataLen int
	if !h.Extended() {
		leemDataLen = simpleLeemDataLen
		h.LeemDataOffset = c.off
	} else {
		if err = c.skip(extendedSpareLen); err != nil {
			return nil, b, err
		}
		if h.MarkupSize > 0 {
			n := markupBlockAlign * (h.MarkupSize/markupBlockAlign + 1)
			if b.markup, err = c.read(n); err != nil {
				return nil, b, err
			}
		}
		leemDataLen = h.LeemDataVersion
		h.LeemDataOffset = c.off
	}
	if b.leemData, err = c.read(leemDataLen); err != nil {
		return nil, b, err
	}
	if !h.Extended() {
		if err = c.skip(simpleSpareLen); err != nil {
			return nil, b, err
		}
	}
	return h, b, nil
}

// readInt16s reads consecutive little-endian int16 values into dst.
func readInt16s(c *cursor, dst ...*int) error {
	for _, d := range dst {
		v, err := c.int16()
		if err != nil {
			return err
		}
		*d = int(v)
	}
	return nil
}

// setFields records the header values in m, in file order.
func (h *Header) setFields(m *Metadata) {
	m.Set("id", Text(h.ID))
	for _, f := range []struct {
		name string
		v    int
	}{
		{"size", h.Size},
		{"version", h.Version},
		{"bitsperpix", h.BitsPerPixel},
		{"width", h.Width},
		{"height", h.Height},
		{"noimg", h.ImageCount},
		{"attachedRecipeSize", h.RecipeSize},
		{"isize", h.ImageHeaderSize},
		{"iversion", h.ImageHeaderVersion},
		{"colorscale_low", h.ColorScaleLow},
		{"colorscale_high", h.ColorScaleHigh},
		{"mask_xshift", h.MaskXShift},
		{"mask_yshift", h.MaskYShift},
		{"usemask", int(h.UseMask)},
		{"att_markupsize", h.MarkupSize},
		{"spin", h.Spin},
	} {
		m.Set(f.name, Int(int64(f.v)))
	}
}
