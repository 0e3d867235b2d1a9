package uview

import "fmt"

// Marker is a circular point marker drawn on the image.
type Marker struct {
	X, Y, Radius uint16
}

// CrossSection is an arbitrary line profile between two points.
type CrossSection struct {
	X0, Y0 uint16
	X1, Y1 uint16
}

// Markups holds the annotations of an image, per type in file order.
type Markups struct {
	Markers       []Marker
	CrossSections []CrossSection
}

// Len returns the total number of markups.
func (m *Markups) Len() int {
	return len(m.Markers) + len(m.CrossSections)
}

// decodeMarkups decodes a markup block. Every record starts with its
// uint16 type followed by uint16 fields; a zero type ends the list.
func decodeMarkups(block []byte, o *options) (*Markups, []Warning) {
	m := &Markups{}
	var warnings []Warning
	warn := func(kind WarningKind, typ uint16, off int, msg string) {
		warnings = append(warnings, Warning{Kind: kind, Tag: int(typ), Offset: off, Msg: msg})
		o.logger.Warn().Str("kind", kind.String()).Uint16("type", typ).Int("offset", off).Msg(msg)
	}

	c := newCursor(block)
	if err := c.skip(markupHeaderLen); err != nil {
		warn(Truncated, 0, 0, "markup block shorter than its header")
		return m, warnings
	}

	for {
		typ, err := c.uint16At(0)
		if err != nil {
			warn(Truncated, 0, c.off, "markup list not terminated")
			return m, warnings
		}

		var n int
		switch typ {
		case mkEnd:
			return m, warnings
		case mkMarker:
			n = mkMarkerLen
		case mkArbitrary:
			n = mkArbitraryLen
		default:
			warn(UnknownMarkup, typ, c.off, "unknown markup type, remaining markups dropped")
			return m, warnings
		}

		rec, err := c.read(n)
		if err != nil {
			warn(Truncated, typ, c.off, fmt.Sprintf("markup record needs %d bytes", n))
			return m, warnings
		}
		w := func(i int) uint16 { return le.Uint16(rec[2*i:]) }

		switch typ {
		case mkMarker:
			mk := Marker{X: w(1), Y: w(2), Radius: w(3)}
			m.Markers = append(m.Markers, mk)
			o.logger.Debug().Uint16("x", mk.X).Uint16("y", mk.Y).Uint16("radius", mk.Radius).Msg("marker")
		case mkArbitrary:
			cs := CrossSection{X0: w(1), Y0: w(2), X1: w(3), Y1: w(4)}
			m.CrossSections = append(m.CrossSections, cs)
			o.logger.Debug().Uint16("x0", cs.X0).Uint16("y0", cs.Y0).Uint16("x1", cs.X1).Uint16("y1", cs.Y1).Msg("cross section")
		}
	}
}
