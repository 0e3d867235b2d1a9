package uview

import (
	"fmt"
	"strconv"
	"strings"
)

// leemDecoder walks the tagged records of a leem data block.
// Each record is a tag byte followed by a payload whose layout is given by
// the tag's rule; the decode functions below read the payload relative to
// the tag and return the number of payload bytes consumed.
type leemDecoder struct {
	c        *cursor
	md       *Metadata
	o        *options
	warnings []Warning
}

// decodeLeemData decodes block into md and returns the diagnostics.
func decodeLeemData(block []byte, md *Metadata, o *options) []Warning {
	d := &leemDecoder{
		c:  newCursor(block),
		md: md,
		o:  o,
	}
	d.run()
	return d.warnings
}

func (d *leemDecoder) run() {
	for d.c.remaining() > 0 {
		start := d.c.off
		tag := d.c.buf[start]
		r := lookupRule(tag)

		switch r.kind {
		case rEnd:
			return
		case rUnknown:
			d.warn(UnknownTag, tag, start, fmt.Sprintf("no decode rule, policy %s", d.o.policy))
			if d.o.policy == PolicyAbort {
				return
			}
			d.advance(start, d.o.fallbackSkip)
			continue
		}

		n, err := d.decode(tag, r)
		if err != nil {
			d.warn(Truncated, tag, start, fmt.Sprintf("%s record exceeds the %d bytes block", r.kind, len(d.c.buf)))
			return
		}
		d.advance(start, n)
	}
}

// advance moves the cursor past the tag at start and n payload bytes.
func (d *leemDecoder) advance(start, n int) {
	next := start + 1 + n
	if next > len(d.c.buf) {
		next = len(d.c.buf)
	}
	d.c.off = next
}

func (d *leemDecoder) decode(tag byte, r rule) (int, error) {
	switch r.kind {
	case rStandard:
		return d.decodeStandard(tag)
	case rExposure:
		return d.decodeExposure(tag, r)
	case rGauge:
		return d.decodeGauge(tag)
	case rText:
		return d.decodeText(tag, r)
	case rFloat:
		return d.decodeFloat(tag, r)
	case rFloatPair:
		return d.decodeFloatPair(tag, r)
	case rState:
		return d.decodeState(tag, r)
	case rFieldOfView:
		return d.decodeFieldOfView(tag, r)
	}
	return 0, fmt.Errorf("no decoder for %s", r.kind)
}

// decodeStandard decodes "name unit-digit NUL float32".
func (d *leemDecoder) decodeStandard(tag byte) (int, error) {
	raw, err := d.c.cstringAt(1)
	if err != nil {
		return 0, err
	}
	n := len(raw) + 1 + 4
	v, err := d.c.float32At(len(raw) + 2)
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		d.warn(Malformed, tag, d.c.off, "empty field name")
		return n, nil
	}

	name := d.text(raw[:len(raw)-1], tag, 1)
	unit, ok := unitOf(raw[len(raw)-1])
	if !ok {
		d.warn(Malformed, tag, d.c.off, fmt.Sprintf("field %q: unit selector %q is not a digit", name, raw[len(raw)-1]))
	}
	d.set(tag, name, Quantity(float64(v), unit))
	return n, nil
}

// decodeExposure decodes "float32 seconds, averaging mode, spare".
func (d *leemDecoder) decodeExposure(tag byte, r rule) (int, error) {
	v, err := d.c.float32At(1)
	if err != nil {
		return 0, err
	}
	mode, err := d.c.peek(5, 1)
	if err != nil {
		return 0, err
	}
	d.set(tag, r.names[0], Quantity(float64(v), r.unit))
	d.set(tag, r.names[1], Int(int64(mode[0])))
	d.o.logger.Debug().Uint8("tag", tag).Stringer("averaging", AveragingMode(mode[0])).Msg("averaging mode")
	return 6, nil
}

// decodeGauge decodes "label NUL unit NUL float32", keyed by label.
func (d *leemDecoder) decodeGauge(tag byte) (int, error) {
	rawLabel, err := d.c.cstringAt(1)
	if err != nil {
		return 0, err
	}
	rawUnit, err := d.c.cstringAt(len(rawLabel) + 2)
	if err != nil {
		return 0, err
	}
	at := len(rawLabel) + len(rawUnit) + 3
	v, err := d.c.float32At(at)
	if err != nil {
		return 0, err
	}
	label := d.text(rawLabel, tag, 1)
	unit := d.text(rawUnit, tag, len(rawLabel)+2)
	d.set(tag, label, Quantity(float64(v), unit))
	return at - 1 + 4, nil
}

func (d *leemDecoder) decodeText(tag byte, r rule) (int, error) {
	raw, err := d.c.cstringAt(1)
	if err != nil {
		return 0, err
	}
	d.set(tag, r.names[0], Text(d.text(raw, tag, 1)))
	return len(raw) + 1, nil
}

func (d *leemDecoder) decodeFloat(tag byte, r rule) (int, error) {
	v, err := d.c.float32At(1)
	if err != nil {
		return 0, err
	}
	d.set(tag, r.names[0], Quantity(float64(v), r.unit))
	return 4, nil
}

func (d *leemDecoder) decodeFloatPair(tag byte, r rule) (int, error) {
	v0, err := d.c.float32At(1)
	if err != nil {
		return 0, err
	}
	v1, err := d.c.float32At(5)
	if err != nil {
		return 0, err
	}
	d.set(tag, r.names[0], Quantity(float64(v0), r.unit))
	d.set(tag, r.names[1], Quantity(float64(v1), r.unit))
	return 8, nil
}

// decodeState decodes a single state byte.
func (d *leemDecoder) decodeState(tag byte, r rule) (int, error) {
	p, err := d.c.peek(1, 1)
	if err != nil {
		return 0, err
	}
	d.set(tag, r.names[0], Int(int64(p[0])))
	return 1, nil
}

// decodeFieldOfView decodes "description NUL float32 calibration factor".
// The description is "LEED", "none", "disp.pl." or a length in microns.
func (d *leemDecoder) decodeFieldOfView(tag byte, r rule) (int, error) {
	raw, err := d.c.cstringAt(1)
	if err != nil {
		return 0, err
	}
	cal, err := d.c.float32At(len(raw) + 2)
	if err != nil {
		return 0, err
	}
	fov := d.text(raw, tag, 1)
	d.set(tag, r.names[1], Number(float64(cal)))

	switch {
	case strings.HasPrefix(fov, "LEED"):
		d.set(tag, NameLEED, Bool(true))
		d.set(tag, r.names[0], None())
	case strings.HasPrefix(fov, "none"):
		d.set(tag, r.names[0], None())
	case strings.HasPrefix(fov, "disp.pl."):
		d.set(tag, r.names[0], None())
		d.set(tag, NameDispPlane, Bool(true))
	default:
		d.set(tag, NameLEED, Bool(false))
		s := strings.TrimSpace(strings.SplitN(fov, micron, 2)[0])
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			d.warn(Malformed, tag, d.c.off, fmt.Sprintf("unknown field of view %q", fov))
			break
		}
		d.set(tag, r.names[0], Quantity(v, micron))
	}
	return len(raw) + 1 + 4, nil
}

// text decodes a string field found at the given offset from the tag,
// reporting bytes missing from the text table.
func (d *leemDecoder) text(raw []byte, tag byte, at int) string {
	s, bad := decodeText(raw)
	for _, i := range bad {
		d.warn(Encoding, tag, d.c.off+at+i, fmt.Sprintf("byte 0x%02X has no mapping", raw[i]))
	}
	return s
}

func (d *leemDecoder) set(tag byte, name string, v Value) {
	d.md.Set(name, v)
	d.o.logger.Debug().Uint8("tag", tag).Str("name", name).Stringer("value", v).Msg("field")
}

func (d *leemDecoder) warn(kind WarningKind, tag byte, off int, msg string) {
	w := Warning{Kind: kind, Tag: int(tag), Offset: off, Msg: msg}
	d.warnings = append(d.warnings, w)
	d.o.logger.Warn().Str("kind", kind.String()).Uint8("tag", tag).Int("offset", off).Msg(msg)
}
