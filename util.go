package uview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// A FormatError reports that the input is not a valid UView file.
type FormatError string

func (e FormatError) Error() string {
	return fmt.Sprintf("uview: invalid format: %s", string(e))
}

// WarningKind classifies a non-fatal decode diagnostic.
type WarningKind int

const (
	UnknownTag    WarningKind = iota // Unrecognized leem data tag.
	UnknownMarkup                    // Unrecognized markup record type.
	Encoding                         // Byte without a mapping in the text table.
	Malformed                        // Record with a recognized tag but unusable content.
	Truncated                        // Record running past the end of its block.
)

func (k WarningKind) String() string {
	switch k {
	case UnknownTag:
		return "unknown tag"
	case UnknownMarkup:
		return "unknown markup"
	case Encoding:
		return "encoding"
	case Malformed:
		return "malformed record"
	case Truncated:
		return "truncated record"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// A Warning reports a non-fatal problem found while decoding. Offset is
// relative to the start of the block the record belongs to.
type Warning struct {
	Kind   WarningKind
	Tag    int
	Offset int
	Msg    string
}

func (w Warning) Error() string {
	return fmt.Sprintf("uview: %s (tag %d at offset %d): %s", w.Kind, w.Tag, w.Offset, w.Msg)
}

// text is the single-byte table string fields are stored in.
var text = charmap.Windows1252

// Bytes left undefined by the Windows-1252 table.
func undefinedByte(b byte) bool {
	switch b {
	case 0x81, 0x8D, 0x8F, 0x90, 0x9D:
		return true
	}
	return false
}

// decodeText decodes p from the single-byte table. It returns the offsets
// of the bytes replaced by utf8.RuneError.
func decodeText(p []byte) (string, []int) {
	var bad []int
	var sb strings.Builder
	sb.Grow(len(p))
	for i, b := range p {
		if undefinedByte(b) {
			bad = append(bad, i)
			sb.WriteRune(utf8.RuneError)
			continue
		}
		sb.WriteRune(text.DecodeByte(b))
	}
	return sb.String(), bad
}
