package uview

import (
	"image"
	"image/color"
	"io"
	"io/ioutil"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// File is a decoded UView file. It is not modified after Decode returns;
// callers changing Pixels in place must own the File.
type File struct {
	Header   *Header
	Metadata *Metadata
	Markups  *Markups // nil when the file declares no markup block.
	Pixels   *PixelGrid
	Warnings []Warning
}

// Timestamp returns the acquisition time.
func (f *File) Timestamp() time.Time {
	return f.Header.Timestamp
}

// Diagnostics returns the warnings as a single error, or nil.
func (f *File) Diagnostics() error {
	var err *multierror.Error
	for _, w := range f.Warnings {
		err = multierror.Append(err, w)
	}
	return err.ErrorOrNil()
}

//------------------------//
// Reader                 //
//------------------------//

// DecodeBytes decodes a whole UView file held in buf. buf is not retained
// nor modified. Only FormatError values are returned; non-fatal problems
// are reported in File.Warnings.
func DecodeBytes(buf []byte, opts ...DecodeOption) (*File, error) {
	o := newOptions(opts)

	h, b, err := parseHeader(newCursor(buf))
	if err != nil {
		return nil, err
	}
	o.logger.Debug().
		Str("id", h.ID).
		Int("width", h.Width).
		Int("height", h.Height).
		Time("timestamp", h.Timestamp).
		Int("leemdata_version", h.LeemDataVersion).
		Msg("header")

	f := &File{
		Header:   h,
		Metadata: NewMetadata(),
	}
	h.setFields(f.Metadata)

	if b.markup != nil {
		var warnings []Warning
		f.Markups, warnings = decodeMarkups(b.markup, o)
		f.Warnings = append(f.Warnings, warnings...)
	}
	f.Warnings = append(f.Warnings, decodeLeemData(b.leemData, f.Metadata, o)...)

	if f.Pixels, err = extractPixels(buf, h.Width, h.Height); err != nil {
		return nil, err
	}
	return f, nil
}

// DecodeReader reads r until EOF and decodes its content.
func DecodeReader(r io.Reader, opts ...DecodeOption) (*File, error) {
	buf, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read data")
	}
	return DecodeBytes(buf, opts...)
}

// DecodeFile reads and decodes the file at path.
func DecodeFile(path string, opts ...DecodeOption) (*File, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read file")
	}
	f, err := DecodeBytes(buf, opts...)
	return f, errors.Wrapf(err, "could not decode %s", path)
}

// DecodeConfig returns the color model and dimensions of a UView image
// without decoding the metadata nor the image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	buf, err := ioutil.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}
	h, _, err := parseHeader(newCursor(buf))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.Gray16Model,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}

// Decode reads a UView file from r and returns its image as *image.Gray16.
func Decode(r io.Reader) (image.Image, error) {
	f, err := DecodeReader(r)
	if err != nil {
		return nil, err
	}
	return f.Pixels.Gray16(), nil
}

func init() {
	image.RegisterFormat("uview", fileIDPrefix, Decode, DecodeConfig)
}
