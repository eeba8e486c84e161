package fits

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joshuapare/metakit/internal/format"
	"github.com/joshuapare/metakit/internal/mmfile"
)

// File is an ordered list of header-data units. The first HDU is the
// primary; the rest serialize as IMAGE extensions.
type File struct {
	hdus []*ImageHDU
}

// HDUs returns the units in file order.
func (f *File) HDUs() []*ImageHDU {
	out := make([]*ImageHDU, len(f.hdus))
	copy(out, f.hdus)
	return out
}

// Len returns the number of HDUs.
func (f *File) Len() int { return len(f.hdus) }

// Primary returns the first HDU, or nil for an empty file.
func (f *File) Primary() *ImageHDU {
	if len(f.hdus) == 0 {
		return nil
	}
	return f.hdus[0]
}

// HDU returns the unit at index.
func (f *File) HDU(index int) (*ImageHDU, error) {
	if index < 0 || index >= len(f.hdus) {
		return nil, fmt.Errorf("fits: HDU %d of %d: %w", index, len(f.hdus), ErrBounds)
	}
	return f.hdus[index], nil
}

// Append adds an HDU at the end. The first appended unit becomes primary;
// later ones become IMAGE extensions.
func (f *File) Append(hdu *ImageHDU) {
	if len(f.hdus) == 0 {
		hdu.primary = true
	} else {
		hdu.markExtension()
	}
	f.hdus = append(f.hdus, hdu)
}

// Remove deletes the HDU at index.
func (f *File) Remove(index int) error {
	if index < 0 || index >= len(f.hdus) {
		return fmt.Errorf("fits: remove HDU %d of %d: %w", index, len(f.hdus), ErrBounds)
	}
	f.hdus = append(f.hdus[:index], f.hdus[index+1:]...)
	return nil
}

// Parse decodes a whole FITS byte stream. Headers and data are copied, so
// the input buffer may be released afterwards.
func Parse(data []byte) (*File, error) {
	if len(data) < format.BlockSize {
		return nil, fmt.Errorf("fits: %d bytes: %w", len(data), ErrTruncated)
	}
	if !strings.HasPrefix(string(data[:format.KeywordSize]), "SIMPLE") {
		return nil, fmt.Errorf("fits: first keyword %q: %w", string(data[:format.KeywordSize]), ErrNotFITS)
	}

	f := &File{}
	off := 0
	for off < len(data) {
		keyword := strings.TrimRight(string(data[off:off+format.KeywordSize]), " ")
		primary := off == 0
		if !primary && keyword != "XTENSION" {
			// Trailing padding after the last unit.
			break
		}

		h, consumed, err := parseHeader(data[off:])
		if err != nil {
			return nil, err
		}
		off += consumed

		hdu, err := hduFromHeader(h, data[off:], primary)
		if err != nil {
			return nil, err
		}
		off += format.AlignBlock(len(hdu.data))
		f.hdus = append(f.hdus, hdu)
	}
	return f, nil
}

// Open reads and parses the FITS file at path. On unix the file is
// memory-mapped during the parse; the returned File owns copies of
// everything, so no mapping outlives the call.
func Open(path string) (*File, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Write serializes every HDU to w.
func (f *File) Write(w io.Writer) error {
	if len(f.hdus) == 0 {
		return fmt.Errorf("fits: write empty file: %w", ErrBadAxes)
	}
	for _, hdu := range f.hdus {
		out, err := hdu.serialize()
		if err != nil {
			return err
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile serializes the file to path.
func (f *File) WriteFile(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Write(out); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
