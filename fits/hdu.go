package fits

import (
	"fmt"

	"github.com/joshuapare/metakit/internal/format"
)

// ImageHDU is one header-data unit holding an image: the keyword header and
// the big-endian pixel data.
//
// Pixels are stored in FITS axis order: x fastest, then y, with the channel
// plane (NAXIS3) slowest. Pixel and SetPixel exchange physical values, with
// BSCALE and BZERO applied.
type ImageHDU struct {
	Header Header

	data     []byte
	bitpix   int
	width    int
	height   int
	channels int
	bscale   float64
	bzero    float64
	primary  bool
}

// ImageConfig describes a new image HDU.
type ImageConfig struct {
	Width    int
	Height   int
	Channels int // 0 or 1 means a single plane
	BitPix   int // 8, 16, 32, -32 or -64
}

func bytesPerPixel(bitpix int) (int, error) {
	switch bitpix {
	case 8, 16, 32, -32, -64:
		n := bitpix
		if n < 0 {
			n = -n
		}
		return n / 8, nil
	default:
		return 0, fmt.Errorf("fits: BITPIX %d: %w", bitpix, ErrBadBitpix)
	}
}

// NewImageHDU allocates a zero-filled primary image HDU and its required
// header cards.
func NewImageHDU(cfg ImageConfig) (*ImageHDU, error) {
	if cfg.Channels == 0 {
		cfg.Channels = 1
	}
	bpp, err := bytesPerPixel(cfg.BitPix)
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Channels < 1 {
		return nil, fmt.Errorf("fits: image %dx%dx%d: %w", cfg.Width, cfg.Height, cfg.Channels, ErrBadAxes)
	}

	hdu := &ImageHDU{
		bitpix:   cfg.BitPix,
		width:    cfg.Width,
		height:   cfg.Height,
		channels: cfg.Channels,
		bscale:   1,
		bzero:    0,
		primary:  true,
		data:     make([]byte, cfg.Width*cfg.Height*cfg.Channels*bpp),
	}

	h := &hdu.Header
	h.SetBool("SIMPLE", true, "conforms to FITS standard")
	h.SetInt("BITPIX", cfg.BitPix, "bits per data value")
	if cfg.Channels > 1 {
		h.SetInt("NAXIS", 3, "number of data axes")
	} else {
		h.SetInt("NAXIS", 2, "number of data axes")
	}
	h.SetInt("NAXIS1", cfg.Width, "")
	h.SetInt("NAXIS2", cfg.Height, "")
	if cfg.Channels > 1 {
		h.SetInt("NAXIS3", cfg.Channels, "")
	}
	return hdu, nil
}

// newExtensionHDU mirrors NewImageHDU for IMAGE extensions.
func (hdu *ImageHDU) markExtension() {
	hdu.primary = false
	hdu.Header.Remove("SIMPLE")
	if hdu.Header.Index("XTENSION") != 0 {
		hdu.Header.Remove("XTENSION")
		hdu.Header.cards = append([]Card{{Keyword: "XTENSION", Value: "IMAGE", IsString: true}}, hdu.Header.cards...)
	}
}

// hduFromHeader builds the in-memory image from a parsed header and its
// raw data unit.
func hduFromHeader(h *Header, data []byte, primary bool) (*ImageHDU, error) {
	bitpix, err := h.Int("BITPIX")
	if err != nil {
		return nil, err
	}
	bpp, err := bytesPerPixel(bitpix)
	if err != nil {
		return nil, err
	}
	naxis, err := h.Int("NAXIS")
	if err != nil {
		return nil, err
	}
	if naxis < 0 || naxis > 3 {
		return nil, fmt.Errorf("fits: NAXIS %d: %w", naxis, ErrBadAxes)
	}

	hdu := &ImageHDU{
		Header:  *h,
		bitpix:  bitpix,
		bscale:  h.FloatOr("BSCALE", 1),
		bzero:   h.FloatOr("BZERO", 0),
		primary: primary,
	}
	if naxis == 0 {
		return hdu, nil
	}

	hdu.width = h.IntOr("NAXIS1", 1)
	hdu.height = h.IntOr("NAXIS2", 1)
	hdu.channels = h.IntOr("NAXIS3", 1)
	if hdu.width < 1 || hdu.height < 1 || hdu.channels < 1 {
		return nil, fmt.Errorf("fits: axes %dx%dx%d: %w", hdu.width, hdu.height, hdu.channels, ErrBadAxes)
	}

	want := hdu.width * hdu.height * hdu.channels * bpp
	if len(data) < want {
		return nil, fmt.Errorf("fits: data unit holds %d of %d bytes: %w", len(data), want, ErrTruncated)
	}
	hdu.data = make([]byte, want)
	copy(hdu.data, data[:want])
	return hdu, nil
}

// Width returns the NAXIS1 extent.
func (hdu *ImageHDU) Width() int { return hdu.width }

// Height returns the NAXIS2 extent.
func (hdu *ImageHDU) Height() int { return hdu.height }

// Channels returns the NAXIS3 extent (1 for two-axis images).
func (hdu *ImageHDU) Channels() int { return hdu.channels }

// BitPix returns the stored BITPIX.
func (hdu *ImageHDU) BitPix() int { return hdu.bitpix }

// IsPrimary reports whether this HDU serializes with SIMPLE rather than
// XTENSION.
func (hdu *ImageHDU) IsPrimary() bool { return hdu.primary }

// Data exposes the raw big-endian data unit, unpadded.
func (hdu *ImageHDU) Data() []byte { return hdu.data }

func (hdu *ImageHDU) offset(x, y, ch int) (int, error) {
	if x < 0 || x >= hdu.width || y < 0 || y >= hdu.height || ch < 0 || ch >= hdu.channels {
		return 0, fmt.Errorf("fits: pixel (%d,%d,%d) outside %dx%dx%d: %w",
			x, y, ch, hdu.width, hdu.height, hdu.channels, ErrBounds)
	}
	bpp, _ := bytesPerPixel(hdu.bitpix)
	return ((ch*hdu.height+y)*hdu.width + x) * bpp, nil
}

// Pixel returns the physical value at (x, y, ch): BZERO + BSCALE * raw.
func (hdu *ImageHDU) Pixel(x, y, ch int) (float64, error) {
	off, err := hdu.offset(x, y, ch)
	if err != nil {
		return 0, err
	}
	var raw float64
	switch hdu.bitpix {
	case 8:
		raw = float64(hdu.data[off])
	case 16:
		raw = float64(format.ReadI16(hdu.data, off))
	case 32:
		raw = float64(format.ReadI32(hdu.data, off))
	case -32:
		raw = float64(format.ReadF32(hdu.data, off))
	case -64:
		raw = format.ReadF64(hdu.data, off)
	}
	return hdu.bzero + hdu.bscale*raw, nil
}

// SetPixel stores the physical value at (x, y, ch), applying the inverse
// scaling. Integer forms truncate toward zero.
func (hdu *ImageHDU) SetPixel(x, y, ch int, v float64) error {
	off, err := hdu.offset(x, y, ch)
	if err != nil {
		return err
	}
	raw := (v - hdu.bzero) / hdu.bscale
	switch hdu.bitpix {
	case 8:
		hdu.data[off] = byte(int64(raw))
	case 16:
		format.PutI16(hdu.data, off, int16(int64(raw)))
	case 32:
		format.PutI32(hdu.data, off, int32(int64(raw)))
	case -32:
		format.PutF32(hdu.data, off, float32(raw))
	case -64:
		format.PutF64(hdu.data, off, raw)
	}
	return nil
}

// serialize renders header plus padded data unit.
func (hdu *ImageHDU) serialize() ([]byte, error) {
	head, err := hdu.Header.Serialize()
	if err != nil {
		return nil, err
	}
	if len(hdu.data) == 0 {
		return head, nil
	}
	out := make([]byte, len(head)+format.AlignBlock(len(hdu.data)))
	copy(out, head)
	copy(out[len(head):], hdu.data)
	return out, nil
}
