package fits

import (
	"fmt"
	"math"
)

// Basic image operations on an HDU's pixel planes. All operate in physical
// values, so BSCALE/BZERO scaling is respected.

// FlipHorizontal mirrors every plane around the vertical axis.
func (hdu *ImageHDU) FlipHorizontal() error {
	for ch := 0; ch < hdu.channels; ch++ {
		for y := 0; y < hdu.height; y++ {
			for x := 0; x < hdu.width/2; x++ {
				if err := hdu.swap(x, y, hdu.width-1-x, y, ch); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// FlipVertical mirrors every plane around the horizontal axis.
func (hdu *ImageHDU) FlipVertical() error {
	for ch := 0; ch < hdu.channels; ch++ {
		for y := 0; y < hdu.height/2; y++ {
			for x := 0; x < hdu.width; x++ {
				if err := hdu.swap(x, y, x, hdu.height-1-y, ch); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (hdu *ImageHDU) swap(x1, y1, x2, y2, ch int) error {
	a, err := hdu.Pixel(x1, y1, ch)
	if err != nil {
		return err
	}
	b, err := hdu.Pixel(x2, y2, ch)
	if err != nil {
		return err
	}
	if err := hdu.SetPixel(x1, y1, ch, b); err != nil {
		return err
	}
	return hdu.SetPixel(x2, y2, ch, a)
}

// MinMax returns the smallest and largest physical values of one plane.
func (hdu *ImageHDU) MinMax(ch int) (lo, hi float64, err error) {
	if hdu.width == 0 || hdu.height == 0 {
		return 0, 0, fmt.Errorf("fits: min/max of empty image: %w", ErrBadAxes)
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for y := 0; y < hdu.height; y++ {
		for x := 0; x < hdu.width; x++ {
			v, err := hdu.Pixel(x, y, ch)
			if err != nil {
				return 0, 0, err
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi, nil
}

// Stretch rescales one plane linearly so its values span [newLo, newHi].
// A constant plane maps entirely to newLo.
func (hdu *ImageHDU) Stretch(ch int, newLo, newHi float64) error {
	lo, hi, err := hdu.MinMax(ch)
	if err != nil {
		return err
	}
	span := hi - lo
	for y := 0; y < hdu.height; y++ {
		for x := 0; x < hdu.width; x++ {
			v, err := hdu.Pixel(x, y, ch)
			if err != nil {
				return err
			}
			out := newLo
			if span != 0 {
				out = newLo + (v-lo)/span*(newHi-newLo)
			}
			if err := hdu.SetPixel(x, y, ch, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// Histogram buckets one plane's physical values into bins between the
// plane's minimum and maximum. Values at the maximum land in the last bin.
func (hdu *ImageHDU) Histogram(ch, bins int) ([]int, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("fits: histogram with %d bins: %w", bins, ErrBadAxes)
	}
	lo, hi, err := hdu.MinMax(ch)
	if err != nil {
		return nil, err
	}
	out := make([]int, bins)
	span := hi - lo
	for y := 0; y < hdu.height; y++ {
		for x := 0; x < hdu.width; x++ {
			v, err := hdu.Pixel(x, y, ch)
			if err != nil {
				return nil, err
			}
			idx := 0
			if span != 0 {
				idx = int((v - lo) / span * float64(bins))
				if idx >= bins {
					idx = bins - 1
				}
			}
			out[idx]++
		}
	}
	return out, nil
}
