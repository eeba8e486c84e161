package fits

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func gradientHDU(t *testing.T) *ImageHDU {
	t.Helper()
	hdu, err := NewImageHDU(ImageConfig{Width: 4, Height: 2, BitPix: -32})
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			require.NoError(t, hdu.SetPixel(x, y, 0, float64(x)))
		}
	}
	return hdu
}

func TestFlipHorizontal(t *testing.T) {
	hdu := gradientHDU(t)
	require.NoError(t, hdu.FlipHorizontal())

	v, err := hdu.Pixel(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
	v, _ = hdu.Pixel(3, 1, 0)
	require.Equal(t, 0.0, v)
}

func TestFlipVertical(t *testing.T) {
	hdu, err := NewImageHDU(ImageConfig{Width: 2, Height: 3, BitPix: 16})
	require.NoError(t, err)
	require.NoError(t, hdu.SetPixel(0, 0, 0, 9))
	require.NoError(t, hdu.FlipVertical())

	v, err := hdu.Pixel(0, 2, 0)
	require.NoError(t, err)
	require.Equal(t, 9.0, v)
	v, _ = hdu.Pixel(0, 0, 0)
	require.Equal(t, 0.0, v)
}

func TestMinMaxAndStretch(t *testing.T) {
	hdu := gradientHDU(t)

	lo, hi, err := hdu.MinMax(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, lo)
	require.Equal(t, 3.0, hi)

	require.NoError(t, hdu.Stretch(0, 0, 300))
	lo, hi, err = hdu.MinMax(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, lo)
	require.Equal(t, 300.0, hi)

	v, err := hdu.Pixel(1, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 100.0, v)
}

func TestStretchConstantPlane(t *testing.T) {
	hdu, err := NewImageHDU(ImageConfig{Width: 2, Height: 2, BitPix: -64})
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			require.NoError(t, hdu.SetPixel(x, y, 0, 5))
		}
	}
	require.NoError(t, hdu.Stretch(0, 10, 20))
	v, err := hdu.Pixel(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 10.0, v)
}

func TestHistogram(t *testing.T) {
	hdu := gradientHDU(t)

	bins, err := hdu.Histogram(0, 4)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 2, 2}, bins)

	_, err = hdu.Histogram(0, 0)
	require.ErrorIs(t, err, ErrBadAxes)
}
