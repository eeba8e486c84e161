// Package fits provides reading and writing of FITS (Flexible Image
// Transport System) astronomical image files.
//
// # Overview
//
// This package implements the FITS primary/extension image layout: 80-byte
// header keyword cards grouped into 2880-byte header units, followed by a
// big-endian data unit padded to the same block size. It focuses on image
// HDUs with BITPIX of 8, 16, 32, -32, or -64 and up to three axes
// (width, height, channels).
//
// # Key Types
//
//   - Card: one 80-byte header keyword record
//   - Header: an ordered card list with typed accessors
//   - ImageHDU: header plus pixel data with physical-value scaling
//   - File: the ordered HDU list of one FITS file
//
// # Opening a file
//
//	f, err := fits.Open("m31.fits")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hdu := f.Primary()
//	v, err := hdu.Pixel(10, 20, 0)
//
// On unix platforms the file is memory-mapped while parsing; parsed headers
// and pixel data are owned copies, so the mapping is released before Open
// returns.
//
// # Creating a file
//
//	hdu, _ := fits.NewImageHDU(fits.ImageConfig{Width: 64, Height: 64, BitPix: 16})
//	hdu.SetPixel(0, 0, 0, 512)
//	f := &fits.File{}
//	f.Append(hdu)
//	err := f.WriteFile("out.fits")
package fits
