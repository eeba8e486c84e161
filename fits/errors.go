package fits

import "errors"

var (
	// ErrNotFITS indicates the input does not start with a SIMPLE card.
	ErrNotFITS = errors.New("fits: not a FITS file")

	// ErrTruncated indicates the input ended inside a header or data unit.
	ErrTruncated = errors.New("fits: truncated input")

	// ErrBadCard indicates a malformed 80-byte keyword record.
	ErrBadCard = errors.New("fits: malformed header card")

	// ErrMissingKeyword indicates a required keyword is absent.
	ErrMissingKeyword = errors.New("fits: missing keyword")

	// ErrBadValue indicates a keyword value could not be parsed as the
	// requested type.
	ErrBadValue = errors.New("fits: bad keyword value")

	// ErrBadBitpix indicates an unsupported BITPIX value.
	ErrBadBitpix = errors.New("fits: unsupported BITPIX")

	// ErrBadAxes indicates inconsistent NAXIS keywords.
	ErrBadAxes = errors.New("fits: invalid axis configuration")

	// ErrBounds indicates a pixel coordinate outside the image.
	ErrBounds = errors.New("fits: pixel out of bounds")
)
