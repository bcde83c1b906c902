package register

import (
	"fmt"

	"github.com/quarclib/quarc/quantum"
)

// IntToBits encodes value as width bits, little-endian. It fails when value
// is negative or does not fit in width bits.
func IntToBits(value int64, width int) ([]bool, error) {
	if width < 1 || width > 63 {
		return nil, fmt.Errorf("%w: bit width %d not in [1, 63]", quantum.ErrOutOfRange, width)
	}
	if value < 0 {
		return nil, fmt.Errorf("%w: value %d is negative", quantum.ErrOutOfRange, value)
	}
	if width < 63 && value >= 1<<width {
		return nil, fmt.Errorf("%w: value %d does not fit in %d bits", quantum.ErrOutOfRange, value, width)
	}
	bits := make([]bool, width)
	for i := range bits {
		bits[i] = value>>i&1 == 1
	}
	return bits, nil
}

// BitsToInt decodes a little-endian bit sequence. It fails when the sequence
// is empty or 64 bits or wider, since the result could overflow int64.
func BitsToInt(bits []bool) (int64, error) {
	if len(bits) == 0 {
		return 0, fmt.Errorf("%w: empty bit sequence", quantum.ErrOutOfRange)
	}
	if len(bits) >= 64 {
		return 0, fmt.Errorf("%w: %d bits overflow int64", quantum.ErrOutOfRange, len(bits))
	}
	var value int64
	for i, b := range bits {
		if b {
			value |= 1 << i
		}
	}
	return value, nil
}
