// Package register defines the typed qubit-register views used by the
// arithmetic gadgets: little-endian, big-endian, and the Fourier-basis
// little-endian encoding. The views are tagged slices over the same qubit
// handles; converting between the endian views is a classical relabeling
// with no quantum cost.
package register

import (
	"fmt"

	"github.com/quarclib/quarc/quantum"
)

// MaxWidth bounds register widths so every classical constant a register can
// hold fits an int64 with headroom for the comparator's carry.
const MaxWidth = 62

// LittleEndian is an ordered qubit sequence storing bit 0 (least significant)
// first.
type LittleEndian []quantum.Qubit

// BigEndian is an ordered qubit sequence storing the most significant bit
// first.
type BigEndian []quantum.Qubit

// PhaseLittleEndian is a LittleEndian register whose integer value has been
// moved to the Fourier basis: qubit j carries the phase exp(2πi·x/2^(j+1)).
// Only phase rotations act on it directly; transform back before measuring.
type PhaseLittleEndian []quantum.Qubit

func checkWidth(n int) error {
	if n < 1 || n > MaxWidth {
		return fmt.Errorf("%w: register width %d not in [1, %d]", quantum.ErrOutOfRange, n, MaxWidth)
	}
	return nil
}

// NewLittleEndian wraps qs as a little-endian register.
func NewLittleEndian(qs []quantum.Qubit) (LittleEndian, error) {
	if err := checkWidth(len(qs)); err != nil {
		return nil, err
	}
	return LittleEndian(qs), nil
}

// NewBigEndian wraps qs as a big-endian register.
func NewBigEndian(qs []quantum.Qubit) (BigEndian, error) {
	if err := checkWidth(len(qs)); err != nil {
		return nil, err
	}
	return BigEndian(qs), nil
}

// Width returns the number of qubits in the register.
func (le LittleEndian) Width() int { return len(le) }

func (be BigEndian) Width() int { return len(be) }

func (p PhaseLittleEndian) Width() int { return len(p) }

func reversed(qs []quantum.Qubit) []quantum.Qubit {
	out := make([]quantum.Qubit, len(qs))
	for i, q := range qs {
		out[len(qs)-1-i] = q
	}
	return out
}

// BigEndian returns the same register viewed most-significant-bit first.
func (le LittleEndian) BigEndian() BigEndian {
	return BigEndian(reversed(le))
}

// LittleEndian returns the same register viewed least-significant-bit first.
func (be BigEndian) LittleEndian() LittleEndian {
	return LittleEndian(reversed(be))
}

// Phase retags the register as Fourier-basis. The caller is responsible for
// having applied the transform; this is a relabeling only.
func (le LittleEndian) Phase() PhaseLittleEndian {
	return PhaseLittleEndian(le)
}

// Computational retags the register as computational-basis. The caller is
// responsible for having applied the inverse transform.
func (p PhaseLittleEndian) Computational() LittleEndian {
	return LittleEndian(p)
}
