package quantum

import "errors"

var (
	// ErrLengthMismatch is returned when an operation requiring equal-width
	// registers is given operands of different widths. It is checked before
	// any gate is issued.
	ErrLengthMismatch = errors.New("operand registers must have equal width")

	// ErrOutOfRange is returned when a classical parameter (value, modulus,
	// multiplier, width) lies outside its documented domain.
	ErrOutOfRange = errors.New("parameter out of range")

	// ErrPrecondition is returned when a classical precondition of an
	// operation does not hold, e.g. a multiplier that is not coprime to the
	// modulus.
	ErrPrecondition = errors.New("precondition violated")

	// ErrDirtyRelease is returned by engines that verify ancilla hygiene
	// when a qubit is released with non-zero probability of measuring |1⟩.
	ErrDirtyRelease = errors.New("qubit released outside the |0⟩ state")
)
