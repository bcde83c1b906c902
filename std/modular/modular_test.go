package modular

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarclib/quarc/backend/statevector"
	"github.com/quarclib/quarc/nums"
	"github.com/quarclib/quarc/quantum"
	"github.com/quarclib/quarc/register"
)

func newSim(t *testing.T, capacity int) (*statevector.Engine, *quantum.API) {
	t.Helper()
	e, err := statevector.New(capacity, statevector.WithReleaseCheck())
	require.NoError(t, err)
	return e, quantum.NewAPI(e)
}

func allocReg(t *testing.T, api *quantum.API, width int, value int64) register.LittleEndian {
	t.Helper()
	qs, err := api.Engine().Allocate(width)
	require.NoError(t, err)
	bits, err := register.IntToBits(value, width)
	require.NoError(t, err)
	for i, b := range bits {
		if b {
			require.NoError(t, api.X(qs[i]))
		}
	}
	return register.LittleEndian(qs)
}

func measure(t *testing.T, e *statevector.Engine, qs []quantum.Qubit) int64 {
	t.Helper()
	v, err := e.MeasureValue(qs)
	require.NoError(t, err)
	return v
}

func TestIncrementByInteger(t *testing.T) {
	const width = 4
	for _, inc := range []int64{0, 1, 5, 15, -1, -7} {
		for x := int64(0); x < 1<<width; x++ {
			e, api := newSim(t, width)
			target := allocReg(t, api, width, x)

			require.NoError(t, IncrementByInteger(api, inc, target))

			want := nums.Mod(x+inc, 1<<width)
			require.Equal(t, want, measure(t, e, target), "x=%d inc=%d", x, inc)
		}
	}
}

func TestIncrementPhaseAdjointNegates(t *testing.T) {
	assert := require.New(t)

	e, api := newSim(t, 4)
	target := allocReg(t, api, 4, 11)

	// +6 then the adjoint of +6 is the identity
	assert.NoError(IncrementByInteger(api, 6, target))
	assert.NoError(api.Adjoint(func(api *quantum.API) error {
		return IncrementByInteger(api, 6, target)
	}))
	assert.Equal(int64(11), measure(t, e, target))
}

func TestModularIncrement(t *testing.T) {
	const (
		modulus = 13
		width   = 5
	)
	for _, inc := range []int64{0, 1, 7, 9, 25, -1} {
		for x := int64(0); x < modulus; x++ {
			e, api := newSim(t, width+1)
			target := allocReg(t, api, width, x)

			require.NoError(t, ModularIncrementLE(api, inc, modulus, target))

			want := nums.Mod(x+inc, modulus)
			require.Equal(t, want, measure(t, e, target), "x=%d inc=%d", x, inc)
		}
	}
}

func TestControlledModularIncrement(t *testing.T) {
	const (
		modulus = 13
		width   = 5
	)
	for _, ctlOn := range []bool{false, true} {
		for x := int64(0); x < modulus; x++ {
			e, api := newSim(t, width+2)
			ctl := allocReg(t, api, 1, b2i(ctlOn))
			target := allocReg(t, api, width, x)

			err := api.Controlled([]quantum.Qubit{ctl[0]}, func(api *quantum.API) error {
				return ModularIncrementLE(api, 9, modulus, target)
			})
			require.NoError(t, err)

			want := x
			if ctlOn {
				want = (x + 9) % modulus
			}
			require.Equal(t, want, measure(t, e, target), "ctl=%v x=%d", ctlOn, x)
			require.Equal(t, b2i(ctlOn), measure(t, e, ctl))
		}
	}
}

func TestModularIncrementRejectsModulus(t *testing.T) {
	assert := require.New(t)

	e, api := newSim(t, 5)
	target := allocReg(t, api, 5, 3)

	// 20 > 2^4: the top bit would not be free
	err := ModularIncrementLE(api, 1, 20, target)
	assert.ErrorIs(err, quantum.ErrOutOfRange)

	err = ModularIncrementLE(api, 1, 1, target)
	assert.ErrorIs(err, quantum.ErrOutOfRange)

	// the register must be untouched after a failed precondition
	assert.Equal(int64(3), measure(t, e, target))
}

func TestModularAddProduct(t *testing.T) {
	const (
		modulus  = 13
		width    = 5
		nbMulti  = 3
		constant = 5
	)
	for x := int64(0); x < 1<<nbMulti; x++ {
		for y := int64(0); y < modulus; y++ {
			e, api := newSim(t, width+nbMulti+1)
			multiplier := allocReg(t, api, nbMulti, x)
			target := allocReg(t, api, width, y)

			require.NoError(t, ModularAddProductLE(api, constant, modulus, multiplier, target))

			want := nums.Mod(y+constant*x, modulus)
			require.Equal(t, want, measure(t, e, target), "x=%d y=%d", x, y)
			require.Equal(t, x, measure(t, e, multiplier), "x=%d y=%d: multiplier modified", x, y)
		}
	}
}

func TestModularMultiplyByConstant(t *testing.T) {
	const (
		modulus = 13
		width   = 5
	)
	for _, constant := range []int64{1, 2, 4, 7, 12} {
		for x := int64(0); x < modulus; x++ {
			e, api := newSim(t, 2*width+1)
			multiplier := allocReg(t, api, width, x)

			require.NoError(t, ModularMultiplyByConstantLE(api, constant, modulus, multiplier))

			want := nums.Mod(constant*x, modulus)
			require.Equal(t, want, measure(t, e, multiplier), "c=%d x=%d", constant, x)
		}
	}
}

func TestModularMultiplyInverseRoundTrip(t *testing.T) {
	const (
		modulus  = 13
		width    = 5
		constant = 4
	)
	assert := require.New(t)

	inverse, err := nums.InverseMod(constant, modulus)
	assert.NoError(err)

	e, api := newSim(t, 2*width+1)
	multiplier := allocReg(t, api, width, 7)

	assert.NoError(ModularMultiplyByConstantLE(api, constant, modulus, multiplier))
	assert.NoError(ModularMultiplyByConstantLE(api, inverse, modulus, multiplier))
	assert.Equal(int64(7), measure(t, e, multiplier))
}

func TestModularMultiplyScratchBudget(t *testing.T) {
	const (
		modulus = 13
		width   = 5
	)
	assert := require.New(t)

	// the multiplier needs exactly width + 1 scratch qubits at its peak: the
	// summand register plus a single overflow flag, also during the inverse
	// add-product that clears the summand
	e, api := newSim(t, 2*width+1)
	multiplier := allocReg(t, api, width, 9)

	assert.NoError(ModularMultiplyByConstantLE(api, 7, modulus, multiplier))
	assert.Equal(int64(9*7%modulus), measure(t, e, multiplier))

	// every scratch qubit is back in the pool
	free, err := e.Allocate(width + 1)
	assert.NoError(err)
	assert.Len(free, width+1)
}

func TestModularMultiplyRejectsNonCoprime(t *testing.T) {
	assert := require.New(t)

	e, api := newSim(t, 5)
	multiplier := allocReg(t, api, 5, 3)

	// gcd(4, 6) = 2: no modular inverse, must fail before any gate
	err := ModularMultiplyByConstantLE(api, 4, 6, multiplier)
	assert.ErrorIs(err, nums.ErrNotCoprime)
	assert.Equal(int64(3), measure(t, e, multiplier))

	err = ModularMultiplyByConstantLE(api, 6, 6, multiplier)
	assert.ErrorIs(err, quantum.ErrOutOfRange)

	err = ModularMultiplyByConstantLE(api, -1, 6, multiplier)
	assert.ErrorIs(err, quantum.ErrOutOfRange)
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
