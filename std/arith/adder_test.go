package arith

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarclib/quarc/backend/statevector"
	"github.com/quarclib/quarc/quantum"
	"github.com/quarclib/quarc/register"
)

type adderFunc func(api *quantum.API, xs, ys register.LittleEndian, carry quantum.Qubit) error

var adders = []struct {
	name string
	fn   adderFunc
}{
	{"d", AddD},
	{"cdkm", AddCDKM},
	{"ttk", AddTTK},
}

// newSim returns an engine with the given pool size and an API driving it.
func newSim(t *testing.T, capacity int) (*statevector.Engine, *quantum.API) {
	t.Helper()
	e, err := statevector.New(capacity, statevector.WithReleaseCheck())
	require.NoError(t, err)
	return e, quantum.NewAPI(e)
}

// allocReg allocates a register and flips it to the given classical value.
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

func TestAdderAllPairs(t *testing.T) {
	for _, adder := range adders {
		t.Run(adder.name, func(t *testing.T) {
			for width := 1; width <= 4; width++ {
				for x := int64(0); x < 1<<width; x++ {
					for y := int64(0); y < 1<<width; y++ {
						e, api := newSim(t, 3*width+1)
						xs := allocReg(t, api, width, x)
						ys := allocReg(t, api, width, y)
						carry := allocReg(t, api, 1, 0)

						require.NoError(t, adder.fn(api, xs, ys, carry[0]))

						sum := x + y
						require.Equal(t, x, measure(t, e, xs),
							"width=%d x=%d y=%d: xs modified", width, x, y)
						require.Equal(t, sum%(1<<width), measure(t, e, ys),
							"width=%d x=%d y=%d", width, x, y)
						require.Equal(t, sum>>width, measure(t, e, carry),
							"width=%d x=%d y=%d: carry-out", width, x, y)
					}
				}
			}
		})
	}
}

func TestAdderAdjointSubtracts(t *testing.T) {
	for _, adder := range adders {
		t.Run(adder.name, func(t *testing.T) {
			const width = 3
			for x := int64(0); x < 1<<width; x++ {
				for y := int64(0); y < 1<<width; y++ {
					e, api := newSim(t, 3*width+1)
					xs := allocReg(t, api, width, x)
					ys := allocReg(t, api, width, y)
					carry := allocReg(t, api, 1, 0)

					require.NoError(t, adder.fn(api, xs, ys, carry[0]))
					require.NoError(t, api.Adjoint(func(api *quantum.API) error {
						return adder.fn(api, xs, ys, carry[0])
					}))

					require.Equal(t, x, measure(t, e, xs))
					require.Equal(t, y, measure(t, e, ys))
					require.Equal(t, int64(0), measure(t, e, carry))
				}
			}
		})
	}
}

func TestControlledAdder(t *testing.T) {
	for _, adder := range adders {
		t.Run(adder.name, func(t *testing.T) {
			const width = 3
			for _, ctlOn := range []bool{false, true} {
				for x := int64(0); x < 1<<width; x++ {
					for y := int64(0); y < 1<<width; y++ {
						e, api := newSim(t, 3*width+2)
						ctl := allocReg(t, api, 1, b2i(ctlOn))
						xs := allocReg(t, api, width, x)
						ys := allocReg(t, api, width, y)
						carry := allocReg(t, api, 1, 0)

						err := api.Controlled([]quantum.Qubit{ctl[0]}, func(api *quantum.API) error {
							return adder.fn(api, xs, ys, carry[0])
						})
						require.NoError(t, err)

						wantY, wantC := y, int64(0)
						if ctlOn {
							wantY = (x + y) % (1 << width)
							wantC = (x + y) >> width
						}
						require.Equal(t, b2i(ctlOn), measure(t, e, ctl))
						require.Equal(t, x, measure(t, e, xs),
							"ctl=%v x=%d y=%d: xs modified", ctlOn, x, y)
						require.Equal(t, wantY, measure(t, e, ys),
							"ctl=%v x=%d y=%d", ctlOn, x, y)
						require.Equal(t, wantC, measure(t, e, carry),
							"ctl=%v x=%d y=%d: carry-out", ctlOn, x, y)
					}
				}
			}
		})
	}
}

func TestAdderLengthMismatch(t *testing.T) {
	for _, adder := range adders {
		t.Run(adder.name, func(t *testing.T) {
			e, api := newSim(t, 8)
			xs := allocReg(t, api, 3, 5)
			ys := allocReg(t, api, 2, 1)
			carry := allocReg(t, api, 1, 0)

			err := adder.fn(api, xs, ys, carry[0])
			require.ErrorIs(t, err, quantum.ErrLengthMismatch)

			// failed preconditions must not have touched the registers
			require.Equal(t, int64(5), measure(t, e, xs))
			require.Equal(t, int64(1), measure(t, e, ys))
		})
	}
}

func TestCarrySum(t *testing.T) {
	// truth table of the one-bit full adder primitives
	for cin := int64(0); cin <= 1; cin++ {
		for a := int64(0); a <= 1; a++ {
			for b := int64(0); b <= 1; b++ {
				t.Run(fmt.Sprintf("cin=%d,a=%d,b=%d", cin, a, b), func(t *testing.T) {
					e, api := newSim(t, 4)
					qs := allocReg(t, api, 4, cin|a<<1|b<<2)

					require.NoError(t, Carry(api, qs[0], qs[1], qs[2], qs[3]))
					carryOut := (cin + a + b) >> 1
					require.Equal(t, carryOut, measure(t, e, qs[3:4]))
					require.Equal(t, a^b, measure(t, e, qs[2:3]))

					e2, api2 := newSim(t, 3)
					qs2 := allocReg(t, api2, 3, cin|a<<1|b<<2)
					require.NoError(t, Sum(api2, qs2[0], qs2[1], qs2[2]))
					require.Equal(t, cin^a^b, measure(t, e2, qs2[2:3]))
				})
			}
		}
	}
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
