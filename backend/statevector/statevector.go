// Package statevector implements a dense complex128 statevector Engine.
//
// The engine owns a fixed pool of qubits; amplitudes for the whole pool are
// held in memory, so it is only suitable for small circuits (the arithmetic
// gadget tests run well below 20 qubits). Gate kernels are applied in place
// and are parallelized over amplitude chunks for larger pools.
package statevector

import (
	"fmt"
	"math"
	"runtime"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"

	"github.com/quarclib/quarc/debug"
	"github.com/quarclib/quarc/logger"
	"github.com/quarclib/quarc/nums"
	"github.com/quarclib/quarc/quantum"
)

// MaxCapacity bounds the pool size; 1<<30 amplitudes is already 16GiB.
const MaxCapacity = 30

// epsilon is the amplitude tolerance below which a probability is treated as
// zero, absorbing the rounding drift of the 1/√2 butterfly.
const epsilon = 1e-9

// Engine is a dense statevector simulator implementing quantum.Engine.
//
// Not safe for concurrent use; like the API that drives it, the execution
// model is a single linear gate sequence.
type Engine struct {
	amps []complex128
	used *bitset.BitSet // allocated slots
	pool int            // pool capacity in qubits

	nbWorkers    int
	checkRelease bool
	log          zerolog.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithWorkers sets the number of goroutines used by the amplitude kernels.
// Defaults to runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.nbWorkers = n
		}
	}
}

// WithReleaseCheck makes Release verify that the qubit is |0⟩ even in
// non-debug builds.
func WithReleaseCheck() Option {
	return func(e *Engine) {
		e.checkRelease = true
	}
}

// New returns an engine with a pool of capacity qubits, all |0⟩.
func New(capacity int, options ...Option) (*Engine, error) {
	if capacity < 1 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: pool capacity %d not in [1, %d]", quantum.ErrOutOfRange, capacity, MaxCapacity)
	}
	e := &Engine{
		amps:         make([]complex128, 1<<capacity),
		used:         bitset.New(uint(capacity)),
		pool:         capacity,
		nbWorkers:    runtime.NumCPU(),
		checkRelease: debug.Debug,
		log:          logger.Logger().With().Str("backend", "statevector").Logger(),
	}
	e.amps[0] = 1
	for _, option := range options {
		option(e)
	}
	e.log.Debug().Int("capacity", capacity).Int("workers", e.nbWorkers).Msg("engine ready")
	return e, nil
}

// Allocate hands out the n lowest free slots of the pool, each |0⟩.
func (e *Engine) Allocate(n int) ([]quantum.Qubit, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: allocation size %d", quantum.ErrOutOfRange, n)
	}
	if int(e.used.Count())+n > e.pool {
		return nil, fmt.Errorf("%w: pool of %d qubits has %d free, need %d",
			quantum.ErrOutOfRange, e.pool, e.pool-int(e.used.Count()), n)
	}
	qs := make([]quantum.Qubit, 0, n)
	for i, ok := e.used.NextClear(0); ok && len(qs) < n; i, ok = e.used.NextClear(i + 1) {
		e.used.Set(i)
		qs = append(qs, quantum.Qubit(i))
	}
	debug.Assert(len(qs) == n, "slot pool under-allocated")
	return qs, nil
}

// Release returns qubits to the pool. When release checking is on (debug
// builds or WithReleaseCheck) a qubit with any |1⟩ amplitude left is refused.
func (e *Engine) Release(qs ...quantum.Qubit) error {
	for _, q := range qs {
		if err := e.checkQubit(q); err != nil {
			return err
		}
		if e.checkRelease {
			p, err := e.ProbabilityOfOne(q)
			if err != nil {
				return err
			}
			if p > epsilon {
				return fmt.Errorf("%w: qubit %d has P(1)=%g", quantum.ErrDirtyRelease, q, p)
			}
		}
		e.used.Clear(uint(q))
	}
	return nil
}

// Apply executes one primitive gate on the statevector.
func (e *Engine) Apply(g quantum.Gate) error {
	if len(g.Targets) != nbTargets(g.Kind) {
		return fmt.Errorf("%w: %s expects %d target(s), got %d",
			quantum.ErrOutOfRange, g.Kind, nbTargets(g.Kind), len(g.Targets))
	}
	seen := make(map[quantum.Qubit]struct{}, len(g.Controls)+len(g.Targets))
	check := func(q quantum.Qubit) error {
		if err := e.checkQubit(q); err != nil {
			return err
		}
		if _, dup := seen[q]; dup {
			return fmt.Errorf("%w: qubit %d appears twice in gate %s", quantum.ErrOutOfRange, q, g)
		}
		seen[q] = struct{}{}
		return nil
	}
	for _, q := range g.Controls {
		if err := check(q); err != nil {
			return err
		}
	}
	for _, q := range g.Targets {
		if err := check(q); err != nil {
			return err
		}
	}

	var ctrlMask uint64
	for _, q := range g.Controls {
		ctrlMask |= 1 << uint(q)
	}

	switch g.Kind {
	case quantum.GateX:
		e.kernelX(ctrlMask, 1<<uint(g.Targets[0]))
	case quantum.GateH:
		e.kernelH(ctrlMask, 1<<uint(g.Targets[0]))
	case quantum.GateSwap:
		e.kernelSwap(ctrlMask, 1<<uint(g.Targets[0]), 1<<uint(g.Targets[1]))
	case quantum.GatePhaseShift:
		if g.Pow > 63 {
			return fmt.Errorf("%w: phase denominator exponent %d", quantum.ErrOutOfRange, g.Pow)
		}
		e.kernelPhase(ctrlMask, 1<<uint(g.Targets[0]), nums.UnitPhase(g.Num, int(g.Pow)))
	default:
		return fmt.Errorf("%w: unknown gate kind %d", quantum.ErrOutOfRange, uint8(g.Kind))
	}
	return nil
}

func nbTargets(k quantum.GateKind) int {
	if k == quantum.GateSwap {
		return 2
	}
	return 1
}

func (e *Engine) checkQubit(q quantum.Qubit) error {
	if q < 0 || int(q) >= e.pool {
		return fmt.Errorf("%w: qubit %d outside pool of %d", quantum.ErrOutOfRange, q, e.pool)
	}
	if !e.used.Test(uint(q)) {
		return fmt.Errorf("%w: qubit %d is not allocated", quantum.ErrOutOfRange, q)
	}
	return nil
}

// Each kernel processes every amplitude pair from exactly one index, so the
// chunked passes never write the same slot from two goroutines.

func (e *Engine) kernelX(ctrlMask, tBit uint64) {
	e.forEachChunk(func(start, end uint64) {
		for i := start; i < end; i++ {
			if i&ctrlMask == ctrlMask && i&tBit == 0 {
				j := i | tBit
				e.amps[i], e.amps[j] = e.amps[j], e.amps[i]
			}
		}
	})
}

func (e *Engine) kernelH(ctrlMask, tBit uint64) {
	const invSqrt2 = 1 / math.Sqrt2
	e.forEachChunk(func(start, end uint64) {
		for i := start; i < end; i++ {
			if i&ctrlMask == ctrlMask && i&tBit == 0 {
				j := i | tBit
				a0, a1 := e.amps[i], e.amps[j]
				e.amps[i] = (a0 + a1) * invSqrt2
				e.amps[j] = (a0 - a1) * invSqrt2
			}
		}
	})
}

func (e *Engine) kernelSwap(ctrlMask, aBit, bBit uint64) {
	e.forEachChunk(func(start, end uint64) {
		for i := start; i < end; i++ {
			if i&ctrlMask == ctrlMask && i&aBit != 0 && i&bBit == 0 {
				j := i ^ aBit ^ bBit
				e.amps[i], e.amps[j] = e.amps[j], e.amps[i]
			}
		}
	})
}

func (e *Engine) kernelPhase(ctrlMask, tBit uint64, phase complex128) {
	e.forEachChunk(func(start, end uint64) {
		for i := start; i < end; i++ {
			if i&ctrlMask == ctrlMask && i&tBit != 0 {
				e.amps[i] *= phase
			}
		}
	})
}

// ProbabilityOfOne returns P(q = |1⟩).
func (e *Engine) ProbabilityOfOne(q quantum.Qubit) (float64, error) {
	if err := e.checkQubit(q); err != nil {
		return 0, err
	}
	bit := uint64(1) << uint(q)
	var p float64
	for i, a := range e.amps {
		if uint64(i)&bit != 0 {
			p += real(a)*real(a) + imag(a)*imag(a)
		}
	}
	return p, nil
}

// MeasureValue reads the integer held by a little-endian register. It only
// succeeds when every register qubit is (up to rounding) in a basis state,
// which is the case for the reversible arithmetic circuits this engine backs.
func (e *Engine) MeasureValue(qs []quantum.Qubit) (int64, error) {
	if len(qs) == 0 || len(qs) > 62 {
		return 0, fmt.Errorf("%w: register width %d", quantum.ErrOutOfRange, len(qs))
	}
	var value int64
	for i, q := range qs {
		p, err := e.ProbabilityOfOne(q)
		if err != nil {
			return 0, err
		}
		switch {
		case p > 1-epsilon:
			value |= 1 << i
		case p < epsilon:
			// bit is 0
		default:
			return 0, fmt.Errorf("%w: qubit %d is in superposition (P(1)=%g)", quantum.ErrPrecondition, q, p)
		}
	}
	return value, nil
}

// MaxBasisValue returns the largest value the little-endian register qs
// takes across basis states with non-negligible probability. Unlike
// MeasureValue it also works on superpositions; it reads amplitudes only
// and emits no gates, which is what the debug-build precondition checks in
// std/modular rely on.
func (e *Engine) MaxBasisValue(qs []quantum.Qubit) (int64, error) {
	if len(qs) == 0 || len(qs) > 62 {
		return 0, fmt.Errorf("%w: register width %d", quantum.ErrOutOfRange, len(qs))
	}
	for _, q := range qs {
		if err := e.checkQubit(q); err != nil {
			return 0, err
		}
	}
	var maxValue int64
	for i, a := range e.amps {
		if real(a)*real(a)+imag(a)*imag(a) <= epsilon {
			continue
		}
		var v int64
		for j, q := range qs {
			if uint64(i)>>uint(q)&1 == 1 {
				v |= 1 << j
			}
		}
		if v > maxValue {
			maxValue = v
		}
	}
	return maxValue, nil
}

// DominantState returns the basis state with the largest probability, over
// the full pool, with its probability.
func (e *Engine) DominantState() (uint64, float64) {
	var best uint64
	var bestP float64
	for i, a := range e.amps {
		if p := real(a)*real(a) + imag(a)*imag(a); p > bestP {
			best, bestP = uint64(i), p
		}
	}
	return best, bestP
}

// Norm returns the statevector 2-norm; it should stay ≈1 under any gate
// sequence and is exposed for test assertions.
func (e *Engine) Norm() float64 {
	var s float64
	for _, a := range e.amps {
		s += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(s)
}
