package quantum

import (
	"fmt"
)

// Circuit is a recorded gate sequence over a fixed pool of qubits.
// It is produced by driving an API against a Recorder.
type Circuit struct {
	NbQubits int
	Gates    []Gate
}

// Recorder is an Engine that captures gates instead of executing them.
// Allocation hands out virtual handles; recycled handles are reused so the
// recorded circuit reports the true qubit high-water mark.
type Recorder struct {
	gates []Gate
	free  []Qubit
	next  Qubit
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Allocate(n int) ([]Qubit, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: allocation size %d", ErrOutOfRange, n)
	}
	qs := make([]Qubit, 0, n)
	for len(r.free) > 0 && len(qs) < n {
		qs = append(qs, r.free[len(r.free)-1])
		r.free = r.free[:len(r.free)-1]
	}
	for len(qs) < n {
		qs = append(qs, r.next)
		r.next++
	}
	return qs, nil
}

func (r *Recorder) Release(qs ...Qubit) error {
	r.free = append(r.free, qs...)
	return nil
}

func (r *Recorder) Apply(g Gate) error {
	if len(g.Targets) != g.Kind.nbTargets() {
		return fmt.Errorf("%w: %s expects %d target(s), got %d",
			ErrOutOfRange, g.Kind, g.Kind.nbTargets(), len(g.Targets))
	}
	r.gates = append(r.gates, g)
	return nil
}

// Circuit returns the recorded circuit.
func (r *Recorder) Circuit() Circuit {
	return Circuit{
		NbQubits: int(r.next),
		Gates:    r.gates,
	}
}

// Record drives block against a fresh Recorder and returns the captured
// circuit. Qubits the block needs beyond the handed-in registers must be
// allocated through the API.
func Record(nbQubits int, block func(api *API, qs []Qubit) error) (Circuit, error) {
	rec := NewRecorder()
	qs, err := rec.Allocate(nbQubits)
	if err != nil {
		return Circuit{}, err
	}
	api := NewAPI(rec)
	if err := block(api, qs); err != nil {
		return Circuit{}, err
	}
	return rec.Circuit(), nil
}
