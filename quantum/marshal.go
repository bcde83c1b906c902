package quantum

import (
	"bytes"
	"fmt"
	mathbits "math/bits"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/icza/bitio"
	"golang.org/x/crypto/blake2b"

	"github.com/quarclib/quarc"
)

// circuit serialization: a CBOR header followed by a bit-packed gate stream.
// The header carries the quarc version; circuits serialized by a different
// major version are rejected on read.
type circuitHeader struct {
	Version  string `cbor:"1,keyasint"`
	NbQubits uint32 `cbor:"2,keyasint"`
	NbGates  uint64 `cbor:"3,keyasint"`
}

const (
	kindBits    = 2
	nbCtrlBits  = 8
	phaseNuBits = 64
	phasePoBits = 6
)

// qubitBits returns the fixed bit width used for qubit indices in the gate
// stream.
func qubitBits(nbQubits int) uint8 {
	if nbQubits <= 1 {
		return 1
	}
	return uint8(mathbits.Len(uint(nbQubits - 1)))
}

// ToBytes serializes the circuit.
func (c *Circuit) ToBytes() ([]byte, error) {
	var buf bytes.Buffer
	h := circuitHeader{
		Version:  quarc.Version.String(),
		NbQubits: uint32(c.NbQubits),
		NbGates:  uint64(len(c.Gates)),
	}
	enc := cbor.NewEncoder(&buf)
	if err := enc.Encode(h); err != nil {
		return nil, err
	}

	qw := qubitBits(c.NbQubits)
	w := bitio.NewWriter(&buf)
	for _, g := range c.Gates {
		if len(g.Controls) > 255 {
			return nil, fmt.Errorf("%w: gate has %d controls", ErrOutOfRange, len(g.Controls))
		}
		w.TryWriteBits(uint64(g.Kind), kindBits)
		w.TryWriteBits(uint64(len(g.Controls)), nbCtrlBits)
		for _, q := range g.Controls {
			w.TryWriteBits(uint64(q), qw)
		}
		for _, q := range g.Targets {
			w.TryWriteBits(uint64(q), qw)
		}
		if g.Kind == GatePhaseShift {
			w.TryWriteBits(uint64(g.Num), phaseNuBits)
			w.TryWriteBits(uint64(g.Pow), phasePoBits)
		}
	}
	if w.TryError != nil {
		return nil, w.TryError
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes deserializes a circuit produced by ToBytes.
func (c *Circuit) FromBytes(data []byte) error {
	// the decoder reads ahead of the header; re-slice data at the header
	// boundary so the gate stream starts at the right offset
	dec := cbor.NewDecoder(bytes.NewReader(data))
	var h circuitHeader
	if err := dec.Decode(&h); err != nil {
		return fmt.Errorf("reading circuit header: %w", err)
	}
	v, err := semver.ParseTolerant(h.Version)
	if err != nil {
		return fmt.Errorf("reading circuit header: %w", err)
	}
	if v.Major != quarc.Version.Major {
		return fmt.Errorf("unsupported circuit version %s (running %s)", h.Version, quarc.Version)
	}

	c.NbQubits = int(h.NbQubits)
	c.Gates = make([]Gate, 0, h.NbGates)
	qw := qubitBits(c.NbQubits)
	br := bitio.NewReader(bytes.NewReader(data[dec.NumBytesRead():]))
	for i := uint64(0); i < h.NbGates; i++ {
		var g Gate
		g.Kind = GateKind(br.TryReadBits(kindBits))
		nbCtl := int(br.TryReadBits(nbCtrlBits))
		if nbCtl > 0 {
			g.Controls = make([]Qubit, nbCtl)
			for j := range g.Controls {
				g.Controls[j] = Qubit(br.TryReadBits(qw))
			}
		}
		g.Targets = make([]Qubit, g.Kind.nbTargets())
		for j := range g.Targets {
			g.Targets[j] = Qubit(br.TryReadBits(qw))
		}
		if g.Kind == GatePhaseShift {
			g.Num = int64(br.TryReadBits(phaseNuBits))
			g.Pow = uint8(br.TryReadBits(phasePoBits))
		}
		if br.TryError != nil {
			return fmt.Errorf("reading gate %d: %w", i, br.TryError)
		}
		for _, q := range g.Controls {
			if int(q) >= c.NbQubits {
				return fmt.Errorf("gate %d references qubit %d outside pool of %d", i, q, c.NbQubits)
			}
		}
		for _, q := range g.Targets {
			if int(q) >= c.NbQubits {
				return fmt.Errorf("gate %d references qubit %d outside pool of %d", i, q, c.NbQubits)
			}
		}
		c.Gates = append(c.Gates, g)
	}
	return nil
}

// Fingerprint returns a blake2b digest of the serialized circuit, usable as
// a cache key or for circuit equality checks.
func (c *Circuit) Fingerprint() ([32]byte, error) {
	data, err := c.ToBytes()
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(data), nil
}
