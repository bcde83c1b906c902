package quantum

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func sampleCircuit(t *testing.T) Circuit {
	t.Helper()
	c, err := Record(4, func(api *API, qs []Qubit) error {
		if err := api.H(qs[0]); err != nil {
			return err
		}
		if err := api.CCNOT(qs[0], qs[1], qs[2]); err != nil {
			return err
		}
		if err := api.Swap(qs[2], qs[3]); err != nil {
			return err
		}
		return api.PhaseShift(-3, 5, qs[1])
	})
	require.NoError(t, err)
	return c
}

func TestCircuitSerialization(t *testing.T) {
	assert := require.New(t)

	c := sampleCircuit(t)
	data, err := c.ToBytes()
	assert.NoError(err)

	var back Circuit
	assert.NoError(back.FromBytes(data))

	if diff := cmp.Diff(c, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCircuitSerializationLongStream(t *testing.T) {
	assert := require.New(t)

	// the header decode must leave the gate stream offset intact, also when
	// the stream spans many buffered reads
	c, err := Record(8, func(api *API, qs []Qubit) error {
		for i := 0; i < 300; i++ {
			if err := api.CNOT(qs[i%8], qs[(i+3)%8]); err != nil {
				return err
			}
		}
		return api.PhaseShift(-7, 6, qs[0])
	})
	assert.NoError(err)

	data, err := c.ToBytes()
	assert.NoError(err)

	var back Circuit
	assert.NoError(back.FromBytes(data))
	assert.Equal(len(c.Gates), len(back.Gates))
	if diff := cmp.Diff(c, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCircuitFingerprint(t *testing.T) {
	assert := require.New(t)

	c := sampleCircuit(t)
	f1, err := c.Fingerprint()
	assert.NoError(err)
	f2, err := c.Fingerprint()
	assert.NoError(err)
	assert.Equal(f1, f2)

	// any gate change must move the digest
	c.Gates[0].Targets[0] = 1
	f3, err := c.Fingerprint()
	assert.NoError(err)
	assert.NotEqual(f1, f3)
}

func TestCircuitVersionGate(t *testing.T) {
	assert := require.New(t)

	h := circuitHeader{Version: "99.0.0", NbQubits: 1, NbGates: 0}
	data, err := cbor.Marshal(h)
	assert.NoError(err)

	var c Circuit
	err = c.FromBytes(data)
	assert.Error(err)
	assert.Contains(err.Error(), "unsupported circuit version")
}

func TestCircuitFromBytesTruncated(t *testing.T) {
	assert := require.New(t)

	c := sampleCircuit(t)
	data, err := c.ToBytes()
	assert.NoError(err)

	var back Circuit
	assert.Error(back.FromBytes(data[:len(data)-2]))
}

func TestRecorderReusesSlots(t *testing.T) {
	assert := require.New(t)

	r := NewRecorder()
	qs, err := r.Allocate(2)
	assert.NoError(err)
	assert.NoError(r.Release(qs[1]))

	qs2, err := r.Allocate(1)
	assert.NoError(err)
	assert.Equal(qs[1], qs2[0])

	c := r.Circuit()
	assert.Equal(2, c.NbQubits)
}
