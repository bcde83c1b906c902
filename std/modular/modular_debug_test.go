//go:build debug

package modular

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDebugAssertsValueBelowModulus(t *testing.T) {
	_, api := newSim(t, 6)
	target := allocReg(t, api, 5, 14) // 14 ≥ 13

	require.Panics(t, func() {
		_ = ModularIncrementLE(api, 1, 13, target)
	})
}

func TestDebugAssertsMultiplierBelowModulus(t *testing.T) {
	_, api := newSim(t, 11)
	multiplier := allocReg(t, api, 5, 13)

	require.Panics(t, func() {
		_ = ModularMultiplyByConstantLE(api, 7, 13, multiplier)
	})
}

func TestDebugAssertAcceptsValidValue(t *testing.T) {
	assert := require.New(t)

	e, api := newSim(t, 6)
	target := allocReg(t, api, 5, 12)

	assert.NoError(ModularIncrementLE(api, 1, 13, target))
	assert.Equal(int64(0), measure(t, e, target))
}
