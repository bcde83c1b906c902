package nums

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContinuedFraction(t *testing.T) {
	assert := require.New(t)

	// 649/200 = [3; 4, 12, 4]
	q, err := ContinuedFraction(Fraction{Num: 649, Den: 200})
	assert.NoError(err)
	assert.Equal([]int64{3, 4, 12, 4}, q)

	_, err = ContinuedFraction(Fraction{Num: 1, Den: 0})
	assert.Error(err)
}

func TestContinuedFractionConvergent(t *testing.T) {
	assert := require.New(t)

	// phase-estimation style readout: 427/1024 ≈ 5/12 with denominator ≤ 15
	f, err := ContinuedFractionConvergent(Fraction{Num: 427, Den: 1024}, 15)
	assert.NoError(err)
	assert.Equal(Fraction{Num: 5, Den: 12}, f)

	// the bound caps the convergent even when the exact value is available
	f, err = ContinuedFractionConvergent(Fraction{Num: 649, Den: 200}, 10)
	assert.NoError(err)
	assert.Equal(Fraction{Num: 13, Den: 4}, f)

	_, err = ContinuedFractionConvergent(Fraction{Num: 1, Den: 2}, 0)
	assert.Error(err)
}

func TestFractionReduced(t *testing.T) {
	assert := require.New(t)

	assert.Equal(Fraction{Num: 2, Den: 3}, Fraction{Num: 4, Den: 6}.Reduced())
	assert.Equal(Fraction{Num: -1, Den: 2}, Fraction{Num: 3, Den: -6}.Reduced())
}
