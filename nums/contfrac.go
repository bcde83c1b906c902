package nums

import "fmt"

// Fraction is a signed rational number.
type Fraction struct {
	Num int64
	Den int64
}

// Reduced returns the fraction in lowest terms, with a positive denominator.
func (f Fraction) Reduced() Fraction {
	if f.Den < 0 {
		f.Num, f.Den = -f.Num, -f.Den
	}
	g := GCD(f.Num, f.Den)
	if g > 1 {
		f.Num /= g
		f.Den /= g
	}
	return f
}

// ContinuedFraction returns the continued-fraction expansion of f,
// i.e. the quotients [a0; a1, a2, ...].
func ContinuedFraction(f Fraction) ([]int64, error) {
	if f.Den == 0 {
		return nil, fmt.Errorf("zero denominator")
	}
	var quotients []int64
	num, den := f.Num, f.Den
	for den != 0 {
		q := num / den
		if num%den != 0 && (num < 0) != (den < 0) {
			q-- // floor division
		}
		quotients = append(quotients, q)
		num, den = den, num-q*den
	}
	return quotients, nil
}

// ContinuedFractionConvergent returns the last convergent of the
// continued-fraction expansion of f whose denominator is at most
// denominatorBound. Used to recover the period from a phase-estimation
// readout.
func ContinuedFractionConvergent(f Fraction, denominatorBound int64) (Fraction, error) {
	if denominatorBound <= 0 {
		return Fraction{}, fmt.Errorf("denominator bound must be positive, got %d", denominatorBound)
	}
	quotients, err := ContinuedFraction(f)
	if err != nil {
		return Fraction{}, err
	}
	// p(-1)/q(-1) = 1/0, p(0)/q(0) = a0/1
	pPrev, qPrev := int64(1), int64(0)
	p, q := quotients[0], int64(1)
	for _, a := range quotients[1:] {
		pNext := a*p + pPrev
		qNext := a*q + qPrev
		if abs(qNext) > denominatorBound {
			break
		}
		pPrev, qPrev = p, q
		p, q = pNext, qNext
	}
	return Fraction{Num: p, Den: q}.Reduced(), nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
