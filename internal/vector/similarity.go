package vector

import (
	"fmt"
	"math"

	"github.com/hyperjump/nasari/pkg/utils"
	"gonum.org/v1/gonum/floats"
)

// Cosine returns dot(a, b) / (|a| * |b|), clamped to [-1, 1].
// Vectors of different length yield ErrDimensionMismatch; an empty or
// all-zero vector yields ErrZeroNorm. NaN components, or magnitudes beyond
// float64 range, yield ErrUndefined.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, ErrZeroNorm
	}
	// floats.Norm scales internally, so large finite components do not overflow it.
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if !isFinite(na) || !isFinite(nb) {
		return 0, ErrUndefined
	}
	if na == 0 || nb == 0 {
		return 0, ErrZeroNorm
	}
	// Dot the unit vectors; the raw dot product of large vectors overflows.
	sim := floats.Dot(unit(a, na), unit(b, nb))
	if !isFinite(sim) {
		return 0, ErrUndefined
	}
	return utils.Clamp(sim, -1, 1), nil
}

func unit(v []float64, norm float64) []float64 {
	u := make([]float64, len(v))
	for i, x := range v {
		u[i] = x / norm
	}
	return u
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
