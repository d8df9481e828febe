package growth

import (
	"math"

	"github.com/matzehuels/inflate/pkg/errors"
)

// DivisionEpsilon is the half-width of the excluded neighborhood around G = 1.
// Closer than this the series formula divides by a near-zero value.
const DivisionEpsilon = 1e-9

// Residual returns the signed difference between the stack height produced by
// ratio g and the requested total height:
//
//	h * (1 - g^N) / (1 - g) - T
//
// A positive residual means g overshoots the target. For |g - 1| below
// [DivisionEpsilon] it returns an errors.ErrCodeDegenerateRatio error.
func Residual(g float64, req Request) (float64, error) {
	if math.Abs(g-1) < DivisionEpsilon {
		return 0, errors.New(errors.ErrCodeDegenerateRatio,
			"ratio %g is within %g of 1; the series is undefined there", g, DivisionEpsilon)
	}
	return stackHeight(g, req) - req.TotalHeight, nil
}

// stackHeight is the geometric-series sum for g away from 1.
func stackHeight(g float64, req Request) float64 {
	return req.FirstCellHeight * (1 - math.Pow(g, req.Layers)) / (1 - g)
}

// sameSign reports whether a and b are both strictly positive or both
// strictly negative. Equivalent to a*b > 0 without the underflow of the
// product.
func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

// oppositeSign reports whether a and b are strictly on opposite sides of zero.
func oppositeSign(a, b float64) bool {
	return (a < 0 && b > 0) || (a > 0 && b < 0)
}
