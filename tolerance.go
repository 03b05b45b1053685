// Package visioncore tolerance-based verification for comparing kernel
// results across targets
package visioncore

import (
	"fmt"
	"math"
)

// ToleranceConfig defines tolerance parameters for pixel comparison.
// Integer pixels only honour AbsTol.
type ToleranceConfig struct {
	// AbsTol is the absolute tolerance for values near zero
	AbsTol float64

	// RelTol is the relative tolerance as a fraction of the larger value
	RelTol float64

	// ULPTol is the maximum allowed difference in ULPs (Units in Last Place)
	ULPTol int

	// CheckNaN determines if NaN values should be considered equal
	CheckNaN bool

	// CheckInf determines if Inf values should be considered equal
	CheckInf bool
}

// DefaultTolerance returns default tolerance configuration
func DefaultTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol:   1e-7,
		RelTol:   1e-5,
		ULPTol:   4,
		CheckNaN: true,
		CheckInf: true,
	}
}

// ExactTolerance requires bit-for-bit equality, NaN matching NaN
func ExactTolerance() ToleranceConfig {
	return ToleranceConfig{CheckNaN: true, CheckInf: true}
}

// RelaxedTolerance returns relaxed tolerance for accumulated operations
// whose summation order differs between targets
func RelaxedTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol:   1e-5,
		RelTol:   1e-3,
		ULPTol:   16,
		CheckNaN: true,
		CheckInf: true,
	}
}

// NearEqual checks if two pixel values are equal within tolerance
func NearEqual[T Scalar](a, b T, tol ToleranceConfig) bool {
	if !isFloat[T]() {
		return a == b || math.Abs(float64(a)-float64(b)) <= tol.AbsTol
	}

	fa, fb := float64(a), float64(b)
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return tol.CheckNaN && math.IsNaN(fa) && math.IsNaN(fb)
	}
	if math.IsInf(fa, 0) || math.IsInf(fb, 0) {
		return tol.CheckInf && fa == fb
	}
	if fa == fb {
		return true
	}

	diff := math.Abs(fa - fb)
	if diff <= tol.AbsTol {
		return true
	}
	if diff <= math.Max(math.Abs(fa), math.Abs(fb))*tol.RelTol {
		return true
	}
	return tol.ULPTol > 0 && ULPDiff(a, b) <= tol.ULPTol
}

// ULPDiff computes the difference in ULPs between two floating-point
// values of the same sign. Values of different sign report MaxInt32.
func ULPDiff[T Scalar](a, b T) int {
	var ua, ub uint64
	var sign uint64
	if bitSize[T]() == 32 {
		ua, ub = uint64(math.Float32bits(float32(a))), uint64(math.Float32bits(float32(b)))
		sign = 1 << 31
	} else {
		ua, ub = math.Float64bits(float64(a)), math.Float64bits(float64(b))
		sign = 1 << 63
	}

	if (ua^ub)&sign != 0 {
		return math.MaxInt32
	}
	diff := ua - ub
	if ub > ua {
		diff = ub - ua
	}
	if diff > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(diff)
}

// VerificationResult summarizes the comparison of two buffers
type VerificationResult struct {
	MaxAbsError float64
	MaxULPError int
	NumErrors   int
	TotalItems  int
	FirstError  int // Index of first error, -1 if none
}

// VerifySlices compares actual against expected element by element
func VerifySlices[T Scalar](expected, actual []T, tol ToleranceConfig) VerificationResult {
	result := VerificationResult{
		TotalItems: len(expected),
		FirstError: -1,
	}

	if len(expected) != len(actual) {
		result.NumErrors = len(expected)
		return result
	}

	for i := range expected {
		compareInto(&result, i, expected[i], actual[i], tol)
	}
	return result
}

func compareInto[T Scalar](r *VerificationResult, i int, want, got T, tol ToleranceConfig) {
	if NearEqual(want, got, tol) {
		return
	}
	r.NumErrors++
	if r.FirstError == -1 {
		r.FirstError = i
	}
	if d := math.Abs(float64(want) - float64(got)); d > r.MaxAbsError || math.IsNaN(d) {
		r.MaxAbsError = d
	}
	if isFloat[T]() {
		r.MaxULPError = max(r.MaxULPError, ULPDiff(want, got))
	}
}

// Verify2D compares two 2D views that may live on different targets,
// ignoring row padding. The index reported in FirstError is y*width+x.
func Verify2D[T Scalar, ET, AT Target](expected Buffer2DView[T, ET], actual Buffer2DView[T, AT], tol ToleranceConfig) VerificationResult {
	result := VerificationResult{
		TotalItems: expected.Area(),
		FirstError: -1,
	}
	if expected.Width() != actual.Width() || expected.Height() != actual.Height() {
		result.NumErrors = expected.Area()
		return result
	}

	for y := 0; y < expected.Height(); y++ {
		want, got := expected.Row(y), actual.Row(y)
		for x := range want {
			compareInto(&result, y*expected.Width()+x, want[x], got[x], tol)
		}
	}
	return result
}

// IsAcceptable returns true if the verification result is within tolerance
func (r VerificationResult) IsAcceptable() bool {
	return r.NumErrors == 0
}

// String formats the verification result for display
func (r VerificationResult) String() string {
	if r.NumErrors == 0 {
		return "PASS: All values match within tolerance"
	}

	errorRate := float64(r.NumErrors) / float64(r.TotalItems) * 100
	return fmt.Sprintf("FAIL: %d/%d values differ (%.2f%%)\n"+
		"  Max absolute error: %e\n"+
		"  Max ULP difference: %d\n"+
		"  First error at index: %d",
		r.NumErrors, r.TotalItems, errorRate,
		r.MaxAbsError, r.MaxULPError, r.FirstError)
}
