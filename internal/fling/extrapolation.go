// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"math"
	"time"
)

// Extrapolation computes a 1-dimensional velocity estimate
// for a set of timestamped points using polynomial least
// squares fitting, sufficient for estimating the velocity of
// a pointer at the time it is released.
type Extrapolation struct {
	// Index into samples.
	idx int
	// Circular buffer of samples.
	samples   []sample
	lastValue float32
	// Pre-allocated cache for samples.
	cache [historySize]sample

	// Filtered values and times.
	values [historySize]float32
	times  [historySize]float32
}

type sample struct {
	t time.Duration
	v float32
}

// matrix is a dense matrix stored in column-major order, so
// that a column is a contiguous slice of data.
type matrix struct {
	rows, cols int
	data       []float32
}

type coefficients [degree + 1]float32

type Estimate struct {
	Velocity float32
	Distance float32
}

const (
	degree       = 2
	historySize  = 20
	maxAge       = 100 * time.Millisecond
	maxSampleGap = 40 * time.Millisecond
)

// SampleDelta adds a relative sample to the estimation.
func (e *Extrapolation) SampleDelta(t time.Duration, delta float32) {
	val := delta + e.lastValue
	e.Sample(t, val)
}

// Sample adds an absolute sample to the estimation.
func (e *Extrapolation) Sample(t time.Duration, val float32) {
	e.lastValue = val
	if e.samples == nil {
		e.samples = e.cache[:0]
	}
	s := sample{
		t: t,
		v: val,
	}
	if e.idx == len(e.samples) && e.idx < cap(e.samples) {
		e.samples = append(e.samples, s)
	} else {
		e.samples[e.idx] = s
	}
	e.idx = (e.idx + 1) % cap(e.samples)
}

// Estimate fits a polynomial to the sampled points and returns the
// implied velocity and distance at the time of the most recent sample,
// or the zero Estimate if the fit failed.
func (e *Extrapolation) Estimate() Estimate {
	if len(e.samples) == 0 {
		return Estimate{}
	}
	values := e.values[:0]
	times := e.times[:0]
	first := e.get(0)
	t := first.t
	// Walk backwards collecting samples.
	for i := 0; i < len(e.samples); i++ {
		p := e.get(-i)
		age := first.t - p.t
		if age >= maxAge || t-p.t >= maxSampleGap {
			// Samples too old or too sparse are not part
			// of the gesture.
			break
		}
		t = p.t
		values = append(values, p.v-first.v)
		times = append(times, float32((-age).Seconds()))
	}
	coef, ok := polyFit(times, values)
	if !ok {
		return Estimate{}
	}
	dist := values[0] - values[len(values)-1]
	return Estimate{
		Velocity: coef[1],
		Distance: dist,
	}
}

func (e *Extrapolation) get(i int) sample {
	idx := (e.idx + i - 1 + len(e.samples)) % len(e.samples)
	return e.samples[idx]
}

// polyFit computes the least squares polynomial fit for the set of
// points in X, Y. If the fitting fails because of contradicting or
// insufficient data, polyFit returns false.
func polyFit(X, Y []float32) (coefficients, bool) {
	if len(X) != len(Y) {
		panic("X and Y lengths differ")
	}
	if len(X) <= degree {
		// Not enough points to fit a curve.
		return coefficients{}, false
	}

	// Expand the X vector to the design matrix A, where each column
	// holds one power of X. Like Android's VelocityTracker, all
	// weights are 1:
	// https://android.googlesource.com/platform/frameworks/base/+/56a2301/libs/androidfw/VelocityTracker.cpp
	A := newMatrix(len(X), degree+1)
	for i, x := range X {
		A.set(i, 0, 1)
		for j := 1; j < A.cols; j++ {
			A.set(i, j, A.get(i, j-1)*x)
		}
	}

	Q, Rt, ok := decomposeQR(A)
	if !ok {
		return coefficients{}, false
	}
	// Solve R*B = transpose(Q)*Y for B, the polynomial coefficients.
	// R is upper triangular, so back substitute from the bottom right.
	// https://en.wikipedia.org/wiki/Non-linear_least_squares
	var B coefficients
	for i := Q.cols - 1; i >= 0; i-- {
		B[i] = Q.col(i).dot(Y)
		for j := Q.cols - 1; j > i; j-- {
			B[i] -= Rt.get(j, i) * B[j]
		}
		B[i] /= Rt.get(i, i)
	}
	return B, true
}

// decomposeQR computes and returns Q, Rt where Q*transpose(Rt) = A, if
// possible. R is guaranteed to be upper triangular.
func decomposeQR(A *matrix) (Q, Rt *matrix, ok bool) {
	// Modified Gram-Schmidt orthonormalization of the columns of A:
	// https://en.wikipedia.org/wiki/QR_decomposition
	Q = newMatrix(A.rows, A.cols)  // Q shares dimensions with A.
	Rt = newMatrix(A.cols, A.cols) // R is square, stored transposed.
	for i := 0; i < Q.cols; i++ {
		// Copy A column.
		q := Q.col(i)
		q.copyFrom(A.col(i))
		// Subtract projections onto the previous, already
		// normalized, columns of Q.
		for j := 0; j < i; j++ {
			dot := q.dot(Q.col(j))
			q.mad(Q.col(j), -dot)
		}
		// Normalize the Q column.
		norm := q.norm()
		if norm < 0.000001 {
			// Degenerate data, no solution.
			return nil, nil, false
		}
		invNorm := 1 / norm
		q.scale(invNorm)
		// Update Rt with R(i, j) = Q.col(i)*A.col(j).
		for j := i; j < A.cols; j++ {
			Rt.set(j, i, q.dot(A.col(j)))
		}
	}
	return Q, Rt, true
}

func newMatrix(rows, cols int) *matrix {
	return &matrix{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

func (m *matrix) set(row, col int, v float32) {
	if row < 0 || row >= m.rows {
		panic("row out of range")
	}
	if col < 0 || col >= m.cols {
		panic("col out of range")
	}
	m.data[col*m.rows+row] = v
}

func (m *matrix) get(row, col int) float32 {
	if row < 0 || row >= m.rows {
		panic("row out of range")
	}
	if col < 0 || col >= m.cols {
		panic("col out of range")
	}
	return m.data[col*m.rows+row]
}

// col returns the i'th column as a vector backed by the matrix data.
func (m *matrix) col(i int) vector {
	return vector(m.data[i*m.rows : (i+1)*m.rows])
}

type vector []float32

func (v1 vector) dot(v2 []float32) float32 {
	var dot float32
	for i, v := range v1 {
		dot += v * v2[i]
	}
	return dot
}

// mad multiplies and adds: v1 = v1 + v2*s.
func (v1 vector) mad(v2 vector, s float32) {
	for i := range v1 {
		v1[i] += v2[i] * s
	}
}

func (v vector) norm() float32 {
	var norm float32
	for _, v := range v {
		norm += v * v
	}
	return float32(math.Sqrt(float64(norm)))
}

func (v vector) scale(s float32) {
	for i := range v {
		v[i] *= s
	}
}

func (v1 vector) copyFrom(v2 vector) {
	copy(v1, v2)
}
