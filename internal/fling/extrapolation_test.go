// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"fmt"
	"strings"
	"testing"
)

func TestDecomposeQR(t *testing.T) {
	A := &matrix{
		rows: 3, cols: 3,
		data: []float32{
			12, 6, -4,
			-51, 167, 24,
			4, -68, -41,
		},
	}
	Q, Rt, ok := decomposeQR(A)
	if !ok {
		t.Fatal("decomposeQR failed")
	}
	R := Rt.transpose()
	QR := Q.mul(R)
	if !A.approxEqual(QR) {
		t.Log("A\n", A)
		t.Log("Q\n", Q)
		t.Log("R\n", R)
		t.Log("QR\n", QR)
		t.Fatal("Q*R not approximately equal to A")
	}
}

func TestFit(t *testing.T) {
	X := []float32{-1, 0, 1}
	Y := []float32{2, 0, 2}

	got, ok := polyFit(X, Y)
	if !ok {
		t.Fatal("polyFit failed")
	}
	want := coefficients{0, 0, 2}
	if !got.approxEqual(want) {
		t.Fatalf("polyFit: got %v want %v", got, want)
	}
}

// approxEqual compares matrices with a sensible epsilon.
func (m *matrix) approxEqual(m2 *matrix) bool {
	if m.rows != m2.rows || m.cols != m2.cols {
		return false
	}
	const epsilon = 0.00001
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			d := m2.get(row, col) - m.get(row, col)
			if d < -epsilon || d > epsilon {
				return false
			}
		}
	}
	return true
}

func (c coefficients) approxEqual(c2 coefficients) bool {
	const epsilon = 0.00001
	for i, v := range c {
		d := v - c2[i]
		if d < -epsilon || d > epsilon {
			return false
		}
	}
	return true
}

func (m *matrix) transpose() *matrix {
	t := newMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.set(j, i, m.get(i, j))
		}
	}
	return t
}

// mul multiplies m and m2 and returns the result, using the rule
// C(row, col) = Σk m(row, k)*m2(k, col).
func (m *matrix) mul(m2 *matrix) *matrix {
	if m.cols != m2.rows {
		panic("mismatched matrices")
	}
	mul := newMatrix(m.rows, m2.cols)
	for row := 0; row < mul.rows; row++ {
		for col := 0; col < mul.cols; col++ {
			var v float32
			for k := 0; k < m.cols; k++ {
				v += m.get(row, k) * m2.get(k, col)
			}
			mul.set(row, col, v)
		}
	}
	return mul
}

func (m *matrix) String() string {
	var b strings.Builder
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			v := m.get(row, col)
			b.WriteString(fmt.Sprintf("%f ", v))
		}
		b.WriteString("\n")
	}
	return b.String()
}
