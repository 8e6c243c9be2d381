/*
 * kernels.go, part of goQML.
 *
 * Copyright 2024 The goQML authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package kern

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// sqNorms returns the squared euclidean norm of each row of A.
func sqNorms(A *mat.Dense) []float64 {
	r, _ := A.Dims()
	ret := make([]float64, r)
	for i := 0; i < r; i++ {
		row := A.RawRowView(i)
		ret[i] = floats.Dot(row, row)
	}
	return ret
}

// gaussian computes K[i][j] = exp(-||a_i - b_j||^2 / (2*sigma^2)). The
// squared distances come from one gemm through the
// ||x||^2+||y||^2-2*x.y identity; the elementwise exponential is fanned out
// over row blocks.
func (e *Engine) gaussian(A, B *mat.Dense, sigma float64, self bool) *mat.Dense {
	na, _ := A.Dims()
	nb, _ := B.Dims()
	K := mat.NewDense(na, nb, nil)
	K.Mul(A, B.T()) //the heavy part: K holds a.b for now
	an := sqNorms(A)
	bn := an
	if !self {
		bn = sqNorms(B)
	}
	c := -0.5 / (sigma * sigma)
	e.rows(na, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			row := K.RawRowView(i)
			j0 := 0
			if self {
				j0 = i
			}
			for j := j0; j < nb; j++ {
				d2 := an[i] + bn[j] - 2*row[j]
				if d2 < 0 { //floating point residue; distances can't be negative
					d2 = 0
				}
				row[j] = math.Exp(c * d2)
			}
		}
	})
	if self {
		symmetrize(K, 1)
	}
	return K
}

// laplacian computes K[i][j] = exp(-||a_i - b_j||_1 / sigma). The L1 distance
// has no gemm shortcut, so the whole thing is fanned out over row blocks.
func (e *Engine) laplacian(A, B *mat.Dense, sigma float64, self bool) *mat.Dense {
	na, d := A.Dims()
	nb, _ := B.Dims()
	K := mat.NewDense(na, nb, nil)
	c := -1 / sigma
	e.rows(na, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			a := A.RawRowView(i)
			j0 := 0
			if self {
				j0 = i
			}
			for j := j0; j < nb; j++ {
				b := B.RawRowView(j)
				var l1 float64
				for k := 0; k < d; k++ {
					l1 += math.Abs(a[k] - b[k])
				}
				K.Set(i, j, math.Exp(c*l1))
			}
		}
	})
	if self {
		symmetrize(K, 1)
	}
	return K
}

// linear computes K[i][j] = a_i . b_j, one gemm.
func (e *Engine) linear(A, B *mat.Dense, self bool) *mat.Dense {
	na, _ := A.Dims()
	nb, _ := B.Dims()
	K := mat.NewDense(na, nb, nil)
	K.Mul(A, B.T())
	if self {
		//gemm output is symmetric up to rounding; make it exact
		mirrorUpper(K)
	}
	return K
}

// symmetrize copies the upper triangle of the square matrix K onto the lower
// one and sets the diagonal to diag. Used for self-kernels, where the
// diagonal distance is zero by definition, so the kernel value is known
// exactly.
func symmetrize(K *mat.Dense, diag float64) {
	n, _ := K.Dims()
	for i := 0; i < n; i++ {
		K.Set(i, i, diag)
		for j := i + 1; j < n; j++ {
			K.Set(j, i, K.At(i, j))
		}
	}
}

// mirrorUpper copies the upper triangle onto the lower one, keeping the
// diagonal as computed.
func mirrorUpper(K *mat.Dense) {
	n, _ := K.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			K.Set(j, i, K.At(i, j))
		}
	}
}
