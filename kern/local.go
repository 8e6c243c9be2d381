/*
 * local.go, part of goQML.
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
	"fmt"
	"time"

	qml "github.com/goqml/goqml"
	"github.com/goqml/goqml/rep"
	"gonum.org/v1/gonum/mat"
)

// Local computes the kernel matrix between two atomic representation sets:
//
//	K[i][j] = sum over atoms a of molecule i and b of molecule j of
//	          k(A[a], B[b])
//
// the standard way a kernel over per-atom descriptors is turned into a
// molecule-level similarity. The atom-pair kernel matrix is computed first,
// on the stacked data (so the gaussian case is still one gemm), and then
// summed block-wise. The result has shape (A.Len(), B.Len()). If B is the
// same *rep.AtomicSet as A, the result is made exactly symmetric; its
// diagonal is the sum over atom pairs, not 1.
func (e *Engine) Local(A, B *rep.AtomicSet, c *Config) (*mat.Dense, error) {
	if err := c.check("Local"); err != nil {
		return nil, err
	}
	if A == nil || B == nil || A.Len() == 0 || B.Len() == 0 {
		return nil, qml.NewError(qml.ErrEmptyInput, "Local", "empty representation set")
	}
	if A.Scheme() != B.Scheme() || A.Dim() != B.Dim() {
		return nil, qml.NewError(qml.ErrShapeMismatch, "Local",
			fmt.Sprintf("sets are not comparable: %v/%d vs %v/%d",
				A.Scheme(), A.Dim(), B.Scheme(), B.Dim()))
	}
	start := time.Now()
	self := A == B
	var atoms *mat.Dense
	switch c.Type {
	case Gaussian:
		atoms = e.gaussian(A.Data(), B.Data(), c.Width, self)
	case Laplacian:
		atoms = e.laplacian(A.Data(), B.Data(), c.Width, self)
	case Linear:
		atoms = e.linear(A.Data(), B.Data(), self)
	}
	na := A.Len()
	nb := B.Len()
	K := mat.NewDense(na, nb, nil)
	e.rows(na, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			j0 := 0
			if self {
				j0 = i
			}
			for j := j0; j < nb; j++ {
				var acc float64
				for a := A.Offset(i); a < A.Offset(i)+A.Atoms(i); a++ {
					row := atoms.RawRowView(a)
					for b := B.Offset(j); b < B.Offset(j)+B.Atoms(j); b++ {
						acc += row[b]
					}
				}
				K.Set(i, j, acc)
			}
		}
	})
	if self {
		mirrorUpper(K)
	}
	e.o.logger.Debug().
		Str("kernel", c.Type.String()).
		Int("rows", na).
		Int("cols", nb).
		Bool("self", self).
		Bool("local", true).
		Dur("elapsed", time.Since(start)).
		Msg("kernel matrix computed")
	return K, nil
}

// LocalSelf computes the local self-kernel of A. It is shorthand for
// Local(A, A, c).
func (e *Engine) LocalSelf(A *rep.AtomicSet, c *Config) (*mat.Dense, error) {
	return e.Local(A, A, c)
}
