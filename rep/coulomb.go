/*
 * coulomb.go, part of goQML.
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

package rep

import (
	"fmt"
	"math"
	"sort"

	qml "github.com/goqml/goqml"
	"gonum.org/v1/gonum/mat"
)

// VectorLen returns the length of a packed matrix representation (Coulomb or
// atomic Coulomb) for a given padding size: size*(size+1)/2, the lower
// triangle including the diagonal.
func VectorLen(size int) int {
	return size * (size + 1) / 2
}

// coulombFull builds the full nxn Coulomb matrix of mol:
// M_ii = 0.5*Z_i^2.4, M_ij = Z_i*Z_j/r_ij.
func coulombFull(mol *qml.Molecule) *mat.SymDense {
	n := mol.Len()
	M := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		zi := float64(mol.Z(i))
		M.SetSym(i, i, 0.5*math.Pow(zi, 2.4))
		for j := i + 1; j < n; j++ {
			M.SetSym(i, j, zi*float64(mol.Z(j))/mol.Distance(i, j))
		}
	}
	return M
}

// rowNorms returns the squared euclidean norm of each row of M.
func rowNorms(M mat.Symmetric) []float64 {
	n := M.SymmetricDim()
	ret := make([]float64, n)
	for i := 0; i < n; i++ {
		var acc float64
		for j := 0; j < n; j++ {
			v := M.At(i, j)
			acc += v * v
		}
		ret[i] = acc
	}
	return ret
}

// packLower packs the lower triangle (diagonal included) of M, with its rows
// and columns permuted by order, into a vector of length VectorLen(size),
// row-major. Rows and columns past len(order) are the zero padding.
func packLower(M mat.Matrix, order []int, size int) []float64 {
	n := len(order)
	out := make([]float64, VectorLen(size))
	idx := 0
	for i := 0; i < size; i++ {
		for j := 0; j <= i; j++ {
			if i < n && j < n {
				out[idx] = M.At(order[i], order[j])
			}
			idx++
		}
	}
	return out
}

// Coulomb generates the Coulomb-matrix representation of mol. The matrix
// M_ii = 0.5*Z_i^2.4, M_ij = Z_i*Z_j/r_ij is built, its atoms are ordered by
// decreasing squared row norm (Sorting RowNorm, the default, which makes the
// output invariant to the input atom order) or left as given (Unsorted), and
// the lower triangle including the diagonal is packed row-major into a vector
// of length VectorLen(Size), zero-padded past the molecule's atoms.
// It returns ErrConfiguration if Size is smaller than the molecule or the
// sorting scheme does not apply to molecular representations.
func Coulomb(mol *qml.Molecule, options ...*Options) ([]float64, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	n := mol.Len()
	if err := o.checkSize("Coulomb", n); err != nil {
		return nil, err
	}
	M := coulombFull(mol)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	switch o.sorting {
	case RowNorm:
		norms := rowNorms(M)
		sort.SliceStable(order, func(a, b int) bool {
			return norms[order[a]] > norms[order[b]]
		})
	case Unsorted:
		//input order
	default:
		return nil, qml.NewError(qml.ErrConfiguration, "Coulomb",
			fmt.Sprintf("sorting %v does not apply to the molecular Coulomb matrix", o.sorting))
	}
	return packLower(M, order, o.size), nil
}

// CoulombEigen generates the eigenvalue Coulomb-matrix representation: the
// eigenvalues of the Coulomb matrix in decreasing order, zero-padded to a
// vector of length Size. Eigenvalues are invariant to atom order by
// themselves, so no sorting option applies.
func CoulombEigen(mol *qml.Molecule, options ...*Options) ([]float64, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	n := mol.Len()
	if err := o.checkSize("CoulombEigen", n); err != nil {
		return nil, err
	}
	M := coulombFull(mol)
	var eig mat.EigenSym
	if ok := eig.Factorize(M, false); !ok {
		//should not happen for a real symmetric matrix
		return nil, qml.NewError(qml.ErrConfiguration, "CoulombEigen", "eigendecomposition failed to converge")
	}
	vals := eig.Values(nil) //ascending
	out := make([]float64, o.size)
	for i, v := range vals {
		out[n-1-i] = v
	}
	return out, nil
}

// decay is the smooth cutoff mask used by the atomic Coulomb matrix: 1 up to
// r-dr, a half-cosine ramp from r-dr to r, and 0 beyond r. A non-positive dr
// gives a sharp cutoff at r.
func decay(d, r, dr float64) float64 {
	if dr <= 0 {
		if d > r {
			return 0
		}
		return 1
	}
	switch {
	case d <= r-dr:
		return 1
	case d <= r:
		return 0.5 * (1 + math.Cos(math.Pi*(d-r+dr)/dr))
	default:
		return 0
	}
}

// AtomicCoulomb generates the local Coulomb-matrix representation of every
// atom in mol. For each central atom k a masked Coulomb matrix is built,
//
//	M_ii(k) = 0.5*Z_i^2.4 * f_ik^2
//	M_ij(k) = Z_i*Z_j/r_ij * f_ik * f_jk * g_ij
//
// where f is the decay mask with the central cutoff/decay options and g the
// mask with the interaction cutoff/decay options. Atoms are ordered by
// increasing distance to k (Sorting ByDistance, central atom first) or by
// decreasing masked row norm (RowNorm), and the lower triangle is packed as
// in Coulomb. The result has one row per atom, each of length
// VectorLen(Size), with the rows in input atom order.
func AtomicCoulomb(mol *qml.Molecule, options ...*Options) (*mat.Dense, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	n := mol.Len()
	if err := o.checkSize("AtomicCoulomb", n); err != nil {
		return nil, err
	}
	if o.sorting == Unsorted {
		return nil, qml.NewError(qml.ErrConfiguration, "AtomicCoulomb",
			"the atomic Coulomb matrix requires distance or row-norm sorting")
	}
	ret := mat.NewDense(n, VectorLen(o.size), nil)
	for k := 0; k < n; k++ {
		ret.SetRow(k, atomicCoulombRow(mol, k, o))
	}
	return ret, nil
}

// atomicCoulombRow builds the packed local Coulomb matrix of central atom k.
func atomicCoulombRow(mol *qml.Molecule, k int, o *Options) []float64 {
	n := mol.Len()
	fc := make([]float64, n) //central masks f_ik
	for i := 0; i < n; i++ {
		fc[i] = decay(mol.Distance(i, k), o.centralCutoff, o.centralDecay)
	}
	M := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		zi := float64(mol.Z(i))
		M.SetSym(i, i, 0.5*math.Pow(zi, 2.4)*fc[i]*fc[i])
		for j := i + 1; j < n; j++ {
			g := decay(mol.Distance(i, j), o.interactionCutoff, o.interactionDecay)
			M.SetSym(i, j, zi*float64(mol.Z(j))/mol.Distance(i, j)*fc[i]*fc[j]*g)
		}
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if o.sorting == ByDistance {
		sort.SliceStable(order, func(a, b int) bool {
			return mol.Distance(order[a], k) < mol.Distance(order[b], k)
		})
	} else { //RowNorm
		norms := rowNorms(M)
		sort.SliceStable(order, func(a, b int) bool {
			return norms[order[a]] > norms[order[b]]
		})
	}
	return packLower(M, order, o.size)
}
