/*
 * qml.go, part of goQML.
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

package qml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Molecule is the input unit of goQML: an ordered list of atoms, each one a
// nuclear charge plus a cartesian coordinate. Coordinates are kept in an Nx3
// matrix, one row per atom, in whatever unit the caller uses (the unit must
// simply be consistent across a dataset; goQML does not check that).
// A Molecule is immutable once built. Atom order is preserved, but every
// representation in the rep package is invariant to it.
type Molecule struct {
	z      []int
	coords *mat.Dense //Nx3
}

// NewMolecule builds a Molecule from nuclear charges and an Nx3 coordinate
// matrix. It returns ErrEmptyInput if there are no atoms, ErrShapeMismatch if
// the matrix is not len(z)x3, and ErrConfiguration if a charge is not a
// positive integer. The arguments are copied, so the caller keeps ownership.
func NewMolecule(z []int, coords *mat.Dense) (*Molecule, error) {
	if len(z) == 0 {
		return nil, NewError(ErrEmptyInput, "NewMolecule", "a molecule needs at least one atom")
	}
	if coords == nil {
		return nil, NewError(ErrEmptyInput, "NewMolecule", "nil coordinates")
	}
	r, c := coords.Dims()
	if c != 3 || r != len(z) {
		return nil, NewError(ErrShapeMismatch, "NewMolecule",
			fmt.Sprintf("%d charges but a %dx%d coordinate matrix, want %dx3", len(z), r, c, len(z)))
	}
	for i, v := range z {
		if v <= 0 {
			return nil, NewError(ErrConfiguration, "NewMolecule",
				fmt.Sprintf("atom %d has non-positive nuclear charge %d", i, v))
		}
	}
	M := new(Molecule)
	M.z = make([]int, len(z))
	copy(M.z, z)
	M.coords = mat.DenseCopyOf(coords)
	return M, nil
}

// NewMoleculeFromSlice is a convenience wrapper over NewMolecule taking the
// coordinates as a flat, row-major slice of length 3*len(z).
func NewMoleculeFromSlice(z []int, xyz []float64) (*Molecule, error) {
	if len(z) == 0 {
		return nil, NewError(ErrEmptyInput, "NewMoleculeFromSlice", "a molecule needs at least one atom")
	}
	if len(xyz) != 3*len(z) {
		return nil, NewError(ErrShapeMismatch, "NewMoleculeFromSlice",
			fmt.Sprintf("%d charges but %d coordinate values, want %d", len(z), len(xyz), 3*len(z)))
	}
	return NewMolecule(z, mat.NewDense(len(z), 3, xyz))
}

// Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.z)
}

// Z returns the nuclear charge of the i-th atom. It panics on an out-of-range
// index, as the matching coords access would.
func (M *Molecule) Z(i int) int {
	return M.z[i]
}

// Charges returns a copy of the nuclear charges, in atom order.
func (M *Molecule) Charges() []int {
	ret := make([]int, len(M.z))
	copy(ret, M.z)
	return ret
}

// Coords returns a copy of the Nx3 coordinate matrix.
func (M *Molecule) Coords() *mat.Dense {
	return mat.DenseCopyOf(M.coords)
}

// Coord returns the cartesian coordinate of the i-th atom.
func (M *Molecule) Coord(i int) (x, y, z float64) {
	return M.coords.At(i, 0), M.coords.At(i, 1), M.coords.At(i, 2)
}

// Distance returns the euclidean distance between atoms i and j.
func (M *Molecule) Distance(i, j int) float64 {
	dx := M.coords.At(i, 0) - M.coords.At(j, 0)
	dy := M.coords.At(i, 1) - M.coords.At(j, 1)
	dz := M.coords.At(i, 2) - M.coords.At(j, 2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Copy returns an independent copy of the molecule.
func (M *Molecule) Copy() *Molecule {
	N := new(Molecule)
	N.z = make([]int, len(M.z))
	copy(N.z, M.z)
	N.coords = mat.DenseCopyOf(M.coords)
	return N
}

// Permuted returns a new Molecule with the atoms reordered so that atom i of
// the result is atom perm[i] of M. perm must be a permutation of 0..Len()-1.
// It is mostly useful to verify the permutation invariance of representations.
func (M *Molecule) Permuted(perm []int) (*Molecule, error) {
	n := M.Len()
	if len(perm) != n {
		return nil, NewError(ErrShapeMismatch, "Permuted",
			fmt.Sprintf("permutation of length %d for a %d-atom molecule", len(perm), n))
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return nil, NewError(ErrConfiguration, "Permuted", "not a permutation")
		}
		seen[p] = true
	}
	z := make([]int, n)
	coords := mat.NewDense(n, 3, nil)
	for i, p := range perm {
		z[i] = M.z[p]
		coords.SetRow(i, M.coords.RawRowView(p))
	}
	N := new(Molecule)
	N.z = z
	N.coords = coords
	return N, nil
}
