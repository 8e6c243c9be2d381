/*
 * coulomb_test.go, part of goQML.
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

package rep_test

import (
	"math"
	"testing"

	qml "github.com/goqml/goqml"
	"github.com/goqml/goqml/rep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// formaldehyde-like test molecule: four distinct environments, no symmetry,
// so sorting keys never tie.
func testMol(t *testing.T) *qml.Molecule {
	t.Helper()
	m, err := qml.NewMoleculeFromSlice([]int{8, 6, 1, 1}, []float64{
		0.00, 0.00, 1.21,
		0.00, 0.00, 0.00,
		0.94, 0.00, -0.54,
		-0.94, 0.10, -0.54,
	})
	require.NoError(t, err)
	return m
}

// TestCoulomb_Determinism verifies bit-for-bit identical output for repeated
// generation with the same inputs.
func TestCoulomb_Determinism(t *testing.T) {
	m := testMol(t)
	o := rep.DefaultOptions()
	o.Size(5)
	a, err := rep.Coulomb(m, o)
	require.NoError(t, err)
	b, err := rep.Coulomb(m, o)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same molecule and options must give identical output")
}

// TestCoulomb_PermutationInvariance verifies that reordering the atoms of the
// input does not change the sorted Coulomb matrix at all.
func TestCoulomb_PermutationInvariance(t *testing.T) {
	m := testMol(t)
	p, err := m.Permuted([]int{3, 1, 0, 2})
	require.NoError(t, err)

	o := rep.DefaultOptions()
	o.Size(4)
	a, err := rep.Coulomb(m, o)
	require.NoError(t, err)
	b, err := rep.Coulomb(p, o)
	require.NoError(t, err)
	assert.Equal(t, a, b, "row-norm sorting must cancel the input atom order")
}

// TestCoulomb_UnsortedKeepsOrder verifies that the unsorted flavor is NOT
// permutation invariant (that is what "unsorted" means) while the entries
// still come from the same matrix.
func TestCoulomb_UnsortedKeepsOrder(t *testing.T) {
	m := testMol(t)
	p, err := m.Permuted([]int{3, 1, 0, 2})
	require.NoError(t, err)

	o := rep.DefaultOptions()
	o.Size(4)
	o.Sorting(rep.Unsorted)
	a, err := rep.Coulomb(m, o)
	require.NoError(t, err)
	b, err := rep.Coulomb(p, o)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	//the diagonal entry of the first atom is 0.5*Z^2.4 in both cases
	assert.Equal(t, 0.5*math.Pow(8, 2.4), a[0])
	assert.Equal(t, 0.5*math.Pow(1, 2.4), b[0])
}

// TestCoulomb_Padding verifies the padding contract: with size N+k the first
// N(N+1)/2 entries equal the size-N representation and the tail is all zeros.
func TestCoulomb_Padding(t *testing.T) {
	m := testMol(t) //4 atoms
	exact := rep.DefaultOptions()
	exact.Size(4)
	padded := rep.DefaultOptions()
	padded.Size(7)

	a, err := rep.Coulomb(m, exact)
	require.NoError(t, err)
	b, err := rep.Coulomb(m, padded)
	require.NoError(t, err)

	require.Len(t, a, rep.VectorLen(4))
	require.Len(t, b, rep.VectorLen(7))
	assert.Equal(t, a, b[:rep.VectorLen(4)], "the non-padded portion must not depend on the padding size")
	for i := rep.VectorLen(4); i < rep.VectorLen(7); i++ {
		assert.Zero(t, b[i], "padding slots must hold the zero sentinel")
	}
}

// TestCoulomb_SizeTooSmall verifies the loud failure when the molecule does
// not fit the declared size.
func TestCoulomb_SizeTooSmall(t *testing.T) {
	m := testMol(t)
	o := rep.DefaultOptions()
	o.Size(3)
	_, err := rep.Coulomb(m, o)
	assert.ErrorIs(t, err, qml.ErrConfiguration, "truncation must never be silent")

	_, err = rep.CoulombEigen(m, o)
	assert.ErrorIs(t, err, qml.ErrConfiguration)
	_, err = rep.AtomicCoulomb(m, o)
	assert.ErrorIs(t, err, qml.ErrConfiguration)
}

// TestCoulomb_SingleAtom checks the smallest possible case against the
// closed-form value.
func TestCoulomb_SingleAtom(t *testing.T) {
	m, err := qml.NewMoleculeFromSlice([]int{6}, []float64{0, 0, 0})
	require.NoError(t, err)
	o := rep.DefaultOptions()
	o.Size(1)
	v, err := rep.Coulomb(m, o)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5 * math.Pow(6, 2.4)}, v)
}

// TestCoulombEigen_Basics checks length, ordering and the trace identity of
// the eigenvalue representation.
func TestCoulombEigen_Basics(t *testing.T) {
	m := testMol(t)
	o := rep.DefaultOptions()
	o.Size(6)
	v, err := rep.CoulombEigen(m, o)
	require.NoError(t, err)
	require.Len(t, v, 6)
	for i := 1; i < 4; i++ {
		assert.GreaterOrEqual(t, v[i-1], v[i], "eigenvalues must come in decreasing order")
	}
	assert.Zero(t, v[4])
	assert.Zero(t, v[5])
	//the eigenvalue sum equals the trace of the Coulomb matrix
	trace := 0.5 * (math.Pow(8, 2.4) + math.Pow(6, 2.4) + 2*math.Pow(1, 2.4))
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	assert.InDelta(t, trace, sum, 1e-9)
}

// TestCoulombEigen_PermutationInvariance: eigenvalues are invariant to atom
// order up to numerical noise of the eigensolver.
func TestCoulombEigen_PermutationInvariance(t *testing.T) {
	m := testMol(t)
	p, err := m.Permuted([]int{2, 3, 1, 0})
	require.NoError(t, err)
	o := rep.DefaultOptions()
	o.Size(4)
	a, err := rep.CoulombEigen(m, o)
	require.NoError(t, err)
	b, err := rep.CoulombEigen(p, o)
	require.NoError(t, err)
	assert.InDeltaSlice(t, a, b, 1e-10)
}

// TestAtomicCoulomb_Shape checks the one-row-per-atom layout.
func TestAtomicCoulomb_Shape(t *testing.T) {
	m := testMol(t)
	o := rep.DefaultOptions()
	o.Size(5)
	o.Sorting(rep.ByDistance)
	M, err := rep.AtomicCoulomb(m, o)
	require.NoError(t, err)
	r, c := M.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, rep.VectorLen(5), c)
}

// TestAtomicCoulomb_RowsFollowAtoms verifies that the rows permute along
// with the atoms while each row's content stays identical.
func TestAtomicCoulomb_RowsFollowAtoms(t *testing.T) {
	m := testMol(t)
	perm := []int{3, 1, 0, 2}
	p, err := m.Permuted(perm)
	require.NoError(t, err)

	o := rep.DefaultOptions()
	o.Size(4)
	o.Sorting(rep.ByDistance)
	a, err := rep.AtomicCoulomb(m, o)
	require.NoError(t, err)
	b, err := rep.AtomicCoulomb(p, o)
	require.NoError(t, err)
	for i, pi := range perm {
		assert.Equal(t, a.RawRowView(pi), b.RawRowView(i),
			"the environment of an atom must not depend on the listing order")
	}
}

// TestAtomicCoulomb_SingleAtom: one atom, no neighbors, only the self term
// survives with a unit central mask.
func TestAtomicCoulomb_SingleAtom(t *testing.T) {
	m, err := qml.NewMoleculeFromSlice([]int{6}, []float64{0, 0, 0})
	require.NoError(t, err)
	o := rep.DefaultOptions()
	o.Size(1)
	o.Sorting(rep.ByDistance)
	M, err := rep.AtomicCoulomb(m, o)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5 * math.Pow(6, 2.4)}, M.RawRowView(0))
}

// TestAtomicCoulomb_CutoffKills verifies that a pair beyond the interaction
// cutoff contributes nothing.
func TestAtomicCoulomb_CutoffKills(t *testing.T) {
	//two He atoms 10 length units apart
	m, err := qml.NewMoleculeFromSlice([]int{2, 2}, []float64{0, 0, 0, 10, 0, 0})
	require.NoError(t, err)
	o := rep.DefaultOptions()
	o.Size(2)
	o.Sorting(rep.ByDistance)
	o.CentralCutoff(5)
	o.InteractionCutoff(5)
	M, err := rep.AtomicCoulomb(m, o)
	require.NoError(t, err)
	//row layout: [M11, M21, M22]; the neighbor is fully masked out
	row := M.RawRowView(0)
	assert.Equal(t, 0.5*math.Pow(2, 2.4), row[0])
	assert.Zero(t, row[1])
	assert.Zero(t, row[2])
}
