/*
 * set_test.go, part of goQML.
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
	"bytes"
	"strings"
	"testing"

	qml "github.com/goqml/goqml"
	"github.com/goqml/goqml/rep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// testMols returns a small heterogeneous dataset.
func testMols(t *testing.T) []*qml.Molecule {
	t.Helper()
	water, err := qml.NewMoleculeFromSlice([]int{8, 1, 1}, []float64{
		0, 0, 0,
		0.76, 0.59, 0,
		-0.76, 0.59, 0,
	})
	require.NoError(t, err)
	co, err := qml.NewMoleculeFromSlice([]int{6, 8}, []float64{0, 0, 0, 1.13, 0, 0})
	require.NoError(t, err)
	methane, err := qml.NewMoleculeFromSlice([]int{6, 1, 1, 1, 1}, []float64{
		0, 0, 0,
		0.63, 0.63, 0.63,
		-0.63, -0.63, 0.63,
		-0.63, 0.63, -0.63,
		0.63, -0.63, -0.63,
	})
	require.NoError(t, err)
	return []*qml.Molecule{water, co, methane}
}

// TestCoulombSet_OrderPreserved verifies that row i of the set is exactly the
// representation of molecule i.
func TestCoulombSet_OrderPreserved(t *testing.T) {
	mols := testMols(t)
	o := rep.DefaultOptions()
	o.Size(6)
	s, err := rep.CoulombSet(mols, o)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, rep.VectorLen(6), s.Dim())
	assert.Equal(t, rep.SchemeCoulomb, s.Scheme())
	for i, m := range mols {
		want, err := rep.Coulomb(m, o)
		require.NoError(t, err)
		assert.Equal(t, want, s.Row(i), "set row %d must match the per-molecule call", i)
	}
}

// TestCoulombSet_ConcurrencyIsInvisible verifies that the goroutine count
// changes nothing in the output.
func TestCoulombSet_ConcurrencyIsInvisible(t *testing.T) {
	mols := testMols(t)
	serial := rep.DefaultOptions()
	serial.Size(6)
	serial.Cpus(1)
	parallel := rep.DefaultOptions()
	parallel.Size(6)
	parallel.Cpus(4)

	a, err := rep.CoulombSet(mols, serial)
	require.NoError(t, err)
	b, err := rep.CoulombSet(mols, parallel)
	require.NoError(t, err)
	assert.True(t, mat.Equal(a.Data(), b.Data()))
}

// TestSets_EmptyInput: a dataset with no molecules is an error for every
// generator.
func TestSets_EmptyInput(t *testing.T) {
	_, err := rep.CoulombSet(nil)
	assert.ErrorIs(t, err, qml.ErrEmptyInput)
	_, err = rep.CoulombEigenSet([]*qml.Molecule{})
	assert.ErrorIs(t, err, qml.ErrEmptyInput)
	_, err = rep.BOBSet(nil, rep.Bags{"H": 1})
	assert.ErrorIs(t, err, qml.ErrEmptyInput)
	_, err = rep.AtomicCoulombSet(nil)
	assert.ErrorIs(t, err, qml.ErrEmptyInput)
	_, err = rep.ACSFSet(nil, nil)
	assert.ErrorIs(t, err, qml.ErrEmptyInput)
}

// TestCoulombSet_PropagatesErrors: one molecule too big for the padding size
// fails the whole set.
func TestCoulombSet_PropagatesErrors(t *testing.T) {
	mols := testMols(t) //methane has 5 atoms
	o := rep.DefaultOptions()
	o.Size(4)
	_, err := rep.CoulombSet(mols, o)
	assert.ErrorIs(t, err, qml.ErrConfiguration)
}

// TestAtomicCoulombSet_Blocks verifies the stacked layout and the per
// molecule bookkeeping.
func TestAtomicCoulombSet_Blocks(t *testing.T) {
	mols := testMols(t)
	o := rep.DefaultOptions()
	o.Size(6)
	s, err := rep.AtomicCoulombSet(mols, o)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{0, 3, 5}, []int{s.Offset(0), s.Offset(1), s.Offset(2)})
	assert.Equal(t, 5, s.Atoms(2))
	r, _ := s.Data().Dims()
	assert.Equal(t, 10, r, "3+2+5 stacked atom rows")

	//molecule 1's block must match the per-molecule call (with the same
	//distance sorting the set generator defaults to)
	oo := rep.DefaultOptions()
	oo.Size(6)
	oo.Sorting(rep.ByDistance)
	want, err := rep.AtomicCoulomb(mols[1], oo)
	require.NoError(t, err)
	assert.True(t, mat.Equal(want, s.Molecule(1)))
}

// TestACSFSet_Blocks verifies the same for the symmetry functions.
func TestACSFSet_Blocks(t *testing.T) {
	mols := testMols(t)
	p := rep.DefaultACSFParams()
	s, err := rep.ACSFSet(mols, p)
	require.NoError(t, err)
	assert.Equal(t, rep.SchemeACSF, s.Scheme())
	assert.Equal(t, p.Size(), s.Dim())
	want, err := rep.ACSF(mols[2], p)
	require.NoError(t, err)
	assert.True(t, mat.Equal(want, s.Molecule(2)))
}

// TestSet_StoreRoundTrip writes a set to a buffer and reads it back intact.
func TestSet_StoreRoundTrip(t *testing.T) {
	mols := testMols(t)
	o := rep.DefaultOptions()
	o.Size(6)
	s, err := rep.CoulombSet(mols, o)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))
	got, err := rep.ReadSet(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Scheme(), got.Scheme())
	assert.True(t, mat.Equal(s.Data(), got.Data()), "stored floats must survive bit-for-bit")
}

// TestAtomicSet_StoreRoundTrip does the same for stacked atomic sets.
func TestAtomicSet_StoreRoundTrip(t *testing.T) {
	mols := testMols(t)
	s, err := rep.ACSFSet(mols, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))
	got, err := rep.ReadAtomicSet(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Scheme(), got.Scheme())
	assert.Equal(t, s.Len(), got.Len())
	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, s.Atoms(i), got.Atoms(i))
		assert.Equal(t, s.Offset(i), got.Offset(i))
	}
	assert.True(t, mat.Equal(s.Data(), got.Data()))
}

// TestReadSet_Garbage rejects input that is not a set file.
func TestReadSet_Garbage(t *testing.T) {
	_, err := rep.ReadSet(strings.NewReader("not a set"))
	assert.Error(t, err)
}

// TestReadOptions decodes an Options from YAML, keeping defaults for omitted
// keys and rejecting unknown sorting names.
func TestReadOptions(t *testing.T) {
	in := "size: 29\nsorting: distance\ncentral_cutoff: 4.0\ncpus: 2\n"
	o, err := rep.ReadOptions(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 29, o.Size())
	assert.Equal(t, rep.ByDistance, o.Sorting())
	assert.Equal(t, 4.0, o.CentralCutoff())
	assert.Equal(t, 2, o.Cpus())
	assert.Equal(t, 1e6, o.InteractionCutoff(), "omitted keys keep their defaults")

	_, err = rep.ReadOptions(strings.NewReader("sorting: sideways\n"))
	assert.ErrorIs(t, err, qml.ErrConfiguration)
}

// TestOptions_Accessors checks the get/set accessor convention: the call
// returns the previous value and ignores invalid arguments.
func TestOptions_Accessors(t *testing.T) {
	o := rep.DefaultOptions()
	prev := o.Size(30)
	assert.Equal(t, 23, prev)
	assert.Equal(t, 30, o.Size())
	o.Size(-1)
	assert.Equal(t, 30, o.Size(), "non-positive sizes are ignored")
	o.Cpus(0)
	assert.Greater(t, o.Cpus(), 0)
}
