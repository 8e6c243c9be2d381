/*
 * acsf_test.go, part of goQML.
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
	"strings"
	"testing"

	qml "github.com/goqml/goqml"
	"github.com/goqml/goqml/rep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestACSF_Size checks the descriptor-length formula against the default
// parameters.
func TestACSF_Size(t *testing.T) {
	p := rep.DefaultACSFParams()
	//5 elements: 5*3 two-body + 15 pairs * 3*3 three-body
	assert.Equal(t, 5*3+15*9, p.Size())
}

// TestACSF_ShapeAndDeterminism verifies one row per atom and repeatable
// output.
func TestACSF_ShapeAndDeterminism(t *testing.T) {
	m := testMol(t)
	p := rep.DefaultACSFParams()
	a, err := rep.ACSF(m, p)
	require.NoError(t, err)
	r, c := a.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, p.Size(), c)

	b, err := rep.ACSF(m, p)
	require.NoError(t, err)
	assert.Equal(t, a.RawMatrix().Data, b.RawMatrix().Data)
}

// TestACSF_PermutationInvariance: the symmetry functions are sums over
// neighbors, so each atom's row survives a reordering (up to the float
// summation order).
func TestACSF_PermutationInvariance(t *testing.T) {
	m := testMol(t)
	perm := []int{2, 0, 3, 1}
	p, err := m.Permuted(perm)
	require.NoError(t, err)

	params := rep.DefaultACSFParams()
	a, err := rep.ACSF(m, params)
	require.NoError(t, err)
	b, err := rep.ACSF(p, params)
	require.NoError(t, err)
	for i, pi := range perm {
		assert.InDeltaSlice(t, a.RawRowView(pi), b.RawRowView(i), 1e-12)
	}
}

// TestACSF_TwoBody works out the radial part of a diatomic by hand.
func TestACSF_TwoBody(t *testing.T) {
	d := 1.5
	m, err := qml.NewMoleculeFromSlice([]int{1, 6}, []float64{0, 0, 0, d, 0, 0})
	require.NoError(t, err)
	p := &rep.ACSFParams{
		Elements: []int{1, 6},
		NRs2:     2, NRs3: 1, NTs: 1,
		Eta2: 1, Eta3: 1, Zeta: 1,
		RCut: 5, ACut: 5, BinMin: 0.8,
	}
	a, err := rep.ACSF(m, p)
	require.NoError(t, err)

	fc := 0.5 * (math.Cos(math.Pi*d/5) + 1)
	//row 0 is the H atom; its only neighbor is C (element index 1),
	//so the H block is empty and the C block holds the two grid values
	row := a.RawRowView(0)
	assert.Zero(t, row[0])
	assert.Zero(t, row[1])
	assert.InDelta(t, math.Exp(-(d-0.8)*(d-0.8))*fc, row[2], 1e-14)
	assert.InDelta(t, math.Exp(-(d-5)*(d-5))*fc, row[3], 1e-14)
	//no third atom, no angular part
	for _, x := range row[4:] {
		assert.Zero(t, x)
	}
}

// TestACSF_UndeclaredElement fails loudly instead of dropping atoms.
func TestACSF_UndeclaredElement(t *testing.T) {
	m := testMol(t) //contains O
	p := &rep.ACSFParams{
		Elements: []int{1, 6},
		NRs2:     2, NRs3: 1, NTs: 1,
		Eta2: 1, Eta3: 1, Zeta: 1,
		RCut: 5, ACut: 5, BinMin: 0.8,
	}
	_, err := rep.ACSF(m, p)
	assert.ErrorIs(t, err, qml.ErrConfiguration)
}

// TestACSF_BadParams covers the up-front validation.
func TestACSF_BadParams(t *testing.T) {
	m := testMol(t)
	p := rep.DefaultACSFParams()
	p.RCut = 0
	_, err := rep.ACSF(m, p)
	assert.ErrorIs(t, err, qml.ErrConfiguration)

	p = rep.DefaultACSFParams()
	p.Elements = nil
	_, err = rep.ACSF(m, p)
	assert.ErrorIs(t, err, qml.ErrConfiguration)

	p = rep.DefaultACSFParams()
	p.NTs = 0
	_, err = rep.ACSF(m, p)
	assert.ErrorIs(t, err, qml.ErrConfiguration)
}

// TestReadACSFParams decodes parameters from YAML with defaults for the
// omitted keys.
func TestReadACSFParams(t *testing.T) {
	in := "elements: [1, 6, 8]\nnrs2: 4\nrcut: 6.5\n"
	p, err := rep.ReadACSFParams(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 6, 8}, p.Elements)
	assert.Equal(t, 4, p.NRs2)
	assert.Equal(t, 6.5, p.RCut)
	assert.Equal(t, 3, p.NRs3, "omitted keys keep their defaults")

	_, err = rep.ReadACSFParams(strings.NewReader("rcut: -1\n"))
	assert.ErrorIs(t, err, qml.ErrConfiguration)
}
