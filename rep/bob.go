/*
 * bob.go, part of goQML.
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
)

// Bags declares, per element symbol, the maximum number of atoms of that
// element a molecule in the dataset may have. It fixes the shape of the Bag
// of Bonds representation, so the same Bags must be used for every molecule
// that will enter a common kernel computation.
type Bags map[string]int

// Len returns the length of the Bag of Bonds vector generated with these
// capacities: one self bag of size c per element, one pair bag of size
// c*(c-1)/2 per element, and one of size c1*c2 per distinct element pair.
func (b Bags) Len() (int, error) {
	n := 0
	caps, err := b.ordered()
	if err != nil {
		return 0, err
	}
	for i, ci := range caps {
		n += ci.cap + ci.cap*(ci.cap-1)/2
		for j := 0; j < i; j++ {
			n += ci.cap * caps[j].cap
		}
	}
	return n, nil
}

type bagCap struct {
	z   int
	cap int
}

// ordered returns the bag capacities in the canonical order: ascending
// capacity, ties broken by nuclear charge. The order is arbitrary but must be
// fixed, since it defines the layout of the output vector.
func (b Bags) ordered() ([]bagCap, error) {
	ret := make([]bagCap, 0, len(b))
	for sym, c := range b {
		z, err := qml.NuclearCharge(sym)
		if err != nil {
			return nil, err
		}
		if c <= 0 {
			return nil, qml.NewError(qml.ErrConfiguration, "Bags",
				fmt.Sprintf("non-positive capacity %d for element %s", c, sym))
		}
		ret = append(ret, bagCap{z: z, cap: c})
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].cap != ret[j].cap {
			return ret[i].cap < ret[j].cap
		}
		return ret[i].z < ret[j].z
	})
	return ret, nil
}

// BOB generates the Bag of Bonds representation of mol. For every element a
// bag of self terms 0.5*Z^2.4 (one per atom of that element) and a bag of
// same-element pair terms Z^2/r_ij are built; for every pair of distinct
// elements, a bag of cross terms Z_i*Z_j/r_ij. Each bag is sorted in
// decreasing order and zero-padded to the capacity declared in bags, which
// makes the output both fixed-shape and invariant to atom order. The bags are
// concatenated elements-ascending-by-capacity: for each element its self bag,
// its same-element pair bag, and then its cross bags against every earlier
// element.
// It returns ErrConfiguration if mol contains an element missing from bags or
// more atoms of an element than its declared capacity.
func BOB(mol *qml.Molecule, bags Bags) ([]float64, error) {
	caps, err := bags.ordered()
	if err != nil {
		return nil, err
	}
	byZ := make(map[int][]int, len(caps)) //atom indices per element
	for i := 0; i < mol.Len(); i++ {
		byZ[mol.Z(i)] = append(byZ[mol.Z(i)], i)
	}
	declared := make(map[int]int, len(caps))
	for _, c := range caps {
		declared[c.z] = c.cap
	}
	for z, atoms := range byZ {
		c, ok := declared[z]
		if !ok {
			return nil, qml.NewError(qml.ErrConfiguration, "BOB",
				fmt.Sprintf("molecule contains element %s (Z=%d) with no declared bag", qml.Symbol(z), z))
		}
		if len(atoms) > c {
			return nil, qml.NewError(qml.ErrConfiguration, "BOB",
				fmt.Sprintf("molecule has %d %s atoms but the bag holds %d; refusing to truncate",
					len(atoms), qml.Symbol(z), c))
		}
	}
	var out []float64
	for i, ci := range caps {
		self := make([]float64, 0, ci.cap)
		for range byZ[ci.z] {
			self = append(self, 0.5*math.Pow(float64(ci.z), 2.4))
		}
		out = appendBag(out, self, ci.cap)
		pairs := make([]float64, 0, ci.cap*(ci.cap-1)/2)
		atoms := byZ[ci.z]
		for a := 0; a < len(atoms); a++ {
			for b := a + 1; b < len(atoms); b++ {
				pairs = append(pairs, float64(ci.z*ci.z)/mol.Distance(atoms[a], atoms[b]))
			}
		}
		out = appendBag(out, pairs, ci.cap*(ci.cap-1)/2)
		for j := 0; j < i; j++ {
			cj := caps[j]
			cross := make([]float64, 0, ci.cap*cj.cap)
			for _, a := range byZ[ci.z] {
				for _, b := range byZ[cj.z] {
					cross = append(cross, float64(ci.z*cj.z)/mol.Distance(a, b))
				}
			}
			out = appendBag(out, cross, ci.cap*cj.cap)
		}
	}
	return out, nil
}

// appendBag sorts vals in decreasing order and appends them to out,
// zero-padded to width.
func appendBag(out, vals []float64, width int) []float64 {
	sort.Sort(sort.Reverse(sort.Float64Slice(vals)))
	out = append(out, vals...)
	for i := len(vals); i < width; i++ {
		out = append(out, 0)
	}
	return out
}
