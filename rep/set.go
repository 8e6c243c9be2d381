/*
 * set.go, part of goQML.
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
	"sync"

	qml "github.com/goqml/goqml"
	"gonum.org/v1/gonum/mat"
)

// Scheme identifies the representation a Set was generated with. Two sets can
// only enter a common kernel computation if their schemes and dimensions
// match; the kernel engine checks both.
type Scheme int

const (
	SchemeCoulomb Scheme = iota + 1
	SchemeCoulombEigen
	SchemeBOB
	SchemeAtomicCoulomb
	SchemeACSF
)

func (s Scheme) String() string {
	switch s {
	case SchemeCoulomb:
		return "coulomb"
	case SchemeCoulombEigen:
		return "coulomb-eigen"
	case SchemeBOB:
		return "bob"
	case SchemeAtomicCoulomb:
		return "atomic-coulomb"
	case SchemeACSF:
		return "acsf"
	}
	return fmt.Sprintf("scheme(%d)", int(s))
}

// Set holds the molecular representations of a dataset, one row per molecule,
// in the order the molecules were given. That order defines the row/column
// order of any kernel matrix derived from the Set, so it is preserved
// end-to-end.
type Set struct {
	data   *mat.Dense //molecules x descriptor length
	scheme Scheme
}

// Len returns the number of molecules in the set.
func (s *Set) Len() int {
	r, _ := s.data.Dims()
	return r
}

// Dim returns the length of each representation vector.
func (s *Set) Dim() int {
	_, c := s.data.Dims()
	return c
}

// Scheme returns the representation scheme the set was generated with.
func (s *Set) Scheme() Scheme {
	return s.scheme
}

// Data returns the underlying molecules-by-dimension matrix. The kernel
// engine only reads it; callers that write to it are on their own.
func (s *Set) Data() *mat.Dense {
	return s.data
}

// Row returns the representation of the i-th molecule, without copying.
func (s *Set) Row(i int) []float64 {
	return s.data.RawRowView(i)
}

// AtomicSet holds atomic representations of a dataset: the rows of all
// molecules stacked in dataset order, plus the atom count of each molecule so
// the block belonging to a given molecule can be recovered.
type AtomicSet struct {
	data    *mat.Dense //total atoms x descriptor length
	counts  []int
	offsets []int //offsets[i] is the first row of molecule i
	scheme  Scheme
}

// Len returns the number of molecules in the set.
func (s *AtomicSet) Len() int {
	return len(s.counts)
}

// Dim returns the length of each per-atom representation vector.
func (s *AtomicSet) Dim() int {
	_, c := s.data.Dims()
	return c
}

// Scheme returns the representation scheme the set was generated with.
func (s *AtomicSet) Scheme() Scheme {
	return s.scheme
}

// Atoms returns the number of atoms of the i-th molecule.
func (s *AtomicSet) Atoms(i int) int {
	return s.counts[i]
}

// Offset returns the index of the first stacked row belonging to the i-th
// molecule.
func (s *AtomicSet) Offset(i int) int {
	return s.offsets[i]
}

// Data returns the stacked atoms-by-dimension matrix.
func (s *AtomicSet) Data() *mat.Dense {
	return s.data
}

// Molecule returns a view of the rows belonging to the i-th molecule.
func (s *AtomicSet) Molecule(i int) mat.Matrix {
	return s.data.Slice(s.offsets[i], s.offsets[i]+s.counts[i], 0, s.Dim())
}

// apply runs f(i) for i in 0..n-1 on cpus goroutines and returns the first
// error by index. Each call writes only its own pre-allocated output, so no
// synchronization beyond the job channel is needed.
func apply(n, cpus int, f func(i int) error) error {
	if cpus > n {
		cpus = n
	}
	if cpus < 1 {
		cpus = 1
	}
	jobs := make(chan int)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = f(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func checkMols(caller string, mols []*qml.Molecule) error {
	if len(mols) == 0 {
		return qml.NewError(qml.ErrEmptyInput, caller, "no molecules given")
	}
	for i, m := range mols {
		if m == nil {
			return qml.NewError(qml.ErrEmptyInput, caller, fmt.Sprintf("molecule %d is nil", i))
		}
	}
	return nil
}

// CoulombSet generates the Coulomb-matrix representations of mols, in order,
// distributing the molecules over Cpus goroutines.
func CoulombSet(mols []*qml.Molecule, options ...*Options) (*Set, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if err := checkMols("CoulombSet", mols); err != nil {
		return nil, err
	}
	data := mat.NewDense(len(mols), VectorLen(o.size), nil)
	err := apply(len(mols), o.cpus, func(i int) error {
		v, err := Coulomb(mols[i], o)
		if err != nil {
			return err
		}
		data.SetRow(i, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Set{data: data, scheme: SchemeCoulomb}, nil
}

// CoulombEigenSet generates the eigenvalue Coulomb-matrix representations of
// mols, in order, distributing the molecules over Cpus goroutines.
func CoulombEigenSet(mols []*qml.Molecule, options ...*Options) (*Set, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if err := checkMols("CoulombEigenSet", mols); err != nil {
		return nil, err
	}
	data := mat.NewDense(len(mols), o.size, nil)
	err := apply(len(mols), o.cpus, func(i int) error {
		v, err := CoulombEigen(mols[i], o)
		if err != nil {
			return err
		}
		data.SetRow(i, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Set{data: data, scheme: SchemeCoulombEigen}, nil
}

// BOBSet generates the Bag of Bonds representations of mols, in order,
// distributing the molecules over Cpus goroutines.
func BOBSet(mols []*qml.Molecule, bags Bags, options ...*Options) (*Set, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if err := checkMols("BOBSet", mols); err != nil {
		return nil, err
	}
	d, err := bags.Len()
	if err != nil {
		return nil, err
	}
	data := mat.NewDense(len(mols), d, nil)
	err = apply(len(mols), o.cpus, func(i int) error {
		v, err := BOB(mols[i], bags)
		if err != nil {
			return err
		}
		data.SetRow(i, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Set{data: data, scheme: SchemeBOB}, nil
}

// newAtomicSet allocates the stacked container for mols with row width d.
func newAtomicSet(mols []*qml.Molecule, d int, scheme Scheme) *AtomicSet {
	counts := make([]int, len(mols))
	offsets := make([]int, len(mols))
	total := 0
	for i, m := range mols {
		counts[i] = m.Len()
		offsets[i] = total
		total += m.Len()
	}
	return &AtomicSet{
		data:    mat.NewDense(total, d, nil),
		counts:  counts,
		offsets: offsets,
		scheme:  scheme,
	}
}

// setBlock copies the rows of src into s starting at the i-th molecule's
// offset.
func (s *AtomicSet) setBlock(i int, src *mat.Dense) {
	r, _ := src.Dims()
	for k := 0; k < r; k++ {
		s.data.SetRow(s.offsets[i]+k, src.RawRowView(k))
	}
}

// AtomicCoulombSet generates the local Coulomb-matrix representations of
// every atom of every molecule in mols, distributing the molecules over Cpus
// goroutines.
func AtomicCoulombSet(mols []*qml.Molecule, options ...*Options) (*AtomicSet, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if err := checkMols("AtomicCoulombSet", mols); err != nil {
		return nil, err
	}
	if o.sorting == Unsorted {
		return nil, qml.NewError(qml.ErrConfiguration, "AtomicCoulombSet",
			"the atomic Coulomb matrix requires distance or row-norm sorting")
	}
	if o.sorting == RowNorm {
		//molecular default; for the atomic flavor, distance is the usual choice
		oo := *o //copy, so the caller's Options is untouched
		oo.sorting = ByDistance
		o = &oo
	}
	s := newAtomicSet(mols, VectorLen(o.size), SchemeAtomicCoulomb)
	err := apply(len(mols), o.cpus, func(i int) error {
		block, err := AtomicCoulomb(mols[i], o)
		if err != nil {
			return err
		}
		s.setBlock(i, block)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ACSFSet generates the atom-centered symmetry function representations of
// every atom of every molecule in mols, distributing the molecules over Cpus
// goroutines.
func ACSFSet(mols []*qml.Molecule, p *ACSFParams, options ...*Options) (*AtomicSet, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if err := checkMols("ACSFSet", mols); err != nil {
		return nil, err
	}
	if p == nil {
		p = DefaultACSFParams()
	}
	if err := p.check("ACSFSet"); err != nil {
		return nil, err
	}
	s := newAtomicSet(mols, p.Size(), SchemeACSF)
	err := apply(len(mols), o.cpus, func(i int) error {
		block, err := ACSF(mols[i], p)
		if err != nil {
			return err
		}
		s.setBlock(i, block)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
