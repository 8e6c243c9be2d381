/*
 * options.go, part of goQML.
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
	"io"
	"runtime"

	qml "github.com/goqml/goqml"
	"gopkg.in/yaml.v3"
)

// Sorting selects the canonical atom ordering applied before a matrix
// representation is emitted. The ordering is what makes the output invariant
// to the order of the atoms in the input molecule.
type Sorting int

const (
	//RowNorm orders atoms by decreasing squared norm of their Coulomb-matrix row.
	RowNorm Sorting = iota
	//Unsorted keeps the input atom order. The representation is then NOT
	//permutation invariant; it is kept for parity with the sorted flavor and
	//for debugging.
	Unsorted
	//ByDistance orders atoms by increasing distance to the central atom. Only
	//meaningful for atomic representations.
	ByDistance
)

func (s Sorting) String() string {
	switch s {
	case RowNorm:
		return "row-norm"
	case Unsorted:
		return "unsorted"
	case ByDistance:
		return "distance"
	}
	return fmt.Sprintf("sorting(%d)", int(s))
}

func parseSorting(s string) (Sorting, error) {
	switch s {
	case "row-norm", "":
		return RowNorm, nil
	case "unsorted":
		return Unsorted, nil
	case "distance":
		return ByDistance, nil
	}
	return 0, qml.NewError(qml.ErrConfiguration, "parseSorting",
		fmt.Sprintf("unknown sorting scheme %q", s))
}

// Options holds the settings shared by the representation generators. Zero
// values are never used directly; get a populated one from DefaultOptions and
// change what you need through the accessors. Each accessor returns the
// current value and, if given a valid argument, sets it.
type Options struct {
	size              int
	sorting           Sorting
	centralCutoff     float64
	centralDecay      float64
	interactionCutoff float64
	interactionDecay  float64
	cpus              int
}

// DefaultOptions returns an Options with the default settings: padding size
// 23 atoms, row-norm sorting, cutoffs effectively off (1e6 length units, no
// decay), and as many goroutines as logical CPUs.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.size = 23
	ret.sorting = RowNorm
	ret.centralCutoff = 1e6
	ret.centralDecay = -1
	ret.interactionCutoff = 1e6
	ret.interactionDecay = -1
	ret.cpus = runtime.NumCPU()
	return ret
}

// Size returns the padding size (the largest molecule the representation can
// hold) and sets it, if a positive value is given.
func (o *Options) Size(size ...int) int {
	ret := o.size
	if len(size) > 0 && size[0] > 0 {
		o.size = size[0]
	}
	return ret
}

// Sorting returns the atom-ordering policy and sets it, if given.
func (o *Options) Sorting(sorting ...Sorting) Sorting {
	ret := o.sorting
	if len(sorting) > 0 {
		o.sorting = sorting[0]
	}
	return ret
}

// CentralCutoff returns the distance from the central atom at which atomic
// Coulomb-matrix elements vanish, and sets it, if a positive value is given.
func (o *Options) CentralCutoff(cutoff ...float64) float64 {
	ret := o.centralCutoff
	if len(cutoff) > 0 && cutoff[0] > 0 {
		o.centralCutoff = cutoff[0]
	}
	return ret
}

// CentralDecay returns the width of the smooth decay region before the
// central cutoff and sets it, if given. Non-positive means a sharp cutoff.
func (o *Options) CentralDecay(decay ...float64) float64 {
	ret := o.centralDecay
	if len(decay) > 0 {
		o.centralDecay = decay[0]
	}
	return ret
}

// InteractionCutoff returns the distance between two non-central atoms at
// which their interaction vanishes, and sets it, if a positive value is given.
func (o *Options) InteractionCutoff(cutoff ...float64) float64 {
	ret := o.interactionCutoff
	if len(cutoff) > 0 && cutoff[0] > 0 {
		o.interactionCutoff = cutoff[0]
	}
	return ret
}

// InteractionDecay returns the width of the smooth decay region before the
// interaction cutoff and sets it, if given. Non-positive means a sharp cutoff.
func (o *Options) InteractionDecay(decay ...float64) float64 {
	ret := o.interactionDecay
	if len(decay) > 0 {
		o.interactionDecay = decay[0]
	}
	return ret
}

// Cpus returns the number of goroutines used for dataset-level generation and
// sets it, if a positive value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

// checkSize verifies that the padding size can hold a molecule of n atoms.
func (o *Options) checkSize(caller string, n int) error {
	if o.size < n {
		return qml.NewError(qml.ErrConfiguration, caller,
			fmt.Sprintf("padding size %d is smaller than the molecule (%d atoms); refusing to truncate", o.size, n))
	}
	return nil
}

// optionsFile mirrors Options for YAML decoding.
type optionsFile struct {
	Size              int     `yaml:"size"`
	Sorting           string  `yaml:"sorting"`
	CentralCutoff     float64 `yaml:"central_cutoff"`
	CentralDecay      float64 `yaml:"central_decay"`
	InteractionCutoff float64 `yaml:"interaction_cutoff"`
	InteractionDecay  float64 `yaml:"interaction_decay"`
	Cpus              int     `yaml:"cpus"`
}

// ReadOptions decodes an Options from YAML. Omitted keys keep their default
// values. For example:
//
//	size: 29
//	sorting: row-norm
//	central_cutoff: 4.0
func ReadOptions(r io.Reader) (*Options, error) {
	f := new(optionsFile)
	if err := yaml.NewDecoder(r).Decode(f); err != nil {
		return nil, qml.NewError(qml.ErrConfiguration, "ReadOptions", err.Error())
	}
	o := DefaultOptions()
	if f.Size != 0 {
		if f.Size < 0 {
			return nil, qml.NewError(qml.ErrConfiguration, "ReadOptions",
				fmt.Sprintf("negative size %d", f.Size))
		}
		o.Size(f.Size)
	}
	sorting, err := parseSorting(f.Sorting)
	if err != nil {
		return nil, err
	}
	o.Sorting(sorting)
	if f.CentralCutoff != 0 {
		o.CentralCutoff(f.CentralCutoff)
	}
	if f.CentralDecay != 0 {
		o.CentralDecay(f.CentralDecay)
	}
	if f.InteractionCutoff != 0 {
		o.InteractionCutoff(f.InteractionCutoff)
	}
	if f.InteractionDecay != 0 {
		o.InteractionDecay(f.InteractionDecay)
	}
	if f.Cpus != 0 {
		o.Cpus(f.Cpus)
	}
	return o, nil
}
