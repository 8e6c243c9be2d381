/*
 * acsf.go, part of goQML.
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
	"math"

	qml "github.com/goqml/goqml"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// ACSFParams configures the atom-centered symmetry function representation.
// Elements must list every nuclear charge that can appear in the dataset; the
// descriptor has one block of two-body functions per element and one block of
// three-body functions per unordered element pair, so the same ACSFParams
// must be shared by every molecule entering a common kernel computation.
type ACSFParams struct {
	Elements []int   `yaml:"elements"`
	NRs2     int     `yaml:"nrs2"` //radial grid points, two-body
	NRs3     int     `yaml:"nrs3"` //radial grid points, three-body
	NTs      int     `yaml:"nts"`  //angular grid points
	Eta2     float64 `yaml:"eta2"`
	Eta3     float64 `yaml:"eta3"`
	Zeta     float64 `yaml:"zeta"`
	RCut     float64 `yaml:"rcut"` //two-body cutoff radius
	ACut     float64 `yaml:"acut"` //three-body cutoff radius
	BinMin   float64 `yaml:"bin_min"`
}

// DefaultACSFParams returns the default ACSF settings: H, C, N, O and S
// elements, 3-point radial and angular grids, unit widths and 5-length-unit
// cutoffs.
func DefaultACSFParams() *ACSFParams {
	return &ACSFParams{
		Elements: []int{1, 6, 7, 8, 16},
		NRs2:     3,
		NRs3:     3,
		NTs:      3,
		Eta2:     1,
		Eta3:     1,
		Zeta:     1,
		RCut:     5,
		ACut:     5,
		BinMin:   0.8,
	}
}

// ReadACSFParams decodes ACSFParams from YAML, filling omitted keys with the
// defaults.
func ReadACSFParams(r io.Reader) (*ACSFParams, error) {
	p := DefaultACSFParams()
	if err := yaml.NewDecoder(r).Decode(p); err != nil {
		return nil, qml.NewError(qml.ErrConfiguration, "ReadACSFParams", err.Error())
	}
	if err := p.check("ReadACSFParams"); err != nil {
		return nil, err
	}
	return p, nil
}

// Size returns the per-atom descriptor length for these parameters:
// ne*NRs2 two-body functions plus ne*(ne+1)/2 * NRs3*NTs three-body ones.
func (p *ACSFParams) Size() int {
	ne := len(p.Elements)
	return ne*p.NRs2 + ne*(ne+1)/2*p.NRs3*p.NTs
}

func (p *ACSFParams) check(caller string) error {
	if len(p.Elements) == 0 {
		return qml.NewError(qml.ErrConfiguration, caller, "no elements declared")
	}
	if p.NRs2 < 1 || p.NRs3 < 1 || p.NTs < 1 {
		return qml.NewError(qml.ErrConfiguration, caller, "grid sizes must be at least 1")
	}
	if p.RCut <= 0 || p.ACut <= 0 {
		return qml.NewError(qml.ErrConfiguration, caller, "cutoff radii must be positive")
	}
	if p.Eta2 <= 0 || p.Eta3 <= 0 || p.Zeta <= 0 {
		return qml.NewError(qml.ErrConfiguration, caller, "eta2, eta3 and zeta must be positive")
	}
	return nil
}

// linspace returns n evenly spaced values from a to b, both included.
func linspace(a, b float64, n int) []float64 {
	ret := make([]float64, n)
	if n == 1 {
		ret[0] = a
		return ret
	}
	step := (b - a) / float64(n-1)
	for i := range ret {
		ret[i] = a + float64(i)*step
	}
	return ret
}

// fcut is the cosine cutoff function: 0.5*(cos(pi*d/r)+1) inside r, 0 beyond.
func fcut(d, r float64) float64 {
	if d > r {
		return 0
	}
	return 0.5 * (math.Cos(math.Pi*d/r) + 1)
}

// ACSF generates the atom-centered symmetry function representation of mol:
// one row per atom. The two-body part of atom i accumulates, per element and
// per point Rs of a radial grid, exp(-eta2*(r_ij-Rs)^2)*fcut(r_ij); the
// three-body part accumulates, per element pair and per point of a radial
// times angular grid,
//
//	2^(1-zeta) * (1+cos(theta_jik - Ts))^zeta *
//	    exp(-eta3*((r_ij+r_ik)/2 - Rs)^2) * fcut(r_ij)*fcut(r_ik)
//
// Both parts are sums over neighbors, so each row only depends on the
// geometry, never on the atom order. The result has one row per atom, in
// input atom order; the row width is fixed by the parameters alone, so no
// padding is involved (AtomicSet tracks per-molecule atom counts instead).
// It returns ErrConfiguration if mol contains an element not declared in p.
func ACSF(mol *qml.Molecule, p *ACSFParams) (*mat.Dense, error) {
	if p == nil {
		p = DefaultACSFParams()
	}
	if err := p.check("ACSF"); err != nil {
		return nil, err
	}
	n := mol.Len()
	ne := len(p.Elements)
	eIdx := make(map[int]int, ne)
	for i, z := range p.Elements {
		eIdx[z] = i
	}
	for i := 0; i < n; i++ {
		if _, ok := eIdx[mol.Z(i)]; !ok {
			return nil, qml.NewError(qml.ErrConfiguration, "ACSF",
				fmt.Sprintf("molecule contains element %s (Z=%d) not declared in the parameters",
					qml.Symbol(mol.Z(i)), mol.Z(i)))
		}
	}
	rs2 := linspace(p.BinMin, p.RCut, p.NRs2)
	rs3 := linspace(p.BinMin, p.ACut, p.NRs3)
	ts := linspace(0, math.Pi, p.NTs)
	d := p.Size()
	twoBody := ne * p.NRs2
	angNorm := math.Pow(2, 1-p.Zeta)
	ret := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		row := ret.RawRowView(i)
		//two-body
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			dij := mol.Distance(i, j)
			if dij > p.RCut {
				continue
			}
			fc := fcut(dij, p.RCut)
			base := eIdx[mol.Z(j)] * p.NRs2
			for a, rs := range rs2 {
				row[base+a] += math.Exp(-p.Eta2*(dij-rs)*(dij-rs)) * fc
			}
		}
		//three-body
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			dij := mol.Distance(i, j)
			if dij > p.ACut {
				continue
			}
			for k := j + 1; k < n; k++ {
				if k == i {
					continue
				}
				dik := mol.Distance(i, k)
				if dik > p.ACut {
					continue
				}
				theta := angle(mol, i, j, k)
				fc := fcut(dij, p.ACut) * fcut(dik, p.ACut)
				davg := 0.5 * (dij + dik)
				base := twoBody + pairIndex(eIdx[mol.Z(j)], eIdx[mol.Z(k)], ne)*p.NRs3*p.NTs
				for a, rs := range rs3 {
					radial := math.Exp(-p.Eta3*(davg-rs)*(davg-rs)) * fc
					for b, t := range ts {
						row[base+a*p.NTs+b] += angNorm *
							math.Pow(1+math.Cos(theta-t), p.Zeta) * radial
					}
				}
			}
		}
	}
	return ret, nil
}

// pairIndex maps the unordered element-index pair (a,b) to its position in
// the packed list of ne*(ne+1)/2 pairs.
func pairIndex(a, b, ne int) int {
	if a > b {
		a, b = b, a
	}
	return a*ne - a*(a-1)/2 + (b - a)
}

// angle returns the angle at atom i between atoms j and k.
func angle(mol *qml.Molecule, i, j, k int) float64 {
	xi, yi, zi := mol.Coord(i)
	xj, yj, zj := mol.Coord(j)
	xk, yk, zk := mol.Coord(k)
	ux, uy, uz := xj-xi, yj-yi, zj-zi
	vx, vy, vz := xk-xi, yk-yi, zk-zi
	dot := ux*vx + uy*vy + uz*vz
	nu := math.Sqrt(ux*ux + uy*uy + uz*uz)
	nv := math.Sqrt(vx*vx + vy*vy + vz*vz)
	cos := dot / (nu * nv)
	//floating point can push |cos| barely past 1
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}
