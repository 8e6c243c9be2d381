/*
 * periodic.go, part of goQML.
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

import "fmt"

//A map for assigning nuclear charges to element symbols.
//Elements up to Kr, plus the heavier ones that show up in
//organic/organometallic datasets. Extend as needed.
var symbolZ = map[string]int{
	"H": 1, "He": 2,
	"Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17, "Ar": 18,
	"K": 19, "Ca": 20, "Sc": 21, "Ti": 22, "V": 23, "Cr": 24, "Mn": 25,
	"Fe": 26, "Co": 27, "Ni": 28, "Cu": 29, "Zn": 30,
	"Ga": 31, "Ge": 32, "As": 33, "Se": 34, "Br": 35, "Kr": 36,
	"Ru": 44, "Rh": 45, "Pd": 46, "Ag": 47, "Cd": 48, "Sn": 50,
	"I": 53, "Pt": 78, "Au": 79, "Hg": 80, "Pb": 82,
}

var zSymbol = func() map[int]string {
	ret := make(map[int]string, len(symbolZ))
	for k, v := range symbolZ {
		ret[v] = k
	}
	return ret
}()

// NuclearCharge returns the nuclear charge for an element symbol. It returns
// ErrConfiguration for a symbol not in the table.
func NuclearCharge(symbol string) (int, error) {
	z, ok := symbolZ[symbol]
	if !ok {
		return 0, NewError(ErrConfiguration, "NuclearCharge",
			fmt.Sprintf("unknown element symbol %q", symbol))
	}
	return z, nil
}

// Symbol returns the element symbol for a nuclear charge, or an empty string
// if the charge is not in the table.
func Symbol(z int) string {
	return zSymbol[z]
}
