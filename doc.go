/*
 * doc.go, part of goQML.
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

/*Package qml is the main package of the goQML library. It provides the molecule
structure shared by the rest of the library, tables of atomic data, and the
error types used throughout.

	**goQML capabilities**

    Generates fixed-shape numeric representations of molecules
	(Coulomb matrix, sorted, unsorted and eigenvalue flavors,
	atomic/local Coulomb matrices, Bag of Bonds and atom-centered
	symmetry functions). All representations are deterministic and
	invariant to the order in which the atoms are given.

    Computes dense kernel (Gram) matrices between sets of
	representations, with Gaussian, Laplacian and linear kernels,
	for both molecular and atomic (local) representations. The
	heavy pairwise work is expressed as dense matrix products so it
	runs on gonum's BLAS.

    Processes whole datasets concurrently, with a configurable
	number of goroutines.

    Stores representation sets on disk in a zstd-compressed binary
	format.

The subpackage rep contains the representation generators and the
representation-set containers. The subpackage kern contains the kernel
engine. This root package only holds what both need.

goQML computes things. It does not read chemistry file formats, fit
regression models or plot; those belong to the caller.
*/
package qml
