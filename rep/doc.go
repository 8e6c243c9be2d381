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

/*Package rep generates fixed-shape numeric representations of molecules, the
descriptors fed to the kernel engine in the kern package.

Two families are implemented. Molecular representations produce one vector
per molecule: the Coulomb matrix (row-norm sorted or unsorted), its
eigenvalue spectrum, and the Bag of Bonds. Atomic representations produce
one vector per atom: the local Coulomb matrix and atom-centered symmetry
functions (ACSF).

Every generator is deterministic (the same molecule and options always give
the exact same numbers) and invariant to the order in which the atoms of
the molecule are listed. Outputs are zero-padded to a fixed shape set by
the Size option, so molecules of different sizes are directly comparable;
asking for a size smaller than the molecule is an error, never a silent
truncation.

The Set and AtomicSet containers hold the representations of a whole
dataset, preserve molecule order, can be generated concurrently, and can
be written to and read from zstd-compressed files.
*/
package rep
