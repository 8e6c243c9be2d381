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

/*Package kern computes dense kernel (Gram) matrices between representation
sets built with the rep package.

An Engine carries the compute settings (goroutine count, logger); a Config
names the kernel function (gaussian, laplacian or linear) and its width.
Engine.Matrix produces K with K[i][j] = k(A[i], B[j]); when B is the same
set as A only the upper triangle is computed and the rest filled by
symmetry, so self-kernels are exactly symmetric with an exact diagonal.
Engine.Local does the same for atomic representation sets, summing the
kernel over all atom pairs of each molecule pair.

Squared euclidean distances are computed for the whole matrix at once
through the identity ||x-y||^2 = ||x||^2 + ||y||^2 - 2*x.y, so the dominant
cost is a single matrix product running on gonum's BLAS. Everything is
float64 throughout; kernel matrices feed regressions whose conditioning
does not forgive single precision.
*/
package kern
