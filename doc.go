/*
 * doc.go, part of golatt.
 *
 * Copyright 2026 Matias Fuentealba
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

/*
Package latt provides structures and functions to carve spatially-defined
subsets out of 2D point lattices read from LAMMPS data files, and to tag those
subsets with integer group labels.

The workflow is: read a DataSet with DataFileRead, wrap it in a ProjectState,
obtain index sets from a Selector (point pick, rectangle, periodic line bands,
lattice-rule propagation, an optional circular mask) and commit them with
ProjectState.Assign, which records every mutation on a bounded undo/redo log.
The whole session round-trips through the lattjson subpackage; the lattplot
subpackage renders it, and the center subpackage resolves points in space from
atom ids, to place the center of a localized mode.

All of this is strictly single-threaded: a ProjectState and its Selector are
meant to be driven to completion by one goroutine (typically a UI loop). A
DataSet, on the other hand, is immutable after construction and can be shared
freely.
*/
package latt
