/*
 * latt.go, part of golatt.
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

package latt

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

/*Note: a few functions here panic instead of returning errors. Those are
 * "fundamental" accessors: if they are called on a nil dataset or with an
 * out-of-bounds index, the calling program is way-most likely wrong and
 * should crash.*/

// Box contains the simulation cell bounds of a data file. Zlo/Zhi are (0,0)
// for files without z bounds. A Box is never modified once built.
type Box struct {
	Xlo, Xhi float64
	Ylo, Yhi float64
	Zlo, Zhi float64
}

// NewBox returns a Box with the given bounds. It returns an error if
// the x or y bounds are inverted.
func NewBox(xlo, xhi, ylo, yhi, zlo, zhi float64) (*Box, error) {
	if xlo > xhi || ylo > yhi {
		return nil, CError{"goLatt: Inverted box bounds", []string{"NewBox"}}
	}
	return &Box{Xlo: xlo, Xhi: xhi, Ylo: ylo, Yhi: yhi, Zlo: zlo, Zhi: zhi}, nil
}

// DataSet holds the coordinates of the atoms of one data file, as parallel
// slices sorted by ascending atom id, plus the box bounds. A DataSet is
// immutable after construction: editing a project only ever touches the
// assignment array kept by ProjectState, never the coordinates.
type DataSet struct {
	ids     []int64
	x, y, z []float64
	box     *Box
	byID    map[int64]int
}

// NewDataSet builds a DataSet from the given parallel slices, which it copies
// and stable-sorts by ascending id (ties keep their original relative order).
// All four slices must have the same, nonzero length.
func NewDataSet(ids []int64, x, y, z []float64, box *Box) (*DataSet, error) {
	if ids == nil || x == nil || y == nil || z == nil || box == nil {
		return nil, CError{string(ErrNilData), []string{"NewDataSet"}}
	}
	n := len(ids)
	if n == 0 || len(x) != n || len(y) != n || len(z) != n {
		return nil, CError{"goLatt: id/x/y/z slices must have equal, nonzero lengths", []string{"NewDataSet"}}
	}
	D := new(DataSet)
	D.box = box
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool { return ids[perm[i]] < ids[perm[j]] })
	D.ids = make([]int64, n)
	D.x = make([]float64, n)
	D.y = make([]float64, n)
	D.z = make([]float64, n)
	D.byID = make(map[int64]int, n)
	for i, p := range perm {
		D.ids[i] = ids[p]
		D.x[i] = x[p]
		D.y[i] = y[p]
		D.z[i] = z[p]
		if _, dup := D.byID[ids[p]]; !dup {
			D.byID[ids[p]] = i
		}
	}
	return D, nil
}

// Len returns the number of atoms in the set.
func (D *DataSet) Len() int {
	if D == nil {
		panic("goLatt: Attempted to use a nil DataSet")
	}
	return len(D.ids)
}

// Box returns the cell bounds.
func (D *DataSet) Box() *Box { return D.box }

// ID returns the atom id at index i.
func (D *DataSet) ID(i int) int64 { return D.ids[i] }

// X returns the x coordinate of the atom at index i. Y and Z are analogous.
func (D *DataSet) X(i int) float64 { return D.x[i] }

func (D *DataSet) Y(i int) float64 { return D.y[i] }

func (D *DataSet) Z(i int) float64 { return D.z[i] }

// IndexOf returns the index of the atom with the given id. For duplicated
// ids it returns the first occurrence in the sorted order.
func (D *DataSet) IndexOf(id int64) (int, bool) {
	i, ok := D.byID[id]
	return i, ok
}

// IDs returns a copy of the id slice. The plural accessors copy so the
// caller can't break the immutability of the set.
func (D *DataSet) IDs() []int64 {
	ret := make([]int64, len(D.ids))
	copy(ret, D.ids)
	return ret
}

// Xs returns a copy of the x coordinates. Ys and Zs are analogous.
func (D *DataSet) Xs() []float64 {
	ret := make([]float64, len(D.x))
	copy(ret, D.x)
	return ret
}

func (D *DataSet) Ys() []float64 {
	ret := make([]float64, len(D.y))
	copy(ret, D.y)
	return ret
}

func (D *DataSet) Zs() []float64 {
	ret := make([]float64, len(D.z))
	copy(ret, D.z)
	return ret
}

// Centroid returns the geometric center of the set in the xy plane.
func (D *DataSet) Centroid() (float64, float64) {
	n := float64(D.Len())
	return floats.Sum(D.x) / n, floats.Sum(D.y) / n
}

// maximum number of atoms sampled by DefaultBandWidth. The estimate is
// O(samples*N), which is plenty for a default.
const bandWidthSamples = 512

// DefaultBandWidth estimates a reasonable half-width for line-band selections
// when the caller has no physically meaningful radius: half the median
// nearest-neighbour distance in the xy plane. For a single-atom set it
// returns 0.5.
func (D *DataSet) DefaultBandWidth() float64 {
	n := D.Len()
	if n < 2 {
		return 0.5
	}
	step := 1
	if n > bandWidthSamples {
		step = n / bandWidthSamples
	}
	nearest := make([]float64, 0, bandWidthSamples+1)
	for i := 0; i < n; i += step {
		min := math.Inf(1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			dx := D.x[j] - D.x[i]
			dy := D.y[j] - D.y[i]
			if d2 := dx*dx + dy*dy; d2 < min {
				min = d2
			}
		}
		nearest = append(nearest, math.Sqrt(min))
	}
	sort.Float64s(nearest)
	return 0.5 * stat.Quantile(0.5, stat.Empirical, nearest, nil)
}
