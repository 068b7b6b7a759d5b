/*
 * select.go, part of golatt.
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

import "sort"

// LineAxis is the direction a line-band selection runs along.
type LineAxis int

const (
	// Horizontal is a band around a line of constant y, running along x.
	Horizontal LineAxis = iota
	// Vertical is a band around a line of constant x, running along y.
	Vertical
)

func (a LineAxis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Selector answers the geometric queries of the tool over one DataSet. Its
// queries never touch the assignment; they only produce index sets for
// ProjectState.Assign. Besides the dataset it carries the two pieces of
// selection context: the optional circular mask, which intersects every area
// query, and the memory of the last line band, which Rule propagates into a
// 2D sub-lattice. Not safe for concurrent use (the dataset itself is).
type Selector struct {
	d          *DataSet
	circleOn   bool
	cx, cy, cr float64
	line       []int //last full band, sorted along the line, pre-decimation
	lineAxis   LineAxis
	hasLine    bool
}

// NewSelector returns a Selector over the given dataset with no circular
// mask and no line memory.
func NewSelector(d *DataSet) *Selector {
	if d == nil {
		panic("goLatt: Attempted to build a Selector over a nil DataSet")
	}
	return &Selector{d: d}
}

// SetCircle enables the circular mask centered on (x,y) with the given
// radius. A radius ≤ 0 disables it, like ClearCircle.
func (S *Selector) SetCircle(x, y, r float64) {
	if r <= 0 {
		S.ClearCircle()
		return
	}
	S.circleOn = true
	S.cx, S.cy, S.cr = x, y, r
}

// ClearCircle disables the circular mask.
func (S *Selector) ClearCircle() { S.circleOn = false }

// Circle returns the active mask, or ok=false when none is set.
func (S *Selector) Circle() (x, y, r float64, ok bool) {
	return S.cx, S.cy, S.cr, S.circleOn
}

// CircleConstrain intersects the given indices with the active circular
// mask (points at squared distance ≤ r² from its center). With no active
// mask it returns the input unchanged.
func (S *Selector) CircleConstrain(indices []int) []int {
	if !S.circleOn {
		return indices
	}
	out := make([]int, 0, len(indices))
	r2 := S.cr * S.cr
	for _, i := range indices {
		dx := S.d.x[i] - S.cx
		dy := S.d.y[i] - S.cy
		if dx*dx+dy*dy <= r2 {
			out = append(out, i)
		}
	}
	return out
}

// NearestAtom returns the index of the atom closest to (x,y), if its
// distance is within tol. The tolerance is in data space; converting from a
// pixel radius is the view's business. The mask is not applied here: a pick
// is a pick, callers mask the result with CircleConstrain if they want to.
func (S *Selector) NearestAtom(x, y, tol float64) (int, bool) {
	best := -1
	var bestD2 float64
	for i := 0; i < S.d.Len(); i++ {
		dx := S.d.x[i] - x
		dy := S.d.y[i] - y
		d2 := dx*dx + dy*dy
		if best < 0 || d2 < bestD2 {
			best, bestD2 = i, d2
		}
	}
	if best < 0 || bestD2 > tol*tol {
		return 0, false
	}
	return best, true
}

// Rectangle returns the indices inside the axis-aligned rectangle, bounds
// inclusive, intersected with the active mask. The result is ascending.
func (S *Selector) Rectangle(xmin, xmax, ymin, ymax float64) []int {
	var idx []int
	for i := 0; i < S.d.Len(); i++ {
		if S.d.x[i] >= xmin && S.d.x[i] <= xmax && S.d.y[i] >= ymin && S.d.y[i] <= ymax {
			idx = append(idx, i)
		}
	}
	return S.CircleConstrain(idx)
}

// band returns the masked indices within halfw of the line of constant
// coordinate coord perpendicular to the given axis, sorted by their
// coordinate along the line.
func (S *Selector) band(axis LineAxis, coord, halfw float64) []int {
	perp, along := S.d.y, S.d.x
	if axis == Vertical {
		perp, along = S.d.x, S.d.y
	}
	var idx []int
	for i := 0; i < S.d.Len(); i++ {
		d := perp[i] - coord
		if d < 0 {
			d = -d
		}
		if d <= halfw {
			idx = append(idx, i)
		}
	}
	idx = S.CircleConstrain(idx)
	sort.SliceStable(idx, func(a, b int) bool { return along[idx[a]] < along[idx[b]] })
	return idx
}

// decimate keeps the elements of the sorted sequence at positions p with
// p mod strideN == offset mod strideN (0-indexed). strideN < 1 is treated
// as 1, which keeps everything.
func decimate(sorted []int, strideN, offset int) []int {
	if strideN < 1 {
		strideN = 1
	}
	offset = ((offset % strideN) + strideN) % strideN
	out := make([]int, 0, len(sorted)/strideN+1)
	for p, v := range sorted {
		if p%strideN == offset {
			out = append(out, v)
		}
	}
	return out
}

// Line selects all atoms whose perpendicular distance to the line of
// constant coord along the given axis is within halfw (after the circular
// mask), sorts them by their coordinate along the line, and keeps one every
// strideN starting at offset. strideN=1 keeps every hit. The returned
// sequence follows the sorted order. A non-empty band is remembered, whole
// and pre-decimation, as the last line selection for Rule; an empty band
// leaves the memory untouched.
func (S *Selector) Line(axis LineAxis, coord, halfw float64, strideN, offset int) []int {
	idx := S.band(axis, coord, halfw)
	if len(idx) == 0 {
		return nil
	}
	S.line = idx
	S.lineAxis = axis
	S.hasLine = true
	return decimate(idx, strideN, offset)
}

// LastLine returns the remembered pre-decimation band of the most recent
// non-empty Line call and its axis, or ok=false if there is none yet.
func (S *Selector) LastLine() (indices []int, axis LineAxis, ok bool) {
	if !S.hasLine {
		return nil, 0, false
	}
	return append([]int(nil), S.line...), S.lineAxis, true
}

// ClearLastLine forgets the line memory.
func (S *Selector) ClearLastLine() { S.hasLine = false; S.line = nil }

// Rule propagates the last line selection into a regular 2D sub-lattice:
// the remembered band is decimated by rowStride/rowOffset to pick anchor
// atoms, and from each anchor a fresh band of half-width halfw is selected
// along the PERPENDICULAR axis through the anchor's position, decimated by
// colStride/colOffset. The union of all these, duplicate-free and
// ascending, is returned. So a horizontal pick with rowStride=3 and
// colStride=5 selects every 5th atom on every 3rd column of the band.
// It fails only if there is no line memory; no anchors or no perpendicular
// hits just yield an empty result. The line memory is left as it was.
func (S *Selector) Rule(rowStride, rowOffset, colStride, colOffset int, halfw float64) ([]int, error) {
	if !S.hasLine {
		return nil, CError{string(ErrNoLineMemory), []string{"Rule"}}
	}
	anchors := decimate(S.line, rowStride, rowOffset)
	if len(anchors) == 0 {
		return nil, nil
	}
	perpAxis := Vertical
	anchorCoord := S.d.x
	if S.lineAxis == Vertical {
		perpAxis = Horizontal
		anchorCoord = S.d.y
	}
	seen := make(map[int]bool)
	for _, a := range anchors {
		hits := decimate(S.band(perpAxis, anchorCoord[a], halfw), colStride, colOffset)
		for _, i := range hits {
			seen[i] = true
		}
	}
	if len(seen) == 0 {
		return nil, nil
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}
