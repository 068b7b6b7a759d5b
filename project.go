/*
 * project.go, part of golatt.
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

import "fmt"

// DefaultMaxHistory is the undo/redo depth of a newly built ProjectState.
const DefaultMaxHistory = 100

// LocalizeParams describes the spatial weighting of the localized mode the
// exporter synthesizes: amplitude A, decay rate Beta and center (X0, Y0).
// The core only stores and round-trips them.
type LocalizeParams struct {
	A    float64
	Beta float64
	X0   float64
	Y0   float64
}

// DefaultLocalizeParams returns the parameters a fresh project starts with.
func DefaultLocalizeParams() LocalizeParams {
	return LocalizeParams{A: 0.05, Beta: 1.0}
}

// ProjectState owns one editing session: the (immutable) dataset, the
// per-atom group-label array, the group table, the bounded undo/redo log,
// the localization parameters and the two selection-combination flags.
// Everything but the dataset is mutated exclusively through its methods,
// which keeps the undo log exactly invertible. Not safe for concurrent use.
type ProjectState struct {
	Data       *DataSet
	assignment []int32
	groups     map[int]*Group
	order      []int //group ids in insertion order
	hist       *history
	Localize   LocalizeParams
	// ApplyLocalizing tells the exporter to apply the localized-mode
	// weighting; PreserveBaseSelection makes new selections union with the
	// existing labels instead of toggling them. Both start true.
	ApplyLocalizing       bool
	PreserveBaseSelection bool
}

// NewProjectState returns an empty session over the given dataset: no
// groups, all atoms unassigned, empty history of depth DefaultMaxHistory.
func NewProjectState(data *DataSet) (*ProjectState, error) {
	if data == nil {
		return nil, CError{string(ErrNilData), []string{"NewProjectState"}}
	}
	P := new(ProjectState)
	P.Data = data
	P.assignment = make([]int32, data.Len())
	P.groups = make(map[int]*Group)
	P.hist = newHistory(DefaultMaxHistory)
	P.Localize = DefaultLocalizeParams()
	P.ApplyLocalizing = true
	P.PreserveBaseSelection = true
	return P, nil
}

// SetMaxHistory changes the undo depth, evicting the oldest undo entries if
// the current log is deeper than n. n<1 is rounded up to 1.
func (P *ProjectState) SetMaxHistory(n int) {
	P.hist.setMax(n)
}

// MaxHistory returns the current undo depth limit.
func (P *ProjectState) MaxHistory() int { return P.hist.max }

/*Group table*/

// AddGroup inserts a new group in the table and returns it. The id must be
// positive and not yet taken; callers normally just use a monotonic counter
// and NextColor for the color.
func (P *ProjectState) AddGroup(id int, name string, color RGBA) (*Group, error) {
	if id <= 0 {
		return nil, CError{string(ErrBadGroupID), []string{"AddGroup"}}
	}
	if _, taken := P.groups[id]; taken {
		return nil, CError{string(ErrGroupTaken), []string{"AddGroup"}}
	}
	G := &Group{ID: id, Name: name, Color: color, Direction: [3]float64{1, 0, 0}}
	P.groups[id] = G
	P.order = append(P.order, id)
	return G, nil
}

// RemoveGroup deletes the group from the table and resets every assignment
// entry carrying its id back to 0, atomically from the caller's point of
// view. The reset is deliberately NOT recorded as an undoable Edit: removing
// a group is a structural operation, not a selection edit, and undoing a
// later Edit never resurrects a removed label. Removing an absent id is a
// no-op.
func (P *ProjectState) RemoveGroup(id int) {
	if _, ok := P.groups[id]; !ok {
		return
	}
	delete(P.groups, id)
	for i, gid := range P.order {
		if gid == id {
			P.order = append(P.order[:i], P.order[i+1:]...)
			break
		}
	}
	for i, v := range P.assignment {
		if v == int32(id) {
			P.assignment[i] = 0
		}
	}
}

// ClearGroups empties the group table, zeroes the whole assignment and
// drops both history stacks.
func (P *ProjectState) ClearGroups() {
	P.groups = make(map[int]*Group)
	P.order = nil
	for i := range P.assignment {
		P.assignment[i] = 0
	}
	P.hist.clear()
}

// Group returns the group with the given id, or nil if absent.
func (P *ProjectState) Group(id int) *Group { return P.groups[id] }

// NGroups returns the number of groups in the table.
func (P *ProjectState) NGroups() int { return len(P.groups) }

// Groups returns the groups in insertion order. The returned pointers are
// the live groups (renaming or re-coloring through them is fine); the slice
// itself is fresh.
func (P *ProjectState) Groups() []*Group {
	ret := make([]*Group, 0, len(P.order))
	for _, id := range P.order {
		ret = append(ret, P.groups[id])
	}
	return ret
}

// RestoreAssignment overwrites the whole label array with a, validating
// first that a matches the dataset length and that every entry is 0 or a key
// of the current group table. Like group removal this is a structural
// operation, used when deserializing a session, and is not recorded on the
// undo log. On error the assignment is left untouched.
func (P *ProjectState) RestoreAssignment(a []int32) error {
	if len(a) != len(P.assignment) {
		return CError{fmt.Sprintf("goLatt: Assignment length %d does not match the %d atoms of the dataset",
			len(a), len(P.assignment)), []string{"RestoreAssignment"}}
	}
	for i, v := range a {
		if v == 0 {
			continue
		}
		if _, ok := P.groups[int(v)]; !ok {
			return CError{fmt.Sprintf("goLatt: Assignment entry %d references unknown group %d", i, v),
				[]string{"RestoreAssignment"}}
		}
	}
	copy(P.assignment, a)
	return nil
}

/*Read-only views for the presentation layer and the exporter*/

// Assignment returns a copy of the per-atom label array.
func (P *ProjectState) Assignment() []int32 {
	ret := make([]int32, len(P.assignment))
	copy(ret, P.assignment)
	return ret
}

// AssignedGroupOf returns the group id the atom at index i is labeled with,
// 0 meaning unassigned.
func (P *ProjectState) AssignedGroupOf(i int) int {
	return int(P.assignment[i])
}

// CurrentSelection returns the indices of all assigned atoms, ascending.
func (P *ProjectState) CurrentSelection() []int {
	var ret []int
	for i, v := range P.assignment {
		if v != 0 {
			ret = append(ret, i)
		}
	}
	return ret
}

// GroupSelection returns the indices of the atoms labeled with the given
// group id, ascending.
func (P *ProjectState) GroupSelection(id int) []int {
	var ret []int
	for i, v := range P.assignment {
		if v == int32(id) {
			ret = append(ret, i)
		}
	}
	return ret
}

// AllGroupColors returns a group-id to color mapping for the whole table.
func (P *ProjectState) AllGroupColors() map[int]RGBA {
	ret := make(map[int]RGBA, len(P.groups))
	for id, G := range P.groups {
		ret[id] = G.Color
	}
	return ret
}

// ColorsRGBA returns one color per atom: the color of its group, or
// unassigned for label 0 (or for stale labels, which can not normally
// happen).
func (P *ProjectState) ColorsRGBA(unassigned RGBA) []RGBA {
	ret := make([]RGBA, len(P.assignment))
	for i, v := range P.assignment {
		if G, ok := P.groups[int(v)]; ok && v != 0 {
			ret[i] = G.Color
		} else {
			ret[i] = unassigned
		}
	}
	return ret
}

// ExportSnapshot returns a deep copy of the session sharing only the
// immutable dataset, so the exporter can work from a frozen state while the
// user keeps editing. The history of the copy is empty.
func (P *ProjectState) ExportSnapshot() *ProjectState {
	S := new(ProjectState)
	S.Data = P.Data
	S.assignment = P.Assignment()
	S.groups = make(map[int]*Group, len(P.groups))
	for id, G := range P.groups {
		g2 := *G
		S.groups[id] = &g2
	}
	S.order = append([]int(nil), P.order...)
	S.hist = newHistory(P.hist.max)
	S.Localize = P.Localize
	S.ApplyLocalizing = P.ApplyLocalizing
	S.PreserveBaseSelection = P.PreserveBaseSelection
	return S
}

/*Selection-combination policy*/

// CombineMode returns the mode area selections (rectangle, line, rule)
// should be committed with under the current flags: union when the base
// selection is preserved, toggle otherwise.
func (P *ProjectState) CombineMode() SelMode {
	if P.PreserveBaseSelection {
		return AddSel
	}
	return ToggleSel
}

// PickMode returns the mode a single-atom pick at index i should be
// committed with: with the base selection preserved an unassigned atom is
// added and an assigned one is removed; otherwise the pick toggles.
func (P *ProjectState) PickMode(i int) SelMode {
	if !P.PreserveBaseSelection {
		return ToggleSel
	}
	if P.assignment[i] == 0 {
		return AddSel
	}
	return RemoveSel
}
