/*
 * history.go, part of golatt.
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
	"fmt"
	"sort"
)

// SelMode is the closed set of ways a selected index set combines with the
// existing labels. Assign matches on it exhaustively.
type SelMode int

const (
	// AddSel labels unassigned atoms of the set with the active group and
	// leaves the rest alone (an idempotent union).
	AddSel SelMode = iota
	// RemoveSel forces every atom of the set back to unassigned.
	RemoveSel
	// ToggleSel flips atoms of the set: active-group atoms become
	// unassigned, all others take the active group.
	ToggleSel
)

func (m SelMode) String() string {
	switch m {
	case AddSel:
		return "add"
	case RemoveSel:
		return "remove"
	case ToggleSel:
		return "toggle"
	}
	return fmt.Sprintf("SelMode(%d)", int(m))
}

// Edit is one undoable mutation of the assignment array: the sorted,
// duplicate-free indices it touched and their labels right before and right
// after, plus a short description for menus and logs. Callers must treat a
// returned Edit as read-only.
type Edit struct {
	Indices []int
	Before  []int32
	After   []int32
	Desc    string
}

// history is the bounded undo/redo log. Edits live in an arena and the two
// stacks hold arena slots, so evicting the oldest undo entry is an index
// move, not a reallocation of records. Slots freed by eviction or by a
// cleared redo stack are reused.
type history struct {
	arena []Edit
	free  []int
	undo  []int
	redo  []int
	max   int
}

func newHistory(max int) *history {
	if max < 1 {
		max = 1
	}
	return &history{max: max}
}

func (h *history) alloc(e Edit) int {
	if n := len(h.free); n > 0 {
		slot := h.free[n-1]
		h.free = h.free[:n-1]
		h.arena[slot] = e
		return slot
	}
	h.arena = append(h.arena, e)
	return len(h.arena) - 1
}

// push records a fresh mutation: the redo stack is dropped and, if the undo
// stack is full, the OLDEST entry is evicted from the bottom.
func (h *history) push(e Edit) {
	h.free = append(h.free, h.redo...)
	h.redo = h.redo[:0]
	if len(h.undo) >= h.max {
		h.free = append(h.free, h.undo[0])
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:len(h.undo)-1]
	}
	h.undo = append(h.undo, h.alloc(e))
}

func (h *history) popUndo() *Edit {
	n := len(h.undo)
	if n == 0 {
		return nil
	}
	slot := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, slot)
	//a copy, so the caller's Edit survives the slot being recycled
	e := h.arena[slot]
	return &e
}

func (h *history) popRedo() *Edit {
	n := len(h.redo)
	if n == 0 {
		return nil
	}
	slot := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, slot)
	e := h.arena[slot]
	return &e
}

func (h *history) clear() {
	h.arena = h.arena[:0]
	h.free = h.free[:0]
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

func (h *history) setMax(n int) {
	if n < 1 {
		n = 1
	}
	h.max = n
	for len(h.undo) > n {
		h.free = append(h.free, h.undo[0])
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:len(h.undo)-1]
	}
}

// uniqueSorted returns a sorted, duplicate-free copy of the indices.
func uniqueSorted(indices []int) []int {
	idx := append([]int(nil), indices...)
	sort.Ints(idx)
	out := idx[:0]
	for i, v := range idx {
		if i == 0 || v != idx[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// Assign commits the given index set against the assignment array under the
// given mode and active group id, and returns the Edit it recorded. Indices
// are deduplicated and sorted first. AddSel and ToggleSel refuse an active
// group of 0 (there is nothing to label with); RemoveSel ignores it. On any
// error no mutation at all takes place; on success the Edit is pushed on
// the undo stack and the redo stack is cleared.
func (P *ProjectState) Assign(indices []int, mode SelMode, activeGroup int) (*Edit, error) {
	if len(indices) == 0 {
		return nil, CError{"goLatt: Empty index set", []string{"Assign"}}
	}
	idx := uniqueSorted(indices)
	if idx[0] < 0 || idx[len(idx)-1] >= len(P.assignment) {
		return nil, CError{string(ErrIndexOutOfLatt), []string{"Assign"}}
	}
	gid := int32(activeGroup)
	before := make([]int32, len(idx))
	for i, v := range idx {
		before[i] = P.assignment[v]
	}
	after := make([]int32, len(idx))
	var desc string
	switch mode {
	case RemoveSel:
		//after stays all zero
		desc = fmt.Sprintf("remove %d", len(idx))
	case ToggleSel:
		if gid == 0 {
			return nil, AssignError{msg: string(ErrNoActiveGroup), deco: []string{"Assign"}}
		}
		for i, v := range before {
			if v == gid {
				after[i] = 0
			} else {
				after[i] = gid
			}
		}
		desc = fmt.Sprintf("toggle %d to group %d", len(idx), activeGroup)
	case AddSel:
		if gid == 0 {
			return nil, AssignError{msg: string(ErrNoActiveGroup), deco: []string{"Assign"}}
		}
		for i, v := range before {
			if v == gid {
				after[i] = v
			} else {
				after[i] = gid
			}
		}
		desc = fmt.Sprintf("add %d to group %d", len(idx), activeGroup)
	default:
		return nil, CError{fmt.Sprintf("goLatt: Unknown selection mode %d", int(mode)), []string{"Assign"}}
	}
	for i, v := range idx {
		P.assignment[v] = after[i]
	}
	e := Edit{Indices: idx, Before: before, After: after, Desc: desc}
	P.hist.push(e)
	return &e, nil
}

// CanUndo reports whether there is anything to undo. CanRedo is analogous.
func (P *ProjectState) CanUndo() bool { return len(P.hist.undo) > 0 }

func (P *ProjectState) CanRedo() bool { return len(P.hist.redo) > 0 }

// Undo reverts the most recent Edit, writing its before-labels back, moves
// it to the redo stack and returns it. It returns nil when there is nothing
// to undo. Undo followed by Redo (or the other way around) always leaves
// the assignment identical to before the pair.
func (P *ProjectState) Undo() *Edit {
	e := P.hist.popUndo()
	if e == nil {
		return nil
	}
	for i, v := range e.Indices {
		P.assignment[v] = e.Before[i]
	}
	return e
}

// Redo replays the most recently undone Edit, symmetric to Undo.
func (P *ProjectState) Redo() *Edit {
	e := P.hist.popRedo()
	if e == nil {
		return nil
	}
	for i, v := range e.Indices {
		P.assignment[v] = e.After[i]
	}
	return e
}
