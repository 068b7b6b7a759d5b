/*
 * errors.go, part of golatt.
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

// Error is the interface for errors that all packages in this library
// implement. The Decorate method adds information to the error as it is passed
// up the calling stack, without changing its type or wrapping it in something
// else. Each call returns the resulting decoration slice; if passed an empty
// string, it just returns the current value.
type Error interface {
	Error() string
	Decorate(string) []string
}

// PanicMsg is the type used for the string constants of this package,
// so they can be told apart from arbitrary strings. It satisfies the error
// interface so the constants can be used directly in panics and error
// positions.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

// Messages used to build errors in several places of the library.
const (
	ErrNilData        PanicMsg = "goLatt: Nil data given"
	ErrNilProject     PanicMsg = "goLatt: Nil project given"
	ErrIndexOutOfLatt PanicMsg = "goLatt: Atom index out of range for the dataset"
	ErrNoActiveGroup  PanicMsg = "goLatt: No active group: can't add or toggle with group 0"
	ErrGroupTaken     PanicMsg = "goLatt: Group id already present in the group table"
	ErrBadGroupID     PanicMsg = "goLatt: Group ids must be positive (0 means unassigned)"
	ErrNoLineMemory   PanicMsg = "goLatt: No previous line selection to propagate from"
)

// CError is the concrete error type of the root package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds the dec string to the decoration slice of the error and
// returns the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// errDecorate tries to decorate err with the name of the calling function.
// If err does not implement Error it is wrapped in a CError first.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		err2 = CError{err.Error(), []string{caller}}
		return err2
	}
	err2.Decorate(caller)
	return err2
}

// ParseFailure tells apart the fatal ways in which reading a LAMMPS data
// file can fail. Malformed individual atom lines are not among them, as they
// are skipped silently.
type ParseFailure int

const (
	MissingBoxBounds ParseFailure = iota + 1
	MissingAtomsSection
	NoAtomsParsed
)

// ParseError is returned for data files that can not yield a DataSet at all.
// On any ParseError the previously loaded state, if any, is left untouched.
type ParseError struct {
	Reason   ParseFailure
	msg      string
	filename string
	deco     []string
}

func (err ParseError) Error() string {
	if err.filename == "" {
		return err.msg
	}
	return fmt.Sprintf("%s (file %s)", err.msg, err.filename)
}

func (err ParseError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// FileName returns the name of the offending file, when known.
func (err ParseError) FileName() string { return err.filename }

// AssignError is returned for refused assignment mutations. No mutation at
// all takes place when one is returned.
type AssignError struct {
	msg  string
	deco []string
}

func (err AssignError) Error() string { return err.msg }

func (err AssignError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
