/*
 * lammps.go, part of golatt.
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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

//LAMMPS data file reading.

// The closed set of section headers recognized when scanning for the end of
// the Atoms block. Both the bare first token and the first two tokens of a
// line are matched against it, so the two-word families (the *Coeffs and
// *Types sections) terminate the block too.
var headerKeys = map[string]bool{
	"atoms": true, "bonds": true, "angles": true, "dihedrals": true,
	"impropers": true, "velocities": true, "masses": true,
	"pair coeffs": true, "bond coeffs": true, "angle coeffs": true,
	"dihedral coeffs": true, "improper coeffs": true,
	"ellipsoids": true, "lines": true, "triangles": true,
	"atom types": true, "bond types": true, "angle types": true,
	"dihedral types": true, "improper types": true,
	"groups": true, "fixes": true,
}

// stripComment removes everything from the first '#' marker to the end of
// the line, and the surrounding blanks.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// isForeignHeader reports whether the comment-stripped line is a recognized
// section header other than Atoms.
func isForeignHeader(bare string) bool {
	if bare == "" {
		return false
	}
	toks := strings.Fields(strings.ToLower(bare))
	if headerKeys[toks[0]] && toks[0] != "atoms" {
		return true
	}
	if len(toks) >= 2 && headerKeys[toks[0]+" "+toks[1]] {
		return true
	}
	return false
}

// parseBox scans every line for the box-bound labels (a line whose last two
// tokens are "xlo xhi", "ylo yhi" or "zlo zhi" and whose first two tokens
// parse as floats). Later bound lines overwrite earlier ones. Missing x or y
// bounds are fatal; z bounds default to (0,0).
func parseBox(lines []string) (*Box, error) {
	var xlo, xhi, ylo, yhi, zlo, zhi float64
	var hasX, hasY, hasZ bool
	for _, raw := range lines {
		s := stripComment(raw)
		if s == "" {
			continue
		}
		toks := strings.Fields(s)
		if len(toks) < 4 {
			continue
		}
		label := strings.ToLower(toks[len(toks)-2] + " " + toks[len(toks)-1])
		a, err := strconv.ParseFloat(toks[0], 64)
		if err != nil {
			continue
		}
		b, err := strconv.ParseFloat(toks[1], 64)
		if err != nil {
			continue
		}
		switch label {
		case "xlo xhi":
			xlo, xhi, hasX = a, b, true
		case "ylo yhi":
			ylo, yhi, hasY = a, b, true
		case "zlo zhi":
			zlo, zhi, hasZ = a, b, true
		}
	}
	if !hasX || !hasY {
		return nil, ParseError{Reason: MissingBoxBounds,
			msg: "goLatt: Failed to parse x/y box bounds"}
	}
	if !hasZ {
		zlo, zhi = 0, 0
	}
	box, err := NewBox(xlo, xhi, ylo, yhi, zlo, zhi)
	if err != nil {
		return nil, ParseError{Reason: MissingBoxBounds,
			msg: "goLatt: Unusable (inverted) x/y box bounds"}
	}
	return box, nil
}

// atomsBlock returns the candidate atom lines following the header at
// start: everything up to, but excluding, the next recognized foreign section
// header. Blank lines inside the block are kept (and later skipped by the
// line parser) so the scanner survives arbitrary section ordering and
// interleaved metadata.
func atomsBlock(lines []string, start int) []string {
	var out []string
	i := start + 1
	n := len(lines)
	for i < n && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	for ; i < n; i++ {
		if isForeignHeader(stripComment(lines[i])) {
			break
		}
		out = append(out, lines[i])
	}
	return out
}

// parseAtomLine extracts the id and the coordinates of one atom line: the id
// is the first token, the coordinates are the LAST three tokens. LAMMPS atom
// styles differ in how many columns sit in between, so everything there is
// ignored.
func parseAtomLine(s string) (id int64, x, y, z float64, ok bool) {
	toks := strings.Fields(s)
	if len(toks) < 4 {
		return 0, 0, 0, 0, false
	}
	id, err := strconv.ParseInt(toks[0], 10, 64)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	l := len(toks)
	x, err = strconv.ParseFloat(toks[l-3], 64)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	y, err = strconv.ParseFloat(toks[l-2], 64)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	z, err = strconv.ParseFloat(toks[l-1], 64)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	return id, x, y, z, true
}

// DataRead reads a LAMMPS data file from r and returns the contained atoms
// as a DataSet, sorted by ascending atom id. Individual atom lines that fail
// to parse are skipped silently, which allows partial recovery from noisy
// files; a file without x/y box bounds, without an Atoms section, or whose
// Atoms section yields zero atoms is rejected with a ParseError.
func DataRead(r io.Reader) (*DataSet, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*64), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errDecorate(err, "DataRead")
	}
	box, err := parseBox(lines)
	if err != nil {
		return nil, errDecorate(err, "DataRead")
	}
	atomsIdx := -1
	for i, raw := range lines {
		if strings.HasPrefix(strings.ToLower(stripComment(raw)), "atoms") {
			atomsIdx = i
			break
		}
	}
	if atomsIdx < 0 {
		return nil, ParseError{Reason: MissingAtomsSection,
			msg: "goLatt: Could not find an Atoms section", deco: []string{"DataRead"}}
	}
	var ids []int64
	var xs, ys, zs []float64
	for _, raw := range atomsBlock(lines, atomsIdx) {
		s := stripComment(raw)
		if s == "" {
			continue
		}
		id, x, y, z, ok := parseAtomLine(s)
		if !ok {
			continue //tolerance policy: malformed atom lines are not fatal
		}
		ids = append(ids, id)
		xs = append(xs, x)
		ys = append(ys, y)
		zs = append(zs, z)
	}
	if len(ids) == 0 {
		return nil, ParseError{Reason: NoAtomsParsed,
			msg: "goLatt: Found an Atoms section but parsed 0 atoms", deco: []string{"DataRead"}}
	}
	data, err := NewDataSet(ids, xs, ys, zs, box)
	if err != nil {
		return nil, errDecorate(err, "DataRead")
	}
	return data, nil
}

// DataFileRead opens the file with the given name and reads it with
// DataRead.
func DataFileRead(filename string) (*DataSet, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errDecorate(err, "DataFileRead")
	}
	defer f.Close()
	data, err := DataRead(f)
	if err != nil {
		if perr, ok := err.(ParseError); ok {
			perr.filename = filename
			return nil, perr
		}
		return nil, errDecorate(err, "DataFileRead "+filename)
	}
	return data, nil
}
