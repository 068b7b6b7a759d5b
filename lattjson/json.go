/*
 * json.go, part of golatt.
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
Package lattjson persists a whole editing session (dataset, assignment,
groups, localization parameters and mode flags) as a JSON document, and reads
it back losslessly. The document additionally carries an opaque "ui" bucket
the core never interprets, so callers can stash their view state in the same
file.

Loading validates the complete document before returning anything, so a
failed load can never leave the caller with a half-restored session: keep
using the old state if Load errors out. The undo/redo log is deliberately not
part of the document; a loaded session starts with empty history.

FileSave and FileLoad additionally compress by file extension: ".gz" files
go through gzip and ".zst"/".lpz" files through zstd, anything else is plain
JSON.
*/
package lattjson

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	latt "github.com/mfuentealba/golatt"
)

// Error is returned for malformed or incomplete documents. Any Error from
// Load means no session was built at all.
type Error struct {
	Field string //the offending document field, when one can be named
	msg   string
	deco  []string
}

func (err Error) Error() string { return err.msg }

// Decorate works as in the root package errors.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func badDoc(field, format string, args ...interface{}) Error {
	return Error{Field: field, msg: "goLatt/lattjson: " + fmt.Sprintf(format, args...)}
}

/*The document. Field names follow the project files the original tool of
 * this format wrote, so sessions keep round-tripping across versions.*/

type boxJSON struct {
	Xlo float64 `json:"xlo"`
	Xhi float64 `json:"xhi"`
	Ylo float64 `json:"ylo"`
	Yhi float64 `json:"yhi"`
	Zlo float64 `json:"zlo"`
	Zhi float64 `json:"zhi"`
}

type dataJSON struct {
	IDs []int64   `json:"ids"`
	X   []float64 `json:"x"`
	Y   []float64 `json:"y"`
	Z   []float64 `json:"z"`
	Box *boxJSON  `json:"box"`
}

type groupJSON struct {
	GID       int        `json:"gid"`
	Name      string     `json:"name"`
	Color     latt.RGBA  `json:"color"`
	Direction [3]float64 `json:"direction"`
}

type localizeJSON struct {
	A    float64 `json:"A"`
	Beta float64 `json:"beta"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
}

type document struct {
	Data       *dataJSON   `json:"data"`
	Assignment []int32     `json:"assignment"`
	Groups     []groupJSON `json:"groups"`
	//"breather" is the localization record's historical key. Documents
	//written with the "localize" key are still accepted on load.
	Breather              *localizeJSON   `json:"breather"`
	Localize              *localizeJSON   `json:"localize,omitempty"`
	ApplyLocalizing       *bool           `json:"apply_localizing"`
	PreserveBaseSelection *bool           `json:"preserve_base_selection"`
	UI                    json.RawMessage `json:"ui,omitempty"`
}

// Save writes the session and the caller's opaque UI state to w as an
// indented JSON document. ui may be nil.
func Save(P *latt.ProjectState, ui json.RawMessage, w io.Writer) error {
	if P == nil || P.Data == nil {
		return Error{msg: "goLatt/lattjson: Nil project given", deco: []string{"Save"}}
	}
	b := P.Data.Box()
	doc := document{
		Data: &dataJSON{
			IDs: P.Data.IDs(), X: P.Data.Xs(), Y: P.Data.Ys(), Z: P.Data.Zs(),
			Box: &boxJSON{Xlo: b.Xlo, Xhi: b.Xhi, Ylo: b.Ylo, Yhi: b.Yhi, Zlo: b.Zlo, Zhi: b.Zhi},
		},
		Assignment: P.Assignment(),
		Groups:     make([]groupJSON, 0, P.NGroups()),
		Breather: &localizeJSON{A: P.Localize.A, Beta: P.Localize.Beta,
			X0: P.Localize.X0, Y0: P.Localize.Y0},
		ApplyLocalizing:       &P.ApplyLocalizing,
		PreserveBaseSelection: &P.PreserveBaseSelection,
		UI:                    ui,
	}
	//insertion order of the table, so Load rebuilds it from the list order
	for _, G := range P.Groups() {
		doc.Groups = append(doc.Groups, groupJSON{GID: G.ID, Name: G.Name,
			Color: G.Color, Direction: G.Direction})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return Error{msg: "goLatt/lattjson: " + err.Error(), deco: []string{"Save"}}
	}
	return nil
}

// Load reads a document from r and rebuilds the full session plus the
// opaque UI state. The document is validated completely before the session
// is returned; on error the caller's previous session, if any, is untouched
// by construction. Missing mode flags default to true.
func Load(r io.Reader) (*latt.ProjectState, json.RawMessage, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, Error{msg: "goLatt/lattjson: " + err.Error(), deco: []string{"Load"}}
	}
	if doc.Data == nil {
		return nil, nil, badDoc("data", "Document has no data record")
	}
	if doc.Data.Box == nil {
		return nil, nil, badDoc("data.box", "Document has no box bounds")
	}
	if len(doc.Data.IDs) == 0 {
		return nil, nil, badDoc("data.ids", "Document has no atoms")
	}
	n := len(doc.Data.IDs)
	if len(doc.Data.X) != n || len(doc.Data.Y) != n || len(doc.Data.Z) != n {
		return nil, nil, badDoc("data", "id/x/y/z arrays have mismatched lengths")
	}
	bj := doc.Data.Box
	box, err := latt.NewBox(bj.Xlo, bj.Xhi, bj.Ylo, bj.Yhi, bj.Zlo, bj.Zhi)
	if err != nil {
		return nil, nil, badDoc("data.box", "Unusable box bounds: %v", err)
	}
	data, err := latt.NewDataSet(doc.Data.IDs, doc.Data.X, doc.Data.Y, doc.Data.Z, box)
	if err != nil {
		return nil, nil, badDoc("data", "%v", err)
	}
	P, err := latt.NewProjectState(data)
	if err != nil {
		return nil, nil, badDoc("data", "%v", err)
	}
	for k, gj := range doc.Groups {
		G, err := P.AddGroup(gj.GID, gj.Name, gj.Color)
		if err != nil {
			return nil, nil, badDoc("groups", "Group record %d: %v", k, err)
		}
		d := gj.Direction
		if d != [3]float64{} { //a missing direction keeps the (1,0,0) default
			if err := G.SetDirection(d[0], d[1], d[2]); err != nil {
				return nil, nil, badDoc("groups", "Group record %d: %v", k, err)
			}
		}
	}
	if doc.Assignment != nil {
		if err := P.RestoreAssignment(doc.Assignment); err != nil {
			return nil, nil, badDoc("assignment", "%v", err)
		}
	}
	loc := doc.Breather
	if loc == nil {
		loc = doc.Localize
	}
	if loc != nil {
		P.Localize = latt.LocalizeParams{A: loc.A, Beta: loc.Beta, X0: loc.X0, Y0: loc.Y0}
	}
	if doc.ApplyLocalizing != nil {
		P.ApplyLocalizing = *doc.ApplyLocalizing
	}
	if doc.PreserveBaseSelection != nil {
		P.PreserveBaseSelection = *doc.PreserveBaseSelection
	}
	return P, doc.UI, nil
}

// ext returns the lowercased last extension of a file name.
func ext(filename string) string {
	temp := strings.Split(filename, ".")
	return strings.ToLower(temp[len(temp)-1])
}

// FileSave writes the session to the named file, compressing according to
// the extension: gzip for .gz, zstd for .zst and .lpz, plain JSON otherwise.
func FileSave(P *latt.ProjectState, ui json.RawMessage, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return Error{msg: "goLatt/lattjson: " + err.Error(), deco: []string{"os.Create", "FileSave"}}
	}
	defer f.Close()
	var w io.WriteCloser
	switch ext(filename) {
	case "gz":
		w = gzip.NewWriter(f)
	case "zst", "lpz":
		w, err = zstd.NewWriter(f)
		if err != nil {
			return Error{msg: "goLatt/lattjson: " + err.Error(), deco: []string{"zstd.NewWriter", "FileSave"}}
		}
	default:
		return Save(P, ui, f)
	}
	if err := Save(P, ui, w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return Error{msg: "goLatt/lattjson: " + err.Error(), deco: []string{"FileSave"}}
	}
	return nil
}

// FileLoad reads a session saved by FileSave, picking the decompressor by
// the same extension rule.
func FileLoad(filename string) (*latt.ProjectState, json.RawMessage, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, Error{msg: "goLatt/lattjson: " + err.Error(), deco: []string{"os.Open", "FileLoad"}}
	}
	defer f.Close()
	var r io.ReadCloser
	switch ext(filename) {
	case "gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, Error{msg: "goLatt/lattjson: " + err.Error(), deco: []string{"gzip.NewReader", "FileLoad"}}
		}
		r = gr
	case "zst", "lpz":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, Error{msg: "goLatt/lattjson: " + err.Error(), deco: []string{"zstd.NewReader", "FileLoad"}}
		}
		r = zr.IOReadCloser()
	default:
		return Load(f)
	}
	defer r.Close()
	return Load(r)
}
