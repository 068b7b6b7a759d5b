package latt

import (
	"fmt"
	"strings"
	"testing"
)

// TestDataFileRead reads the sample file, which carries comments, metadata
// blocks around the Atoms section, out-of-order ids and one noise line.
func TestDataFileRead(Te *testing.T) {
	data, err := DataFileRead("test/sample.data")
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("sample.data read,", data.Len(), "atoms")
	if data.Len() != 16 {
		Te.Errorf("got %d atoms, want 16", data.Len())
	}
	b := data.Box()
	if b.Xlo != 0 || b.Xhi != 4 || b.Ylo != 0 || b.Yhi != 4 || b.Zlo != -0.5 || b.Zhi != 0.5 {
		Te.Errorf("wrong box: %+v", *b)
	}
	for i := 0; i < data.Len(); i++ {
		if data.ID(i) != int64(i+1) {
			Te.Fatalf("atoms not sorted by id: position %d holds id %d", i, data.ID(i))
		}
	}
	//id 5 was the first line of the block but must have sorted to index 4
	if data.X(4) != 0.0 || data.Y(4) != 1.0 {
		Te.Errorf("atom 5 at (%v,%v), want (0,1)", data.X(4), data.Y(4))
	}
	if i, ok := data.IndexOf(13); !ok || data.Y(i) != 3.0 {
		Te.Errorf("IndexOf(13) broken: %d %v", i, ok)
	}
}

func TestDataReadMissingBox(Te *testing.T) {
	text := "Atoms\n\n1 1 0.0 0.0 0.0\n"
	_, err := DataRead(strings.NewReader(text))
	perr, ok := err.(ParseError)
	if !ok || perr.Reason != MissingBoxBounds {
		Te.Errorf("want MissingBoxBounds, got %v", err)
	}
}

func TestDataReadMissingAtoms(Te *testing.T) {
	text := "0 1 xlo xhi\n0 1 ylo yhi\n\nMasses\n\n1 1.0\n"
	_, err := DataRead(strings.NewReader(text))
	perr, ok := err.(ParseError)
	if !ok || perr.Reason != MissingAtomsSection {
		Te.Errorf("want MissingAtomsSection, got %v", err)
	}
}

// A present Atoms section whose every line is malformed is NoAtomsParsed,
// not a silent empty dataset.
func TestDataReadNoAtomsParsed(Te *testing.T) {
	text := "0 1 xlo xhi\n0 1 ylo yhi\n\nAtoms\n\nnot an atom\nalso not 1 2\n"
	_, err := DataRead(strings.NewReader(text))
	perr, ok := err.(ParseError)
	if !ok || perr.Reason != NoAtomsParsed {
		Te.Errorf("want NoAtomsParsed, got %v", err)
	}
}

// Z bounds are optional and default to (0,0).
func TestDataReadNoZBounds(Te *testing.T) {
	text := "-1 1 xlo xhi\n-2 2 ylo yhi\n\nAtoms\n\n2 1 0.5 0.5 0.0\n1 1 0.0 0.0 0.0\n"
	data, err := DataRead(strings.NewReader(text))
	if err != nil {
		Te.Fatal(err)
	}
	if b := data.Box(); b.Zlo != 0 || b.Zhi != 0 {
		Te.Errorf("z bounds not defaulted: %+v", *b)
	}
}

// The two-word section families must terminate the Atoms block too.
func TestDataReadTwoWordHeader(Te *testing.T) {
	text := "0 9 xlo xhi\n0 9 ylo yhi\n\nAtoms\n\n1 1 0.0 0.0 0.0\n2 1 1.0 0.0 0.0\n\nPair Coeffs\n\n1 1.0 1.0\n"
	data, err := DataRead(strings.NewReader(text))
	if err != nil {
		Te.Fatal(err)
	}
	if data.Len() != 2 {
		Te.Errorf("Pair Coeffs leaked into the Atoms block: %d atoms", data.Len())
	}
}

// Atom lines keep only the first token (id) and the last three (x,y,z), so
// any atom style's extra columns are tolerated.
func TestDataReadExtraColumns(Te *testing.T) {
	text := "0 9 xlo xhi\n0 9 ylo yhi\n\nAtoms\n\n1 7 3 0.5 1 1.5 2.5 3.5\n"
	data, err := DataRead(strings.NewReader(text))
	if err != nil {
		Te.Fatal(err)
	}
	if data.X(0) != 1.5 || data.Y(0) != 2.5 || data.Z(0) != 3.5 {
		Te.Errorf("wrong coordinates: %v %v %v", data.X(0), data.Y(0), data.Z(0))
	}
}

func TestDataSetHelpers(Te *testing.T) {
	data, err := DataFileRead("test/sample.data")
	if err != nil {
		Te.Fatal(err)
	}
	cx, cy := data.Centroid()
	if cx != 1.5 || cy != 1.5 {
		Te.Errorf("centroid (%v,%v), want (1.5,1.5)", cx, cy)
	}
	if w := data.DefaultBandWidth(); w != 0.5 {
		Te.Errorf("default band width %v, want 0.5 for a unit grid", w)
	}
}
