package lattjson

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	latt "github.com/mfuentealba/golatt"
	"gonum.org/v1/gonum/floats"
)

func session(Te *testing.T) *latt.ProjectState {
	ids := []int64{4, 1, 3, 2}
	xs := []float64{3.25, 0.125, 2.5, 1.75}
	ys := []float64{0.1, 0.2, 0.3, 0.4}
	zs := []float64{0, 0, 0, 0}
	box, err := latt.NewBox(0, 4, 0, 1, -0.25, 0.25)
	if err != nil {
		Te.Fatal(err)
	}
	data, err := latt.NewDataSet(ids, xs, ys, zs, box)
	if err != nil {
		Te.Fatal(err)
	}
	P, err := latt.NewProjectState(data)
	if err != nil {
		Te.Fatal(err)
	}
	//insertion order deliberately not id order
	g2, err := P.AddGroup(2, "second", latt.NextColor(1))
	if err != nil {
		Te.Fatal(err)
	}
	if err := g2.SetDirection(0, 1, 0); err != nil {
		Te.Fatal(err)
	}
	if _, err := P.AddGroup(1, "first", latt.NextColor(0)); err != nil {
		Te.Fatal(err)
	}
	if _, err := P.Assign([]int{0, 2}, latt.AddSel, 2); err != nil {
		Te.Fatal(err)
	}
	if _, err := P.Assign([]int{1}, latt.AddSel, 1); err != nil {
		Te.Fatal(err)
	}
	P.Localize = latt.LocalizeParams{A: 0.125, Beta: 2.5, X0: 1.0625, Y0: -0.375}
	P.ApplyLocalizing = false
	P.PreserveBaseSelection = false
	return P
}

func statesEqual(Te *testing.T, a, b *latt.ProjectState) {
	if a.Data.Len() != b.Data.Len() {
		Te.Fatalf("dataset lengths %d vs %d", a.Data.Len(), b.Data.Len())
	}
	for i := 0; i < a.Data.Len(); i++ {
		if a.Data.ID(i) != b.Data.ID(i) {
			Te.Fatalf("id mismatch at %d", i)
		}
	}
	if !floats.Equal(a.Data.Xs(), b.Data.Xs()) || !floats.Equal(a.Data.Ys(), b.Data.Ys()) ||
		!floats.Equal(a.Data.Zs(), b.Data.Zs()) {
		Te.Fatal("coordinates did not round-trip exactly")
	}
	if *a.Data.Box() != *b.Data.Box() {
		Te.Fatalf("box %+v vs %+v", *a.Data.Box(), *b.Data.Box())
	}
	av, bv := a.Assignment(), b.Assignment()
	for i := range av {
		if av[i] != bv[i] {
			Te.Fatalf("assignment mismatch at %d: %d vs %d", i, av[i], bv[i])
		}
	}
	ag, bg := a.Groups(), b.Groups()
	if len(ag) != len(bg) {
		Te.Fatalf("group counts %d vs %d", len(ag), len(bg))
	}
	for k := range ag {
		if ag[k].ID != bg[k].ID || ag[k].Name != bg[k].Name ||
			ag[k].Color != bg[k].Color || ag[k].Direction != bg[k].Direction {
			Te.Fatalf("group record %d differs: %+v vs %+v", k, *ag[k], *bg[k])
		}
	}
	if a.Localize != b.Localize {
		Te.Fatalf("localize params %+v vs %+v", a.Localize, b.Localize)
	}
	if a.ApplyLocalizing != b.ApplyLocalizing || a.PreserveBaseSelection != b.PreserveBaseSelection {
		Te.Fatal("mode flags did not round-trip")
	}
}

func TestRoundTrip(Te *testing.T) {
	P := session(Te)
	ui := json.RawMessage(`{"zoom":2.5,"shading":true}`)
	var buf bytes.Buffer
	if err := Save(P, ui, &buf); err != nil {
		Te.Fatal(err)
	}
	Q, ui2, err := Load(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	statesEqual(Te, P, Q)
	var v map[string]interface{}
	if err := json.Unmarshal(ui2, &v); err != nil || v["zoom"].(float64) != 2.5 {
		Te.Errorf("ui bucket did not pass through: %s", string(ui2))
	}
	//a loaded session starts with a clean history
	if Q.CanUndo() || Q.CanRedo() {
		Te.Error("history must not be serialized")
	}
	//second generation: load(save(load(save(x)))) is still x
	var buf2 bytes.Buffer
	if err := Save(Q, ui2, &buf2); err != nil {
		Te.Fatal(err)
	}
	R, _, err := Load(&buf2)
	if err != nil {
		Te.Fatal(err)
	}
	statesEqual(Te, P, R)
}

func TestFileRoundTripCompressed(Te *testing.T) {
	P := session(Te)
	dir := Te.TempDir()
	for _, name := range []string{"proj.json", "proj.json.gz", "proj.lpz", "proj.json.zst"} {
		path := filepath.Join(dir, name)
		if err := FileSave(P, nil, path); err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		Q, _, err := FileLoad(path)
		if err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		statesEqual(Te, P, Q)
	}
}

func TestLoadRejectsMalformed(Te *testing.T) {
	cases := map[string]string{
		"not json":            "{",
		"no data":             `{"groups":[]}`,
		"no box":              `{"data":{"ids":[1],"x":[0],"y":[0],"z":[0]}}`,
		"no atoms":            `{"data":{"ids":[],"x":[],"y":[],"z":[],"box":{"xlo":0,"xhi":1,"ylo":0,"yhi":1}}}`,
		"ragged arrays":       `{"data":{"ids":[1,2],"x":[0],"y":[0,0],"z":[0,0],"box":{"xlo":0,"xhi":1,"ylo":0,"yhi":1}}}`,
		"inverted box":        `{"data":{"ids":[1],"x":[0],"y":[0],"z":[0],"box":{"xlo":1,"xhi":0,"ylo":0,"yhi":1}}}`,
		"assignment length":   `{"data":{"ids":[1],"x":[0],"y":[0],"z":[0],"box":{"xlo":0,"xhi":1,"ylo":0,"yhi":1}},"assignment":[0,0]}`,
		"unknown group label": `{"data":{"ids":[1],"x":[0],"y":[0],"z":[0],"box":{"xlo":0,"xhi":1,"ylo":0,"yhi":1}},"assignment":[7]}`,
		"group id zero":       `{"data":{"ids":[1],"x":[0],"y":[0],"z":[0],"box":{"xlo":0,"xhi":1,"ylo":0,"yhi":1}},"groups":[{"gid":0,"name":"bad"}]}`,
		"duplicate group":     `{"data":{"ids":[1],"x":[0],"y":[0],"z":[0],"box":{"xlo":0,"xhi":1,"ylo":0,"yhi":1}},"groups":[{"gid":1,"name":"a"},{"gid":1,"name":"b"}]}`,
	}
	for name, doc := range cases {
		if _, _, err := Load(strings.NewReader(doc)); err == nil {
			Te.Errorf("%s: malformed document accepted", name)
		}
	}
}

// The localization record travels under its historical "breather" key, so
// project files written by earlier versions of the tool keep loading. The
// "localize" key is accepted on load for files that used it instead.
func TestLocalizeRecordKeys(Te *testing.T) {
	want := latt.LocalizeParams{A: 0.75, Beta: 3.5, X0: 1.5, Y0: -2}
	data := `"data":{"ids":[1],"x":[0],"y":[0],"z":[0],"box":{"xlo":0,"xhi":1,"ylo":0,"yhi":1}}`
	for _, key := range []string{"breather", "localize"} {
		doc := `{` + data + `,"` + key + `":{"A":0.75,"beta":3.5,"x0":1.5,"y0":-2}}`
		P, _, err := Load(strings.NewReader(doc))
		if err != nil {
			Te.Fatalf("%s: %v", key, err)
		}
		if P.Localize != want {
			Te.Errorf("%s: got %+v, want %+v", key, P.Localize, want)
		}
	}
	//and Save writes the historical key
	P := session(Te)
	var buf bytes.Buffer
	if err := Save(P, nil, &buf); err != nil {
		Te.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		Te.Fatal(err)
	}
	if _, ok := raw["breather"]; !ok {
		Te.Error("saved document has no breather record")
	}
	if _, ok := raw["localize"]; ok {
		Te.Error("saved document must not carry the localize key")
	}
}

// Missing mode flags default to true, as older project files omit them.
func TestLoadFlagDefaults(Te *testing.T) {
	doc := `{"data":{"ids":[1],"x":[0],"y":[0],"z":[0],"box":{"xlo":0,"xhi":1,"ylo":0,"yhi":1}}}`
	P, _, err := Load(strings.NewReader(doc))
	if err != nil {
		Te.Fatal(err)
	}
	if !P.ApplyLocalizing || !P.PreserveBaseSelection {
		Te.Error("missing flags must default to true")
	}
	if P.Localize != latt.DefaultLocalizeParams() {
		Te.Error("missing localize record must default")
	}
}
