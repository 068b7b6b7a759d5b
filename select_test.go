package latt

import "testing"

func intsEq(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNearestAtom(Te *testing.T) {
	S := NewSelector(grid(Te, 4, 4))
	//atom index 5 sits at (1,1)
	i, ok := S.NearestAtom(1.1, 0.9, 0.5)
	if !ok || i != 5 {
		Te.Errorf("got %d %v, want 5", i, ok)
	}
	//the same pick with a tolerance tighter than the distance finds nothing
	if _, ok := S.NearestAtom(1.1, 0.9, 0.1); ok {
		Te.Error("pick outside tolerance accepted")
	}
}

func TestRectangle(Te *testing.T) {
	S := NewSelector(grid(Te, 4, 4))
	//bounds are inclusive
	idx := S.Rectangle(1, 2, 1, 2)
	if !intsEq(idx, []int{5, 6, 9, 10}) {
		Te.Errorf("rectangle %v", idx)
	}
}

// 10 collinear points, stride 3, offset 1: exactly sorted positions 1,4,7
// survive the decimation.
func TestLineDecimation(Te *testing.T) {
	S := NewSelector(grid(Te, 10, 1))
	hits := S.Line(Horizontal, 0, 0.1, 3, 1)
	if !intsEq(hits, []int{1, 4, 7}) {
		Te.Errorf("kept %v, want [1 4 7]", hits)
	}
	//stride 1 is the degenerate case keeping every hit
	hits = S.Line(Horizontal, 0, 0.1, 1, 0)
	if len(hits) != 10 {
		Te.Errorf("stride 1 kept %d, want 10", len(hits))
	}
	//offsets count modulo the stride
	a := S.Line(Horizontal, 0, 0.1, 3, 1)
	b := S.Line(Horizontal, 0, 0.1, 3, 4)
	if !intsEq(a, b) {
		Te.Errorf("offset 4 mod 3 differs from offset 1: %v vs %v", a, b)
	}
}

func TestLineSortsAlongLine(Te *testing.T) {
	//ids picked so dataset order along y is scrambled for a vertical band
	ids := []int64{1, 2, 3}
	xs := []float64{0, 0, 0}
	ys := []float64{5, 1, 3}
	box, _ := NewBox(0, 1, 0, 6, 0, 0)
	data, err := NewDataSet(ids, xs, ys, []float64{0, 0, 0}, box)
	if err != nil {
		Te.Fatal(err)
	}
	S := NewSelector(data)
	hits := S.Line(Vertical, 0, 0.1, 1, 0)
	//sorted by y: indices 1 (y=1), 2 (y=3), 0 (y=5)
	if !intsEq(hits, []int{1, 2, 0}) {
		Te.Errorf("band not sorted along the line: %v", hits)
	}
}

// The remembered line selection is the full sorted band, before decimation.
func TestLastLinePreDecimation(Te *testing.T) {
	S := NewSelector(grid(Te, 10, 1))
	S.Line(Horizontal, 0, 0.1, 3, 1)
	mem, axis, ok := S.LastLine()
	if !ok || axis != Horizontal || len(mem) != 10 {
		Te.Errorf("line memory %v %v %v, want the whole 10-atom band", mem, axis, ok)
	}
	//an empty band must leave the memory untouched
	if hits := S.Line(Horizontal, 50, 0.1, 1, 0); hits != nil {
		Te.Errorf("band at y=50 hit %v", hits)
	}
	if mem, _, ok = S.LastLine(); !ok || len(mem) != 10 {
		Te.Error("empty band clobbered the line memory")
	}
}

// Rule propagation over a 9x6 grid: anchors at sorted positions 0,3,6 of a
// horizontal pick, every other atom along each anchor's column. The result
// must be exactly the Cartesian-decimated lattice, no superset.
func TestRuleLattice(Te *testing.T) {
	data := grid(Te, 9, 6)
	S := NewSelector(data)
	if hits := S.Line(Horizontal, 0, 0.1, 1, 0); len(hits) != 9 {
		Te.Fatalf("line pick hit %d, want 9", len(hits))
	}
	got, err := S.Rule(3, 0, 2, 0, 0.1)
	if err != nil {
		Te.Fatal(err)
	}
	var want []int
	for j := 0; j < 6; j += 2 { //every other row
		for i := 0; i < 9; i += 3 { //every 3rd column
			want = append(want, j*9+i)
		}
	}
	uniqueWant := uniqueSorted(want)
	if !intsEq(got, uniqueWant) {
		Te.Errorf("rule selection %v, want %v", got, uniqueWant)
	}
}

func TestRuleNeedsLineMemory(Te *testing.T) {
	S := NewSelector(grid(Te, 3, 3))
	if _, err := S.Rule(1, 0, 1, 0, 0.1); err == nil {
		Te.Error("Rule without a prior line selection accepted")
	}
}

// Row stride decimates the remembered full band, not the decimated pick:
// 9 remembered anchors, stride 3, offset 0 keep positions 0,3,6.
func TestRuleAnchors(Te *testing.T) {
	S := NewSelector(grid(Te, 9, 2))
	S.Line(Horizontal, 0, 0.1, 2, 1) //decimated pick, memory keeps all 9
	got, err := S.Rule(3, 0, 1, 0, 0.1)
	if err != nil {
		Te.Fatal(err)
	}
	//columns 0,3,6 whole: indices j*9+i for i in {0,3,6}
	want := []int{0, 3, 6, 9, 12, 15}
	if !intsEq(got, want) {
		Te.Errorf("anchors from pre-decimation band: got %v, want %v", got, want)
	}
}

func TestCircleConstrain(Te *testing.T) {
	S := NewSelector(grid(Te, 4, 4))
	all := S.Rectangle(0, 3, 0, 3)
	if len(all) != 16 {
		Te.Fatalf("rectangle over the box hit %d", len(all))
	}
	//no active mask: pass-through
	if got := S.CircleConstrain(all); !intsEq(got, all) {
		Te.Error("constrain without a mask must be a no-op")
	}
	S.SetCircle(0, 0, 1.0)
	got := S.CircleConstrain(all)
	//unit circle at the origin of a unit grid: (0,0),(1,0),(0,1), inclusive
	if !intsEq(got, []int{0, 1, 4}) {
		Te.Errorf("mask kept %v", got)
	}
	//the mask applies before sorting and decimation in line selection
	hits := S.Line(Horizontal, 0, 0.1, 2, 0)
	if !intsEq(hits, []int{0}) {
		Te.Errorf("masked line kept %v, want [0]", hits)
	}
	//radius ≤ 0 disables the mask
	S.SetCircle(0, 0, 0)
	if got := S.CircleConstrain(all); !intsEq(got, all) {
		Te.Error("zero-radius mask must be inactive")
	}
}
