package annotate

import (
	"bytes"
	"sort"
	"testing"
)

// identity matrix scenario: numRows == numCols, M[i][j] = (i == j).
func identityHas(n int) HasBit {
	return func(row, col int) bool { return row == col }
}

func TestBRWTIdentityMatrix(t *testing.T) {
	n := 6
	b := BuildFromMatrix(n, n, identityHas(n))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := i == j
			if got := b.Get(i, j); got != want {
				t.Fatalf("Get(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
	for i := 0; i < n; i++ {
		row := b.GetRow(i)
		if len(row) != 1 || row[0] != i {
			t.Fatalf("GetRow(%d) = %v, want [%d]", i, row, i)
		}
	}
	for j := 0; j < n; j++ {
		col := b.GetColumn(j)
		if len(col) != 1 || col[0] != j {
			t.Fatalf("GetColumn(%d) = %v, want [%d]", j, col, j)
		}
	}
}

func TestBRWTArbitraryMatrixMatchesPredicate(t *testing.T) {
	numRows, numCols := 20, 7
	matrix := make([][]bool, numRows)
	for i := range matrix {
		matrix[i] = make([]bool, numCols)
		for j := range matrix[i] {
			matrix[i][j] = (i*7+j*3)%5 == 0
		}
	}
	has := func(row, col int) bool { return matrix[row][col] }
	b := BuildFromMatrix(numRows, numCols, has)

	for i := 0; i < numRows; i++ {
		for j := 0; j < numCols; j++ {
			if got := b.Get(i, j); got != matrix[i][j] {
				t.Fatalf("Get(%d,%d) = %v, want %v", i, j, got, matrix[i][j])
			}
		}
	}

	for i := 0; i < numRows; i++ {
		var want []int
		for j := 0; j < numCols; j++ {
			if matrix[i][j] {
				want = append(want, j)
			}
		}
		got := b.GetRow(i)
		sort.Ints(got)
		if !equalInts(got, want) {
			t.Fatalf("GetRow(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestBRWTSliceRowsDelimitsWithSentinel(t *testing.T) {
	n := 10
	b := BuildFromMatrix(n, n, identityHas(n))
	ids := make([]uint64, n)
	for i := range ids {
		ids[i] = uint64(i)
	}
	out := b.SliceRows(ids)
	sentinels := 0
	for _, v := range out {
		if v == MaxSentinel {
			sentinels++
		}
	}
	if sentinels != n {
		t.Fatalf("SliceRows produced %d sentinels, want %d", sentinels, n)
	}
}

func TestBRWTSliceColumnsMatchesGetColumn(t *testing.T) {
	numRows, numCols := 16, 6
	has := func(row, col int) bool { return (row+col)%3 == 0 }
	b := BuildFromMatrix(numRows, numCols, has)

	colIDs := []int{0, 2, 5}
	out := b.SliceColumns(colIDs)

	var groups [][]uint64
	var cur []uint64
	for _, v := range out {
		if v == MaxSentinel {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, v)
	}
	if len(groups) != len(colIDs) {
		t.Fatalf("SliceColumns produced %d groups, want %d", len(groups), len(colIDs))
	}
	for gi, col := range colIDs {
		want := b.GetColumn(col)
		got := make([]int, len(groups[gi]))
		for i, v := range groups[gi] {
			got[i] = int(v)
		}
		sort.Ints(got)
		sort.Ints(want)
		if !equalInts(got, want) {
			t.Fatalf("SliceColumns group %d = %v, want %v", gi, got, want)
		}
	}
}

func TestBRWTDerivedStatistics(t *testing.T) {
	n := 6
	b := BuildFromMatrix(n, n, identityHas(n))

	// Every internal node splits its columns into exactly two non-empty
	// halves, so the tree is a full binary tree: leaves = n, internal
	// nodes = n-1, total nodes = 2n-1, and mean arity is exactly 2.
	if got, want := b.NumNodes(), uint64(2*n-1); got != want {
		t.Fatalf("NumNodes() = %d, want %d", got, want)
	}
	if got := b.AvgArity(); got != 2 {
		t.Fatalf("AvgArity() = %v, want 2", got)
	}
	if got, want := b.NumRelations(), uint64(n); got != want {
		t.Fatalf("NumRelations() = %d, want %d (identity matrix has exactly n set bits)", got, want)
	}
	if rate := b.ShrinkingRate(); rate <= 0 || rate > 1 {
		t.Fatalf("ShrinkingRate() = %v, want a value in (0, 1]", rate)
	}
	if got := b.TotalColumnSize(); got == 0 {
		t.Fatal("TotalColumnSize() should be positive for a non-empty tree")
	}
	if got, relations := b.TotalNumSetBits(), b.NumRelations(); got < relations {
		t.Fatalf("TotalNumSetBits() = %d, should be at least NumRelations() = %d since every level's set bits sum to at least the leaf level's", got, relations)
	}
}

func TestBRWTSerializeRoundTrip(t *testing.T) {
	numRows, numCols := 12, 5
	has := func(row, col int) bool { return (row^col)%4 == 0 }
	b := BuildFromMatrix(numRows, numCols, has)

	var buf bytes.Buffer
	if err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	loaded, err := ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	for i := 0; i < numRows; i++ {
		for j := 0; j < numCols; j++ {
			if loaded.Get(i, j) != b.Get(i, j) {
				t.Fatalf("loaded Get(%d,%d) mismatch", i, j)
			}
		}
	}
}

func TestLabelEncoderStableAcrossRepeatedEncode(t *testing.T) {
	e := NewLabelEncoder()
	a := e.Encode("host_A")
	b := e.Encode("host_B")
	a2 := e.Encode("host_A")
	if a != a2 {
		t.Fatalf("Encode(host_A) is not stable: %d vs %d", a, a2)
	}
	if a == b {
		t.Fatal("distinct labels must not collide on the same column")
	}
	if got := e.NumLabels(); got != 2 {
		t.Fatalf("NumLabels() = %d, want 2", got)
	}
	if name := e.Decode(a); name != "host_A" {
		t.Fatalf("Decode(%d) = %q, want host_A", a, name)
	}
	if _, ok := e.Lookup("host_C"); ok {
		t.Fatal("Lookup of unseen label should report ok=false")
	}
}

func TestUniqueRowAnnotatorDeduplicates(t *testing.T) {
	u := NewUniqueRowAnnotator(4)
	c1, err := u.AddRow([]int{0, 2})
	if err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	c2, err := u.AddRow([]int{1, 3})
	if err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	c3, err := u.AddRow([]int{0, 2})
	if err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if c1 != c3 {
		t.Fatalf("identical rows got different codes: %d vs %d", c1, c3)
	}
	if c1 == c2 {
		t.Fatal("distinct rows must not share a code")
	}
	if u.NumRows() != 3 {
		t.Fatalf("NumRows() = %d, want 3", u.NumRows())
	}
	if u.NumUniqueRows() != 2 {
		t.Fatalf("NumUniqueRows() = %d, want 2", u.NumUniqueRows())
	}
	if !equalInts(u.GetRow(0), []int{0, 2}) {
		t.Fatalf("GetRow(0) = %v, want [0 2]", u.GetRow(0))
	}
}

func TestUniqueRowAnnotatorToBRWT(t *testing.T) {
	u := NewUniqueRowAnnotator(3)
	rows := [][]int{{0}, {1, 2}, {0}, {}}
	for _, r := range rows {
		if _, err := u.AddRow(r); err != nil {
			t.Fatalf("AddRow: %v", err)
		}
	}
	b := u.ToBRWT()
	for i, r := range rows {
		got := b.GetRow(i)
		sort.Ints(got)
		if !equalInts(got, r) && !(len(got) == 0 && len(r) == 0) {
			t.Fatalf("BRWT row %d = %v, want %v", i, got, r)
		}
	}
}

func equalInts(a, b []int) bool {
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
