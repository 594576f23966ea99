package sparse

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func mustInsertVec[I Index, S Numeric](t *testing.T, v *Vector[I, S], i I, s S) {
	t.Helper()
	if err := v.Insert(i, s); err != nil {
		t.Fatalf("Insert(%v, %v): %v", i, s, err)
	}
}

func TestVectorInsertAndGet(t *testing.T) {
	v := NewVector[int, float64](6)
	mustInsertVec(t, v, 1, 1.1)
	mustInsertVec(t, v, 3, 3.3)
	mustInsertVec(t, v, 4, 4.4)

	tests := []struct {
		idx      int
		expected float64
	}{
		{0, 0}, {1, 1.1}, {2, 0}, {3, 3.3}, {4, 4.4}, {5, 0},
	}
	for _, test := range tests {
		if got := v.Get(test.idx); got != test.expected {
			t.Errorf("Get(%d): expected %v but received %v", test.idx, test.expected, got)
		}
	}
	if got := v.NNZ(); got != 3 {
		t.Errorf("NNZ(): expected 3 but received %d", got)
	}
}

func TestVectorInsertOutOfOrderIsPositionallyInserted(t *testing.T) {
	v := NewVector[int, float64](6)
	mustInsertVec(t, v, 3, 1)
	mustInsertVec(t, v, 1, 2)
	mustInsertVec(t, v, 5, 3)

	if got := v.NNZ(); got != 3 {
		t.Errorf("NNZ(): expected 3 but received %d", got)
	}
	tests := []struct {
		idx      int
		expected float64
	}{{0, 0}, {1, 2}, {2, 0}, {3, 1}, {4, 0}, {5, 3}}
	for _, test := range tests {
		if got := v.Get(test.idx); got != test.expected {
			t.Errorf("Get(%d): expected %v but received %v", test.idx, test.expected, got)
		}
	}
}

func TestVectorInsertOverwritesDuplicateIndex(t *testing.T) {
	v := NewVector[int, float64](6)
	mustInsertVec(t, v, 3, 1)
	mustInsertVec(t, v, 1, 2)
	mustInsertVec(t, v, 3, 9)

	if got := v.NNZ(); got != 2 {
		t.Errorf("NNZ(): expected 2 (overwrite, not a new entry) but received %d", got)
	}
	if got := v.Get(3); got != 9 {
		t.Errorf("Get(3): expected 9 but received %v", got)
	}
	if got := v.Get(1); got != 2 {
		t.Errorf("Get(1): expected 2 but received %v", got)
	}
}

func TestVectorInsertOutOfRangeFails(t *testing.T) {
	v := NewVector[int, float64](4)
	if err := v.Insert(4, 1); err == nil {
		t.Fatal("expected an error inserting an out-of-range index")
	}
}

func TestVectorInsertGrowsBackingStorage(t *testing.T) {
	const n = 50
	v := NewVector[int, float64](n)
	for i := 0; i < n; i++ {
		mustInsertVec(t, v, i, float64(i))
	}
	if got := v.NNZ(); got != n {
		t.Errorf("NNZ(): expected %d but received %d", n, got)
	}
	for i := 0; i < n; i++ {
		if got := v.Get(i); got != float64(i) {
			t.Errorf("Get(%d): expected %v but received %v", i, float64(i), got)
		}
	}
}

func TestVectorZero(t *testing.T) {
	v := NewVector[int, float64](4)
	mustInsertVec(t, v, 1, 1)
	v.Zero()
	if got := v.NNZ(); got != 0 {
		t.Errorf("NNZ() after Zero(): expected 0 but received %d", got)
	}
	if got := v.Get(1); got != 0 {
		t.Errorf("Get(1) after Zero(): expected 0 but received %v", got)
	}
}

func TestVectorAdd(t *testing.T) {
	a := NewVector[int, float64](6)
	mustInsertVec(t, a, 1, 1)
	mustInsertVec(t, a, 3, 2)
	mustInsertVec(t, a, 4, 1)

	b := NewVector[int, float64](6)
	mustInsertVec(t, b, 0, 1)
	mustInsertVec(t, b, 1, 1)
	mustInsertVec(t, b, 3, 1)

	result := NewVector[int, float64](6)
	result.ind = append(result.ind, a.ind...)
	result.val = append(result.val, a.val...)

	if needed := result.Add(b); needed != 0 {
		result.grow(int(needed))
		if needed := result.Add(b); needed != 0 {
			t.Fatalf("Add: still reports needed=%d after growing", needed)
		}
	}

	expected := mat.NewVecDense(6, []float64{1, 2, 0, 3, 1, 0})
	if !mat.Equal(expected, result) {
		t.Errorf("Add: expected:\n%v\nbut received:\n%v\n", mat.Formatted(expected), mat.Formatted(result))
	}
}

func TestVectorAddShapeMismatchPanics(t *testing.T) {
	a := NewVector[int, float64](4)
	mustInsertVec(t, a, 1, 1)
	b := NewVector[int, float64](6)

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for shape mismatch")
		}
	}()
	a.Add(b)
}

// TestVectorAddCapacitySignalling covers Scenario D (§8): x = SV(len=3)
// holding three entries (no free backing capacity) merging with a y that
// contributes six new indices must report needed=6 and leave x untouched;
// after x's backing storage is grown, the same call must succeed and
// return 0.
func TestVectorAddCapacitySignalling(t *testing.T) {
	x := NewVector[int, float64](10)
	mustInsertVec(t, x, 0, 1)
	mustInsertVec(t, x, 4, 1)
	mustInsertVec(t, x, 7, 1)
	// Pin the backing capacity to exactly the current length, matching the
	// ground truth's SV(len=3) fixture: no free slots to accept a new index
	// without growing first.
	x.ind = x.ind[:len(x.ind):len(x.ind)]
	x.val = x.val[:len(x.val):len(x.val)]

	y := NewVector[int, float64](10)
	mustInsertVec(t, y, 1, 1)
	mustInsertVec(t, y, 2, 1)
	mustInsertVec(t, y, 3, 1)
	mustInsertVec(t, y, 5, 1)
	mustInsertVec(t, y, 6, 1)
	mustInsertVec(t, y, 8, 1)

	needed := x.Add(y)
	if needed != 6 {
		t.Fatalf("Add: expected needed=6 but received %d", needed)
	}
	if got := x.NNZ(); got != 3 {
		t.Errorf("Add with insufficient capacity mutated the receiver: NNZ()=%d", got)
	}
	for _, want := range []struct {
		idx int
		val float64
	}{{0, 1}, {4, 1}, {7, 1}} {
		if got := x.Get(want.idx); got != want.val {
			t.Errorf("Get(%d) after failed Add: expected %v but received %v", want.idx, want.val, got)
		}
	}

	x.grow(int(needed))
	if needed := x.Add(y); needed != 0 {
		t.Fatalf("Add after growing: expected needed=0 but received %d", needed)
	}
	expected := map[int]float64{0: 1, 1: 1, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1, 7: 1, 8: 1}
	if got := int(x.NNZ()); got != len(expected) {
		t.Errorf("NNZ(): expected %d but received %d", len(expected), got)
	}
	for idx, want := range expected {
		if got := x.Get(idx); got != want {
			t.Errorf("Get(%d): expected %v but received %v", idx, want, got)
		}
	}
}

func TestVectorAddDense(t *testing.T) {
	v := NewVector[int, float64](6)
	mustInsertVec(t, v, 1, 1)
	mustInsertVec(t, v, 4, 1)

	d := NewDense[int, float64](6)
	d.Insert(1, 5)
	d.Insert(2, 2)
	d.Insert(5, 3)

	if needed := v.AddDense(d); needed != 0 {
		v.grow(int(needed))
		if needed := v.AddDense(d); needed != 0 {
			t.Fatalf("AddDense: still reports needed=%d after growing", needed)
		}
	}

	expected := map[int]float64{1: 6, 2: 2, 4: 1, 5: 3}
	if got := int(v.NNZ()); got != len(expected) {
		t.Errorf("NNZ(): expected %d but received %d", len(expected), got)
	}
	for idx, want := range expected {
		if got := v.Get(idx); got != want {
			t.Errorf("Get(%d): expected %v but received %v", idx, want, got)
		}
	}
}

func TestVectorUpdateNNZDropsExplicitZeros(t *testing.T) {
	v := NewVector[int, float64](6)
	mustInsertVec(t, v, 1, 1)
	mustInsertVec(t, v, 3, 0)
	mustInsertVec(t, v, 4, 2)

	if got := v.NNZ(); got != 3 {
		t.Fatalf("NNZ(): expected 3 before UpdateNNZ but received %d", got)
	}
	v.UpdateNNZ()
	if got := v.NNZ(); got != 2 {
		t.Errorf("NNZ(): expected 2 after UpdateNNZ but received %d", got)
	}
	if got := v.Get(3); got != 0 {
		t.Errorf("Get(3): expected 0 but received %v", got)
	}
	if got := v.Get(1); got != 1 {
		t.Errorf("Get(1): expected 1 but received %v", got)
	}
	if got := v.Get(4); got != 2 {
		t.Errorf("Get(4): expected 2 but received %v", got)
	}
}

func TestVectorDensifyAndSet(t *testing.T) {
	v := NewVector[int, float64](5)
	mustInsertVec(t, v, 1, 1)
	mustInsertVec(t, v, 2, 2)
	mustInsertVec(t, v, 4, 3)

	d := NewDense[int, float64](5)
	if err := v.Densify(d); err != nil {
		t.Fatalf("Densify: %v", err)
	}
	expected := []float64{0, 1, 2, 0, 3}
	for i, want := range expected {
		if got := d.Get(i); got != want {
			t.Errorf("Densify: At(%d): expected %v but received %v", i, want, got)
		}
	}
	if got := d.NNZ(); got != 3 {
		t.Errorf("Densify: NNZ(): expected 3 but received %d", got)
	}

	var rebuilt Vector[int, float64]
	rebuilt.Set(d)
	if got := rebuilt.NNZ(); got != 3 {
		t.Errorf("Set: NNZ(): expected 3 but received %d", got)
	}
	for i, want := range expected {
		if got := rebuilt.Get(i); got != want {
			t.Errorf("Set: Get(%d): expected %v but received %v", i, want, got)
		}
	}
}

func TestVectorDensifyCapacityError(t *testing.T) {
	v := NewVector[int, float64](5)
	mustInsertVec(t, v, 1, 1)

	d := NewDense[int, float64](3)
	err := v.Densify(d)
	if err == nil {
		t.Fatal("expected a capacity error")
	}
	if serr, ok := err.(*Error); !ok || serr.Kind != Capacity {
		t.Errorf("expected Kind Capacity, got %v", err)
	}
}

func TestVectorMatConformance(t *testing.T) {
	v := NewVector[int, float64](4)
	mustInsertVec(t, v, 1, 1.5)
	mustInsertVec(t, v, 3, 2.5)

	if r, c := v.Dims(); r != 4 || c != 1 {
		t.Errorf("Dims(): expected (4, 1) but received (%d, %d)", r, c)
	}
	if got := v.At(1, 0); got != 1.5 {
		t.Errorf("At(1, 0): expected 1.5 but received %v", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected At to panic for non-zero column")
		}
	}()
	v.At(0, 1)
}
