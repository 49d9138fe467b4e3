package bitrow

import "testing"

func TestRowSetGetFlip(t *testing.T) {
	r := NewRow(130)
	if r.Len() != 130 {
		t.Fatalf("Len() = %d, want 130", r.Len())
	}
	for _, i := range []int{0, 1, 63, 64, 65, 127, 128, 129} {
		if r.Get(i) {
			t.Errorf("new row: Get(%d) = true", i)
		}
		r.Set(i)
		if !r.Get(i) {
			t.Errorf("after Set: Get(%d) = false", i)
		}
		r.Flip(i)
		if r.Get(i) {
			t.Errorf("after Flip: Get(%d) = true", i)
		}
	}
}

func TestRowSetRange(t *testing.T) {
	r := NewRow(100)
	r.SetRange(60, 70)
	for i := 0; i < 100; i++ {
		want := i >= 60 && i < 70
		if r.Get(i) != want {
			t.Errorf("Get(%d) = %v, want %v", i, r.Get(i), want)
		}
	}
}

func TestRowNextSetUnset(t *testing.T) {
	r := NewRow(200)
	r.Set(5)
	r.Set(64)
	r.Set(150)

	cases := []struct {
		from, want int
	}{
		{0, 5}, {5, 5}, {6, 64}, {64, 64}, {65, 150}, {151, 200}, {250, 200},
	}
	for _, c := range cases {
		if got := r.NextSet(c.from); got != c.want {
			t.Errorf("NextSet(%d) = %d, want %d", c.from, got, c.want)
		}
	}

	r2 := NewRow(200)
	r2.SetRange(0, 130)
	if got := r2.NextUnset(0); got != 130 {
		t.Errorf("NextUnset(0) = %d, want 130", got)
	}
	if got := r2.NextUnset(140); got != 140 {
		t.Errorf("NextUnset(140) = %d, want 140", got)
	}
	full := NewRow(64)
	full.SetRange(0, 64)
	if got := full.NextUnset(0); got != 64 {
		t.Errorf("NextUnset on full row = %d, want 64", got)
	}
}

func TestRowIsRange(t *testing.T) {
	r := NewRow(100)
	r.SetRange(20, 40)
	if !r.IsRange(20, 40, true) {
		t.Error("IsRange(20, 40, true) = false on set range")
	}
	if !r.IsRange(40, 100, false) {
		t.Error("IsRange(40, 100, false) = false on clear range")
	}
	if r.IsRange(19, 40, true) {
		t.Error("IsRange(19, 40, true) = true across boundary")
	}
	if !r.IsRange(50, 50, false) {
		t.Error("empty range should be vacuously uniform")
	}
}

func TestRowReverse(t *testing.T) {
	r := NewRowFromBools([]bool{true, true, false, false, false, true, false})
	r.Reverse()
	want := []bool{false, true, false, false, false, true, true}
	for i, b := range want {
		if r.Get(i) != b {
			t.Errorf("reversed Get(%d) = %v, want %v", i, r.Get(i), b)
		}
	}
	r.Reverse()
	if r.String() != "XX...X." {
		t.Errorf("double reverse = %q, want original", r.String())
	}
}

func TestRowClone(t *testing.T) {
	r := NewRow(80)
	r.Set(70)
	c := r.Clone()
	c.Flip(70)
	if !r.Get(70) {
		t.Error("mutating the clone changed the original")
	}
}

func TestMatrixSetGet(t *testing.T) {
	m := NewMatrix(70, 3)
	if m.Width() != 70 || m.Height() != 3 {
		t.Fatalf("dimensions = %dx%d, want 70x3", m.Width(), m.Height())
	}
	m.Set(69, 2)
	m.Set(0, 0)
	if !m.Get(69, 2) || !m.Get(0, 0) {
		t.Error("set bits not readable")
	}
	if m.Get(69, 0) || m.Get(0, 2) {
		t.Error("bits set on the wrong row")
	}
}

func TestMatrixRow(t *testing.T) {
	m := NewMatrix(100, 2)
	m.Set(10, 1)
	m.Set(99, 1)
	row := m.Row(1, nil)
	if row.Len() != 100 {
		t.Fatalf("row length = %d, want 100", row.Len())
	}
	if !row.Get(10) || !row.Get(99) || row.Get(11) {
		t.Errorf("row contents wrong: %s", row)
	}
	other := m.Row(0, row)
	if other.NextSet(0) != 100 {
		t.Error("row 0 should be empty after reuse")
	}
}

func TestMatrixFlipAll(t *testing.T) {
	m := NewMatrix(10, 2)
	m.Set(3, 0)
	m.FlipAll()
	if m.Get(3, 0) {
		t.Error("FlipAll left a set bit set")
	}
	if !m.Get(0, 1) {
		t.Error("FlipAll left a clear bit clear")
	}
}
