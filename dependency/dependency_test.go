package dependency

import "testing"

func TestCompareOrdersByTuple(t *testing.T) {
	a, err := New(1, 2, 3, 0, 0, 9)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(1, 2, 3, 0, 0, 1) // differs only in conjFactor
	if err != nil {
		t.Fatal(err)
	}
	if a.Compare(b) != 0 {
		t.Fatalf("expected equal ignoring conjFactor, got %d", a.Compare(b))
	}
	if !a.Equal(b) {
		t.Fatalf("expected Equal true for conjFactor-only difference")
	}

	c, err := New(1, 2, 4, 0, 0, 9) // differs in var
	if err != nil {
		t.Fatal(err)
	}
	if a.Compare(c) >= 0 {
		t.Fatalf("expected a < c, got %d", a.Compare(c))
	}
}

func TestCompareZeroIffEqual(t *testing.T) {
	d1, _ := New(5, 1, 2, 3, 4, 0)
	d2, _ := New(5, 1, 2, 3, 4, 99)
	d3, _ := New(5, 1, 2, 3, 5, 0)

	if d1.Compare(d2) != 0 || !d1.Equal(d2) {
		t.Fatalf("d1 and d2 should compare equal")
	}
	if d1.Compare(d3) == 0 || d1.Equal(d3) {
		t.Fatalf("d1 and d3 should not compare equal")
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	d1, _ := New(5, 1, 2, 3, 4, 0)
	d2, _ := New(5, 1, 2, 3, 4, 77)
	if d1.Hash() != d2.Hash() {
		t.Fatalf("equal dependencies must hash identically")
	}
}

func TestNewRejectsZeroHeadIndex(t *testing.T) {
	_, err := New(1, 0, 0, 0, 0, 0)
	if err == nil {
		t.Fatal("expected an error for headIndex == 0")
	}
}

func TestFillProducesFilledDependency(t *testing.T) {
	d, err := New(1, 2, 3, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	f := d.Fill(7)
	if f.FillerIndex != 7 {
		t.Fatalf("expected filler index 7, got %d", f.FillerIndex)
	}
	if !f.Dependency.Equal(d) {
		t.Fatalf("filled dependency should retain the original dependency")
	}
}
