package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	def := []string{"a", "b"}
	if got := IfEmpty(nil, def); len(got) != 2 {
		t.Fatalf("IfEmpty(nil) = %v, want default", got)
	}
	if got := IfEmpty([]string{"x"}, def); len(got) != 1 || got[0] != "x" {
		t.Fatalf("IfEmpty(non-empty) = %v, want input", got)
	}
}

func TestSQLNull(t *testing.T) {
	if got := SQLNull("  "); got != nil {
		t.Fatalf("SQLNull(blank) = %v, want nil", got)
	}
	if got := SQLNull("lagos"); got != "lagos" {
		t.Fatalf("SQLNull = %v, want lagos", got)
	}
}

func TestPtrAndDeref(t *testing.T) {
	if Ptr("") != nil {
		t.Fatal("Ptr(empty) should be nil")
	}
	p := Ptr("abuja")
	if p == nil || *p != "abuja" {
		t.Fatalf("Ptr = %v", p)
	}
	if Deref(nil) != "" {
		t.Fatal("Deref(nil) should be empty")
	}
	if Deref(p) != "abuja" {
		t.Fatalf("Deref = %q", Deref(p))
	}
}

func TestMustString(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for blank value")
		}
	}()
	MustString(" ", "DBURL")
}
