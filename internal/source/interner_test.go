package source

import "testing"

func TestInternerBasic(t *testing.T) {
	in := NewInterner()

	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID must map to empty string, got %q ok=%v", s, ok)
	}

	a := in.Intern("std::vector<int>")
	if a == NoStringID {
		t.Fatal("non-empty spelling got NoStringID")
	}
	if b := in.Intern("std::vector<int>"); a != b {
		t.Fatalf("same spelling interned twice: %d != %d", a, b)
	}
	if c := in.Intern("const std::vector<int> &"); c == a {
		t.Fatal("distinct spellings share an id")
	}
	if in.Len() != 3 {
		t.Fatalf("Len = %d, want 3", in.Len())
	}
	if s := in.MustLookup(a); s != "std::vector<int>" {
		t.Fatalf("MustLookup = %q", s)
	}
}

func TestInternerFind(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Find("int"); ok {
		t.Fatal("Find must not intern")
	}
	id := in.Intern("int")
	got, ok := in.Find("int")
	if !ok || got != id {
		t.Fatalf("Find = %d,%v want %d,true", got, ok, id)
	}
	if in.Len() != 2 {
		t.Fatalf("Len = %d, want 2", in.Len())
	}
}

func TestInternerLookupUnknown(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(StringID(42)); ok {
		t.Fatal("unknown id resolved")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("MustLookup on unknown id must panic")
		}
	}()
	in.MustLookup(StringID(42))
}

func TestLocationString(t *testing.T) {
	cases := []struct {
		loc  Location
		want string
	}{
		{Location{}, "<unknown>"},
		{Location{File: "a.hpp"}, "a.hpp"},
		{Location{File: "a.hpp", Line: 3}, "a.hpp:3"},
		{Location{File: "inc/a.hpp", Line: 3, Col: 7}, "inc/a.hpp:3:7"},
	}
	for _, tc := range cases {
		if got := tc.loc.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.loc, got, tc.want)
		}
	}
	if got := (Location{File: "inc/a.hpp", Line: 1}).Base().File; got != "a.hpp" {
		t.Errorf("Base = %q", got)
	}
	if !(Location{File: "a", Line: 1}).Less(Location{File: "a", Line: 2}) {
		t.Error("Less by line")
	}
}
