package semver

import "testing"

func TestCheckCaretAndTilde(t *testing.T) {
	cases := []struct {
		constraint string
		version    string
		want       bool
	}{
		{"^2.0.0", "1.0.0", false},
		{"^1.0.0", "1.4.2", true},
		{"~1.2.0", "1.3.0", false},
		{"~1.2.0", "1.2.9", true},
		{"1.2.3", "1.2.3", true},
		{"1.2.3", "1.2.4", false},
		{"", "0.0.1", true},
		{"*", "9.9.9", true},
	}
	for _, tc := range cases {
		got, err := Check(tc.constraint, tc.version)
		if err != nil {
			t.Fatalf("Check(%q, %q) error: %v", tc.constraint, tc.version, err)
		}
		if got != tc.want {
			t.Errorf("Check(%q, %q) = %v, want %v", tc.constraint, tc.version, got, tc.want)
		}
	}
}

func TestCheckInvalidInput(t *testing.T) {
	if _, err := Check("^^", "1.0.0"); err == nil {
		t.Error("expected error for invalid constraint")
	}
	if _, err := Check("^1.0.0", "not-a-version"); err == nil {
		t.Error("expected error for invalid version")
	}
}

func TestCompare(t *testing.T) {
	a := MustParseVersion("1.2.3")
	b := MustParseVersion("1.10.0")
	if Compare(a, b) != -1 {
		t.Error("1.2.3 should sort below 1.10.0")
	}
	if Compare(b, a) != 1 {
		t.Error("1.10.0 should sort above 1.2.3")
	}
	if Compare(a, MustParseVersion("1.2.3")) != 0 {
		t.Error("equal versions should compare equal")
	}
}

func TestMaxSatisfying(t *testing.T) {
	c, err := ParseConstraint("^1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	candidates := []Version{
		MustParseVersion("0.9.0"),
		MustParseVersion("1.4.2"),
		MustParseVersion("1.2.0"),
		MustParseVersion("2.0.0"),
	}
	best, ok := MaxSatisfying(c, candidates)
	if !ok {
		t.Fatal("expected a satisfying version")
	}
	if Compare(best, MustParseVersion("1.4.2")) != 0 {
		t.Errorf("MaxSatisfying picked the wrong version")
	}

	none, err := ParseConstraint("^3.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := MaxSatisfying(none, candidates); ok {
		t.Error("expected no satisfying version for ^3.0.0")
	}
}
