package version

import (
	"strings"
	"testing"
)

func TestSemverParsesNumber(t *testing.T) {
	orig := Number
	defer func() { Number = orig }()

	Number = "1.2.3-rc.1"
	v := Semver()
	if v.Major() != 1 || v.Minor() != 2 || v.Patch() != 3 || v.Prerelease() != "rc.1" {
		t.Fatalf("Semver() = %s", v)
	}
	Number = "not a version"
	if got := Semver().String(); got != "0.0.0" {
		t.Fatalf("fallback = %s", got)
	}
}

func TestColoredKeepsParts(t *testing.T) {
	orig := Number
	defer func() { Number = orig }()

	Number = "0.4.2-dev"
	got := Colored()
	for _, part := range []string{"4", "2", "-dev"} {
		if !strings.Contains(got, part) {
			t.Fatalf("Colored() = %q lacks %q", got, part)
		}
	}
}

func TestSatisfies(t *testing.T) {
	orig := Number
	defer func() { Number = orig }()

	Number = "0.3.0-dev"
	tests := []struct {
		constraint string
		want       bool
	}{
		{">=0.1.0", true},
		{"^0.3", true},
		{">=0.4.0", false},
		{"< 0.3.0", false},
	}
	for _, tt := range tests {
		got, err := Satisfies(tt.constraint)
		if err != nil {
			t.Fatalf("Satisfies(%q): %v", tt.constraint, err)
		}
		if got != tt.want {
			t.Fatalf("Satisfies(%q) = %v, want %v", tt.constraint, got, tt.want)
		}
	}
	if _, err := Satisfies("not a constraint"); err == nil {
		t.Fatalf("bad constraint accepted")
	}
}
