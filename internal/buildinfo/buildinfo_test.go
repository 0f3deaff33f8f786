package buildinfo

import "testing"

func TestString(t *testing.T) {
	if got := String(); got != "demo dev (commit=none, date=unknown)" {
		t.Fatalf("unexpected build info %q", got)
	}
}
