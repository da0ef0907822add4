package envutil

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", 3 * time.Second},
		{"15", 15 * time.Second},
		{"250ms", 250 * time.Millisecond},
		{"garbage", 3 * time.Second},
	}
	for _, tc := range cases {
		t.Setenv("CAS_TEST_DURATION", tc.raw)
		if got := Duration("CAS_TEST_DURATION", 3*time.Second); got != tc.want {
			t.Fatalf("raw=%q got=%s want=%s", tc.raw, got, tc.want)
		}
	}
}

func TestBool(t *testing.T) {
	t.Setenv("CAS_TEST_BOOL", "")
	if !Bool("CAS_TEST_BOOL", true) {
		t.Fatalf("unset should return default")
	}
	t.Setenv("CAS_TEST_BOOL", "yes")
	if !Bool("CAS_TEST_BOOL", false) {
		t.Fatalf("yes should be true")
	}
	t.Setenv("CAS_TEST_BOOL", "nope")
	if Bool("CAS_TEST_BOOL", true) {
		t.Fatalf("unrecognized value should be false")
	}
}

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("CAS_TEST_INT", "x1")
	if got := Int("CAS_TEST_INT", 7); got != 7 {
		t.Fatalf("got=%d", got)
	}
}
