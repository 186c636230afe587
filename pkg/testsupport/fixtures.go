package testsupport

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// DefaultTolerance is the absolute tolerance used by the numeric helpers when
// the caller does not supply one. Model outputs are pinned against reference
// values computed at double precision, so a tight default keeps regressions
// visible without tripping on rounding noise.
const DefaultTolerance = 1e-6

// Approx returns cmp options that treat floats within tol of each other as
// equal and NaNs as equal to one another.
func Approx(tol float64) []cmp.Option {
	return []cmp.Option{
		cmpopts.EquateApprox(0, tol),
		cmpopts.EquateNaNs(),
	}
}

// DiffFloats compares two float slices with the given absolute tolerance and
// returns a human-readable diff, empty when they match.
func DiffFloats(want, got []float64, tol float64) string {
	return cmp.Diff(want, got, Approx(tol)...)
}

// AlmostEqual reports whether a and b agree within tol, treating two NaNs as
// equal.
func AlmostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Abs(a-b) <= tol
}

// AssertAlmostEqual fails the test when got is not within tol of want.
func AssertAlmostEqual(t *testing.T, name string, want, got, tol float64) {
	t.Helper()
	if !AlmostEqual(want, got, tol) {
		t.Fatalf("%s: want %v, got %v (tolerance %v)", name, want, got, tol)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// WriteGolden writes arbitrary data as indented JSON to a golden file when
// UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
