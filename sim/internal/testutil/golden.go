// Package testutil provides shared test infrastructure for the slitsim core.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and its sub-package tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one slit geometry with reference intensities computed
// independently of the Go implementation.
type GoldenTestCase struct {
	Name           string         `json:"name"`
	Wavelength     float64        `json:"wavelength"`
	SlitSeparation float64        `json:"slit_separation"`
	SlitWidth      float64        `json:"slit_width"`
	ScreenDistance float64        `json:"screen_distance"`
	FringeSpacing  float64        `json:"fringe_spacing"`
	Samples        []GoldenSample `json:"samples"`
}

// GoldenSample is a reference intensity at one screen position.
type GoldenSample struct {
	Z         float64 `json:"z"`
	Intensity float64 `json:"intensity"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertFloat64Near passes when the values differ by at most absTol, and
// otherwise falls back to a relative comparison. Use it for quantities that
// legitimately approach zero, such as intensity at a fringe minimum.
func AssertFloat64Near(t *testing.T, name string, want, got, absTol, relTol float64) {
	t.Helper()
	if math.Abs(want-got) <= absTol {
		return
	}
	AssertFloat64Equal(t, name, want, got, relTol)
}
