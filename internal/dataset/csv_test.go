package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	records := syntheticRecords(25)
	path := filepath.Join(t.TempDir(), "out", "train.csv")

	if err := WriteCSV(records, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}

	want := countRecords(records)
	have := countRecords(got)
	for rec, n := range want {
		if have[rec] != n {
			t.Errorf("record %v: expected %d occurrences, got %d", rec, n, have[rec])
		}
	}
}

func TestWriteCSVTargetFirstNoHeader(t *testing.T) {
	records := []Record{
		{Features: [NumFeatures]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}, Target: 24.5},
	}
	path := filepath.Join(t.TempDir(), "row.csv")

	if err := WriteCSV(records, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}

	line := strings.TrimSpace(string(data))
	if line != "24.5,1,2,3,4,5,6,7,8,9,10,11,12,13" {
		t.Errorf("unexpected line: %q", line)
	}
}

func TestWriteCSVEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := WriteCSV(nil, path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file, got %d bytes", len(data))
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
}

func TestWriteCSVCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "train.csv")

	if err := WriteCSV(syntheticRecords(3), path); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file at %s: %v", path, err)
	}
}

func TestReadCSVRejectsShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("1.0,2.0,3.0\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := ReadCSV(path); err == nil {
		t.Error("expected error for row with too few fields")
	}
}

func TestFormatFeatureRow(t *testing.T) {
	row := FormatFeatureRow([]float64{0.5, 2, 3.25})
	if row != "0.5,2,3.25" {
		t.Errorf("unexpected feature row: %q", row)
	}
}
