package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrFilesystem wraps local read/write failures for the working files.
var ErrFilesystem = errors.New("filesystem error")

// WriteCSV serializes records to path in the training file format:
// one comma-separated line per record, target value first, then the 13
// features in schema order, no header. The parent directory is created
// if absent. An empty record set produces an empty file.
func WriteCSV(records []Record, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrFilesystem, filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrFilesystem, path, err)
	}

	w := bufio.NewWriter(f)
	for _, rec := range records {
		if _, err := w.WriteString(formatRow(rec) + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("%w: writing %s: %w", ErrFilesystem, path, err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing %s: %w", ErrFilesystem, path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrFilesystem, path, err)
	}

	return nil
}

// ReadCSV parses a file written by WriteCSV back into records.
func ReadCSV(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrFilesystem, path, err)
	}
	return ParseRows(string(data))
}

// ParseRows parses target-first CSV content into records.
func ParseRows(content string) ([]Record, error) {
	var records []Record

	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != NumFeatures+1 {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", i+1, NumFeatures+1, len(fields))
		}

		var rec Record
		target, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d target: %w", i+1, err)
		}
		rec.Target = target

		for j := 0; j < NumFeatures; j++ {
			v, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d field %d: %w", i+1, j+2, err)
			}
			rec.Features[j] = v
		}

		records = append(records, rec)
	}

	return records, nil
}

func formatRow(rec Record) string {
	fields := make([]string, 0, NumFeatures+1)
	fields = append(fields, formatFloat(rec.Target))
	for _, v := range rec.Features {
		fields = append(fields, formatFloat(v))
	}
	return strings.Join(fields, ",")
}

// FormatFeatureRow serializes one feature vector as a CSV line without
// the target, the payload format inference endpoints accept.
func FormatFeatureRow(features []float64) string {
	fields := make([]string, len(features))
	for i, v := range features {
		fields[i] = formatFloat(v)
	}
	return strings.Join(fields, ",")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
