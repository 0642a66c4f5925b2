package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrUnavailable wraps every failure to fetch or parse the source dataset.
var ErrUnavailable = errors.New("dataset unavailable")

const cacheFileName = "boston_housing.csv"

// Fetch loads the housing dataset from url, keeping a cached copy under
// cacheDir. When the cache file exists the network is never touched.
// The source CSV carries a header line and the target as its last column.
func Fetch(ctx context.Context, url string, cacheDir string) ([]Record, error) {
	cachePath := filepath.Join(cacheDir, cacheFileName)

	if data, err := os.ReadFile(cachePath); err == nil {
		records, err := parseSource(string(data))
		if err != nil {
			return nil, fmt.Errorf("%w: cached copy at %s: %w", ErrUnavailable, cachePath, err)
		}
		return records, nil
	}

	data, err := download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	records, err := parseSource(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	// Cache failures are not fatal; the data is already in memory.
	if err := os.MkdirAll(cacheDir, 0o755); err == nil {
		_ = os.WriteFile(cachePath, data, 0o644)
	}

	return records, nil
}

func download(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{Timeout: 60 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// parseSource parses the source CSV: optional header line, 13 feature
// columns followed by the target column.
func parseSource(content string) ([]Record, error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var records []Record
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != NumFeatures+1 {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", i+1, NumFeatures+1, len(fields))
		}

		// Skip the header line, recognized by a non-numeric first field.
		if _, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64); err != nil && i == 0 {
			continue
		}

		var rec Record
		for j := 0; j < NumFeatures; j++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[j]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d field %d: %w", i+1, j+1, err)
			}
			rec.Features[j] = v
		}

		target, err := strconv.ParseFloat(strings.TrimSpace(fields[NumFeatures]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d target: %w", i+1, err)
		}
		rec.Target = target

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no data rows")
	}

	return records, nil
}
