package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sourceCSV(n int) string {
	var b strings.Builder
	b.WriteString("crim,zn,indus,chas,nox,rm,age,dis,rad,tax,ptratio,b,lstat,medv\n")
	for i := 0; i < n; i++ {
		for j := 0; j < NumFeatures; j++ {
			fmt.Fprintf(&b, "%d,", i*NumFeatures+j)
		}
		fmt.Fprintf(&b, "%d\n", i)
	}
	return b.String()
}

func TestFetchDownloadsAndParses(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, sourceCSV(10))
	}))
	defer ts.Close()

	cacheDir := t.TempDir()
	records, err := Fetch(context.Background(), ts.URL, cacheDir)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 10 {
		t.Errorf("expected 10 records, got %d", len(records))
	}
	if records[0].Target != 0 || records[9].Target != 9 {
		t.Errorf("targets parsed wrong: first=%g last=%g", records[0].Target, records[9].Target)
	}
	if hits != 1 {
		t.Errorf("expected 1 download, got %d", hits)
	}

	// Second fetch must come from the cache.
	records, err = Fetch(context.Background(), ts.URL, cacheDir)
	if err != nil {
		t.Fatalf("cached fetch failed: %v", err)
	}
	if len(records) != 10 {
		t.Errorf("expected 10 cached records, got %d", len(records))
	}
	if hits != 1 {
		t.Errorf("cache miss: server hit %d times", hits)
	}
}

func TestFetchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.URL, t.TempDir())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestFetchUnreachableHost(t *testing.T) {
	_, err := Fetch(context.Background(), "http://127.0.0.1:1/boston.csv", t.TempDir())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestFetchMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "a,b,c\n1,2,3\n")
	}))
	defer ts.Close()

	_, err := Fetch(context.Background(), ts.URL, t.TempDir())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestFetchUsesExistingCache(t *testing.T) {
	cacheDir := t.TempDir()
	path := filepath.Join(cacheDir, "boston_housing.csv")
	if err := os.WriteFile(path, []byte(sourceCSV(4)), 0o644); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	// URL points nowhere; the cache must make it irrelevant.
	records, err := Fetch(context.Background(), "http://127.0.0.1:1/unused", cacheDir)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(records) != 4 {
		t.Errorf("expected 4 records, got %d", len(records))
	}
}

func TestParseSourceWithoutHeader(t *testing.T) {
	content := strings.Join(strings.Split(sourceCSV(3), "\n")[1:], "\n")

	records, err := parseSource(content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
}

func TestParseSourceEmpty(t *testing.T) {
	if _, err := parseSource(""); err == nil {
		t.Error("expected error for empty content")
	}
	if _, err := parseSource("crim,zn,indus,chas,nox,rm,age,dis,rad,tax,ptratio,b,lstat,medv\n"); err == nil {
		t.Error("expected error for header-only content")
	}
}
