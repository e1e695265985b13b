package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.log", "b.log", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ExpandGlobs([]string{filepath.Join(dir, "*.log")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	want := []string{filepath.Join(dir, "a.log"), filepath.Join(dir, "b.log")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandGlobs() = %v, want %v", got, want)
	}
}

func TestExpandGlobs_PreservesArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.log", "b.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	b := filepath.Join(dir, "b.log")
	a := filepath.Join(dir, "a.log")

	got, err := ExpandGlobs([]string{b, a, b})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	want := []string{b, a}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandGlobs() = %v, want %v (argument order, deduplicated)", got, want)
	}
}

func TestExpandGlobs_MissingLogIsError(t *testing.T) {
	if _, err := ExpandGlobs([]string{"/nonexistent/build.log"}); err == nil {
		t.Error("ExpandGlobs() expected error for missing build log")
	}
}

func TestExpandGlobs_InvalidPattern(t *testing.T) {
	if _, err := ExpandGlobs([]string{"[unclosed"}); err == nil {
		t.Error("ExpandGlobs() expected error for invalid glob pattern")
	}
}
