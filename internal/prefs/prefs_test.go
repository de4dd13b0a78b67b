package prefs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/vocab/internal/coalesce"
)

func TestOpen_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Open("")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	want := filepath.Join(home, ".local", "share", "vocab", "store.toml")
	if s.Path() != want {
		t.Fatalf("Path = %q, want %q", s.Path(), want)
	}
}

func TestGet_MissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "store.toml"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	v, ok, err := s.Get(context.Background(), "theme")
	if err != nil || ok || v != "" {
		t.Fatalf("Get = %q ok=%v err=%v, want absent", v, ok, err)
	}
}

func TestGet_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.toml")
	if err := os.WriteFile(path, []byte("[values]\ntheme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, _ := Open(path)
	v, ok, err := s.Get(context.Background(), "theme")
	if err != nil || !ok {
		t.Fatalf("Get returned ok=%v err=%v", ok, err)
	}
	if v != "Slate" {
		t.Fatalf("theme = %q, want %q", v, "Slate")
	}
}

func TestMultiSet_CreatesFileAndDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "store.toml")
	s, _ := Open(path)
	ctx := context.Background()

	err := s.MultiSet(ctx, []coalesce.Entry{
		{Key: "theme", Value: "Slate"},
		{Key: "note:gato", Value: "cat, feline"},
	})
	if err != nil {
		t.Fatalf("MultiSet returned error: %v", err)
	}

	reopened, _ := Open(path)
	for key, want := range map[string]string{"theme": "Slate", "note:gato": "cat, feline"} {
		got, ok, err := reopened.Get(ctx, key)
		if err != nil || !ok || got != want {
			t.Fatalf("Get(%q) = %q ok=%v err=%v, want %q", key, got, ok, err, want)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".prefs-") {
			t.Fatalf("temp file %q left behind", e.Name())
		}
	}
}

func TestSetRemoveClear(t *testing.T) {
	s, _ := Open(filepath.Join(t.TempDir(), "store.toml"))
	ctx := context.Background()

	if err := s.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set(ctx, "b", "2"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Fatal("a still present after Remove")
	}
	if v, _, _ := s.Get(ctx, "b"); v != "2" {
		t.Fatalf("b = %q, want 2", v)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "b"); ok {
		t.Fatal("b still present after Clear")
	}
}

func TestGet_InvalidTOMLReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, _ := Open(path)
	_, ok, err := s.Get(context.Background(), "theme")
	if err != nil || ok {
		t.Fatalf("Get = ok=%v err=%v, want graceful absent", ok, err)
	}
}

func TestSet_InvalidTOMLIsNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.toml")
	corrupt := []byte("not valid toml {{{\n")
	if err := os.WriteFile(path, corrupt, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, _ := Open(path)
	err := s.Set(context.Background(), "theme", "Slate")
	if err == nil || !strings.Contains(err.Error(), "parse prefs") {
		t.Fatalf("Set error = %v, want parse prefs error", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(corrupt) {
		t.Fatalf("file rewritten to %q", got)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
