package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", p, err)
	}
	return p
}

func TestLoadSearchesRootsByPriority(t *testing.T) {
	low, high := t.TempDir(), t.TempDir()
	writeFile(t, low, "world.geojson", "low")
	writeFile(t, high, "world.geojson", "high")
	writeFile(t, low, "only-low.tif", "base")

	m := NewManager(low)
	if err := m.AddRoot(high); err != nil {
		t.Fatalf("AddRoot failed: %v", err)
	}

	data, err := m.Load("world.geojson")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "high" {
		t.Errorf("Load() = %q, want the last added root to win", data)
	}

	data, err = m.Load("only-low.tif")
	if err != nil {
		t.Fatalf("Load(only-low) failed: %v", err)
	}
	if string(data) != "base" {
		t.Errorf("Load(only-low) = %q", data)
	}
}

func TestLoadCaches(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.png", "first")

	m := NewManager(dir)
	if _, err := m.Load("a.png"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// A changed file is still served from cache.
	if err := os.WriteFile(p, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := m.Load("a.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("Load() = %q, want cached content", data)
	}

	hits, misses := m.Cache().Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses, want 1, 1", hits, misses)
	}

	m.Close()
	if m.Cache().Len() != 0 {
		t.Error("Close did not clear the cache")
	}
}

func TestLoadAbsolutePath(t *testing.T) {
	p := writeFile(t, t.TempDir(), "abs.json", "{}")

	m := NewManager()
	data, err := m.Load(p)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", p, err)
	}
	if string(data) != "{}" {
		t.Errorf("Load() = %q", data)
	}
}

func TestLoadNotFound(t *testing.T) {
	m := NewManager(t.TempDir())
	if _, err := m.Load("missing.tif"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := m.Load(filepath.Join(t.TempDir(), "missing.tif")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(absolute missing) error = %v, want ErrNotFound", err)
	}
}

func TestAddRootRejectsFiles(t *testing.T) {
	p := writeFile(t, t.TempDir(), "file.txt", "x")

	m := NewManager()
	if err := m.AddRoot(p); err == nil {
		t.Error("AddRoot(file) should fail")
	}
	if err := m.AddRoot(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("AddRoot(missing) should fail")
	}
	if len(m.Roots()) != 0 {
		t.Errorf("Roots() = %v, want none", m.Roots())
	}
}

func TestCacheStats(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() should miss on empty cache")
	}
	c.Set("key", []byte("value"))
	data, ok := c.Get("key")
	if !ok || string(data) != "value" {
		t.Errorf("Get() = %q, %v", data, ok)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d, %d, want 1, 1", hits, misses)
	}

	c.Clear()
	hits, misses = c.Stats()
	if hits != 0 || misses != 0 || c.Len() != 0 {
		t.Error("Clear() should reset data and stats")
	}
}
