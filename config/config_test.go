package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create a temporary directory with a zerus.toml
	dir := t.TempDir()
	tomlContent := `
[server]
listen = ":9000"
grpc-listen = ":9001"

[catalog]
driver = "duckdb"
path = "data/catalog.db"

[log]
verbosity = 2
`
	if err := os.WriteFile(filepath.Join(dir, "zerus.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Server.Listen != ":9000" {
		t.Errorf("server listen = %q, want :9000", c.Server.Listen)
	}
	if c.Server.GRPCListen != ":9001" {
		t.Errorf("server grpc-listen = %q, want :9001", c.Server.GRPCListen)
	}
	if c.Catalog.Driver != "duckdb" {
		t.Errorf("catalog driver = %q, want duckdb", c.Catalog.Driver)
	}
	if c.Catalog.Path != "data/catalog.db" {
		t.Errorf("catalog path = %q, want data/catalog.db", c.Catalog.Path)
	}
	if c.Log.Verbosity != 2 {
		t.Errorf("log verbosity = %d, want 2", c.Log.Verbosity)
	}
	if c.Dir == "" {
		t.Error("Dir not set at load time")
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "zerus.toml"), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Server.Listen != ":4567" {
		t.Errorf("default listen = %q, want :4567", c.Server.Listen)
	}
	if c.Catalog.Driver != "sqlite" {
		t.Errorf("default driver = %q, want sqlite", c.Catalog.Driver)
	}
	if c.Catalog.Path != filepath.Join(".zerus", "catalog.db") {
		t.Errorf("default path = %q, want .zerus/catalog.db", c.Catalog.Path)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"bad driver", "[catalog]\ndriver = \"postgres\"\n"},
		{"bad listen", "[server]\nlisten = \"no-port\"\n"},
		{"verbosity too high", "[log]\nverbosity = 9\n"},
		{"negative verbosity", "[log]\nverbosity = -1\n"},
	}

	for _, tc := range tests {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "zerus.toml"), []byte(tc.toml), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(dir); err == nil {
			t.Errorf("%s: Load succeeded, want validation error", tc.name)
		}
	}
}

func TestFindAndLoad(t *testing.T) {
	// Should find the config when starting from a deep subdirectory
	dir := t.TempDir()
	subDir := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}

	tomlContent := `[server]
listen = ":7000"
`
	if err := os.WriteFile(filepath.Join(dir, "zerus.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := FindAndLoad(subDir)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if c == nil {
		t.Fatal("FindAndLoad returned nil")
	}
	if c.Server.Listen != ":7000" {
		t.Errorf("server listen = %q, want :7000", c.Server.Listen)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	c, err := FindAndLoad(dir)
	if err != nil {
		t.Fatalf("FindAndLoad error: %v", err)
	}
	if c != nil {
		t.Error("expected nil config when no zerus.toml exists")
	}
}

func TestDefaultValidates(t *testing.T) {
	c := Default("/tmp")
	if err := c.Validate(); err != nil {
		t.Errorf("Default config failed validation: %v", err)
	}
}

func TestCatalogPath(t *testing.T) {
	c := &Config{
		Dir:     "/app",
		Catalog: Catalog{Path: filepath.Join("data", "catalog.db")},
	}
	if got, want := c.CatalogPath(), filepath.Join("/app", "data", "catalog.db"); got != want {
		t.Errorf("CatalogPath() = %q, want %q", got, want)
	}

	c.Catalog.Path = "/var/lib/zerus/catalog.db"
	if got := c.CatalogPath(); got != "/var/lib/zerus/catalog.db" {
		t.Errorf("CatalogPath() = %q, want absolute path untouched", got)
	}
}
