package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zerustech/string/catalog"
)

// ---------------------------------------------------------------------------
// zstr -export: codespace catalog export
// ---------------------------------------------------------------------------

// runExport writes the codespace reference data to a catalog database.
// The parent directory is created if needed.
func runExport(driver, path string, verbose bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}

	store, err := catalog.Open(driver, path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Populate(); err != nil {
		return err
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d planes, %d noncharacters, %d surrogate ranges to %s\n",
		stats.Planes, stats.Noncharacters, stats.SurrogateRanges, path)
	if verbose {
		fmt.Printf("Driver: %s\n", driver)
	}
	return nil
}
