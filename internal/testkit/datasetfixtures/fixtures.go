// Package datasetfixtures embeds small real extracts of the example datasets
// for tests that must not touch the network.
package datasetfixtures

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.csv
var files embed.FS

// Names lists the embedded datasets.
var Names = []string{"tips", "iris", "titanic", "flights"}

// FS returns the fixture files as <name>.csv at the root.
func FS() fs.FS {
	return files
}

// Bytes returns the CSV content of one fixture.
func Bytes(name string) []byte {
	data, err := files.ReadFile(name + ".csv")
	if err != nil {
		panic(fmt.Sprintf("dataset fixture %s: %v", name, err))
	}
	return data
}

// WriteDir copies every fixture into dir.
func WriteDir(dir string) error {
	for _, name := range Names {
		if err := os.WriteFile(filepath.Join(dir, name+".csv"), Bytes(name), 0o644); err != nil {
			return fmt.Errorf("write fixture %s: %w", name, err)
		}
	}
	return nil
}
