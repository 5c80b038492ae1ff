// Package batch analyzes every ASET image in a folder and writes the
// figures and the spreadsheet report to a destination folder.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	asetimage "aset-analyzer/internal/image"
)

// ErrSourceMissing is returned when the source folder does not exist.
var ErrSourceMissing = errors.New("source folder does not exist")

// analysisSuffix is appended to the stem of each figure file.
const analysisSuffix = "_analysis"

// CheckSource verifies that dir exists and is a folder.
func CheckSource(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSourceMissing, dir)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a folder", dir)
	}
	return nil
}

// Scan lists the regular files in dir whose extension is in exts, sorted by name.
func Scan(dir string, exts []string) ([]string, error) {
	if err := CheckSource(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if asetimage.HasExtension(e.Name(), exts) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// OutputName returns the figure file name for an input image: the extension
// is replaced by "_analysis.png" whatever the input format.
func OutputName(file string) string {
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + analysisSuffix + ".png"
}
