// Package scanner lists the files eligible for classification.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tomastro/sortify/internal/model"
)

// Scan returns the immediate, non-directory children of targetDir in lexical
// order. Directories, hidden dotfiles, and entries named after a taxonomy
// label are excluded; the last rule keeps re-runs from touching files that
// were already sorted into category directories.
func Scan(targetDir string) ([]model.FileEntry, error) {
	entries, err := os.ReadDir(targetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read target directory %q: %w", targetDir, err)
	}

	files := make([]model.FileEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if model.IsCategoryName(name) {
			continue
		}
		files = append(files, model.NewFileEntry(filepath.Join(targetDir, name)))
	}

	return files, nil
}
