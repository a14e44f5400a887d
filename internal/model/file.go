package model

import "path/filepath"

// FileEntry describes one file eligible for classification. Name holds the
// filename exactly as read from the directory, byte for byte; it is the
// identity used to match classification output back to the file.
type FileEntry struct {
	Path string
	Name string
	Ext  string
}

// NewFileEntry builds a FileEntry from an absolute or relative file path.
func NewFileEntry(path string) FileEntry {
	name := filepath.Base(path)
	return FileEntry{
		Path: path,
		Name: name,
		Ext:  filepath.Ext(name),
	}
}
