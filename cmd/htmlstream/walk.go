package main

import (
	"os"
	"path/filepath"
	"strings"
)

// discoverHTMLFiles resolves path to a list of files to parse: path
// itself if it names a file, or every .html/.htm file found under it
// if it names a directory. File discovery is an external collaborator
// of the core library, not part of its parsing surface.
func discoverHTMLFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".html", ".htm":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
