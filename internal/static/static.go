// Package static embeds static files into the binary and copies them to the
// filesystem.
package static

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	filesDir = "files"

	// CatalogFile is the name of the sound catalogue.
	CatalogFile = "sounds.yml"
)

//go:embed files/*
var embeddedFiles embed.FS

// Catalog returns the embedded sound catalogue.
func Catalog() []byte {
	b, _ := embeddedFiles.ReadFile(filesDir + "/" + CatalogFile)

	return b
}

// Install copies the embedded files into dataDir. Files that already exist
// are left alone so that user edits survive upgrades.
func Install(dataDir string) error {
	return fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			b, err := embeddedFiles.ReadFile(path)
			if err != nil {
				return err
			}

			stripped := strings.TrimPrefix(path, filesDir+"/")

			destPath := filepath.Join(dataDir, filepath.FromSlash(stripped))

			_, err = os.Stat(destPath)
			if err == nil {
				return nil
			}

			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
				return err
			}

			return os.WriteFile(destPath, b, 0o644)
		},
	)
}
