package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes a generated file into dir, creating dir when missing. A
// file already holding the same content is left alone so its modification
// time survives; changed reports whether anything was written.
func WriteFile(file *GeneratedFile, dir string) (path string, changed bool, err error) {
	path = filepath.Join(dir, file.Filename)

	current, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(current, file.Content):
		return path, false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return "", false, fmt.Errorf("reading file %s: %w", file.Filename, err)
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", false, fmt.Errorf("creating output directory: %w", err)
	}

	// Rename over the old file so readers never see it half written.
	tmp, err := os.CreateTemp(dir, "."+file.Filename+".*")
	if err != nil {
		return "", false, fmt.Errorf("writing file %s: %w", file.Filename, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(file.Content); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	if err := tmp.Close(); err != nil {
		return "", false, fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", false, fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	return path, true, nil
}
