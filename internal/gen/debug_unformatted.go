package gen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// sidecarName keeps a .go suffix for syntax highlighting without colliding
// with the real output.
func sidecarName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}

// writeDebugUnformatted writes code that go/format rejected next to the
// intended output. It is best-effort and never fails generation on its own.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	_, _, err := WriteFile(&GeneratedFile{
		Filename: sidecarName(filename),
		Content:  content,
	}, outDir)

	return err
}

// removeDebugUnformatted deletes the sidecar left by an earlier failed run.
func removeDebugUnformatted(outDir, filename string) error {
	if outDir == "" || filename == "" {
		return nil
	}

	err := os.Remove(filepath.Join(outDir, sidecarName(filename)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}
