package server

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"syscall"
)

// publicFile resolves a request path to a regular file in dir. Paths are
// cleaned as rooted paths first, so ".." segments can't leave dir.
func publicFile(dir, urlPath string) (string, bool, error) {
	rel := path.Clean("/" + urlPath)
	if rel == "/" {
		return "", false, nil
	}

	full := filepath.Join(dir, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, syscall.ENOTDIR) {
			return "", false, nil
		}
		return "", false, err
	}
	if !info.Mode().IsRegular() {
		return "", false, nil
	}
	return full, true, nil
}
