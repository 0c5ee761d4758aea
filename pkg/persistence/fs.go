package persistence

import (
	"os"

	"github.com/voxelstream/voxelstream/pkg/external"
)

// OSFileSystem implements external.FileSystem against the real
// filesystem.
type OSFileSystem struct{}

var _ external.FileSystem = OSFileSystem{}

// MkdirAll creates path and any missing parents; recursive and idempotent.
func (OSFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Exists reports whether path refers to an existing file.
func (OSFileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ReadFile reads the entire contents of path.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path, creating or truncating it.
func (OSFileSystem) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
