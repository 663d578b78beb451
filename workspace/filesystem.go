package workspace

import (
	"os"
	"path/filepath"
)

// File permission constants
const (
	DirPermission  = 0o755
	FilePermission = 0o644
)

// FileSystem defines the file system operations a Workspace performs
type FileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(filename string, data []byte, perm os.FileMode) error
	ReadDir(name string) ([]os.DirEntry, error)
}

// RealFileSystem implements FileSystem using actual file system operations
type RealFileSystem struct{}

func (RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFile writes data to a temporary file next to filename and renames it
// into place. An existing entry at filename, including a symlink, is replaced
// rather than written through.
func (RealFileSystem) WriteFile(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, perm)
	}
	if err == nil {
		err = os.Rename(tmpName, filename)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func (RealFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

var _ FileSystem = RealFileSystem{}
