package util

import (
	"os"
	"path/filepath"
)

// RelativePath resolves name against the current working directory unless it
// is already absolute.
func RelativePath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}

	wd, err := os.Getwd()
	if err != nil {
		return name
	}
	return filepath.Join(wd, name)
}

// Exists reports whether a file or directory exists at name.
func Exists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// EnsureDir creates the parent directory of file if it does not exist yet.
func EnsureDir(file string) error {
	dir := filepath.Dir(file)
	if dir == "" || dir == "." || Exists(dir) {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
