package utils

import (
	"errors"
	"fmt"
	"os"
)

// ErrIsDirectory is returned by StatFile for paths naming a directory.
var ErrIsDirectory = errors.New("is a directory")

// StatFile returns the info of the file at filePath. Stat failures are
// returned unchanged, so a missing file matches fs.ErrNotExist.
func StatFile(filePath string) (os.FileInfo, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", filePath, ErrIsDirectory)
	}

	return info, nil
}

// IsDirectory tests whether given path exists and is a directory
func IsDirectory(dirPath string) bool {
	dir, err := os.Stat(dirPath)
	if err != nil {
		return false
	}

	return dir.IsDir()
}
