package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gruppe-adler/flowplot/internal/dem"
	"github.com/gruppe-adler/flowplot/internal/utils"
)

// GridFiles validates that every given path is an existing grid file.
// Missing paths are dem.ErrFileNotFound, any other failure is dem.ErrIO.
func GridFiles(paths ...string) error {
	for _, path := range paths {
		_, err := utils.StatFile(path)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("%w: %s", dem.ErrFileNotFound, path)
		default:
			return fmt.Errorf("%w: %v", dem.ErrIO, err)
		}
	}

	return nil
}

// OutputFile validates that the directory of given output path exists and
// that the path itself is no directory
func OutputFile(outPath string) error {
	dir := filepath.Dir(outPath)
	if !utils.IsDirectory(dir) {
		return fmt.Errorf("output directory %s does not exist", dir)
	}

	if utils.IsDirectory(outPath) {
		return fmt.Errorf("output path %s is a directory", outPath)
	}

	return nil
}
