package fu

import (
	"os"
	"path/filepath"
)

/*
ResultPath resolves a result file name. Absolute paths are kept as is,
relative names go to dir or, if dir is empty, to the user cache directory.
*/
func ResultPath(dir, s string) string {
	if filepath.IsAbs(s) {
		return s
	}
	if dir != "" {
		return filepath.Join(dir, s)
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		cache = os.TempDir()
	}
	return filepath.Join(cache, "go-ml", "Results", s)
}

/*
EnsureDir creates directory of the file path if it does not exist
*/
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
