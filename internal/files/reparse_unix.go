//go:build !windows

package files

// Reparse points only exist on Windows; symlinks are caught by Lstat.
func isReparsePoint(string) (bool, error) {
	return false, nil
}
