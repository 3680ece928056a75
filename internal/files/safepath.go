package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FreeBaseName returns a base name whose <dir>/<base><ext> does not exist yet,
// appending _1.._9, then a UUID suffix. changed reports whether base was taken.
func FreeBaseName(dir, base, ext string) (string, bool, error) {
	if base == "" {
		return "", false, fmt.Errorf("base name is empty")
	}
	taken, err := exists(filepath.Join(dir, base+ext))
	if err != nil || !taken {
		return base, false, err
	}

	for i := 1; i <= 9; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		taken, err := exists(filepath.Join(dir, candidate+ext))
		if err != nil {
			return "", false, err
		}
		if !taken {
			return candidate, true, nil
		}
	}

	// Hyphens survive SanitizeBaseName, so the suffix reaches disk unchanged.
	suffix := uuid.NewString()[:8]
	if u, err := uuid.NewV7(); err == nil {
		suffix = u.String()
	}
	return base + "_" + suffix, true, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
