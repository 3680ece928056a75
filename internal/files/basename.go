package files

import (
	"fmt"
	"regexp"
	"strings"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// ValidateBaseName rejects output names that would escape the output
// directory. An empty name is valid and means "use the default".
func ValidateBaseName(name string) error {
	if name == "" {
		return nil
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("file name %q must not contain path separators or \"..\"", name)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("file name contains a NUL byte")
	}
	return nil
}

// SanitizeBaseName mirrors the generator's own cleanup: anything outside
// [a-zA-Z0-9_-] becomes an underscore. Used to predict the artifact name.
func SanitizeBaseName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}
