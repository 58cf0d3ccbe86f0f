package audio

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// resolveScriptPath maps a script-authored path onto the host filesystem
// below root. Scripts always author forward-slash paths relative to the
// sound/music roots, whatever the host separator is; this normalization is
// a hard contract of the script surface, not a convenience
func resolveScriptPath(root, name string) (string, error) {
	if name == "" {
		return "", errors.New("empty path")
	}
	cleaned := path.Clean(name)
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("path %q escapes the asset root", name)
	}
	return filepath.Join(root, filepath.FromSlash(cleaned)), nil
}
