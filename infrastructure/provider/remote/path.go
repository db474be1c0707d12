package remote

import (
	"path/filepath"
	"strings"
)

// Destination joins the local directory and the forge path of a repository
// with exactly one separator, whatever separators either side carries.
func Destination(localPath, fullPath string) string {
	return filepath.Join(localPath, filepath.FromSlash(strings.Trim(fullPath, "/")))
}
