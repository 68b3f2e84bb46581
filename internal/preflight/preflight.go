package preflight

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"eccdeploy/internal/stage"
)

// Access modes a directory check can require.
type Access int

const (
	Read Access = 1 << iota
	Write
)

// RunAll checks that baseDir accepts the archive and packageRoot can be read.
func RunAll(baseDir, packageRoot string) []stage.Health {
	return []stage.Health{
		CheckDirectoryAccess("Base directory", baseDir, Read|Write),
		CheckDirectoryAccess("Package root", packageRoot, Read),
	}
}

// FirstFailure returns an error describing the first failed result, or nil.
func FirstFailure(results []stage.Health) error {
	for _, r := range results {
		if !r.Ready {
			return fmt.Errorf("%s: %s", strings.ToLower(r.Name), r.Detail)
		}
	}
	return nil
}

// CheckDirectoryAccess verifies that the directory exists and grants the
// requested access.
func CheckDirectoryAccess(name, path string, access Access) stage.Health {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return stage.Health{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return stage.Health{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return stage.Health{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path, access); err != nil {
		return stage.Health{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	label := "read ok"
	if access&Write != 0 {
		label = "read/write ok"
	}
	return stage.Health{Name: name, Ready: true, Detail: fmt.Sprintf("%s (%s)", path, label)}
}
