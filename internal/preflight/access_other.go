//go:build !unix

package preflight

import (
	"errors"
	"io"
	"os"
)

// checkAccess tests access by doing: list for read, create and remove a temp file
// for write.
func checkAccess(path string, access Access) error {
	if access&Read != 0 {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = f.Readdirnames(1)
		f.Close()
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	if access&Write != 0 {
		f, err := os.CreateTemp(path, ".eccdeploy-access-*")
		if err != nil {
			return err
		}
		name := f.Name()
		f.Close()
		return os.Remove(name)
	}
	return nil
}
