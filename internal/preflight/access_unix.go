//go:build unix

package preflight

import "golang.org/x/sys/unix"

func checkAccess(path string, access Access) error {
	mode := uint32(unix.X_OK)
	if access&Read != 0 {
		mode |= unix.R_OK
	}
	if access&Write != 0 {
		mode |= unix.W_OK
	}
	return unix.Access(path, mode)
}
