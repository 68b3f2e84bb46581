package archive

import (
	"context"
	_ "crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/opencontainers/go-digest"
	"golang.org/x/text/unicode/norm"

	"eccdeploy/internal/stage"
)

// CompressionLevel is the deflate level used for every entry.
const CompressionLevel = flate.BestCompression

const (
	fileMode    fs.FileMode = 0o644
	exeFileMode fs.FileMode = 0o755
	dirMode     fs.FileMode = 0o755

	lockRetryDelay = 100 * time.Millisecond
)

// entryTime is stamped on every entry; it is the earliest time the zip DOS
// date format can express.
var entryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Result describes a written archive.
type Result struct {
	Path    string
	Size    int64
	Digest  digest.Digest
	Entries []string
}

// writeCounter is an implementation of io.Writer
// that only records the number of bytes written.
type writeCounter struct {
	written int64
}

func (wc *writeCounter) Write(p []byte) (int, error) {
	wc.written += int64(len(p))
	return len(p), nil
}

// Zip archives the contents of sourceDir into dest, replacing any existing
// file. The sourceDir name itself is not part of the stored paths. Symlinks and
// other non-regular files are skipped. A dest inside sourceDir is excluded from
// the walk.
func Zip(ctx context.Context, sourceDir, dest string) (res Result, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fail := func(op string, cause error) (Result, error) {
		return Result{}, stage.Wrap(stage.ErrArchive, stage.Archive, op, dest, cause)
	}

	srcAbs, err := filepath.Abs(sourceDir)
	if err != nil {
		return fail("resolve source", err)
	}
	if info, statErr := os.Stat(srcAbs); statErr != nil {
		return fail("stat source", statErr)
	} else if !info.IsDir() {
		return fail("stat source", fmt.Errorf("%s is not a directory", sourceDir))
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return fail("resolve destination", err)
	}

	lockPath := destAbs + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fail("lock destination", err)
	}
	if !locked {
		return fail("lock destination", errors.New("destination is locked by another run"))
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	tmp, err := os.CreateTemp(filepath.Dir(destAbs), "."+filepath.Base(destAbs)+".tmp-*")
	if err != nil {
		return fail("create temp file", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	skip := map[string]struct{}{destAbs: {}, tmpName: {}, lockPath: {}}

	digester := digest.Canonical.Digester()
	counter := &writeCounter{}
	zw := zip.NewWriter(io.MultiWriter(tmp, digester.Hash(), counter))
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, CompressionLevel)
	})

	entries, walkErr := writeTree(ctx, zw, srcAbs, skip)
	if walkErr != nil {
		_ = zw.Close()
		_ = tmp.Close()
		return fail("write", walkErr)
	}
	if err = zw.Close(); err != nil {
		_ = tmp.Close()
		return fail("finalize", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fail("sync", err)
	}
	if err = tmp.Close(); err != nil {
		return fail("close", err)
	}
	if err = os.Chmod(tmpName, fileMode); err != nil {
		return fail("chmod", err)
	}
	if err = os.Rename(tmpName, destAbs); err != nil {
		return fail("rename", err)
	}

	return Result{
		Path:    destAbs,
		Size:    counter.written,
		Digest:  digester.Digest(),
		Entries: entries,
	}, nil
}

func writeTree(ctx context.Context, zw *zip.Writer, root string, skip map[string]struct{}) ([]string, error) {
	var entries []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == root {
			return nil
		}
		if _, ok := skip[p]; ok {
			return nil
		}

		// Ignore anything that is not a file or directory e.g. symlinks
		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := entryName(rel)

		if d.IsDir() {
			header := &zip.FileHeader{Name: name + "/", Method: zip.Store, Modified: entryTime}
			header.SetMode(fs.ModeDir | dirMode)
			if _, err := zw.CreateHeader(header); err != nil {
				return err
			}
			entries = append(entries, header.Name)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		header := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: entryTime}
		header.SetMode(sanitizeMode(info.Mode()))
		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		if err := copyFile(w, p); err != nil {
			return err
		}
		entries = append(entries, name)
		return nil
	})
	return entries, err
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// entryName converts a relative OS path into a zip entry name.
func entryName(rel string) string {
	name := filepath.ToSlash(rel)
	name = strings.TrimPrefix(name, "./")
	return norm.NFC.String(name)
}

// sanitizeMode drops owner-specific bits, keeping only whether the file is
// executable.
func sanitizeMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm()&0o111 != 0 {
		return exeFileMode
	}
	return fileMode
}

// List returns the entry names of the zip at path in stored order.
func List(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}
