package packages

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"eccdeploy/internal/stage"
)

// Entry is one item of the package root listing.
type Entry struct {
	Name  string
	IsDir bool
}

// PackageSet is a single listing of the package root.
type PackageSet struct {
	Root    string
	Entries []Entry
}

// Packages returns the names of the subdirectories in listing order.
func (s PackageSet) Packages() []string {
	names := make([]string, 0, len(s.Entries))
	for _, entry := range s.Entries {
		if entry.IsDir {
			names = append(names, entry.Name)
		}
	}
	return names
}

// NotFoundError reports a package root that does not exist or is not a directory.
type NotFoundError struct {
	Dir string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s directory doesn't exist.", e.Dir)
}

func (e *NotFoundError) Unwrap() error { return stage.ErrNotFound }

// EmptyPackageError reports a package root without subdirectories.
type EmptyPackageError struct {
	Dir string
}

func (e *EmptyPackageError) Error() string {
	return fmt.Sprintf("%s contains no packages.", e.Dir)
}

func (e *EmptyPackageError) Unwrap() error { return stage.ErrValidation }

// Validate lists baseDir/packageDir and requires at least one subdirectory.
// Errors name packageDir as given, not the joined path.
func Validate(baseDir, packageDir string) (PackageSet, error) {
	root := filepath.Join(baseDir, packageDir)

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return PackageSet{}, &NotFoundError{Dir: packageDir}
		}
		return PackageSet{}, stage.Wrap(stage.ErrNotFound, stage.Packages, "stat", packageDir, err)
	}
	if !info.IsDir() {
		return PackageSet{}, &NotFoundError{Dir: packageDir}
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return PackageSet{}, stage.Wrap(stage.ErrNotFound, stage.Packages, "list", packageDir, err)
	}

	set := PackageSet{Root: root, Entries: make([]Entry, 0, len(dirEntries))}
	dirs := 0
	for _, de := range dirEntries {
		isDir := de.IsDir()
		if isDir {
			dirs++
		}
		set.Entries = append(set.Entries, Entry{Name: de.Name(), IsDir: isDir})
	}
	if dirs == 0 {
		return PackageSet{}, &EmptyPackageError{Dir: packageDir}
	}
	return set, nil
}
