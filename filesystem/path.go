package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Path is a filesystem path. It may be relative, in which case it is
// interpreted against the process working directory like any os call.
type Path string

func MakePath(names ...string) Path {
	return Path(filepath.Join(names...))
}

func (p Path) Join(names ...string) Path {
	args := []string{string(p)}
	args = append(args, names...)
	return MakePath(args...)
}

func (p Path) Parent() Path {
	return Path(filepath.Dir(string(p)))
}

func (p Path) Basename() string {
	return filepath.Base(string(p))
}

func (p Path) IsAbs() bool {
	return filepath.IsAbs(string(p))
}

func (p Path) Abs() (Path, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return Path(""), err
	}

	return Path(abs), nil
}

// Resolve interprets a link destination the way the kernel does: relative
// destinations are relative to the directory containing the link p.
func (p Path) Resolve(destination Path) Path {
	if destination.IsAbs() {
		return destination
	}

	return p.Parent().Join(string(destination))
}

func (p Path) MkdirAll(perm os.FileMode) error {
	return os.MkdirAll(string(p), perm)
}

func (p Path) WriteFile(data []byte, perm os.FileMode) error {
	return os.WriteFile(string(p), data, perm)
}

func (p Path) ReadDir() ([]fs.DirEntry, error) {
	return os.ReadDir(string(p))
}

func (p Path) Lstat() (fs.FileInfo, error) {
	return os.Lstat(string(p))
}

func (p Path) Stat() (fs.FileInfo, error) {
	return os.Stat(string(p))
}

func (p Path) Readlink() (Path, error) {
	target, err := os.Readlink(string(p))
	if err != nil {
		return Path(""), err
	}

	return Path(target), nil
}

func (p Path) Symlink(target Path) error {
	return os.Symlink(string(target), string(p))
}

// Exists reports whether an entry named p exists, without following a
// symlink at p. A broken symlink exists.
func (p Path) Exists() (bool, error) {
	_, err := os.Lstat(string(p))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (p Path) String() string {
	return string(p)
}
