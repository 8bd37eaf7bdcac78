package filesystem

import (
	"io/fs"
)

// LinkKind says what a symlink currently points at.
type LinkKind int

const (
	Broken LinkKind = iota
	Directory
	File
)

// Tag is the one-letter prefix used by listings.
func (k LinkKind) Tag() string {
	switch k {
	case Directory:
		return "d"
	case File:
		return "f"
	default:
		return "b"
	}
}

func (k LinkKind) String() string {
	switch k {
	case Directory:
		return "directory"
	case File:
		return "file"
	default:
		return "broken"
	}
}

func (p Path) IsSymlink() bool {
	info, err := p.Lstat()
	if err != nil {
		return false
	}

	return info.Mode()&fs.ModeSymlink != 0
}

// Resolves is false for a broken symlink.
func (p Path) Resolves() bool {
	_, err := p.Stat()
	return err == nil
}

// PointsToDirectory is false whenever p does not resolve.
func (p Path) PointsToDirectory() bool {
	info, err := p.Stat()
	if err != nil {
		return false
	}

	return info.IsDir()
}

// Classify is evaluated at call time and never cached, since the target may
// change between discovery and use.
func (p Path) Classify() LinkKind {
	info, err := p.Stat()
	if err != nil {
		return Broken
	}

	if info.IsDir() {
		return Directory
	}

	return File
}
