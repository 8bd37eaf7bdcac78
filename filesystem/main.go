package filesystem

import (
	"os"
)

// Linker is the set of link syscalls used to mutate links. Paths are passed
// through unchanged; relative names are relative to the working directory
// and relative targets are stored verbatim.
type Linker interface {
	// Symlink creates a symlink at name whose destination is target.
	Symlink(target, name string) error

	// Link creates a hard link at name referring to target.
	Link(target, name string) error

	// Rename atomically replaces newName with oldName.
	Rename(oldName, newName string) error

	Remove(name string) error
}

// OSLinker performs the operations directly on the host filesystem.
type OSLinker struct{}

func (OSLinker) Symlink(target, name string) error {
	return os.Symlink(target, name)
}

func (OSLinker) Link(target, name string) error {
	return os.Link(target, name)
}

func (OSLinker) Rename(oldName, newName string) error {
	return os.Rename(oldName, newName)
}

func (OSLinker) Remove(name string) error {
	return os.Remove(name)
}
