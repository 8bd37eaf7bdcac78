package filesystem

import (
	"golang.org/x/sys/unix"
)

// Access is the result of probing a path with access(2). Missing and
// Unreadable are reported separately so callers can say which one applies.
type Access struct {
	Exists   bool
	Readable bool
	Writable bool
}

// Access follows symlinks, so a broken symlink reports Exists == false.
func (p Path) Access() Access {
	if !p.Reachable() {
		return Access{}
	}

	return Access{
		Exists:   true,
		Readable: p.Readable(),
		Writable: p.Writable(),
	}
}

// Reachable reports whether p resolves to an existing object.
func (p Path) Reachable() bool {
	return unix.Access(string(p), unix.F_OK) == nil
}

func (p Path) Readable() bool {
	return unix.Access(string(p), unix.R_OK) == nil
}

func (p Path) Writable() bool {
	return unix.Access(string(p), unix.W_OK) == nil
}
