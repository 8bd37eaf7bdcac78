package pkg

import (
	"os"

	"github.com/google/uuid"
	"github.com/jamesbehr/symlinker/errors"
	"github.com/jamesbehr/symlinker/filesystem"
	"github.com/jamesbehr/symlinker/logging"
	"github.com/rs/zerolog"
)

// RewriteRequest asks for the link at LinkPath to point at NewDestination.
type RewriteRequest struct {
	LinkPath       filesystem.Path
	NewDestination filesystem.Path

	// MakeAbsolute stores the destination as an absolute path. A relative
	// destination is made absolute against the link's directory.
	MakeAbsolute bool
}

// Mutator creates and redirects links. Every precondition is re-checked at
// call time, so a link that changed since it was discovered is judged by
// its current state.
type Mutator struct {
	Linker filesystem.Linker
	logger zerolog.Logger
}

func NewMutator(linker filesystem.Linker) *Mutator {
	if linker == nil {
		linker = filesystem.OSLinker{}
	}

	return &Mutator{
		Linker: linker,
		logger: logging.GetLogger("pkg.mutator"),
	}
}

// Create makes a new symlink at linkPath pointing to destination and returns
// the destination as stored in the link.
//
// Relative destinations are checked against the directory of linkPath,
// since that is where the kernel will resolve them.
func (m *Mutator) Create(destination, linkPath filesystem.Path, makeAbsolute bool) (filesystem.Path, error) {
	stored, err := m.checkDestination(linkPath, destination, makeAbsolute)
	if err != nil {
		return "", err
	}

	exists, err := linkPath.Exists()
	if err != nil {
		return "", statError(err, linkPath)
	}

	if exists {
		return "", errors.Newf(errors.AlreadyExists, linkPath.String(), "symlink %s already exists", linkPath)
	}

	if err := m.Linker.Symlink(stored.String(), linkPath.String()); err != nil {
		switch {
		case os.IsPermission(err):
			return "", errors.Wrapf(err, errors.PermissionDenied, linkPath.String(), "you don't have permission to create symlink %s", linkPath)
		case os.IsExist(err):
			return "", errors.Wrapf(err, errors.AlreadyExists, linkPath.String(), "symlink %s already exists", linkPath)
		default:
			return "", osFailure(err, linkPath, "failed to create symlink")
		}
	}

	m.logger.Info().Str("link", linkPath.String()).Str("destination", stored.String()).Msg("created symlink")
	return stored, nil
}

// Redirect points an existing symlink at a new destination and returns the
// destination as stored in the link.
//
// The replacement link is created under a temporary name next to the old
// one and renamed over it, so the link is never missing. If any step fails
// the original link is left as it was.
func (m *Mutator) Redirect(req RewriteRequest) (filesystem.Path, error) {
	linkPath := req.LinkPath

	stored, err := m.checkDestination(linkPath, req.NewDestination, req.MakeAbsolute)
	if err != nil {
		return "", err
	}

	if err := checkLink(linkPath); err != nil {
		return "", err
	}

	tmp := linkPath.Parent().Join("." + linkPath.Basename() + ".symlinker-" + uuid.NewString())

	if err := m.Linker.Symlink(stored.String(), tmp.String()); err != nil {
		return "", modifyError(err, linkPath)
	}

	if err := m.Linker.Rename(tmp.String(), linkPath.String()); err != nil {
		if rmErr := m.Linker.Remove(tmp.String()); rmErr != nil {
			m.logger.Warn().Err(rmErr).Str("path", tmp.String()).Msg("failed to clean up temporary symlink")
		}

		return "", modifyError(err, linkPath)
	}

	m.logger.Info().Str("link", linkPath.String()).Str("destination", stored.String()).Msg("redirected symlink")
	return stored, nil
}

// HardLink creates a hard link at linkPath to the file at destination. Both
// paths are relative to the working directory.
func (m *Mutator) HardLink(destination, linkPath filesystem.Path) error {
	if err := checkReadable(destination); err != nil {
		return err
	}

	exists, err := linkPath.Exists()
	if err != nil {
		return statError(err, linkPath)
	}

	if exists {
		return errors.Newf(errors.AlreadyExists, linkPath.String(), "link %s already exists", linkPath)
	}

	if err := m.Linker.Link(destination.String(), linkPath.String()); err != nil {
		return osFailure(err, linkPath, "failed to create hard link")
	}

	m.logger.Info().Str("link", linkPath.String()).Str("destination", destination.String()).Msg("created hard link")
	return nil
}

// checkDestination returns the destination to store in the link after
// verifying that it exists and is readable from the link's location.
func (m *Mutator) checkDestination(linkPath, destination filesystem.Path, makeAbsolute bool) (filesystem.Path, error) {
	resolved := linkPath.Resolve(destination)

	stored := destination
	if makeAbsolute {
		abs, err := resolved.Abs()
		if err != nil {
			return "", errors.Wrapf(err, errors.DestinationUnavailable, destination.String(), "can't make destination %s absolute", destination)
		}

		resolved = abs
		stored = abs
	}

	m.logger.Debug().
		Str("link", linkPath.String()).
		Str("destination", destination.String()).
		Str("resolved", resolved.String()).
		Msg("checking destination")

	if err := checkReadable(resolved); err != nil {
		return "", err
	}

	return stored, nil
}

// checkLink verifies that linkPath is an existing symlink that may be
// modified. A broken link is not checked for write permission: access(2) on
// a dangling link reports on a target that doesn't exist.
func checkLink(linkPath filesystem.Path) error {
	info, err := linkPath.Lstat()
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.SymlinkMissing, linkPath.String(), "symlink %s doesn't exist", linkPath)
		}

		return statError(err, linkPath)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return errors.Newf(errors.NotASymlink, linkPath.String(), "%s exists and is not a symbolic link", linkPath)
	}

	if linkPath.Resolves() && !linkPath.Writable() {
		return errors.Newf(errors.PermissionDenied, linkPath.String(), "you don't have permission to modify symlink %s", linkPath)
	}

	return nil
}

func checkReadable(destination filesystem.Path) error {
	access := destination.Access()
	if !access.Exists {
		return errors.Newf(errors.DestinationUnavailable, destination.String(), "destination %s doesn't exist or isn't accessible", destination)
	}

	if !access.Readable {
		return errors.Newf(errors.DestinationUnavailable, destination.String(), "you don't have permission to read destination %s", destination)
	}

	return nil
}

func modifyError(err error, linkPath filesystem.Path) error {
	if os.IsPermission(err) {
		return errors.Wrapf(err, errors.PermissionDenied, linkPath.String(), "you don't have permission to modify symlink %s", linkPath)
	}

	return osFailure(err, linkPath, "failed to modify symlink")
}

func statError(err error, path filesystem.Path) error {
	if os.IsPermission(err) {
		return errors.Wrapf(err, errors.PermissionDenied, path.String(), "you don't have permission to access %s", path)
	}

	return osFailure(err, path, "failed to inspect")
}

// osFailure keeps the errno in the message so it is visible to the user.
func osFailure(err error, path filesystem.Path, action string) error {
	if errno, ok := errors.Errno(err); ok {
		return errors.Wrapf(err, errors.OSFailure, path.String(), "%s %s: [errno %d] %s", action, path, int(errno), errno.Error())
	}

	return errors.Wrapf(err, errors.OSFailure, path.String(), "%s %s: %v", action, path, err)
}
