package filesystem

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jamesbehr/symlinker/errors"
	"github.com/jamesbehr/symlinker/logging"
	"github.com/rs/zerolog"
)

type WalkOptions struct {
	// Recursive descends into subdirectories. Otherwise only the direct
	// children of the root are produced.
	Recursive bool

	// FollowSymlinks also descends into symlinks that resolve to
	// directories. Each real directory is entered at most once, which
	// breaks link cycles.
	FollowSymlinks bool
}

// CheckDir verifies that p can be listed. The returned error is always of
// kind PathUnavailable.
func (p Path) CheckDir() error {
	access := p.Access()
	if !access.Exists {
		return errors.Newf(errors.PathUnavailable, p.String(), "path %s doesn't exist or isn't accessible", p)
	}

	if !access.Readable {
		return errors.Newf(errors.PathUnavailable, p.String(), "you don't have permission to read %s", p)
	}

	if !p.PointsToDirectory() {
		return errors.Newf(errors.PathUnavailable, p.String(), "path %s is not a directory", p)
	}

	return nil
}

// Walk lists the entries below p lazily. Entries of a directory are produced
// in case-insensitive name order, and each subdirectory is entered right
// after it is produced. The root itself is not produced.
//
// Subdirectories that cannot be read are logged and skipped. The returned
// sequence is single pass; call Walk again to rescan.
func (p Path) Walk(opts WalkOptions) (iter.Seq[Path], error) {
	if err := p.CheckDir(); err != nil {
		return nil, err
	}

	return func(yield func(Path) bool) {
		w := &walker{
			opts:    opts,
			logger:  logging.GetLogger("filesystem.walk"),
			visited: map[string]struct{}{},
		}

		if opts.FollowSymlinks {
			w.enter(p)
		}

		w.walk(p, yield)
	}, nil
}

type walker struct {
	opts    WalkOptions
	logger  zerolog.Logger
	visited map[string]struct{}
}

func (w *walker) walk(dir Path, yield func(Path) bool) bool {
	entries, err := dir.ReadDir()
	if err != nil {
		w.logger.Warn().Err(err).Str("path", dir.String()).Msg("skipping unreadable directory")
		return true
	}

	SortDirEntries(entries)

	for _, entry := range entries {
		child := dir.Join(entry.Name())
		if !yield(child) {
			return false
		}

		if !w.opts.Recursive || !w.descend(child, entry) {
			continue
		}

		if !w.walk(child, yield) {
			return false
		}
	}

	return true
}

func (w *walker) descend(child Path, entry fs.DirEntry) bool {
	if !w.opts.FollowSymlinks {
		return entry.IsDir()
	}

	if !entry.IsDir() && (entry.Type()&fs.ModeSymlink == 0 || !child.PointsToDirectory()) {
		return false
	}

	return w.enter(child)
}

// enter records the real path of dir and reports whether it was new.
func (w *walker) enter(dir Path) bool {
	real, err := filepath.EvalSymlinks(dir.String())
	if err != nil {
		w.logger.Debug().Err(err).Str("path", dir.String()).Msg("not descending into unresolvable path")
		return false
	}

	if _, seen := w.visited[real]; seen {
		w.logger.Trace().Str("path", dir.String()).Str("real", real).Msg("already visited, not descending")
		return false
	}

	w.visited[real] = struct{}{}
	return true
}

// SortDirEntries orders entries case-insensitively by name, falling back to
// byte order for names that differ only in case.
func SortDirEntries(entries []fs.DirEntry) {
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return CompareFold(a.Name(), b.Name())
	})
}

func CompareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}

	return strings.Compare(a, b)
}
