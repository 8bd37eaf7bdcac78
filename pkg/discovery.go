package pkg

import (
	"iter"
	"slices"
	"strings"

	"github.com/jamesbehr/symlinker/filesystem"
	"github.com/jamesbehr/symlinker/logging"
)

// LinkEntry is a symlink as it was when discovered. It does not track later
// changes to the link.
type LinkEntry struct {
	Path filesystem.Path

	// Destination is the raw target stored in the link, not resolved or
	// cleaned.
	Destination string

	// IsDirectory is whether the destination resolved to a directory at
	// discovery time.
	IsDirectory bool
}

// Kind classifies the link as it is now, not as it was when discovered.
func (e LinkEntry) Kind() filesystem.LinkKind {
	return e.Path.Classify()
}

// Matcher selects which discovered links are produced.
type Matcher func(LinkEntry) bool

func MatchAll(LinkEntry) bool {
	return true
}

// DestinationContains matches links whose raw destination contains pattern
// as a plain substring.
func DestinationContains(pattern string) Matcher {
	return func(e LinkEntry) bool {
		return strings.Contains(e.Destination, pattern)
	}
}

// IsBroken matches links whose destination does not resolve right now.
func IsBroken(e LinkEntry) bool {
	return !e.Path.Resolves()
}

// Stream produces the symlinks below root lazily, in walk order, as the walk
// proceeds. A root that cannot be listed is reported before anything is
// produced.
func Stream(root filesystem.Path, opts filesystem.WalkOptions, match Matcher) (iter.Seq[LinkEntry], error) {
	paths, err := root.Walk(opts)
	if err != nil {
		return nil, err
	}

	if match == nil {
		match = MatchAll
	}

	logger := logging.GetLogger("pkg.discovery")

	return func(yield func(LinkEntry) bool) {
		for path := range paths {
			if !path.IsSymlink() {
				continue
			}

			destination, err := path.Readlink()
			if err != nil {
				logger.Warn().Err(err).Str("path", path.String()).Msg("can't read symlink")
				continue
			}

			entry := LinkEntry{
				Path:        path,
				Destination: destination.String(),
				IsDirectory: path.PointsToDirectory(),
			}

			if !match(entry) {
				continue
			}

			logger.Trace().Str("path", path.String()).Str("destination", entry.Destination).Msg("found link")

			if !yield(entry) {
				return
			}
		}
	}, nil
}

// Collect scans the whole tree and returns the matching links sorted with
// SortEntries.
func Collect(root filesystem.Path, opts filesystem.WalkOptions, match Matcher) ([]LinkEntry, error) {
	entries, err := Stream(root, opts, match)
	if err != nil {
		return nil, err
	}

	links := slices.Collect(entries)
	SortEntries(links)
	return links, nil
}

// SortEntries puts links to directories before all other links. Each group
// is ordered case-insensitively by path.
func SortEntries(links []LinkEntry) {
	slices.SortStableFunc(links, func(a, b LinkEntry) int {
		if a.IsDirectory != b.IsDirectory {
			if a.IsDirectory {
				return -1
			}
			return 1
		}

		return filesystem.CompareFold(a.Path.String(), b.Path.String())
	})
}

func AllLinks(root filesystem.Path, opts filesystem.WalkOptions) ([]LinkEntry, error) {
	return Collect(root, opts, MatchAll)
}

func StreamAllLinks(root filesystem.Path, opts filesystem.WalkOptions) (iter.Seq[LinkEntry], error) {
	return Stream(root, opts, MatchAll)
}

func LinksMatching(root filesystem.Path, pattern string, opts filesystem.WalkOptions) ([]LinkEntry, error) {
	return Collect(root, opts, DestinationContains(pattern))
}

func StreamLinksMatching(root filesystem.Path, pattern string, opts filesystem.WalkOptions) (iter.Seq[LinkEntry], error) {
	return Stream(root, opts, DestinationContains(pattern))
}

// BrokenLinks checks each link when it is reached. A link can break or be
// repaired while a long scan is still running.
func BrokenLinks(root filesystem.Path, opts filesystem.WalkOptions) ([]LinkEntry, error) {
	return Collect(root, opts, IsBroken)
}

func StreamBrokenLinks(root filesystem.Path, opts filesystem.WalkOptions) (iter.Seq[LinkEntry], error) {
	return Stream(root, opts, IsBroken)
}
