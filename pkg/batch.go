package pkg

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/jamesbehr/symlinker/errors"
	"github.com/jamesbehr/symlinker/filesystem"
	"github.com/jamesbehr/symlinker/logging"
)

type BatchOptions struct {
	Walk         filesystem.WalkOptions
	MakeAbsolute bool

	// DryRun runs every check a rewrite would, without touching the
	// filesystem.
	DryRun bool

	// Select, if set, is given every matched link before anything is
	// rewritten and returns the ones to process.
	Select func([]LinkEntry) ([]LinkEntry, error)
}

// Result is the outcome of rewriting one link.
type Result struct {
	Entry          LinkEntry
	NewDestination filesystem.Path

	// Stored is what the link now holds. Empty if Err is set.
	Stored filesystem.Path
	Err    error
}

type Report struct {
	// Processed counts every link a rewrite was attempted for, including
	// the ones that failed.
	Processed int
	Rewritten int
	Errors    *multierror.Error
}

// Failed counts the links that could not be rewritten.
func (r Report) Failed() int {
	if r.Errors == nil {
		return 0
	}

	return r.Errors.Len()
}

// BatchRewriter replaces a substring in the destination of every matching
// link. Links are independent: a failure on one is reported and the batch
// moves on, and nothing is rolled back.
type BatchRewriter struct {
	Mutator *Mutator

	// OnResult is called once per processed link, as soon as it is done.
	OnResult func(Result)
}

func NewBatchRewriter(mutator *Mutator, onResult func(Result)) *BatchRewriter {
	return &BatchRewriter{Mutator: mutator, OnResult: onResult}
}

// Rewrite finds every link below root whose destination contains pattern
// and redirects it to the destination with every occurrence of pattern
// replaced by replacement.
//
// The full set of matches is collected before the first link is changed.
// Only problems with the batch as a whole, such as an unreadable root, are
// returned as an error; per-link failures are in the report.
func (b *BatchRewriter) Rewrite(root filesystem.Path, pattern, replacement string, opts BatchOptions) (Report, error) {
	var report Report

	if pattern == "" {
		return report, errors.New(errors.InvalidInput, "", "pattern must not be empty")
	}

	logger := logging.GetLogger("pkg.batch")
	done := logging.LogOperationStart(logger, "batch rewrite")
	defer done()

	links, err := LinksMatching(root, pattern, opts.Walk)
	if err != nil {
		return report, err
	}

	logger.Debug().Int("matched", len(links)).Str("pattern", pattern).Msg("collected links")

	if opts.Select != nil && len(links) > 0 {
		links, err = opts.Select(links)
		if err != nil {
			return report, err
		}
	}

	for _, entry := range links {
		result := b.rewriteOne(entry, pattern, replacement, opts)
		report.Processed++

		if result.Err != nil {
			logger.Debug().Err(result.Err).Str("link", entry.Path.String()).Msg("rewrite failed")
			report.Errors = multierror.Append(report.Errors, result.Err)
		} else {
			report.Rewritten++
		}

		if b.OnResult != nil {
			b.OnResult(result)
		}
	}

	if err := report.Errors.ErrorOrNil(); err != nil {
		logger.Info().Int("failed", report.Failed()).Str("errors", err.Error()).Msg("batch finished with failures")
	}

	return report, nil
}

func (b *BatchRewriter) rewriteOne(entry LinkEntry, pattern, replacement string, opts BatchOptions) Result {
	req := RewriteRequest{
		LinkPath:       entry.Path,
		NewDestination: filesystem.Path(strings.ReplaceAll(entry.Destination, pattern, replacement)),
		MakeAbsolute:   opts.MakeAbsolute,
	}

	result := Result{Entry: entry, NewDestination: req.NewDestination}

	if opts.DryRun {
		result.Stored, result.Err = b.Mutator.checkDestination(req.LinkPath, req.NewDestination, req.MakeAbsolute)
		if result.Err == nil {
			if result.Err = checkLink(req.LinkPath); result.Err != nil {
				result.Stored = ""
			}
		}
		return result
	}

	result.Stored, result.Err = b.Mutator.Redirect(req)
	return result
}
