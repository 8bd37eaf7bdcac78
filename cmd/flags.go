package cmd

import (
	"github.com/jamesbehr/symlinker/filesystem"
	"github.com/spf13/cobra"
)

// walkFlags are the traversal flags shared by the listing and batch
// commands.
type walkFlags struct {
	recursive   bool
	noRecursive bool
	follow      bool
}

func (f *walkFlags) register(cmd *cobra.Command, follow bool) {
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", false, "include subdirectories (default from config, true unless configured otherwise)")
	cmd.Flags().BoolVarP(&f.noRecursive, "no-recursive", "n", false, "don't include subdirectories")
	cmd.MarkFlagsMutuallyExclusive("recursive", "no-recursive")

	if follow {
		cmd.Flags().BoolVarP(&f.follow, "follow", "L", false, "descend into symbolic links to directories")
	}
}

func (f *walkFlags) options(cmd *cobra.Command, a *app) filesystem.WalkOptions {
	opts := filesystem.WalkOptions{
		Recursive:      a.cfg.Recursive,
		FollowSymlinks: boolFlag(cmd, "follow", f.follow, a.cfg.Follow),
	}

	switch {
	case cmd.Flags().Changed("recursive"):
		opts.Recursive = f.recursive
	case cmd.Flags().Changed("no-recursive"):
		opts.Recursive = !f.noRecursive
	}

	return opts
}

// boolFlag returns the flag value if it was given on the command line and
// the configured value otherwise.
func boolFlag(cmd *cobra.Command, name string, value, configured bool) bool {
	if cmd.Flags().Lookup(name) == nil {
		return false
	}

	if cmd.Flags().Changed(name) {
		return value
	}

	return configured
}
