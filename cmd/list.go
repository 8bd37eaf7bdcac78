package cmd

import (
	"github.com/jamesbehr/symlinker/filesystem"
	"github.com/jamesbehr/symlinker/pkg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type listFlags struct {
	walkFlags
	sort     bool
	showType bool
}

func (f *listFlags) register(cmd *cobra.Command, withType bool) {
	f.walkFlags.register(cmd, true)
	cmd.Flags().BoolVarP(&f.sort, "sort", "s", false, "list links to directories first, each group sorted by path (scans the whole tree before printing)")

	if withType {
		cmd.Flags().BoolVarP(&f.showType, "type", "t", false, "prefix each link with b (broken), d (directory) or f (file)")
	}
}

// list prints the links below root accepted by match. Without --sort links
// are printed as soon as they are found.
func (f *listFlags) list(cmd *cobra.Command, a *app, root filesystem.Path, match pkg.Matcher) {
	opts := f.options(cmd, a)
	a.printer.ShowType = boolFlag(cmd, "type", f.showType, a.cfg.Type)

	if boolFlag(cmd, "sort", f.sort, a.cfg.Sort) {
		links, err := pkg.Collect(root, opts, match)
		if err != nil {
			a.printer.Failure(err)
			return
		}

		for _, link := range links {
			a.printer.Link(link)
		}

		log.Debug().Int("links", len(links)).Str("root", root.String()).Msg("listed links")
		return
	}

	links, err := pkg.Stream(root, opts, match)
	if err != nil {
		a.printer.Failure(err)
		return
	}

	n := a.printer.Links(links)
	log.Debug().Int("links", n).Str("root", root.String()).Msg("listed links")
}

func newSearchCmd(a *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "search <path>",
		Short: "List the symbolic links in a directory",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			flags.list(cmd, a, filesystem.Path(args[0]), pkg.MatchAll)
		},
	}

	flags.register(cmd, true)
	return cmd
}

func newFindCmd(a *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "find <path> <pattern>",
		Short: "List the symbolic links whose destination contains a pattern",
		Long: `List the symbolic links below <path> whose destination contains <pattern>.
The pattern is matched as plain text, not as a regular expression.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			flags.list(cmd, a, filesystem.Path(args[0]), pkg.DestinationContains(args[1]))
		},
	}

	flags.register(cmd, true)
	return cmd
}

func newBrokenCmd(a *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "broken <path>",
		Short: "List the symbolic links whose destination doesn't exist",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			flags.list(cmd, a, filesystem.Path(args[0]), pkg.IsBroken)
		},
	}

	flags.register(cmd, false)
	return cmd
}
