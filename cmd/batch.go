package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/jamesbehr/symlinker/filesystem"
	"github.com/jamesbehr/symlinker/pkg"
	"github.com/spf13/cobra"
)

func interactiveSelect(links []pkg.LinkEntry) ([]pkg.LinkEntry, error) {
	names := make([]string, len(links))
	for i, link := range links {
		names[i] = fmt.Sprintf("%s -> %s", link.Path, link.Destination)
	}

	var selected []int
	prompt := &survey.MultiSelect{
		Message: "Choose links to rewrite",
		Options: names,
		Default: names,
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, err
	}

	filtered := make([]pkg.LinkEntry, len(selected))
	for i, index := range selected {
		filtered[i] = links[index]
	}

	return filtered, nil
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		flags       walkFlags
		absolute    bool
		dryRun      bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "batch <path> <pattern> <newPattern>",
		Short: "Rewrite the destination of every symbolic link matching a pattern",
		Long: `Find every symbolic link below <path> whose destination contains <pattern>
and replace each occurrence of <pattern> in its destination with <newPattern>.

Links are rewritten one at a time. A link that can't be rewritten is reported
and left as it was; the remaining links are still processed.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pkg.BatchOptions{
				Walk:         flags.options(cmd, a),
				MakeAbsolute: boolFlag(cmd, "absolute_path", absolute, a.cfg.Absolute),
				DryRun:       dryRun,
			}

			if interactive {
				opts.Select = interactiveSelect
			}

			b := pkg.NewBatchRewriter(pkg.NewMutator(nil), func(result pkg.Result) {
				a.printer.Rewrite(result, dryRun)
			})

			report, err := b.Rewrite(filesystem.Path(args[0]), args[1], args[2], opts)
			if err != nil {
				a.printer.Failure(err)
				return nil
			}

			a.printer.Done(report)
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVarP(&absolute, "absolute_path", "a", false, "store the new destinations as absolute paths")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be rewritten without changing anything")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose which of the matching links to rewrite")

	return cmd
}
