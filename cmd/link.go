package cmd

import (
	"github.com/jamesbehr/symlinker/filesystem"
	"github.com/jamesbehr/symlinker/pkg"
	"github.com/spf13/cobra"
)

func newLinkCmd(a *app) *cobra.Command {
	var change, absolute bool

	cmd := &cobra.Command{
		Use:   "link <destination> <symlink>",
		Short: "Create a symbolic link or change its destination",
		Long: `Create a symbolic link named <symlink> pointing to <destination>.

A relative destination is relative to the directory containing the link, the
same way the system resolves it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			destination := filesystem.Path(args[0])
			link := filesystem.Path(args[1])
			makeAbsolute := boolFlag(cmd, "absolute_path", absolute, a.cfg.Absolute)

			m := pkg.NewMutator(nil)

			var err error
			if change {
				_, err = m.Redirect(pkg.RewriteRequest{
					LinkPath:       link,
					NewDestination: destination,
					MakeAbsolute:   makeAbsolute,
				})
			} else {
				_, err = m.Create(destination, link, makeAbsolute)
			}

			if err != nil {
				a.printer.Failure(err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&change, "change-destination", "c", false, "change the destination of an existing symbolic link")
	cmd.Flags().BoolVarP(&absolute, "absolute_path", "a", false, "store the destination as an absolute path")

	return cmd
}

func newHardlinkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hardlink <destination> <link>",
		Short: "Create a hard link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := pkg.NewMutator(nil).HardLink(filesystem.Path(args[0]), filesystem.Path(args[1]))
			if err != nil {
				a.printer.Failure(err)
			}

			return nil
		},
	}
}
