package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/fsentity/errors"
)

func (a *app) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <source-dir> [target]",
		Short: "Copy a local directory tree into the root",
		Long: `Copy every file below <source-dir> on the local disk into [target] below
the root, creating directories as needed. Existing files are overwritten.
[target] defaults to the root itself.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return errors.WithContext(errors.Wrap(err, errors.CodeInvalidInput, "cannot read source directory"), "source", args[0])
			}
			if !info.IsDir() {
				return errors.WithContext(errors.New(errors.CodeInvalidInput, "source is not a directory"), "source", args[0])
			}

			root, err := a.openRoot()
			if err != nil {
				return err
			}
			target := ""
			if len(args) == 2 {
				if target, err = a.relative(root, args[1]); err != nil {
					return err
				}
			}

			if err := root.Import(os.DirFS(args[0]), ".", target); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %s into %s\n", args[0], displayPath(target))
			return err
		},
	}
}
