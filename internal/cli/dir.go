package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) dirCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dir",
		Aliases: []string{"directory"},
		Short:   "Create, list and remove directories",
	}
	cmd.AddCommand(
		a.dirCreateCommand(),
		a.dirGetCommand(),
		a.dirExistsCommand(),
		a.dirListCommand(),
		a.dirMkdirCommand(),
		a.dirRemoveCommand(),
	)
	return cmd
}

func (a *app) dirCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <path>",
		Short: "Create a directory; the parent must exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			rel, err := a.relative(root, args[0])
			if err != nil {
				return err
			}
			d, err := root.CreateDirectory(rel)
			if err != nil {
				return err
			}
			return a.printDir(cmd.OutOrStdout(), d)
		},
	}
}

func (a *app) dirGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Show a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			d, err := a.getDirectory(root, args[0])
			if err != nil {
				return err
			}
			return a.printDir(cmd.OutOrStdout(), d)
		},
	}
}

func (a *app) dirExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <path>",
		Short: "Print whether a directory exists at <path>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			exists := root.DirectoryExists(args[0])
			if a.flags.absolute {
				exists = root.DirectoryExistsAbs(args[0])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), exists)
			return err
		},
	}
}

func (a *app) dirListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List the subdirectories and files of a directory (default the root)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			d, err := a.getDirectory(root, target)
			if err != nil {
				return err
			}

			children, err := d.Children()
			if err != nil {
				return err
			}
			files, err := d.Files()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.flags.json {
				listing := listingView{
					Directories: make([]dirView, 0, len(children)),
					Files:       make([]fileView, 0, len(files)),
				}
				for _, c := range children {
					listing.Directories = append(listing.Directories, viewDir(c))
				}
				for _, f := range files {
					listing.Files = append(listing.Files, viewFile(f))
				}
				return writeJSON(out, listing)
			}

			for _, c := range children {
				if err := a.printDir(out, c); err != nil {
					return err
				}
			}
			for _, f := range files {
				if err := a.printFile(out, f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) dirMkdirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <parent> <name>",
		Short: "Create the subdirectory <name> inside <parent>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			parent, err := a.getDirectory(root, args[0])
			if err != nil {
				return err
			}
			child, err := parent.NewChild(args[1])
			if err != nil {
				return err
			}
			return a.printDir(cmd.OutOrStdout(), child)
		},
	}
}

func (a *app) dirRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <path>",
		Aliases: []string{"remove"},
		Short:   "Delete an empty directory",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			if a.flags.absolute {
				return root.RemoveDirectoryAbs(args[0])
			}
			return root.RemoveDirectory(args[0])
		},
	}
}
