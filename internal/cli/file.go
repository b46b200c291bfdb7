package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/fsentity"
)

func (a *app) fileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Create, inspect and change files",
	}
	cmd.AddCommand(
		a.fileCreateCommand(),
		a.fileGetCommand(),
		a.fileExistsCommand(),
		a.fileCatCommand(),
		a.fileWriteCommand(),
		a.fileMoveCommand(),
		a.fileCopyCommand(),
		a.fileRenameCommand(),
		a.fileRemoveCommand(),
		a.fileDirCommand(),
	)
	return cmd
}

func (a *app) fileCreateCommand() *cobra.Command {
	var contents string
	var stdin bool

	cmd := &cobra.Command{
		Use:   "create <path>",
		Short: "Create a file; the parent directory must exist",
		Long: `Create a file at <path>. Without --contents or --stdin the file is empty.
Fails if anything already exists at <path>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			rel, err := a.relative(root, args[0])
			if err != nil {
				return err
			}

			var f *fsentity.File
			if cmd.Flags().Changed("contents") || stdin {
				var data []byte
				if data, err = readInput(cmd, contents); err != nil {
					return err
				}
				f, err = root.CreateFileWithContents(rel, data)
			} else {
				f, err = root.CreateFile(rel)
			}
			if err != nil {
				return err
			}
			return a.printFile(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVar(&contents, "contents", "", "Initial file contents")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read initial contents from stdin")
	return cmd
}

func (a *app) fileGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Show a file's path, name and size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			f, err := a.getFile(root, args[0])
			if err != nil {
				return err
			}
			return a.printFile(cmd.OutOrStdout(), f)
		},
	}
}

func (a *app) fileExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <path>",
		Short: "Print whether a regular file exists at <path>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			exists := root.FileExists(args[0])
			if a.flags.absolute {
				exists = root.FileExistsAbs(args[0])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), exists)
			return err
		},
	}
}

func (a *app) fileCatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Print a file's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			f, err := a.getFile(root, args[0])
			if err != nil {
				return err
			}
			data, err := f.Contents()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (a *app) fileWriteCommand() *cobra.Command {
	var contents string

	cmd := &cobra.Command{
		Use:   "write <path>",
		Short: "Replace a file's contents with --contents or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			f, err := a.getFile(root, args[0])
			if err != nil {
				return err
			}
			data, err := readInput(cmd, contents)
			if err != nil {
				return err
			}
			if _, err := f.Write(data); err != nil {
				return err
			}
			return a.printFile(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVar(&contents, "contents", "", "New file contents")
	return cmd
}

func (a *app) fileMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "mv <path> <directory>",
		Aliases: []string{"move"},
		Short:   "Move a file into another directory, keeping its name",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transfer(cmd, args, (*fsentity.File).MoveTo)
		},
	}
}

func (a *app) fileCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "cp <path> <directory>",
		Aliases: []string{"copy"},
		Short:   "Copy a file into another directory, keeping its name",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transfer(cmd, args, (*fsentity.File).CopyTo)
		},
	}
}

// transfer runs a move or copy of args[0] into the directory args[1].
func (a *app) transfer(cmd *cobra.Command, args []string, op func(*fsentity.File, *fsentity.Directory) (*fsentity.File, error)) error {
	root, err := a.openRoot()
	if err != nil {
		return err
	}
	f, err := a.getFile(root, args[0])
	if err != nil {
		return err
	}
	dir, err := a.getDirectory(root, args[1])
	if err != nil {
		return err
	}
	result, err := op(f, dir)
	if err != nil {
		return err
	}
	return a.printFile(cmd.OutOrStdout(), result)
}

func (a *app) fileRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a file within its directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			f, err := a.getFile(root, args[0])
			if err != nil {
				return err
			}
			if _, err := f.Rename(args[1]); err != nil {
				return err
			}
			return a.printFile(cmd.OutOrStdout(), f)
		},
	}
}

func (a *app) fileRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <path>",
		Aliases: []string{"remove"},
		Short:   "Delete a file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			if a.flags.absolute {
				return root.RemoveFileAbs(args[0])
			}
			return root.RemoveFile(args[0])
		},
	}
}

func (a *app) fileDirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dir <path>",
		Short: "Show the directory containing a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.openRoot()
			if err != nil {
				return err
			}
			f, err := a.getFile(root, args[0])
			if err != nil {
				return err
			}
			d, err := f.Directory()
			if err != nil {
				return err
			}
			return a.printDir(cmd.OutOrStdout(), d)
		},
	}
}
