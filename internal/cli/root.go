// Package cli implements the fsentity command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jmgilman/go/fsentity"
	"github.com/jmgilman/go/fsentity/config"
	"github.com/jmgilman/go/fsentity/errors"
)

// Exit codes returned by ExitCodeForError.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitNotFound     = 4
	ExitConflict     = 5
	ExitPanic        = 10
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	root       string
	backend    string
	logLevel   string
	absolute   bool
	json       bool
}

type app struct {
	flags globalFlags
}

// NewRootCommand builds a fresh command tree. Each call has its own flag
// state.
func NewRootCommand() *cobra.Command {
	return (&app{}).command()
}

// Execute runs the command line against os.Args and reports any error on
// stderr.
func Execute() error {
	a := &app{}
	cmd := a.command()
	if err := cmd.Execute(); err != nil {
		a.reportError(cmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// ExitCodeForError maps an error to the process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch errors.GetCode(err) {
	case errors.CodeInvalidPath, errors.CodeInvalidInput:
		return ExitUsageError
	case errors.CodeInvalidConfig:
		return ExitConfigError
	case errors.CodeNotFound:
		return ExitNotFound
	case errors.CodeAlreadyExists:
		return ExitConflict
	default:
		return ExitGeneralError
	}
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fsentity",
		Short: "Manage files and directories below a fixed root",
		Long: `fsentity operates on files and directories below a single root directory.

Paths are relative to the root unless --absolute is given, in which case
they must be absolute paths below the root.

Settings come from, in increasing priority: fsentity.yaml (or --config),
FSENTITY_* environment variables and flags. A .env file in the working
directory is loaded into the environment first.

The memory backend lives only as long as one invocation. Each run starts
from an empty tree and nothing it writes survives the process.

Exit Codes:
  0  - Success
  1  - General or I/O error
  2  - Invalid path or argument
  3  - Invalid configuration
  4  - File or directory does not exist
  5  - File or directory already exists`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "Path to a config file (default ./fsentity.yaml if present)")
	pf.StringVarP(&a.flags.root, "root", "r", "", "Absolute root directory")
	pf.StringVar(&a.flags.backend, "backend", "", "Filesystem backend (local, memory); memory starts empty on every invocation and nothing persists")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.BoolVar(&a.flags.absolute, "absolute", false, "Treat path arguments as absolute paths below the root")
	pf.BoolVar(&a.flags.json, "json", false, "Print results and errors as JSON")

	cmd.AddCommand(
		a.fileCommand(),
		a.dirCommand(),
		a.importCommand(),
	)
	return cmd
}

// loadConfig merges the config file, environment and flags.
func (a *app) loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	path := a.flags.configPath
	if path == "" {
		path = config.FileName
	}
	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, config.ErrConfigNotFound) && a.flags.configPath == "":
		cfg = config.Default()
	case errors.Is(err, config.ErrConfigNotFound):
		return nil, errors.Wrapf(err, errors.CodeInvalidConfig, "config file %s not found", path)
	case err != nil:
		return nil, err
	}

	cfg.ApplyEnv()
	if a.flags.root != "" {
		cfg.Root = a.flags.root
	}
	if a.flags.backend != "" {
		cfg.Backend = a.flags.backend
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	return cfg, nil
}

func (a *app) openRoot() (*fsentity.Root, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return config.Open(cfg)
}

func (a *app) getFile(root *fsentity.Root, p string) (*fsentity.File, error) {
	if a.flags.absolute {
		return root.GetFileAbs(p)
	}
	return root.GetFile(p)
}

func (a *app) getDirectory(root *fsentity.Root, p string) (*fsentity.Directory, error) {
	if a.flags.absolute {
		return root.GetDirectoryAbs(p)
	}
	return root.GetDirectory(p)
}

// relative converts a path argument to a root-relative path.
func (a *app) relative(root *fsentity.Root, p string) (string, error) {
	if a.flags.absolute {
		return root.Resolver().ResolveAbsolute(p)
	}
	return p, nil
}

type fileView struct {
	Path      string `json:"path"`
	FullPath  string `json:"full_path"`
	Name      string `json:"name"`
	Extension string `json:"extension,omitempty"`
	Size      int64  `json:"size"`
}

type dirView struct {
	Path     string `json:"path"`
	FullPath string `json:"full_path"`
	Name     string `json:"name"`
}

type listingView struct {
	Directories []dirView  `json:"directories"`
	Files       []fileView `json:"files"`
}

func viewFile(f *fsentity.File) fileView {
	return fileView{
		Path:      f.Path(),
		FullPath:  f.FullPath(),
		Name:      f.Name(),
		Extension: f.Extension(),
		Size:      f.Size(),
	}
}

func viewDir(d *fsentity.Directory) dirView {
	return dirView{Path: d.Path(), FullPath: d.FullPath(), Name: d.Name()}
}

// printFile writes f as JSON or as "path<TAB>size".
func (a *app) printFile(w io.Writer, f *fsentity.File) error {
	if a.flags.json {
		return writeJSON(w, viewFile(f))
	}
	_, err := fmt.Fprintf(w, "%s\t%d\n", displayPath(f.Path()), f.Size())
	return err
}

func (a *app) printDir(w io.Writer, d *fsentity.Directory) error {
	if a.flags.json {
		return writeJSON(w, viewDir(d))
	}
	_, err := fmt.Fprintf(w, "%s/\n", displayPath(d.Path()))
	return err
}

// reportError prints err on w, as an ErrorResponse when --json is set.
func (a *app) reportError(w io.Writer, err error) {
	if a.flags.json {
		if jerr := writeJSON(w, errors.ToJSON(err)); jerr == nil {
			return
		}
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// displayPath shows the root as ".".
func displayPath(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}

// readInput returns the --contents flag when set and stdin otherwise.
func readInput(cmd *cobra.Command, contents string) ([]byte, error) {
	if cmd.Flags().Changed("contents") {
		return []byte(contents), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeIO, "failed to read stdin")
	}
	return data, nil
}
