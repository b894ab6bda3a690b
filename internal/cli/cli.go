package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gedgraph/pkg/buildinfo"
	"github.com/matzehuels/gedgraph/pkg/cache"
	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/observability"
	"github.com/matzehuels/gedgraph/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "gedgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string // --config, empty for the default location
	config     Config // loaded before any command runs
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself converts a genealogy file to a graph document.
func (c *CLI) RootCommand() *cobra.Command {
	opts := defaultConvertOpts()

	root := &cobra.Command{
		Use:   "gedgraph [file]",
		Short: "gedgraph turns GEDCOM family trees into graph documents",
		Long: `gedgraph reads a GEDCOM file (or a record-set JSON export made by
"gedgraph parse") and writes the whole tree, or the ancestors and
descendants of one person, as GraphML, a Graphviz record digraph, a nested
JSON tree, or an SVG drawing.

Examples:
  gedgraph family.ged > family.graphml
  gedgraph family.ged --format dot --include desc --personid 12 | dot -Tpdf > smith.pdf
  gedgraph family.ged --format json --include anc --personid I7 --dates
  gedgraph family.ged --format svg --include branch --personid 1001 --iditem refn -o branch.svg`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.Logger.GetLevel() <= log.DebugLevel {
				hooks := &logHooks{logger: c.Logger}
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))

			path, explicit := c.configFile, c.configFile != ""
			if !explicit {
				path = defaultConfigPath()
			}
			cfg, err := loadConfig(path, explicit, c.Logger)
			if err != nil {
				return err
			}
			c.config = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return c.runConvert(cmd, args[0], opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/gedgraph/config.toml)")
	opts.register(root)

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.peopleCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	if c.config.Cache != nil && !*c.config.Cache {
		noCache = true
	}
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.Logger), nil
}

// newCache opens the configured cache backend. Without a usable home
// directory the run proceeds uncached.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.Open(c.config.CacheBackend, dir, c.Logger)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/gedgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the default config file (~/.config/gedgraph/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// writeOutput hands write the destination for a command's document: stdout
// when path is empty, otherwise a file created at path. Errors from closing
// the file are returned, since a failed close can lose buffered data.
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeInternal, cerr, "close %s", path)
		}
	}()
	return write(f)
}
