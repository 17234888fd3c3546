// Package cli implements the atlaspack command line.
package cli

import (
	"fmt"
	"io"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is the state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool

	cfg model.AppConfig
	log *logrus.Logger
}

// NewRootCommand builds the atlaspack command tree. Command output goes to
// stdout and logs to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, cfg: model.DefaultAppConfig()}

	var opts packOptions
	root := &cobra.Command{
		Use:   "atlaspack",
		Short: "AtlasPack packs sprite and glyph rectangles into texture pages.",
		Long: "AtlasPack packs sprite and glyph rectangles into as few texture pages\n" +
			"as possible, choosing each page size from a fixed catalog.",
		SilenceErrors:     true,
		SilenceUsage:      true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPack(&opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "application config file (default "+project.DefaultConfigPath()+")")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log page decisions")

	addPackFlags(root, &opts)

	root.AddCommand(
		a.packCommand(),
		a.importCommand(),
		a.compareCommand(),
		a.catalogCommand(),
		a.serveCommand(),
	)
	return root
}

// Execute runs the command line with the given arguments.
func Execute(args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	return root.Execute()
}

// setup loads the application config and configures logging.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		path = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config log_level: %w", err)
	}
	if a.verbose {
		level = logrus.DebugLevel
	}

	a.log = logrus.New()
	a.log.SetOutput(a.stderr)
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	a.log.SetLevel(level)
	a.log.WithField("config", path).Debug("loaded application config")
	return nil
}
