package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/whitten/less4j/internal/config"
	"github.com/whitten/less4j/internal/logging"
)

// version is set at build time.
var version = "dev"

// globalState is shared by all commands. Tests swap the streams.
type globalState struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	stdinIsTTY  bool
	stdoutIsTTY bool

	cfg     config.Config
	logger  *logrus.Logger
	palette palette
}

// palette holds the colors used for text output.
type palette struct {
	selector   *color.Color
	combinator *color.Color
	subsequent *color.Color
	err        *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		selector:   color.New(color.FgCyan, color.Bold),
		combinator: color.New(color.FgYellow),
		subsequent: color.New(color.FgGreen),
		err:        color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.selector, p.combinator, p.subsequent, p.err} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func newRootCommand(gs *globalState) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "lessel",
		Short:         "Inspect how LESS selectors are built",
		Long:          `lessel shows the tokens, parse trees and selector chains of LESS selectors.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return gs.configure(cmd, configPath)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a lessel.toml file")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("log-level", "warning", "log level (debug|info|warning|error)")

	root.AddCommand(
		newTokensCommand(gs),
		newTreeCommand(gs),
		newBuildCommand(gs),
		newVersionCommand(gs),
	)

	root.SetOut(gs.stdout)
	root.SetErr(gs.stderr)
	return root
}

// configure loads the config file, applies flag overrides and sets up the
// logger and colors.
func (gs *globalState) configure(cmd *cobra.Command, configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if f := flags.Lookup("color"); f != nil && f.Changed {
		cfg.Color = f.Value.String()
	}
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = f.Value.String()
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		cfg.Format = f.Value.String()
	}
	if f := flags.Lookup("jobs"); f != nil && f.Changed {
		jobs, err := flags.GetInt("jobs")
		if err != nil {
			return err
		}
		cfg.Jobs = jobs
	}
	if f := flags.Lookup("compact"); f != nil && f.Changed {
		compact, err := flags.GetBool("compact")
		if err != nil {
			return err
		}
		cfg.Compact = compact
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	colors := cfg.Color == "on" || (cfg.Color == "auto" && gs.stdoutIsTTY)
	logger, err := logging.New(gs.stderr, cfg.LogLevel, colors)
	if err != nil {
		return err
	}

	gs.cfg = cfg
	gs.logger = logger
	gs.palette = newPalette(colors)
	logger.WithField("config", configPath).Debug("configured")
	return nil
}

func newVersionCommand(gs *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lessel version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(gs.stdout, "lessel %s\n", version)
			return err
		},
	}
}
