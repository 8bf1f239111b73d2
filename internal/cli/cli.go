// Package cli implements the voronoi-paint command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/0x0FACED/go-voronoi-paint/internal/config"
	"github.com/0x0FACED/go-voronoi-paint/pkg/logger"
	"github.com/0x0FACED/go-voronoi-paint/pkg/props"
)

const appName = "voronoi-paint"

// CLI holds state shared by all commands.
type CLI struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
	Logger  *logger.ZapLogger
}

// New creates a CLI writing results to out and logs to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{
		out:    out,
		errOut: errOut,
		Logger: logger.NewWithWriter(errOut, zapcore.InfoLevel),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Paint procedurally generated Voronoi diagrams",
		Long:         `voronoi-paint renders deterministic Voronoi diagrams driven by style properties, either to PNG files or through a demo HTTP server.`,
		SilenceUsage: true,
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.propertiesCommand())
	return root
}

// Execute runs the command tree with args.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// loadConfig reads the config file and rebuilds the logger at the level it
// asks for; --verbose always wins.
func (c *CLI) loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return cfg, fmt.Errorf("config: log level: %w", err)
	}
	if c.verbose {
		level = zapcore.DebugLevel
	}
	c.Logger = logger.NewWithWriter(c.errOut, level)
	return cfg, nil
}

// parseSets turns repeated --set key=value flags into a property bag.
// Repeating a key builds a list, which is how cellColors takes several
// entries.
func parseSets(sets []string) (props.Map, error) {
	entries := map[string][]string{}
	var order []string
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--set %q: want key=value", set)
		}
		name, known := props.Canonical(key)
		if !known {
			return nil, fmt.Errorf("--set %q: unknown property %q", set, key)
		}
		if _, seen := entries[name]; !seen {
			order = append(order, name)
		}
		entries[name] = append(entries[name], value)
	}

	m := props.Map{}
	for _, name := range order {
		vs := entries[name]
		if len(vs) == 1 {
			m[name] = props.StringValue(vs[0])
		} else {
			m[name] = props.ListValue(vs...)
		}
	}
	return m, nil
}
