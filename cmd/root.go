// Package cmd wires the barpad CLI: argument parsing, option precedence,
// and the hand-off to the stream pump.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/oakwood-commons/barpad/internal/config"
	"github.com/oakwood-commons/barpad/internal/spacer"
	"github.com/oakwood-commons/barpad/internal/stream"
	"github.com/oakwood-commons/barpad/pkg/logger"
	"github.com/oakwood-commons/barpad/pkg/settings"
)

var (
	markerFlag    string
	labelFlag     string
	separatorFlag string
	measureFlag   string
	configFile    string
	logLevel      int8
	quiet         bool
)

// termGetSize is swapped out in tests.
var termGetSize = term.GetSize

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " <width>",
	Short: "Pad status-bar protocol lines to a target width",
	Long: `barpad reads a status-bar protocol stream on stdin, replaces the
placeholder marker in each line with dynamically sized padding, and writes
the result to stdout. Typical sway usage:

    status_command i3status-rs config.toml | barpad 210

<width> is the target bar width in characters, or "auto" to take the width
of the attached terminal. Lines without the marker pass through unchanged.`,
	Version:       cliVersionString(),
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&markerFlag, "marker", spacer.DefaultMarker, "placeholder literal replaced with padding")
	f.StringVar(&labelFlag, "label", spacer.DefaultLabel, "field-label literal that delimits segments")
	f.StringVar(&separatorFlag, "separator", spacer.DefaultSeparator, "fill character for the padding")
	f.StringVar(&measureFlag, "measure", string(spacer.MeasureRunes), `span measurement: "runes" or "cells"`)
	f.StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/barpad/config.yaml)")
	f.Int8Var(&logLevel, "log-level", 0, "minimum log level (zap levels: -1 debug, 0 info, 2 error)")
	f.BoolVar(&quiet, "quiet", false, "log errors only")
}

func runRoot(cmd *cobra.Command, args []string) error {
	width, err := resolveWidth(args[0])
	if err != nil {
		return err
	}

	// Argument validation is done; anything past here is a runtime failure
	// and should not trigger a usage dump.
	cmd.SilenceUsage = true

	params, ok := settings.FromContext(cmd.Context())
	if !ok {
		params = settings.NewCliParams()
	}
	params.MinLogLevel = logLevel
	params.IsQuiet = quiet
	if quiet && params.MinLogLevel < 2 {
		params.MinLogLevel = 2 // zapcore.ErrorLevel
	}
	lgr := logger.Get(params.MinLogLevel)
	ctx := logger.WithLogger(cmd.Context(), lgr)

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	opts := spacer.Options{
		Width:     width,
		Marker:    effectiveOption(flags.Lookup("marker"), markerFlag, "BARPAD_MARKER", cfg.Marker, spacer.DefaultMarker),
		Label:     effectiveOption(flags.Lookup("label"), labelFlag, "BARPAD_LABEL", cfg.Label, spacer.DefaultLabel),
		Separator: effectiveOption(flags.Lookup("separator"), separatorFlag, "BARPAD_SEPARATOR", cfg.Separator, spacer.DefaultSeparator),
		Measure:   spacer.Measure(effectiveOption(flags.Lookup("measure"), measureFlag, "BARPAD_MEASURE", cfg.Measure, string(spacer.MeasureRunes))),
	}
	sp, err := spacer.New(opts)
	if err != nil {
		return err
	}

	eff := sp.Options()
	lgr.V(1).Info("starting stream",
		"width", eff.Width,
		"marker", eff.Marker,
		"label", eff.Label,
		"separator", eff.Separator,
		"measure", string(eff.Measure),
	)

	return stream.New(sp, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}

// resolveWidth parses the positional width argument. The literal "auto"
// probes the attached terminal; stdout is probed last because it is
// normally piped into the bar.
func resolveWidth(arg string) (int, error) {
	if arg == "auto" {
		for _, f := range []*os.File{os.Stderr, os.Stdin, os.Stdout} {
			if w, _, err := termGetSize(int(f.Fd())); err == nil && w > 0 {
				return w, nil
			}
		}
		return 0, fmt.Errorf(`cannot resolve "auto" width: no terminal attached`)
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf(`width must be a positive integer or "auto", got %q`, arg)
	}
	if n <= 0 {
		return 0, fmt.Errorf("width must be positive, got %d", n)
	}
	return n, nil
}

// effectiveOption resolves a token literal with the precedence
// CLI flag > environment variable > config file > built-in default.
func effectiveOption(flag *pflag.Flag, flagValue, envKey string, fromConfig *string, def string) string {
	if flag != nil && flag.Changed {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if fromConfig != nil && *fromConfig != "" {
		return *fromConfig
	}
	return def
}

// cliVersionString builds the version string for Cobra's --version flag.
func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s (commit %s, built %s)", v.BuildVersion, v.Commit, v.BuildTime)
}

// Execute runs the root command. Errors are returned to main, which owns
// the exit code and the final logger sync.
func Execute() error {
	ctx := settings.IntoContext(context.Background(), settings.NewCliParams())
	return rootCmd.ExecuteContext(ctx)
}
