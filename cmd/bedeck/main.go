// bedeck - Terminal 3D Decoration Editor
// Point at the canvas to aim a preview, click to place it.
//
// Controls:
//
//	Mouse move    - Aim the preview at the canvas or a placed cube
//	Left click    - Place the preview
//	Wheel         - Orbit the camera (ctrl+wheel zooms)
//	W/S           - Grow/shrink the preview
//	A/D           - Turn the preview
//	R/G/B         - Raise red/green/blue (shift lowers)
//	I/K           - Lighten/darken
//	E             - Next palette entry
//	X             - Next shader (shaded, flat, wireframe)
//	P             - Save a PNG screenshot
//	?             - Toggle HUD
//	Esc           - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/bedeck/pkg/config"
)

var version = "dev"

func main() {
	err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
	if err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	config  string
	fps     int
	logPath string
	verbose bool
	bg      string
	smooth  bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "bedeck",
		Short: "Decorate a 3D canvas in your terminal",
		Long: `bedeck renders a canvas in the terminal and places decorations where the
mouse points. Wheel orbits the camera, ctrl+wheel zooms, left click places.

w/s grow and shrink, a/d turn, r/g/b raise a color channel and R/G/B lower
it, i/k lighten and darken, e cycles the palette, x cycles the shader,
p saves a screenshot, ? toggles the HUD and esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			logger, closeLog, err := openLogger(f.logPath, f.verbose)
			if err != nil {
				return err
			}
			defer closeLog()

			logger.Info("starting",
				"version", version,
				"config", f.config,
				"palette", len(cfg.Palette),
				"fps", cfg.Display.FPS,
				"shader", cfg.Display.Shader,
			)
			err = run(cmd.Context(), cfg, logger)
			if err != nil {
				logger.Error("exited with error", "err", err)
			} else {
				logger.Info("shutdown")
			}
			return err
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.config, "config", "c", "", "YAML configuration file")
	cmd.Flags().IntVar(&f.fps, "fps", 60, "target frames per second")
	cmd.Flags().StringVar(&f.logPath, "log", "", "append logs to this file")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log debug events")
	cmd.Flags().StringVar(&f.bg, "bg", "", "background color (#rrggbb or ANSI number)")
	cmd.Flags().BoolVar(&f.smooth, "smooth-scroll", false, "smooth camera motion with a spring")

	cmd.AddCommand(newConfigCmd(&f))
	return cmd
}

// resolve loads the configuration file and applies the flags the user set.
func (f *rootFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Display.FPS = f.fps
	}
	if flags.Changed("bg") {
		cfg.Display.Background = f.bg
	}
	if flags.Changed("smooth-scroll") {
		cfg.Display.SmoothScroll = f.smooth
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newConfigCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}

// openLogger returns a logger writing to path. The terminal belongs to the
// editor, so without a path logs are discarded.
func openLogger(path string, verbose bool) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
}
