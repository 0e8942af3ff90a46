// picktool builds a procedural scene and casts picking rays into it.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/raypick/internal/config"
	"github.com/Faultbox/raypick/internal/logger"
)

const (
	flagConfig  = "config"
	flagDebug   = "debug"
	flagLogFile = "log-file"
	flagWidth   = "width"
	flagHeight  = "height"
	flagGrid    = "grid"
	flagSoup    = "soup"
)

// app holds state shared by every command once Before has run.
type app struct {
	cfg *config.Config
}

func main() {
	a := &app{}

	cliApp := &cli.App{
		Name:  "picktool",
		Usage: "cast picking rays into a procedural scene",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "path to config file (default: ./" + config.FileName + " or the user config dir)",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to this file, rotated",
			},
			&cli.IntFlag{
				Name:  flagWidth,
				Usage: "viewport width in pixels",
			},
			&cli.IntFlag{
				Name:  flagHeight,
				Usage: "viewport height in pixels",
			},
			&cli.IntFlag{
				Name:  flagGrid,
				Usage: "instances per side of the scene grid",
			},
			&cli.BoolFlag{
				Name:  flagSoup,
				Usage: "expand meshes to triangle soup instead of keeping them indexed",
			},
		},
		Before: a.before,
		After: func(*cli.Context) error {
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			pickCommand(a),
			benchCommand(a),
			statsCommand(a),
			wireframeCommand(a),
			configCommand(a),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// before loads the config and starts logging.
func (a *app) before(c *cli.Context) error {
	o := config.Overrides{
		Debug:   c.Bool(flagDebug),
		LogFile: c.String(flagLogFile),
		Width:   c.Int(flagWidth),
		Height:  c.Int(flagHeight),
		Grid:    c.Int(flagGrid),
	}
	if c.IsSet(flagSoup) {
		indexed := !c.Bool(flagSoup)
		o.Indexed = &indexed
	}

	cfg, err := config.Load(c.String(flagConfig), o)
	if err != nil {
		return err
	}
	a.cfg = cfg

	opts := logger.Options{Level: cfg.Logging.Level, Console: os.Stderr}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	logger.Init(opts)

	logger.Debug("config loaded",
		zap.String("level", cfg.Logging.Level),
		zap.Int("grid", cfg.Scene.Grid),
		zap.Bool("indexed", cfg.Picking.Indexed))
	return nil
}
