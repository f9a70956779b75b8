package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "thermal-fusion: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "thermal-fusion",
		Usage:   "live thermal and visible image fusion",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file (defaults to the built-in rig settings)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (trace, debug, info, warn, error); beats log.level and $THERMAL_FUSION_LOG_LEVEL",
			},
			&cli.BoolFlag{
				Name:  "simulate",
				Usage: "use the synthetic camera and scripted buttons instead of hardware",
			},
			&cli.BoolFlag{
				Name:  "keyboard",
				Value: true,
				Usage: "read keyboard commands from stdin",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "print version information",
				Action: func(c *cli.Context) error {
					printVersion(c.App.Writer)
					return nil
				},
			},
		},
		Action: run,
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "thermal-fusion %s\n", Version)
	fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
}
