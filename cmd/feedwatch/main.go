package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var apiFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "api",
		Usage:   "base URL of the feeding tracker API",
		Value:   "http://localhost:8080",
		EnvVars: []string{"FEEDWATCH_API"},
	},
	&cli.DurationFlag{
		Name:    "timeout",
		Usage:   "per-request timeout",
		Value:   10 * time.Second,
		EnvVars: []string{"FEEDWATCH_TIMEOUT"},
	},
	&cli.StringFlag{
		Name:    "log-level",
		Usage:   "debug|info|warn|error",
		Value:   "info",
		EnvVars: []string{"LOG_LEVEL"},
	},
}

func run(args []string) error {
	app := cli.App{
		Name:  "feedwatch",
		Usage: "terminal dashboard for the infant feeding tracker",
		Flags: apiFlags,
	}
	app.Commands = []*cli.Command{
		cmdWatch,
		cmdList,
		cmdFed,
	}
	return app.Run(args)
}
