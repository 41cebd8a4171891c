package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"infant-feeding-tracker/internal/platform/logger"
	"infant-feeding-tracker/internal/watch"
)

var cmdWatch = &cli.Command{
	Name:  "watch",
	Usage: "refresh the dashboard and alert when a baby is due",
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "refresh period",
			Value: watch.DefaultInterval,
		},
		&cli.DurationFlag{
			Name:  "window",
			Usage: "near-due window (0 = server default)",
		},
		&cli.BoolFlag{
			Name:  "once",
			Usage: "render a single time and exit",
		},
	},
	Action: runWatch,
}

var cmdList = &cli.Command{
	Name:   "list",
	Usage:  "list tracked babies",
	Action: runList,
}

var cmdFed = &cli.Command{
	Name:      "fed",
	Usage:     "confirm a feeding for a baby (now)",
	ArgsUsage: "<subject-id>",
	Action:    runFed,
}

func runWatch(cctx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newClient(cctx)
	if err != nil {
		return err
	}

	// Logs a stderr para no mezclarlos con el tablero.
	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cctx.String("log-level")),
		Format: logger.FormatText,
		App:    "feedwatch",
		Output: "stderr",
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	w := watch.NewWatcher(client, os.Stdout, watch.Options{
		Interval: cctx.Duration("interval"),
		Window:   cctx.Duration("window"),
		Logger:   log,
	})

	if cctx.Bool("once") {
		return w.Once(ctx)
	}
	return w.Run(ctx)
}

func runList(cctx *cli.Context) error {
	client, err := newClient(cctx)
	if err != nil {
		return err
	}

	subjects, err := client.List(cctx.Context)
	if err != nil {
		return err
	}
	return watch.RenderList(os.Stdout, subjects, time.Local)
}

func runFed(cctx *cli.Context) error {
	id := cctx.Args().First()
	if id == "" {
		return fmt.Errorf("need to provide subject id as an argument")
	}

	client, err := newClient(cctx)
	if err != nil {
		return err
	}

	s, err := client.MarkFed(cctx.Context, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s fed at %s, next feeding %s\n",
		s.Name,
		s.LastFeedingAt.Local().Format("15:04"),
		s.NextFeedingAt.Local().Format("15:04"),
	)
	return nil
}

func newClient(cctx *cli.Context) (*watch.Client, error) {
	return watch.NewClient(cctx.String("api"), cctx.Duration("timeout"))
}
