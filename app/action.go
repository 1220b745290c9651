package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tomatobar/tomatobar/config"
	"github.com/tomatobar/tomatobar/internal/log"
	"github.com/tomatobar/tomatobar/internal/session"
	"github.com/tomatobar/tomatobar/ipc"
	"github.com/tomatobar/tomatobar/store"
	"github.com/tomatobar/tomatobar/timer"
)

// runAction starts the timer daemon and blocks until it is terminated
// with SIGINT or SIGTERM.
func runAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	log.Init(cfg.PathToLog)

	snaps, err := store.NewSnapshotStore(cfg.PathToTimerDB)
	if err != nil {
		return err
	}

	defer func() {
		_ = snaps.Close()
	}()

	dbClient, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	// failure to create either channel is the only fatal startup error
	publisher, err := ipc.NewPublisher(cfg.StatusFIFO)
	if err != nil {
		return fmt.Errorf("unable to create status channel: %w", err)
	}

	listener, err := ipc.NewListener(cfg.CommandFIFO)
	if err != nil {
		return fmt.Errorf("unable to create command channel: %w", err)
	}

	t := timer.New(dbClient, snaps, cfg)

	if err := t.RecoverInterrupted(); err != nil {
		pterm.Warning.Printfln(
			"unable to recover interrupted session: %v",
			err,
		)
	}

	runCtx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	go listener.Listen(runCtx)
	go publisher.Run(runCtx)

	pterm.Info.Printfln(
		"tomatobar daemon started (config: %s)",
		cfg.PathToConfig,
	)

	t.Run(runCtx, listener.Commands(), publisher.Publish)

	return nil
}

// sendAction writes a single command word to the command channel of a
// running daemon.
func sendAction(ctx *cli.Context) error {
	word := ctx.Args().First()
	if word == "" {
		return cli.ShowSubcommandHelp(ctx)
	}

	cmd, err := session.ParseCommand(word)
	if err != nil {
		return fmt.Errorf("%q: %w", word, err)
	}

	cfg := config.Get(ctx)

	return ipc.Send(cfg.CommandFIFO, cmd)
}

// statusAction reports the status of the currently running timer.
func statusAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	s, err := ipc.ReadStatus(cfg.StatusFIFO)
	if err != nil {
		return err
	}

	pterm.Printfln(
		"%s [%d/%d]",
		s.Message,
		s.PomodorosCompleted,
		s.TotalPomodoros,
	)

	return nil
}
