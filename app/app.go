// Package app defines the tomatobar command-line interface.
package app

import (
	"github.com/urfave/cli/v2"
)

// Get retrieves the tomatobar app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "tomatobar",
		Usage: `
		Tomatobar is a background Pomodoro timer daemon for status bars.
		It accepts commands over a named pipe, publishes its state as
		JSON over another, and records every finished phase.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "send",
				Usage:     "Send a command word to the running daemon",
				UsageText: "tomatobar send start|pause|resume|skip|reset|restart_cycle|get_status",
				Action:    sendAction,
			},
			{
				Name:   "status",
				Usage:  "Print the current status of the timer",
				Action: statusAction,
			},
		},
		Flags: []cli.Flag{
			workFlag,
			shortBreakFlag,
			longBreakFlag,
			longBreakIntervalFlag,
			disableNotificationFlag,
		},
		Action: runAction,
	}
}
