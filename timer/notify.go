package timer

import (
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/tomatobar/tomatobar/config"
	"github.com/tomatobar/tomatobar/internal/session"
)

// desktopNotify sends a desktop notification and plays the configured
// notification sound for the phase that just ended. It runs on its own
// goroutine and must never block the timer loop; failures are logged
// and otherwise ignored.
func desktopNotify(cfg *config.DaemonConfig, ended, _ session.Phase) {
	title := "Pomodoro completed!"
	body := "Time for a break!"
	sound := cfg.WorkSound

	if ended != session.Work {
		title = "Break completed!"
		body = "Time to focus!"
		sound = cfg.BreakSound
	}

	if cfg.Notify {
		if err := beeep.Notify(title, body, ""); err != nil {
			slog.Error("unable to display notification", "error", err)
		}
	}

	if sound == "" {
		return
	}

	if err := playSound(sound); err != nil {
		slog.Error("unable to play sound",
			"path", sound,
			"error", err,
		)
	}
}
