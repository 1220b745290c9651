// Package config is responsible for setting the daemon config from
// the config file and command-line arguments
package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/tomatobar/tomatobar/internal/session"
)

var daemonCfg = &DaemonConfig{}

var once sync.Once

var (
	configDir      = "tomatobar"
	configFileName = "config.yml"
	dbFileName     = "tomatobar.db"
	timerFileName  = "timer.db"
	logFileName    = "tomatobar.log"
)

const (
	defaultWorkMinutes       = 25
	defaultShortBreakMinutes = 5
	defaultLongBreakMinutes  = 15
	defaultLongBreakInterval = 4
	defaultStatusFIFO        = "/tmp/tomatobar-status"
	defaultCommandFIFO       = "/tmp/tomatobar-commands"
)

const (
	configWorkMinutes       = "work_duration_minutes"
	configShortBreakMinutes = "short_break_duration_minutes"
	configLongBreakMinutes  = "long_break_duration_minutes"
	configLongBreakInterval = "pomodoros_before_long_break"
	configWorkSound         = "notification_sound_work_end"
	configBreakSound        = "notification_sound_break_end"
	configNotify            = "notify"
	configDBPath            = "db_path"
	configStatusFIFO        = "status_fifo_path"
	configCommandFIFO       = "command_fifo_path"
	configLogPath           = "log_path"
)

// DaemonConfig represents the daemon configuration derived from the
// config file and command-line arguments. It is loaded once at startup
// and read-only afterwards; the timer snapshots phase durations when a
// phase begins, so editing the file never alters an in-progress phase.
type DaemonConfig struct {
	WorkMinutes       int    `json:"work_duration_minutes"`
	ShortBreakMinutes int    `json:"short_break_duration_minutes"`
	LongBreakMinutes  int    `json:"long_break_duration_minutes"`
	LongBreakInterval int    `json:"pomodoros_before_long_break"`
	WorkSound         string `json:"notification_sound_work_end"`
	BreakSound        string `json:"notification_sound_break_end"`
	Notify            bool   `json:"notify"`
	PathToConfig      string `json:"path_to_config"`
	PathToDB          string `json:"db_path"`
	PathToTimerDB     string `json:"-"`
	PathToLog         string `json:"log_path"`
	StatusFIFO        string `json:"status_fifo_path"`
	CommandFIFO       string `json:"command_fifo_path"`
}

func init() {
	if os.Getenv("TOMATOBAR_ENV") == "development" {
		configFileName = "config_dev.yml"
		dbFileName = "tomatobar_dev.db"
		timerFileName = "timer_dev.db"
	}
}

// Duration returns the configured length of the specified phase.
func (c *DaemonConfig) Duration(p session.Phase) time.Duration {
	var mins int

	switch p {
	case session.Work:
		mins = c.WorkMinutes
	case session.ShortBreak:
		mins = c.ShortBreakMinutes
	case session.LongBreak:
		mins = c.LongBreakMinutes
	}

	return time.Duration(mins) * time.Minute
}

// initDaemonConfig initialises the daemon configuration. If the config
// file does not exist, it is created with default values so it can be
// edited later. A file that cannot be parsed falls back to the defaults
// instead of halting the daemon.
func initDaemonConfig() error {
	relPath := filepath.Join(configDir, configFileName)

	pathToConfigFile, err := xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	daemonCfg.PathToConfig = pathToConfigFile

	viper.SetConfigFile(daemonCfg.PathToConfig)
	viper.SetConfigType("yaml")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) ||
			errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return viper.WriteConfigAs(daemonCfg.PathToConfig)
		}

		// an unreadable config is replaced with the defaults rather
		// than treated as fatal
		pterm.Warning.Printfln(
			"unable to read config, falling back to defaults: %v",
			err,
		)

		return viper.WriteConfigAs(daemonCfg.PathToConfig)
	}

	return nil
}

func setDaemonConfig(ctx *cli.Context) error {
	pathToDB := os.ExpandEnv(viper.GetString(configDBPath))
	if pathToDB == "" {
		p, err := xdg.DataFile(filepath.Join(configDir, dbFileName))
		if err != nil {
			return err
		}

		pathToDB = p
	}

	daemonCfg.PathToDB = pathToDB
	daemonCfg.PathToTimerDB = filepath.Join(
		filepath.Dir(pathToDB),
		timerFileName,
	)

	pathToLog := os.ExpandEnv(viper.GetString(configLogPath))
	if pathToLog == "" {
		p, err := xdg.StateFile(filepath.Join(configDir, logFileName))
		if err != nil {
			return err
		}

		pathToLog = p
	}

	daemonCfg.PathToLog = pathToLog

	daemonCfg.WorkMinutes = viper.GetInt(configWorkMinutes)
	daemonCfg.ShortBreakMinutes = viper.GetInt(configShortBreakMinutes)
	daemonCfg.LongBreakMinutes = viper.GetInt(configLongBreakMinutes)
	daemonCfg.LongBreakInterval = viper.GetInt(configLongBreakInterval)
	daemonCfg.WorkSound = os.ExpandEnv(viper.GetString(configWorkSound))
	daemonCfg.BreakSound = os.ExpandEnv(viper.GetString(configBreakSound))
	daemonCfg.Notify = viper.GetBool(configNotify)
	daemonCfg.StatusFIFO = viper.GetString(configStatusFIFO)
	daemonCfg.CommandFIFO = viper.GetString(configCommandFIFO)

	// set from command-line arguments
	if ctx != nil {
		if ctx.Uint("work") > 0 {
			daemonCfg.WorkMinutes = int(ctx.Uint("work"))
		}

		if ctx.Uint("short-break") > 0 {
			daemonCfg.ShortBreakMinutes = int(ctx.Uint("short-break"))
		}

		if ctx.Uint("long-break") > 0 {
			daemonCfg.LongBreakMinutes = int(ctx.Uint("long-break"))
		}

		if ctx.Uint("long-break-interval") > 0 {
			daemonCfg.LongBreakInterval = int(ctx.Uint("long-break-interval"))
		}

		if ctx.Bool("disable-notification") {
			daemonCfg.Notify = false
		}
	}

	sanitize(daemonCfg)

	return nil
}

// sanitize replaces unusable values with the documented defaults.
func sanitize(cfg *DaemonConfig) {
	if cfg.WorkMinutes <= 0 {
		cfg.WorkMinutes = defaultWorkMinutes
	}

	if cfg.ShortBreakMinutes <= 0 {
		cfg.ShortBreakMinutes = defaultShortBreakMinutes
	}

	if cfg.LongBreakMinutes <= 0 {
		cfg.LongBreakMinutes = defaultLongBreakMinutes
	}

	if cfg.LongBreakInterval <= 0 {
		cfg.LongBreakInterval = defaultLongBreakInterval
	}

	if cfg.StatusFIFO == "" {
		cfg.StatusFIFO = defaultStatusFIFO
	}

	if cfg.CommandFIFO == "" {
		cfg.CommandFIFO = defaultCommandFIFO
	}
}

// setDefaults sets the daemon's default configuration values.
func setDefaults() {
	viper.SetDefault(configWorkMinutes, defaultWorkMinutes)
	viper.SetDefault(configShortBreakMinutes, defaultShortBreakMinutes)
	viper.SetDefault(configLongBreakMinutes, defaultLongBreakMinutes)
	viper.SetDefault(configLongBreakInterval, defaultLongBreakInterval)
	viper.SetDefault(configWorkSound, "")
	viper.SetDefault(configBreakSound, "")
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configDBPath, "")
	viper.SetDefault(configStatusFIFO, defaultStatusFIFO)
	viper.SetDefault(configCommandFIFO, defaultCommandFIFO)
	viper.SetDefault(configLogPath, "")
}

// Get initializes and returns the daemon configuration. The
// initialization is done just once no matter how many times it is
// called.
func Get(ctx *cli.Context) *DaemonConfig {
	once.Do(func() {
		err := initDaemonConfig()
		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}

		err = setDaemonConfig(ctx)
		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}
	})

	return daemonCfg
}
