package config

import (
	"os"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

func resetEnv(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	xdg.Reload()
	viper.Reset()

	daemonCfg = &DaemonConfig{}
}

func TestDefaultsWrittenOnFirstRun(t *testing.T) {
	resetEnv(t)

	if err := initDaemonConfig(); err != nil {
		t.Fatal(err)
	}

	if err := setDaemonConfig(nil); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(daemonCfg.PathToConfig); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	if daemonCfg.WorkMinutes != defaultWorkMinutes {
		t.Fatalf(
			"expected work duration %d, got %d",
			defaultWorkMinutes,
			daemonCfg.WorkMinutes,
		)
	}

	if daemonCfg.ShortBreakMinutes != defaultShortBreakMinutes {
		t.Fatalf(
			"expected short break duration %d, got %d",
			defaultShortBreakMinutes,
			daemonCfg.ShortBreakMinutes,
		)
	}

	if daemonCfg.LongBreakInterval != defaultLongBreakInterval {
		t.Fatalf(
			"expected long break interval %d, got %d",
			defaultLongBreakInterval,
			daemonCfg.LongBreakInterval,
		)
	}

	if !daemonCfg.Notify {
		t.Fatal("expected notifications to default to enabled")
	}

	if daemonCfg.StatusFIFO != defaultStatusFIFO ||
		daemonCfg.CommandFIFO != defaultCommandFIFO {
		t.Fatalf(
			"unexpected channel paths: %s, %s",
			daemonCfg.StatusFIFO,
			daemonCfg.CommandFIFO,
		)
	}

	if daemonCfg.PathToDB == "" || daemonCfg.PathToLog == "" {
		t.Fatal("expected db and log paths to be derived")
	}
}

func TestSanitizeReplacesUnusableValues(t *testing.T) {
	cfg := &DaemonConfig{
		WorkMinutes:       -2,
		ShortBreakMinutes: 0,
		LongBreakMinutes:  30,
		LongBreakInterval: 0,
	}

	sanitize(cfg)

	if cfg.WorkMinutes != defaultWorkMinutes {
		t.Fatalf("expected default work duration, got %d", cfg.WorkMinutes)
	}

	if cfg.ShortBreakMinutes != defaultShortBreakMinutes {
		t.Fatalf(
			"expected default short break duration, got %d",
			cfg.ShortBreakMinutes,
		)
	}

	// valid values are kept
	if cfg.LongBreakMinutes != 30 {
		t.Fatalf("expected long break duration 30, got %d", cfg.LongBreakMinutes)
	}

	if cfg.LongBreakInterval != defaultLongBreakInterval {
		t.Fatalf(
			"expected default long break interval, got %d",
			cfg.LongBreakInterval,
		)
	}
}
