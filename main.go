package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/agrovision/kiosk-go/cmd"
	"github.com/agrovision/kiosk-go/internal/conf"
	"github.com/agrovision/kiosk-go/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init()
	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
		logging.SetLevel(level)
	}
	if settings.Main.Log.Enabled {
		closeLog, err := logging.EnableFileLogging(settings.Main.Log.Path, level, logging.FileLoggerOptions{
			MaxSizeMB:  settings.Main.Log.MaxSizeMB,
			MaxBackups: settings.Main.Log.MaxBackups,
			MaxAgeDays: settings.Main.Log.MaxAgeDays,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		} else {
			defer func() { _ = closeLog() }()
		}
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command error: %v\n", err)
		os.Exit(1)
	}
}
