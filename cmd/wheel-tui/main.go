package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/DoyleJ11/spin-wheel/internal/config"
	"github.com/DoyleJ11/spin-wheel/internal/config/env"
	"github.com/DoyleJ11/spin-wheel/internal/options"
	"github.com/DoyleJ11/spin-wheel/internal/tui"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "options server base URL, empty to run offline")
	logFile := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	if err := config.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	wheelCfg, err := env.NewWheelConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to a file.
	logger := zap.NewNop()
	if *logFile != "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{*logFile}
		cfg.ErrorOutputPaths = []string{*logFile}
		if logger, err = cfg.Build(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer func() { _ = logger.Sync() }()

	cfg := tui.Config{Duration: wheelCfg.Duration(), Logger: logger}
	if *server != "" {
		cfg.Generator = options.NewClient(*server, nil)
	}
	m, err := tui.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
