// Package main is the entry point for the Abyssal Tracker TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veyl/abyssal-tracker-tui/internal/app"
	"github.com/veyl/abyssal-tracker-tui/internal/config"
	"github.com/veyl/abyssal-tracker-tui/internal/logger"
	"github.com/veyl/abyssal-tracker-tui/internal/services"
	"github.com/veyl/abyssal-tracker-tui/internal/ui/tabs/dashboard"
	"github.com/veyl/abyssal-tracker-tui/internal/ui/tabs/info"
	"github.com/veyl/abyssal-tracker-tui/internal/ui/tabs/runs"
	"github.com/veyl/abyssal-tracker-tui/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Route logging to a file; stderr would corrupt the alt screen
	if cfg.LogFilePath != "" {
		logFile, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err == nil {
			logger.SetOutput(logFile)
			defer logFile.Close()
		}
	}

	// 3. Initialize the service manager
	// This starts the log tailer and opens the run store
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 4. Create the root Bubble Tea model
	model := app.NewModel(svcManager)

	// 5. Initialize tabs with shared state and services
	state := model.GetState()
	tabs := []app.Tab{
		dashboard.New(state),        // Tab 0: Dashboard - live tracker and profit overview
		runs.New(state, svcManager), // Tab 1: Runs - run list with loot editing
		info.New(state, cfg),        // Tab 2: Info - configuration and app info
	}
	model.SetTabs(tabs)

	// 6. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 7. Create and configure the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Enable mouse support for selection
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	// 8. Run the TUI program
	// This blocks until the user quits or an error occurs
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Abyssal Tracker TUI - Run detection and profit analysis for EVE abyssal deadspace

Usage:
  abt [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-3             Switch between tabs (Dashboard, Runs, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  Enter           Select/edit
  i               Import runs from log history
  r               Refresh prices and re-analyze
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  LOGS_PATH          EVE chat log directory (default: ~/Documents/EVE/logs/Chatlogs)
  CHARACTER_NAME     Track only this character's logs
  LOG_LANGUAGE       Force log language ("en" or "ko", default: detected)
  DATABASE_PATH      SQLite database path
  TYPEID_CACHE_PATH  Type ID cache file path
  LOG_FILE_PATH      Application log file path
  POLL_INTERVAL      Log polling interval (default: 2s)
  MARKET_REGION_ID   Market region for prices (default: 10000002, The Forge)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/abyssal-tracker/.env
  - ~/.abyssal-tracker/.env`)
}
