// tandem TUI - a terminal client for the tandem multi-assistant chat backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/tandem-tui/internal/api"
	"github.com/jeranaias/tandem-tui/internal/config"
	"github.com/jeranaias/tandem-tui/internal/ui/chat"
	"github.com/jeranaias/tandem-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference so the config watcher can inject messages into the
// event loop.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func main() {
	var (
		baseURL     = flag.String("base-url", "", "backend origin (overrides config)")
		configPath  = flag.String("config", "", "path to a config file (TOML or JSON)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("tandem %s (%s, built %s, %s/%s)\n",
			Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, styles.RenderError("tandem requires an interactive terminal"))
		os.Exit(1)
	}

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		os.Exit(1)
	}

	// CLI flags override config
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
			os.Exit(1)
		}
	}

	// First run: materialize the active config so the user has a file to
	// edit and the watcher has a file to follow. Best effort; the client
	// runs fine without one.
	if *configPath == "" && config.AnyConfigFile() == "" {
		_ = config.Save(cfg)
	}

	// Initialize the theme
	theme := styles.NewTheme()

	// Create the API client from config
	client := api.NewClient(&api.ClientConfig{
		BaseURL:     cfg.BaseURL,
		SendTimeout: time.Duration(cfg.SendTimeoutSecs) * time.Second,
	})

	m := chat.New(client, cfg, theme)

	opts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, opts...)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// Follow config file edits while running. Reloads flow into the event
	// loop as messages; a failed watcher setup is not fatal.
	if watcher := startConfigWatcher(*configPath); watcher != nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("tandem exited: "+err.Error()))
		os.Exit(1)
	}
}

// startConfigWatcher watches the active config file and forwards reloads to
// the running program. Returns nil when there is no file to watch.
func startConfigWatcher(explicitPath string) *config.Watcher {
	path := explicitPath
	if path == "" {
		path = config.AnyConfigFile()
	}
	if path == "" {
		return nil
	}

	watcher, err := config.NewWatcher(path, func(cfg *config.Config) {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(chat.ConfigReloadedMsg{Config: cfg})
		}
	})
	if err != nil {
		return nil
	}
	if err := watcher.Watch(); err != nil {
		watcher.Close()
		return nil
	}
	return watcher
}
