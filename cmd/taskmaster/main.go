package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskmaster-tui/internal/api"
	"taskmaster-tui/internal/app"
	"taskmaster-tui/internal/cache"
	"taskmaster-tui/internal/model"
	"taskmaster-tui/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "taskmaster:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return err
	}

	cachePath := model.DefaultCachePath()
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	c, err := cache.New(cachePath)
	if err != nil {
		return err
	}
	defer c.Close()

	sess, err := session.Open(c)
	if err != nil {
		return err
	}

	client := api.NewClient(
		cfg.Backend.BaseURL,
		sess,
		time.Duration(cfg.Backend.TimeoutSec)*time.Second,
	)

	refreshInterval := time.Duration(cfg.Display.RefreshIntervalSec) * time.Second
	m := app.New(sess, client, c, refreshInterval)

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
