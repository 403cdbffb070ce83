package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"loupe/internal/config"
	"loupe/internal/tui"
)

func main() {
	cfg, err := config.LoadFromDefaultPath()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	root := cfg.LogDir
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	p := tea.NewProgram(tui.NewModel(tui.Options{Root: root, Config: cfg}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
