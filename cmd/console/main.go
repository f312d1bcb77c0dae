package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/voctools/voc-console/internal/config"
	"github.com/voctools/voc-console/internal/console"
	"github.com/voctools/voc-console/internal/voc"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConsole()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	chatClient := console.NewChatClient(cfg.ChatURL, cfg.ChatTimeout)
	vocClient := voc.NewClient(cfg.VocAPIBaseURL, cfg.VocAPITimeout)

	model := console.NewModel(chatClient, vocClient)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "console:", err)
		os.Exit(1)
	}
}
