// Vibe Stylist TUI
// Основная точка входа для интерактивного интерфейса
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/vibe-stylist/internal/app"
	"github.com/ilkoid/vibe-stylist/internal/ui"
	"github.com/ilkoid/vibe-stylist/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 0. Инициализируем логгер
	if err := utils.InitLogger(); err != nil {
		log.Printf("Warning: failed to init logger: %v", err)
	}
	defer utils.Close()

	utils.Info("Stylist started", "version", "1.0")

	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	// 1. Собираем компоненты: конфиг, каталог, словарь, движок
	components, err := app.Bootstrap(context.Background(), cfgPath)
	if err != nil {
		utils.Error("Bootstrap failed", "error", err, "path", cfgPath)
		return err
	}

	utils.Info("Engine ready",
		"items", components.Store.Len(),
		"chat_model", components.Config.Models.DefaultChat,
		"embedding_model", components.Config.Models.DefaultEmbedding)

	// 2. Инициализируем TUI модель
	session := ui.NewSession(components.Recommender, components.Store, components.Vocab)
	tuiModel := ui.InitialModel(session)

	// 3. Запускаем Bubble Tea программу
	utils.Info("Starting TUI")

	p := tea.NewProgram(
		tuiModel,
		// Без AltScreen - позволяет выделять текст мышкой и копировать в буфер обмена
	)

	if _, err := p.Run(); err != nil {
		utils.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	utils.Info("Stylist exited normally")
	return nil
}
