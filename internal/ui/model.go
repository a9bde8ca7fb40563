// Package ui реализует Model компонент Bubble Tea TUI.
//
// Консольный стилист: пользователь вводит атрибуты желаемой вещи,
// движок подбора отвечает ранжированным списком товаров.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// MainModel представляет главную модель UI (Bubble Tea Model).
//
// Содержит компоненты TUI:
//   - viewport: область лога диалога (только для чтения)
//   - textarea: поле ввода пользователя
//   - session: состояние стилиста (движок, стратегия, последняя выдача)
type MainModel struct {
	viewport viewport.Model
	textarea textarea.Model
	session  *Session

	isProcessing bool // Флаг занятости: запрос уже выполняется
	ready        bool // Флаг первой инициализации размеров окна
}

// InitialModel создает начальное состояние UI.
func InitialModel(session *Session) MainModel {
	// 1. Настройка поля ввода
	ta := textarea.New()
	ta.Placeholder = "fit=relaxed; fabric=linen  (или /help)"
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 500
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	// 2. Настройка вьюпорта (лог диалога)
	// Размеры (0,0) обновятся при первом событии WindowSizeMsg
	vp := viewport.New(0, 0)
	vp.SetContent(fmt.Sprintf("%s\n%s\n",
		systemMsgStyle(fmt.Sprintf("Vibe Stylist ready. Catalog: %d items.", session.Store.Len())),
		systemMsgStyle("Describe the piece you want, e.g.: fit=relaxed; fabric=linen"),
	))

	return MainModel{
		textarea: ta,
		viewport: vp,
		session:  session,
		ready:    false,
	}
}

// Init запускается один раз при старте Bubble Tea программы.
func (m MainModel) Init() tea.Cmd {
	return textarea.Blink
}
