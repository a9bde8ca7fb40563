// Логика - Обрабатывает нажатия клавиш и результаты команд.

package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/vibe-stylist/pkg/match"
)

// commandResultMsg - сообщение, которое возвращает worker после работы
type commandResultMsg struct {
	Output  string
	Results []match.Result // Непустой для запросов подбора: обновляет LastResults
	Err     error
}

const queryTimeout = 60 * time.Second

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	switch msg := msg.(type) {

	// 1. Изменение размера окна терминала
	case tea.WindowSizeMsg:
		headerHeight := 1
		footerHeight := m.textarea.Height() + 2 // + граница

		vpHeight := msg.Height - headerHeight - footerHeight
		if vpHeight < 0 {
			vpHeight = 0
		}

		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
		m.textarea.SetWidth(msg.Width)

		if !m.ready {
			m.ready = true
		}

	// 2. Клавиши
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			if m.isProcessing {
				m.appendLog(dimStyle("... busy, wait for the current request"))
				return m, nil
			}

			m.textarea.Reset()
			m.appendLog(userMsgStyle("YOU > ") + input)

			// Слэш-команды обрабатываются синхронно, запросы — асинхронно
			if strings.HasPrefix(input, "/") {
				return m.handleSlashCommand(input)
			}

			m.isProcessing = true
			return m, performQuery(m.session, input)
		}

	// 3. Результат выполнения команды (прилетел асинхронно)
	case commandResultMsg:
		m.isProcessing = false
		if msg.Err != nil {
			m.appendLog(errorMsgStyle("ERROR: ") + msg.Err.Error())
		} else {
			m.appendLog(msg.Output)
			// LastResults обновляем здесь: Update однопоточен
			if msg.Results != nil {
				m.session.LastResults = msg.Results
			}
		}
		m.textarea.Focus()
	}

	return m, tea.Batch(tiCmd, vpCmd)
}

// handleSlashCommand выполняет команды настройки сессии.
func (m MainModel) handleSlashCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "/help":
		m.appendLog(systemMsgStyle(helpText))

	case "/quit":
		return m, tea.Quit

	case "/strategy":
		if len(args) < 1 {
			m.appendLog(errorMsgStyle("usage: ") + "/strategy rule_based|embedding_based|llm_based|hybrid")
			return m, nil
		}
		strategy, err := match.ParseStrategy(args[0])
		if err != nil {
			m.appendLog(errorMsgStyle("ERROR: ") + err.Error())
			return m, nil
		}
		m.session.Strategy = strategy
		m.appendLog(systemMsgStyle(fmt.Sprintf("Strategy set to %s", strategy)))

	case "/max":
		if len(args) < 1 {
			m.appendLog(errorMsgStyle("usage: ") + "/max <n>")
			return m, nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			m.appendLog(errorMsgStyle("ERROR: ") + fmt.Sprintf("max results must be a positive number, got '%s'", args[0]))
			return m, nil
		}
		m.session.MaxResults = n
		m.appendLog(systemMsgStyle(fmt.Sprintf("Max results set to %d", n)))

	case "/category":
		if len(args) < 1 {
			m.session.Options.Category = ""
			m.appendLog(systemMsgStyle("Category filter cleared"))
			return m, nil
		}
		m.session.Options.Category = args[0]
		m.appendLog(systemMsgStyle(fmt.Sprintf("Category filter: %s", args[0])))

	case "/budget":
		budget, err := parseBudgetArgs(args)
		if err != nil {
			m.appendLog(errorMsgStyle("ERROR: ") + err.Error())
			return m, nil
		}
		m.session.Options.Budget = budget
		m.appendLog(systemMsgStyle(fmt.Sprintf("Budget window: $%.0f - $%.0f (0 = unset)", budget.Min, budget.Max)))

	case "/compare":
		if len(args) < 1 {
			m.appendLog(errorMsgStyle("usage: ") + "/compare fit=relaxed; fabric=linen")
			return m, nil
		}
		m.isProcessing = true
		return m, performCompare(m.session, strings.TrimPrefix(input, "/compare "))

	case "/explain":
		if len(args) < 1 {
			m.appendLog(errorMsgStyle("usage: ") + "/explain <rank from the last list>")
			return m, nil
		}
		rank, err := strconv.Atoi(args[0])
		if err != nil || rank < 1 || rank > len(m.session.LastResults) {
			m.appendLog(errorMsgStyle("ERROR: ") + fmt.Sprintf("no item at rank '%s' in the last list", args[0]))
			return m, nil
		}
		m.isProcessing = true
		return m, performExplain(m.session, m.session.LastResults[rank-1])

	default:
		m.appendLog(errorMsgStyle("ERROR: ") + fmt.Sprintf("unknown command '%s', try /help", cmd))
	}

	return m, nil
}

const helpText = `Commands:
  fit=relaxed; fabric=satin,silk   find recommendations for attributes
  /strategy <name>                 rule_based | embedding_based | llm_based | hybrid
  /max <n>                         how many results to show
  /category <name>                 filter by category (empty to clear)
  /budget <min> <max>              price window (0 = unset)
  /compare <attributes>            run every strategy side by side
  /explain <rank>                  explain an item from the last list
  /quit                            exit`

// performQuery — асинхронный подбор: парсит атрибуты и зовёт движок.
// Возвращает tea.Cmd, который выполнится в отдельной горутине, чтобы не завис UI.
func performQuery(s *Session, input string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		q, err := ParseAttrInput(input)
		if err != nil {
			return commandResultMsg{Err: err}
		}

		rec, err := s.Recommender.FindRecommendations(ctx, q, s.Strategy, s.MaxResults, &s.Options)
		if err != nil {
			return commandResultMsg{Err: err}
		}

		return commandResultMsg{
			Output:  renderRecommendation(rec),
			Results: rec.Results,
		}
	}
}

// performCompare прогоняет все стратегии для одного запроса.
func performCompare(s *Session, input string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		q, err := ParseAttrInput(input)
		if err != nil {
			return commandResultMsg{Err: err}
		}

		cmp, err := s.Recommender.CompareStrategies(ctx, q, s.MaxResults, &s.Options)
		if err != nil {
			return commandResultMsg{Err: err}
		}

		return commandResultMsg{Output: renderComparison(cmp)}
	}
}

// performExplain строит обоснование для товара из последней выдачи.
func performExplain(s *Session, res match.Result) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		return commandResultMsg{Output: systemMsgStyle("STYLIST: ") + s.Recommender.Explain(ctx, res)}
	}
}

func parseBudgetArgs(args []string) (match.Budget, error) {
	var budget match.Budget
	if len(args) >= 1 {
		min, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return match.Budget{}, fmt.Errorf("bad budget min '%s'", args[0])
		}
		budget.Min = min
	}
	if len(args) >= 2 {
		max, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return match.Budget{}, fmt.Errorf("bad budget max '%s'", args[1])
		}
		budget.Max = max
	}
	return budget, nil
}

// Хелпер для добавления строки в лог и прокрутки вниз
func (m *MainModel) appendLog(str string) {
	newContent := fmt.Sprintf("%s\n%s", m.viewport.View(), str)
	m.viewport.SetContent(newContent)
	m.viewport.GotoBottom()
}
