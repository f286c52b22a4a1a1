package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bedrockgen/internal/config"
	"bedrockgen/internal/stage"
)

// promptModel asks the init questions one at a time. Each answer is applied
// to a scratch config on Enter; an answer the config rejects keeps the
// question open with the error shown below it.
type promptModel struct {
	questions []stage.ConfigQuestion
	inputs    []textinput.Model
	cfg       *config.Config
	idx       int
	err       error
	done      bool
}

func newPromptModel(questions []stage.ConfigQuestion) promptModel {
	m := promptModel{
		questions: questions,
		inputs:    make([]textinput.Model, len(questions)),
		cfg:       config.Default(),
	}
	for i, q := range questions {
		m.inputs[i] = textinput.New()
		m.inputs[i].Placeholder = q.Default
		m.inputs[i].CharLimit = 512
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

func (m promptModel) Init() tea.Cmd { return textinput.Blink }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.inputs) == 0 {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyShiftTab:
		return m.focus(m.idx - 1)
	case tea.KeyEnter:
		q := m.questions[m.idx]
		if err := m.cfg.Set(q.Key, m.value(m.idx)); err != nil {
			m.err = err
			return m, nil
		}
		if m.idx == len(m.inputs)-1 {
			m.done = true
			return m, tea.Quit
		}
		return m.focus(m.idx + 1)
	}
	m.err = nil
	var cmd tea.Cmd
	m.inputs[m.idx], cmd = m.inputs[m.idx].Update(msg)
	return m, cmd
}

// focus moves to question i, staying put at either end.
func (m promptModel) focus(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.inputs) {
		return m, nil
	}
	m.inputs[m.idx].Blur()
	m.idx = i
	m.err = nil
	return m, m.inputs[i].Focus()
}

func (m promptModel) View() string {
	if m.done || len(m.questions) == 0 {
		return ""
	}
	var b strings.Builder
	q := m.questions[m.idx]
	fmt.Fprintf(&b, "(%d/%d) %s [%s]: %s\n", m.idx+1, len(m.questions), q.Prompt, q.Key, m.inputs[m.idx].View())
	if m.err != nil {
		fmt.Fprintf(&b, "  %v\n", m.err)
	}
	return b.String()
}

// value is the typed answer to question i, or its default when blank.
func (m promptModel) value(i int) string {
	if v := strings.TrimSpace(m.inputs[i].Value()); v != "" {
		return v
	}
	return m.questions[i].Default
}

// answers returns every answer keyed by question key.
func (m promptModel) answers() map[string]string {
	out := make(map[string]string, len(m.questions))
	for i, q := range m.questions {
		out[q.Key] = m.value(i)
	}
	return out
}

// promptQuestions runs the TUI and returns answers keyed by ConfigQuestion.Key.
func promptQuestions(questions []stage.ConfigQuestion) (map[string]string, error) {
	if len(questions) == 0 {
		return map[string]string{}, nil
	}
	result, err := tea.NewProgram(newPromptModel(questions)).Run()
	if err != nil {
		return nil, err
	}
	final, ok := result.(promptModel)
	if !ok || !final.done {
		return nil, fmt.Errorf("prompt cancelled")
	}
	return final.answers(), nil
}
