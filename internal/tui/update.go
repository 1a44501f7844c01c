package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		w := msg.Width/2 - 6
		if w < 20 {
			w = 20
		}
		m.Preview.Width = w
		m.Preview.Height = msg.Height - 8
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Choice = nil
			m.quit = true
			return m, tea.Quit

		case "enter":
			m.Choice = m.Selected()
			m.quit = true
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.refreshPreview()
			}
			return m, nil

		case "down", "ctrl+n":
			if m.SelectedIdx < len(m.Filtered)-1 {
				m.SelectedIdx++
				m.refreshPreview()
			}
			return m, nil
		}

		var cmd tea.Cmd
		before := m.Input.Value()
		m.Input, cmd = m.Input.Update(msg)
		if m.Input.Value() != before {
			m.Filtered = matchTargets(m.Targets, m.Input.Value())
			m.SelectedIdx = 0
			m.refreshPreview()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.Preview, cmd = m.Preview.Update(msg)
	return m, cmd
}
