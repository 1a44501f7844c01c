// Package tui implements the interactive fuzzy target picker.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maki-build/maki/pkg/task"
)

// PickerModel holds the picker state.
type PickerModel struct {
	Targets []task.Target

	// Filtered holds indices into Targets currently visible, in rank
	// order (exact prefix matches first, then subsequence matches).
	Filtered    []int
	SelectedIdx int

	Input      textinput.Model
	Preview    viewport.Model
	WindowSize tea.WindowSizeMsg

	// Choice is set when the user confirms a target; nil after ESC.
	Choice *task.Target
	quit   bool
}

// NewPicker creates a picker over the given targets.
func NewPicker(targets []task.Target) PickerModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter targets..."
	ti.CharLimit = 80
	ti.Focus()

	m := PickerModel{
		Targets: targets,
		Input:   ti,
		Preview: viewport.New(40, 16),
	}
	m.Filtered = matchTargets(targets, "")
	m.refreshPreview()
	return m
}

// refreshPreview loads the selected target's makefile snippet and
// variable list into the preview pane.
func (m *PickerModel) refreshPreview() {
	sel := m.Selected()
	if sel == nil {
		m.Preview.SetContent("")
		return
	}
	m.Preview.SetContent(previewContent(*sel))
	m.Preview.GotoTop()
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Selected returns the currently highlighted target, or nil when the
// filter matches nothing.
func (m PickerModel) Selected() *task.Target {
	if len(m.Filtered) == 0 || m.SelectedIdx >= len(m.Filtered) {
		return nil
	}
	t := m.Targets[m.Filtered[m.SelectedIdx]]
	return &t
}

// Pick runs the picker and returns the chosen target, or nil when the
// user cancelled.
func Pick(targets []task.Target) (*task.Target, error) {
	p := tea.NewProgram(NewPicker(targets), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(PickerModel).Choice, nil
}
