package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/maki-build/maki/pkg/task"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	unselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

const maxVisible = 15

// View implements tea.Model.
func (m PickerModel) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("maki"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d targets", len(m.Filtered), len(m.Targets))))
	b.WriteString("\n\n")
	b.WriteString("> " + m.Input.View())
	b.WriteString("\n\n")

	list := m.renderList()
	preview := m.renderPreview()

	if m.WindowSize.Width >= 80 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", preview))
	} else {
		b.WriteString(list)
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter: run  ↑/↓: move  esc: cancel"))
	return b.String()
}

func (m PickerModel) renderList() string {
	if len(m.Filtered) == 0 {
		return dimStyle.Render("  no matching targets")
	}

	start := 0
	if m.SelectedIdx >= maxVisible {
		start = m.SelectedIdx - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(m.Filtered) {
		end = len(m.Filtered)
	}

	var rows []string
	for i := start; i < end; i++ {
		t := m.Targets[m.Filtered[i]]
		if i == m.SelectedIdx {
			rows = append(rows, selectedStyle.Render("▸ "+t.Name)+dimStyle.Render(descSuffix(t.Description)))
		} else {
			rows = append(rows, unselectedStyle.Render("  "+t.Name)+dimStyle.Render(descSuffix(t.Description)))
		}
	}
	return strings.Join(rows, "\n")
}

func descSuffix(desc string) string {
	if desc == "" {
		return ""
	}
	return "  " + desc
}

func (m PickerModel) renderPreview() string {
	if m.Selected() == nil {
		return ""
	}
	return previewStyle.Render(m.Preview.View())
}

// previewContent builds the preview pane text for a target.
func previewContent(sel task.Target) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s:%d", sel.File, sel.Line)))
	b.WriteString("\n")
	if snippet := snippetFor(sel.File, sel.Line); snippet != "" {
		b.WriteString(snippet)
	}
	if len(sel.RequiredVars) > 0 {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("variables:"))
		for _, v := range sel.RequiredVars {
			b.WriteString("\n  " + v.Name)
			if v.Hint != "" {
				b.WriteString(dimStyle.Render(" (" + v.Hint + ")"))
			}
		}
	}
	return b.String()
}
