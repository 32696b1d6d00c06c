package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sankey/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// InspectModel - Interactive level and node browser
// =============================================================================

// InspectModel is the bubbletea model for `sankey inspect`. Left and right
// switch levels; up and down move through the nodes of the current level.
type InspectModel struct {
	Title    string
	Levels   []levelSummary
	Level    int // index into Levels
	Cursor   int // index into the current level's nodes
	Offset   int
	Height   int
	Decimals int
}

// NewInspectModel creates a browser positioned on the first level.
func NewInspectModel(title string, levels []levelSummary) InspectModel {
	return InspectModel{Title: title, Levels: levels, Height: 15}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Level > 0 {
				m.Level--
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l", "tab":
			if m.Level < len(m.Levels)-1 {
				m.Level++
				m.Cursor, m.Offset = 0, 0
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.current())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "+":
			m.Decimals = min(m.Decimals+1, render.MaxDecimals)
		case "-":
			m.Decimals = max(m.Decimals-1, render.MinDecimals)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m InspectModel) current() []nodeSummary {
	if m.Level < 0 || m.Level >= len(m.Levels) {
		return nil
	}
	return m.Levels[m.Level].Nodes
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ level  ↑/↓ node  +/- decimals  q quit"))
	b.WriteString("\n\n")

	var tabs []string
	for i, lvl := range m.Levels {
		label := fmt.Sprintf(" L%d (%d) ", lvl.Level, len(lvl.Nodes))
		if i == m.Level {
			tabs = append(tabs, listSelectedStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, listDimStyle.Render(" "+label+" "))
		}
	}
	b.WriteString(strings.Join(tabs, ""))
	b.WriteString("\n")

	nodes := m.current()
	if len(nodes) == 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  (empty level)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(nodes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(n.ID),
			n.Name,
			render.FormatValue(n.In, m.Decimals),
			render.FormatValue(n.Out, m.Decimals),
			n.Color,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "In", "Out", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 5 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(nodes))))
	return b.String()
}
