package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/EgorK19/pydeps/pkg/report"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ReportListModel - Interactive report selection
// =============================================================================

// ReportListModel is the bubbletea model for picking a saved report from
// the analysis history.
type ReportListModel struct {
	Reports  []*report.Report
	Cursor   int
	Selected *report.Report
	Height   int
	Offset   int
}

// NewReportListModel creates a new report list model.
func NewReportListModel(reports []*report.Report) ReportListModel {
	return ReportListModel{
		Reports: reports,
		Height:  15,
	}
}

func (m ReportListModel) Init() tea.Cmd {
	return nil
}

func (m ReportListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Reports)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Reports[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ReportListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Analysis History"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Reports) {
		end = len(m.Reports)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Reports[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			r.Package,
			r.Mode,
			reportSourceLabel(r.Source),
			fmt.Sprintf("%d", len(r.Specifiers)),
			formatRelativeTime(r.CreatedAt),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Mode", "Source", "Deps", "When").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Reports) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				if col == 5 {
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				}
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 5 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Reports))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// reportSourceLabel renders the manifest-source field of a report, using a
// dash for runs where no manifest matched.
func reportSourceLabel(source string) string {
	if source == "" {
		return "—"
	}
	return source
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
