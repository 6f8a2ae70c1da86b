package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/cloud/sink"
)

var (
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// PlacementListModel - Interactive placement browser
// =============================================================================

// PlacementListModel is the bubbletea model listing a layout's placements in
// placement order. Enter activates the highlighted label and quits, the
// terminal counterpart of clicking a label in the interactive SVG.
type PlacementListModel struct {
	Placements []layout.Placement
	Cursor     int
	Offset     int
	Height     int
	Activated  *layout.Placement
}

// NewPlacementListModel creates a browser over res.
func NewPlacementListModel(res layout.Result) PlacementListModel {
	return PlacementListModel{Placements: res.Placements, Height: 15}
}

func (m PlacementListModel) Init() tea.Cmd {
	return nil
}

func (m PlacementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Placements)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Placements)-1, 0)
		case "enter":
			if len(m.Placements) == 0 {
				return m, nil
			}
			p := m.Placements[m.Cursor]
			m.Activated = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-7, 5)
	}

	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

func (m PlacementListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Placements"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ activate  q quit"))
	b.WriteString("\n\n")

	if len(m.Placements) == 0 {
		b.WriteString(listDimStyle.Render("  no labels"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Placements))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		p := m.Placements[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		collisions := strconv.Itoa(p.Collisions)
		if p.Degraded {
			collisions = "degraded"
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(p.Order),
			p.Text,
			strconv.FormatFloat(p.Weight, 'g', 6, 64),
			strconv.FormatFloat(p.FontSize, 'f', 1, 64),
			fmt.Sprintf("%.0f,%.0f", p.Box.CenterX(), p.Box.CenterY()),
			collisions,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(listDimStyle).
		Headers("", "#", "Label", "Weight", "Size", "Center", "Collisions").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Placements) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case m.Placements[idx].Degraded:
				return StyleWarning
			case col == 1 || col == 5:
				return listDimStyle
			default:
				return StyleValue
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Placements))))

	return b.String()
}

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var words wordFlags
	opts := newLayoutOptions()

	cmd := &cobra.Command{
		Use:   "browse [labels|layout.json]",
		Short: "Browse a layout's placements in the terminal",
		Long: `Browse a layout's placements in the terminal.

Labels are listed biggest first with their size, center and collision
count. Pressing enter activates the highlighted label: its text is printed
to stdout, so 'browse' can feed a shell pipeline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			res, err := c.computeLayout(cmd.Context(), args[0], &words, opts)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewPlacementListModel(res), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			m, ok := final.(PlacementListModel)
			if !ok || m.Activated == nil {
				return nil
			}
			c.Logger.Debug(sink.ActivateEvent, "text", m.Activated.Text, "order", m.Activated.Order)
			fmt.Fprintln(c.Out, m.Activated.Text)
			return nil
		},
	}

	addLayoutFlags(cmd, &opts)
	words.register(cmd)

	return cmd
}
