package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inklab/inkdoc/pkg/document"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// layerTreeModel - Interactive layer tree browser
// =============================================================================

// treeRow is one visible line of the flattened layer tree.
type treeRow struct {
	node  *document.Node
	depth int
}

// layerTreeModel is the bubbletea model for browsing a document's layer
// tree. Collapsed groups hide their children; visibility and lock
// toggles mutate the in-memory document only.
type layerTreeModel struct {
	doc     *document.Document
	rows    []treeRow
	cursor  int
	height  int
	offset  int
	mutated bool
}

// newLayerTreeModel creates a tree browser over doc.
func newLayerTreeModel(doc *document.Document) layerTreeModel {
	m := layerTreeModel{doc: doc, height: 15}
	m.rebuild()
	return m
}

// rebuild recomputes the visible rows after a structural change.
// Topmost layers come first to match the editor's panel ordering.
func (m *layerTreeModel) rebuild() {
	m.rows = m.rows[:0]
	m.appendChildren("", 0)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *layerTreeModel) appendChildren(parentID string, depth int) {
	children := m.doc.Stack().Children(parentID)
	for i := len(children) - 1; i >= 0; i-- {
		n := children[i]
		m.rows = append(m.rows, treeRow{node: n, depth: depth})
		if n.IsGroup() && n.Expanded {
			m.appendChildren(n.ID, depth+1)
		}
	}
}

func (m layerTreeModel) Init() tea.Cmd {
	return nil
}

func (m layerTreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			if n := m.current(); n != nil && n.IsGroup() {
				_ = m.doc.Stack().ToggleExpanded(n.ID)
				m.rebuild()
			}
		case "v":
			if n := m.current(); n != nil {
				_ = m.doc.Stack().ToggleVisibility(n.ID)
				m.mutated = true
			}
		case "l":
			if n := m.current(); n != nil {
				_ = m.doc.Stack().ToggleLocked(n.ID)
				m.mutated = true
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m layerTreeModel) current() *document.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

func (m layerTreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.doc.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand/collapse  v visibility  l lock  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	stack := m.doc.Stack()
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		n := row.node

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := "•"
		if n.IsGroup() {
			marker = "▸"
			if n.Expanded {
				marker = "▾"
			}
		}

		var tags []string
		if !stack.EffectivelyVisible(n) {
			tags = append(tags, "hidden")
		}
		if stack.EffectivelyLocked(n) {
			tags = append(tags, "locked")
		}
		if len(n.Effects) > 0 {
			tags = append(tags, fmt.Sprintf("fx:%d", len(n.Effects)))
		}

		line := cursor + strings.Repeat("  ", row.depth) + marker + " " + n.Name
		if len(tags) > 0 {
			line += "  [" + strings.Join(tags, " ") + "]"
		}

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !stack.EffectivelyVisible(n):
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}
