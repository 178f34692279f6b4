// Package tui is the interactive endpoint picker. It owns no document
// semantics: it renders the display list computed by rank and mutates only
// the selection set, which the caller reads back after the program exits.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/apisnip/apisnip/internal/rank"
	"github.com/apisnip/apisnip/internal/spec"
)

const detailHeight = 10

type Model struct {
	infile    string
	items     []rank.Item
	visible   []rank.Item
	selection map[spec.Endpoint]bool
	ops       map[spec.Endpoint]*spec.Operation
	pathItems map[string]*spec.PathItem
	weights   rank.Weights
	keys      keyMap

	cursor int
	offset int
	width  int
	height int

	search    textinput.Model
	searching bool

	write bool
}

func New(doc *spec.Document, infile string, weights rank.Weights) Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "type to filter endpoints"

	m := Model{
		infile:    infile,
		selection: make(map[spec.Endpoint]bool),
		ops:       make(map[spec.Endpoint]*spec.Operation),
		pathItems: make(map[string]*spec.PathItem),
		weights:   weights,
		keys:      defaultKeyMap(),
		search:    search,
	}

	for _, item := range doc.Paths {
		m.pathItems[item.Path] = item
		for _, op := range item.Operations {
			summary := op.Summary
			if summary == "" {
				summary = item.Summary
			}
			m.items = append(m.items, rank.Item{
				Endpoint:    op.Endpoint,
				Index:       op.Index,
				Summary:     summary,
				Description: op.Description,
			})
			m.ops[op.Endpoint] = op
		}
	}

	m.refresh()
	return m
}

// Selection returns the chosen endpoints. Valid once the program has exited.
func (m Model) Selection() map[spec.Endpoint]bool {
	return m.selection
}

// ShouldWrite reports whether the session ended with "write and quit".
func (m Model) ShouldWrite() bool {
	return m.write
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(10, msg.Width-6)
		m.clamp()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg), nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearching(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Write):
		m.write = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.tableRows())
	case key.Matches(msg, m.keys.PageDown):
		m.move(m.tableRows())
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.clamp()
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.visible) - 1
		m.clamp()
	}
	return m, nil
}

func (m Model) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.LeaveSearch):
		// Leaving search reverts to browse order with no memory of scores.
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.ClearSearch):
		m.search.SetValue("")
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
		return m, nil
	case key.Matches(msg, m.keys.CursorUp):
		m.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.CursorDown):
		m.move(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.tableRows())
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.move(m.tableRows())
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.move(-1)
		case tea.MouseButtonWheelDown:
			m.move(1)
		case tea.MouseButtonLeft:
			// Row 0 is the border, row 1 the header.
			row := msg.Y - 2 + m.offset
			if row >= 0 && row < len(m.visible) {
				m.cursor = row
			}
		}
	}
	return m
}

// toggle flips the endpoint under the cursor and advances, like the
// original picker. The list re-sorts so selected endpoints group first.
func (m *Model) toggle() {
	if m.cursor >= len(m.visible) {
		return
	}
	e := m.visible[m.cursor].Endpoint
	if m.selection[e] {
		delete(m.selection, e)
	} else {
		m.selection[e] = true
	}
	m.refresh()
	m.move(1)
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clamp()
}

func (m *Model) refresh() {
	m.visible = rank.Display(m.items, m.selection, m.search.Value(), m.weights)
	m.clamp()
}

func (m *Model) clamp() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.tableRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if rows > 0 && m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// tableRows is the number of endpoint rows that fit above the detail pane.
func (m *Model) tableRows() int {
	chrome := detailHeight + 2 // table border + header
	if m.searching {
		chrome += 2
	}
	rows := m.height - chrome
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) selectedCount() int {
	return len(m.selection)
}
