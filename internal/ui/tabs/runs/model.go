// Package runs provides the run list tab with inline category and loot editing.
package runs

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/veyl/abyssal-tracker-tui/internal/app"
	"github.com/veyl/abyssal-tracker-tui/internal/services"
)

// editField identifies which input is focused while editing.
type editField int

const (
	fieldCategory editField = iota
	fieldItems
)

// keyMap defines the key bindings specific to the runs tab.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Save   key.Binding
	Switch key.Binding
	Cancel key.Binding
	Import key.Binding
}

// defaultKeyMap returns the default key bindings for the runs tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev run"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next run"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit run"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch field"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import history"),
		),
	}
}

// Model represents the runs tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int

	editing       bool
	focused       editField
	editingID     int64
	categoryInput textinput.Model
	itemsInput    textinput.Model
}

// New creates a new runs model.
func New(state *app.State, svc *services.Manager) *Model {
	category := textinput.New()
	category.Placeholder = "T5 Electrical"
	category.CharLimit = 64
	category.Width = 30

	items := textinput.New()
	items.Placeholder = "Condensed Isogen*5; Zero-Point Condensate*12"
	items.CharLimit = 2048
	items.Width = 60

	return &Model{
		state:         state,
		services:      svc,
		keys:          defaultKeyMap(),
		viewport:      viewport.New(0, 0),
		categoryInput: category,
		itemsInput:    items,
	}
}

// Init initializes the runs tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// CapturingInput reports whether a text field currently has focus.
func (m *Model) CapturingInput() bool {
	return m.editing
}

// Update handles messages for the runs tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleListKey(msg)

	case app.RunDetailsSavedMsg:
		if msg.Error == nil && m.editing && msg.ID == m.editingID {
			m.stopEditing()
		}
	}

	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	runs := m.state.GetRuns()
	count := len(runs)
	idx := m.state.GetSelectedRunIndex()

	switch {
	case key.Matches(msg, m.keys.Up):
		if count > 0 {
			m.state.SetSelectedRunIndex((idx - 1 + count) % count)
		}
	case key.Matches(msg, m.keys.Down):
		if count > 0 {
			m.state.SetSelectedRunIndex((idx + 1) % count)
		}
	case key.Matches(msg, m.keys.Edit):
		if count > 0 && idx < count {
			m.startEditing(runs[idx].ID, runs[idx].Category, runs[idx].ItemText)
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil

	case key.Matches(msg, m.keys.Switch):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()
	}

	var cmd tea.Cmd
	if m.focused == fieldCategory {
		m.categoryInput, cmd = m.categoryInput.Update(msg)
	} else {
		m.itemsInput, cmd = m.itemsInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) startEditing(id int64, category, itemText string) {
	m.editing = true
	m.editingID = id
	m.focused = fieldCategory
	m.categoryInput.SetValue(category)
	m.itemsInput.SetValue(itemText)
	m.categoryInput.Focus()
	m.itemsInput.Blur()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.editingID = 0
	m.categoryInput.Blur()
	m.itemsInput.Blur()
}

func (m *Model) toggleFocus() {
	if m.focused == fieldCategory {
		m.focused = fieldItems
		m.categoryInput.Blur()
		m.itemsInput.Focus()
	} else {
		m.focused = fieldCategory
		m.itemsInput.Blur()
		m.categoryInput.Focus()
	}
}

// saveCmd persists the edited fields through the service manager.
func (m *Model) saveCmd() tea.Cmd {
	id := m.editingID
	category := m.categoryInput.Value()
	itemText := m.itemsInput.Value()
	svc := m.services

	return func() tea.Msg {
		if svc == nil {
			return app.RunDetailsSavedMsg{ID: id}
		}
		err := svc.RecordRunDetails(id, category, itemText)
		return app.RunDetailsSavedMsg{ID: id, Error: err}
	}
}

// SetSize sets the available size for the runs tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.itemsInput.Width = max(width-30, 30)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.editing {
		return []key.Binding{m.keys.Switch, m.keys.Save, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Edit, m.keys.Import}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Edit, m.keys.Import},
		{m.keys.Switch, m.keys.Save, m.keys.Cancel},
	}
}
