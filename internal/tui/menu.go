package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Action is what a main menu entry does.
type Action int

const (
	ActionNone Action = iota
	ActionAdd
	ActionView
	ActionUpdate
	ActionSave
	ActionExit
)

type item struct {
	title, desc string
	action      Action
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type MenuModel struct {
	list   list.Model
	chosen Action
}

func NewMenuModel(t Theme) MenuModel {
	items := []list.Item{
		item{title: "Add Student", desc: "Record a student and their course grades", action: ActionAdd},
		item{title: "View All Students", desc: "List every student with their average", action: ActionView},
		item{title: "Update Student Grade", desc: "Change an existing course grade", action: ActionUpdate},
		item{title: "Save Data", desc: "Write the roster to the data file", action: ActionSave},
		item{title: "Exit", desc: "Quit the program", action: ActionExit},
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(t.Accent).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Accent).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(t.Dim)

	l := list.New(items, d, 50, 16)
	l.Title = "Student Grade Management System"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	// quitting goes through the app so autosave can run
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginLeft(2)

	return MenuModel{list: l}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update moves the selection. After enter, Chosen reports the picked action
// until the next Update.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	m.chosen = ActionNone

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.chosen = it.action
			}
			return m, nil
		case "1", "2", "3", "4", "5":
			idx := int(key.String()[0] - '1')
			m.list.Select(idx)
			if it, ok := m.list.SelectedItem().(item); ok {
				m.chosen = it.action
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) Chosen() Action {
	return m.chosen
}

func (m *MenuModel) SetSize(w, h int) {
	m.list.SetSize(w, h)
}

func (m MenuModel) View() string {
	return m.list.View()
}
