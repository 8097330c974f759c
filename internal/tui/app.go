package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeanpaul/gradekeeper/internal/diff"
	"github.com/jeanpaul/gradekeeper/internal/record"
	"github.com/jeanpaul/gradekeeper/internal/report"
	"github.com/jeanpaul/gradekeeper/internal/roster"
)

type screen int

const (
	screenMenu screen = iota
	screenAddStudent
	screenAddCourse
	screenUpdate
	screenView
)

// Form field indexes.
const (
	fieldName = 0
	fieldID   = 1

	fieldCourse = 0
	fieldGrade  = 1

	fieldUpdateID     = 0
	fieldUpdateCourse = 1
	fieldUpdateGrade  = 2
)

// Options configures the interactive front end.
type Options struct {
	DataFile       string
	Theme          string
	AutosaveOnExit bool
	Logger         zerolog.Logger
}

type Model struct {
	width, height int
	screen        screen
	store         *roster.Store
	opts          Options
	st            styles

	menu       MenuModel
	addForm    FormModel
	courseForm FormModel
	updateForm FormModel
	viewport   viewport.Model

	// student being built on the add screens
	pending *record.Student

	status    string
	statusErr bool
	dirty     bool
	quitting  bool
}

// NewModel builds the TUI around an already loaded store.
func NewModel(store *roster.Store, opts Options) Model {
	if opts.DataFile == "" {
		opts.DataFile = roster.DefaultFile
	}
	t := ThemeByName(opts.Theme)
	st := newStyles(t)

	return Model{
		screen:     screenMenu,
		store:      store,
		opts:       opts,
		st:         st,
		menu:       NewMenuModel(t),
		addForm:    NewFormModel(st, "Add Student", "Student name", "Student ID"),
		courseForm: NewFormModel(st, "Add Course", "Course name (empty or 'done' to finish)", "Grade"),
		updateForm: NewFormModel(st, "Update Student Grade", "Student ID", "Course name", "New grade"),
		viewport:   viewport.New(80, 20),
	}
}

// SetStatus sets the status line, e.g. with the startup load result.
func (m *Model) SetStatus(res roster.Result) {
	m.status = res.String()
	m.statusErr = !res.OK()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width, max(msg.Height-4, 5))
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-6, 3)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.keepPending()
			return m.quit()
		}
		if msg.String() == "esc" && m.screen != screenMenu {
			if m.screen == screenAddCourse {
				// leaving mid-way still keeps what was entered so far
				return m.finishStudent()
			}
			m.screen = screenMenu
			return m, nil
		}
	}

	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenAddStudent:
		return m.updateAddStudent(msg)
	case screenAddCourse:
		return m.updateAddCourse(msg)
	case screenUpdate:
		return m.updateGrade(msg)
	case screenView:
		return m.updateView(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q":
			return m.quit()
		case "d":
			m.screen = screenView
			m.viewport.SetContent(m.renderDiff())
			m.viewport.GotoTop()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	switch m.menu.Chosen() {
	case ActionAdd:
		m.screen = screenAddStudent
		cmd = m.addForm.Reset()
		return m, cmd
	case ActionView:
		m.screen = screenView
		m.viewport.SetContent(m.renderRoster())
		m.viewport.GotoTop()
	case ActionUpdate:
		m.screen = screenUpdate
		cmd = m.updateForm.Reset()
		return m, cmd
	case ActionSave:
		m.save()
	case ActionExit:
		return m.quit()
	}
	return m, cmd
}

func (m Model) updateAddStudent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.addForm, cmd = m.addForm.Update(msg)
	if !m.addForm.Submitted() {
		return m, cmd
	}

	m.pending = record.New(m.addForm.Value(fieldName), m.addForm.Value(fieldID))
	m.screen = screenAddCourse
	cmd = m.courseForm.Reset()
	return m, cmd
}

func (m Model) updateAddCourse(msg tea.Msg) (tea.Model, tea.Cmd) {
	// empty course name on the first field finishes right away
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && m.courseForm.focus == fieldCourse {
		if c := m.courseForm.Value(fieldCourse); c == "" || strings.EqualFold(c, "done") {
			return m.finishStudent()
		}
	}

	var cmd tea.Cmd
	m.courseForm, cmd = m.courseForm.Update(msg)
	if !m.courseForm.Submitted() {
		return m, cmd
	}

	course := m.courseForm.Value(fieldCourse)
	if course == "" || strings.EqualFold(course, "done") {
		return m.finishStudent()
	}
	grade, err := record.ParseGrade(m.courseForm.Value(fieldGrade))
	if err != nil {
		cmd = m.courseForm.SetError("Invalid grade. Please enter a number.", fieldGrade)
		return m, cmd
	}

	m.pending.AddCourse(course, grade)
	m.setStatus(fmt.Sprintf("%s: %s recorded (%d course(s) so far).", course, report.FormatGrade(grade), len(m.pending.Courses)), false)
	cmd = m.courseForm.Reset()
	return m, cmd
}

func (m Model) finishStudent() (tea.Model, tea.Cmd) {
	m.keepPending()
	m.screen = screenMenu
	return m, nil
}

// keepPending adds the student being entered, with the courses so far.
func (m *Model) keepPending() {
	if m.pending == nil {
		return
	}
	res := m.store.Add(m.pending)
	m.pending = nil
	m.dirty = true
	m.setStatus(res.String(), !res.OK())
}

func (m Model) updateGrade(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.updateForm, cmd = m.updateForm.Update(msg)
	if !m.updateForm.Submitted() {
		return m, cmd
	}

	id := m.updateForm.Value(fieldUpdateID)
	if _, res := m.store.Find(id); !res.OK() {
		cmd = m.updateForm.SetError(res.String(), fieldUpdateID)
		return m, cmd
	}
	grade, err := record.ParseGrade(m.updateForm.Value(fieldUpdateGrade))
	if err != nil {
		cmd = m.updateForm.SetError("Invalid grade input.", fieldUpdateGrade)
		return m, cmd
	}

	res := m.store.UpdateGrade(id, m.updateForm.Value(fieldUpdateCourse), grade)
	if !res.OK() {
		cmd = m.updateForm.SetError(res.String(), fieldUpdateCourse)
		return m, cmd
	}
	m.dirty = true
	m.setStatus(res.String(), false)
	m.screen = screenMenu
	return m, nil
}

func (m Model) updateView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "q" {
		m.screen = screenMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) save() {
	res, err := m.store.Save(m.opts.DataFile)
	if err != nil {
		m.opts.Logger.Error().Err(err).Msg("save failed")
		m.setStatus("Save failed: "+err.Error(), true)
		return
	}
	m.dirty = false
	m.setStatus(res.String(), false)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.opts.AutosaveOnExit && m.dirty {
		m.save()
	}
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m Model) renderRoster() string {
	students := m.store.Students()
	width := m.viewport.Width
	if out, err := report.Render(report.Markdown(students), width); err == nil {
		return out
	}
	return report.Plain(students)
}

// renderDiff shows what Save would change in the data file.
func (m Model) renderDiff() string {
	data, err := m.store.Encode()
	if err != nil {
		return "Cannot encode roster: " + err.Error()
	}
	d, err := diff.Unsaved(m.opts.DataFile, data)
	if err != nil {
		return "Cannot read " + m.opts.DataFile + ": " + err.Error()
	}
	if d == "" {
		return "No unsaved changes."
	}
	return d
}

// Dirty reports whether the roster changed since the last save.
func (m Model) Dirty() bool {
	return m.dirty
}

func (m Model) View() string {
	if m.quitting {
		return "Exiting... Goodbye!\n"
	}

	var body, help string
	switch m.screen {
	case screenMenu:
		body = m.menu.View()
		help = "enter/1-5 select • d unsaved changes • q quit"
	case screenAddStudent:
		body = m.addForm.View()
		help = "enter next • esc cancel"
	case screenAddCourse:
		body = m.st.label.Render("Student: "+m.pending.Name+" ("+m.pending.ID+")") + "\n\n" + m.courseForm.View()
		help = "enter next • empty course finishes • esc finish"
	case screenUpdate:
		body = m.updateForm.View()
		help = "enter next • esc cancel"
	case screenView:
		body = m.st.box.Render(m.viewport.View())
		help = "↑/↓ scroll • q/esc back"
	}

	return body + "\n" + m.statusLine() + "\n" + m.st.help.Render(help) + "\n"
}

func (m Model) statusLine() string {
	left := m.st.statusBar.Render(fmt.Sprintf(" %s • %d student(s) ", m.opts.DataFile, m.store.Len()))
	if m.dirty {
		left += " " + m.st.dirty.Render("● unsaved")
	}
	if m.status == "" {
		return left
	}
	msg := m.status
	if m.statusErr {
		msg = m.st.errorText.Render(msg)
	}
	return left + "  " + msg
}
