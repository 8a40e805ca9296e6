package tui

import (
	"context"
	"strings"
	"time"

	"task-tracker/internal/models"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages from API commands
type tasksMsg struct{ resp *models.TaskListResponse }
type taskMsg struct{ task *models.Task }
type savedMsg struct{ task *models.Task }
type deletedMsg struct{ description string }
type errMsg struct{ err error }

func (m Model) fetchCmd() tea.Cmd {
	api, params := m.api, m.params
	return func() tea.Msg {
		resp, err := api.ListTasks(context.Background(), params)
		if err != nil {
			return errMsg{err}
		}
		return tasksMsg{resp}
	}
}

// fetchTaskCmd re-fetches a single task so the form edits fresh state
func (m Model) fetchTaskCmd(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		task, err := api.GetTask(context.Background(), id)
		if err != nil {
			return errMsg{err}
		}
		return taskMsg{task}
	}
}

func (m Model) saveCmd() tea.Cmd {
	api := m.api
	f := m.form

	dateText := strings.TrimSpace(f.inputs[formDate].Value())
	company := f.inputs[formCompany].Value()
	description := f.inputs[formDescription].Value()
	category := models.Categories[f.catIdx]

	return func() tea.Msg {
		var date *time.Time
		if dateText != "" {
			parsed, err := time.Parse("2006-01-02", dateText)
			if err != nil {
				return errMsg{err}
			}
			date = &parsed
		}

		if f.editingID == "" {
			task, err := api.CreateTask(context.Background(), models.CreateTaskRequest{
				Date:        date,
				Company:     company,
				Description: description,
				Category:    category,
			})
			if err != nil {
				return errMsg{err}
			}
			return savedMsg{task}
		}

		task, err := api.UpdateTask(context.Background(), f.editingID, models.UpdateTaskRequest{
			Date:        date,
			Company:     &company,
			Description: &description,
			Category:    &category,
		})
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{task}
	}
}

func (m Model) deleteCmd(id, description string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		if err := api.DeleteTask(context.Background(), id); err != nil {
			return errMsg{err}
		}
		return deletedMsg{description}
	}
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tasksMsg:
		m.loading = false
		m.errText = ""
		m.resp = msg.resp
		if m.cursor >= len(msg.resp.Tasks) {
			m.cursor = 0
		}
		return m, nil

	case taskMsg:
		m.loading = false
		m.mode = ModeForm
		m.form = formFromTask(msg.task)
		return m, nil

	case savedMsg:
		// Back to create-mode defaults and refresh the listing
		m.mode = ModeList
		m.form = formState{}
		m.message = "Saved: " + msg.task.Description
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchCmd())

	case deletedMsg:
		m.mode = ModeList
		m.message = "Deleted: " + msg.description
		if m.resp != nil {
			m.params.Page = pageAfterDelete(len(m.resp.Tasks), m.params.Page)
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchCmd())

	case errMsg:
		// Errors render inline, the UI keeps running
		m.loading = false
		if m.mode == ModeForm {
			m.form.errText = msg.err.Error()
		} else {
			m.mode = ModeList
			m.errText = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeForm:
			return m.updateForm(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) refresh() (tea.Model, tea.Cmd) {
	m.loading = true
	m.errText = ""
	m.message = ""
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.resp != nil && m.cursor < len(m.resp.Tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.PrevPage):
		if m.params.Page > 1 {
			m.params.Page--
			m.cursor = 0
			return m.refresh()
		}
		return m, nil

	case key.Matches(msg, keys.NextPage):
		if m.resp != nil && m.params.Page < m.resp.TotalPages {
			m.params.Page++
			m.cursor = 0
			return m.refresh()
		}
		return m, nil

	case key.Matches(msg, keys.Search):
		m.mode = ModeSearch
		m.search.SetValue(m.params.Search)
		m.search.Focus()
		return m, nil

	case key.Matches(msg, keys.Category):
		m.catIdx++
		if m.catIdx >= len(models.Categories) {
			m.catIdx = -1
		}
		if m.catIdx == -1 {
			m.params.Category = ""
		} else {
			m.params.Category = models.Categories[m.catIdx]
		}
		m.params.Page = 1
		return m.refresh()

	case key.Matches(msg, keys.Sort):
		m.sortIdx = (m.sortIdx + 1) % len(sortFields)
		m.params.SortBy = sortFields[m.sortIdx]
		m.params.Page = 1
		return m.refresh()

	case key.Matches(msg, keys.Order):
		if m.params.Order == "desc" {
			m.params.Order = "asc"
		} else {
			m.params.Order = "desc"
		}
		m.params.Page = 1
		return m.refresh()

	case key.Matches(msg, keys.Add):
		m.mode = ModeForm
		m.form = newFormState()
		return m, nil

	case key.Matches(msg, keys.Edit):
		if t := m.currentTask(); t != nil {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetchTaskCmd(t.ID.Hex()))
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if m.currentTask() != nil {
			m.mode = ModeConfirmDelete
		}
		return m, nil

	case key.Matches(msg, keys.Refresh):
		return m.refresh()
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeList
		m.search.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeList
		m.search.Blur()
		m.params.Search = m.search.Value()
		m.params.Page = 1
		m.cursor = 0
		return m.refresh()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.currentTask()
	if t == nil {
		m.mode = ModeList
		return m, nil
	}

	switch msg.String() {
	case "y", "Y":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.deleteCmd(t.ID.Hex(), t.Description))
	case "n", "N", "esc", "q":
		m.mode = ModeList
		return m, nil
	}
	return m, nil
}

// focusable rows: the text inputs plus the category selector
const formRows = formInputs + 1

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Letter keys must reach the text inputs, so the form matches on the
	// literal key string instead of the list-mode bindings
	switch msg.String() {
	case "esc":
		m.mode = ModeList
		m.form = formState{}
		return m, nil

	case "tab", "down":
		return m.moveFormFocus(1)

	case "shift+tab", "up":
		return m.moveFormFocus(-1)

	case "enter":
		// Only required-fields-non-empty is checked client-side; everything
		// else is the server's call
		missing := []string{}
		if strings.TrimSpace(m.form.inputs[formCompany].Value()) == "" {
			missing = append(missing, "company")
		}
		if strings.TrimSpace(m.form.inputs[formDescription].Value()) == "" {
			missing = append(missing, "description")
		}
		if len(missing) > 0 {
			m.form.errText = "required: " + strings.Join(missing, ", ")
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.saveCmd())
	}

	// Category selector row reacts to left/right
	if m.form.focus == formInputs {
		switch msg.String() {
		case "left":
			m.form.catIdx--
			if m.form.catIdx < 0 {
				m.form.catIdx = len(models.Categories) - 1
			}
			return m, nil
		case "right":
			m.form.catIdx = (m.form.catIdx + 1) % len(models.Categories)
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) moveFormFocus(delta int) (tea.Model, tea.Cmd) {
	if m.form.focus < formInputs {
		m.form.inputs[m.form.focus].Blur()
	}
	m.form.focus = (m.form.focus + delta + formRows) % formRows
	if m.form.focus < formInputs {
		return m, m.form.inputs[m.form.focus].Focus()
	}
	return m, nil
}
