package tui

import (
	"fmt"
	"strings"

	"task-tracker/internal/models"
)

// View renders the current UI state
func (m Model) View() string {
	switch m.mode {
	case ModeForm:
		return m.viewForm()
	case ModeConfirmDelete:
		return m.viewConfirm()
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Task Tracker"))
	b.WriteString("\n")

	if m.mode == ModeSearch {
		b.WriteString("\n  Search: " + m.search.View() + "\n")
	} else if m.params.Search != "" {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("  search: %q", m.params.Search)))
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString("\n  " + m.spinner.View() + " Loading tasks...\n")
		return b.String()
	}

	if m.errText != "" {
		b.WriteString("\n" + ErrorStyle.Render("Error: "+m.errText) + "\n")
		b.WriteString(HelpStyle.Render("  r refresh • q quit") + "\n")
		return b.String()
	}

	if m.resp == nil || len(m.resp.Tasks) == 0 {
		b.WriteString(EmptyStyle.Render("No tasks found. Press 'a' to add one."))
		b.WriteString("\n")
		b.WriteString(m.statusBar())
		return b.String()
	}

	b.WriteString("\n")
	for i, t := range m.resp.Tasks {
		b.WriteString(m.renderTask(i, t))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n  " + m.message + "\n")
	}

	b.WriteString(m.statusBar())
	return b.String()
}

func (m Model) renderTask(i int, t models.Task) string {
	line := fmt.Sprintf("%-11s  %-16s  %-42s  %s",
		t.Date.Format("2006-01-02"),
		truncate(t.Company, 16),
		truncate(t.Description, 42),
		CategoryStyle.Render(t.Category),
	)
	if i == m.cursor {
		return TaskItemSelectedStyle.Render("› " + line)
	}
	return TaskItemStyle.Render("  " + line)
}

func (m Model) statusBar() string {
	page, pages, total := 1, 0, int64(0)
	if m.resp != nil {
		page, pages, total = m.resp.CurrentPage, m.resp.TotalPages, m.resp.TotalItems
	}

	filter := "all"
	if m.params.Category != "" {
		filter = m.params.Category
	}
	sortBy := m.params.SortBy
	if sortBy == "" {
		sortBy = "date"
	}
	order := m.params.Order
	if order == "" {
		order = "desc"
	}

	status := fmt.Sprintf("page %d/%d (%d tasks) • category: %s • sort: %s %s",
		page, pages, total, filter, sortBy, order)
	help := "↑↓ move • ←→ page • / search • c category • s sort • o order • a add • e edit • d delete • q quit"

	return StatusBarStyle.Render(status) + "\n" + HelpStyle.Render("  "+help)
}

func (m Model) viewForm() string {
	var b strings.Builder

	title := "New Task"
	if m.form.editingID != "" {
		title = "Edit Task"
	}
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n\n")

	labels := [formInputs]string{"Date", "Company", "Description"}
	for i := range m.form.inputs {
		style := LabelStyle
		if m.form.focus == i {
			style = LabelFocusStyle
		}
		b.WriteString(fmt.Sprintf("%s\n%s\n\n", style.Render(labels[i]), m.form.inputs[i].View()))
	}

	catStyle := LabelStyle
	if m.form.focus == formInputs {
		catStyle = LabelFocusStyle
	}
	b.WriteString(catStyle.Render("Category") + "\n")
	b.WriteString(m.renderCategoryPicker())
	b.WriteString("\n")

	if m.form.errText != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.form.errText) + "\n")
	}
	if m.loading {
		b.WriteString("\n  " + m.spinner.View() + " Saving...\n")
	}

	b.WriteString("\n" + HelpStyle.Render("tab next field • ←→ pick category • enter save • esc cancel"))
	return ModalStyle.Render(b.String())
}

func (m Model) renderCategoryPicker() string {
	parts := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		if i == m.form.catIdx {
			parts[i] = CategoryStyle.Render("[" + c + "]")
		} else {
			parts[i] = LabelStyle.Render(" " + c + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewConfirm() string {
	t := m.currentTask()
	if t == nil {
		return m.viewList()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Delete \"%s\"?\n", truncate(t.Description, 50)))
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%s • %s • %s", t.Date.Format("2006-01-02"), t.Company, t.Category)))
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("y delete • n cancel"))
	return ConfirmStyle.Render(b.String())
}

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
