package tui

import (
	"task-tracker/internal/client"
	"task-tracker/internal/models"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeList Mode = iota
	ModeSearch
	ModeForm
	ModeConfirmDelete
)

// sortFields is the cycle order for the sort key binding
var sortFields = []string{"date", "company", "category", "createdAt"}

// form input indices
const (
	formDate = iota
	formCompany
	formDescription
	formInputs
)

// formState holds the create/edit form. An empty editingID means create mode.
type formState struct {
	editingID string
	inputs    [formInputs]textinput.Model
	catIdx    int
	focus     int
	errText   string
}

// Model is the main TUI model
type Model struct {
	api *client.Client

	// Listing state mirrors the last server response
	params  client.ListParams
	resp    *models.TaskListResponse
	cursor  int
	sortIdx int
	catIdx  int // index into models.Categories, -1 = no filter

	mode    Mode
	loading bool
	errText string
	message string

	search  textinput.Model
	spinner spinner.Model
	form    formState

	width  int
	height int
}

// NewModel creates a new TUI model
func NewModel(api *client.Client) Model {
	ti := textinput.New()
	ti.Placeholder = "Search company, description, category..."
	ti.CharLimit = 128
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Primary)

	return Model{
		api: api,
		params: client.ListParams{
			Page:  1,
			Limit: 10,
		},
		catIdx:  -1,
		search:  ti,
		spinner: sp,
		loading: true,
	}
}

// Init kicks off the first page load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m *Model) currentTask() *models.Task {
	if m.resp == nil || m.cursor >= len(m.resp.Tasks) {
		return nil
	}
	return &m.resp.Tasks[m.cursor]
}

// pageAfterDelete returns the page to show after deleting a task: step back
// one page when the deleted task was the last item on a page past the first.
func pageAfterDelete(remainingOnPage, currentPage int) int {
	if remainingOnPage <= 1 && currentPage > 1 {
		return currentPage - 1
	}
	return currentPage
}

func newFormState() formState {
	f := formState{catIdx: 0}
	labels := [formInputs]string{"YYYY-MM-DD (empty = today)", "Company", "Description"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 256
		ti.Width = 44
		f.inputs[i] = ti
	}
	f.inputs[0].Focus()
	return f
}

// formFromTask pre-fills the form from a freshly fetched task
func formFromTask(t *models.Task) formState {
	f := newFormState()
	f.editingID = t.ID.Hex()
	f.inputs[formDate].SetValue(t.Date.Format("2006-01-02"))
	f.inputs[formCompany].SetValue(t.Company)
	f.inputs[formDescription].SetValue(t.Description)
	for i, c := range models.Categories {
		if c == t.Category {
			f.catIdx = i
			break
		}
	}
	return f
}
