package tui

import (
	"testing"

	"task-tracker/internal/client"
	"task-tracker/internal/models"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPageAfterDelete(t *testing.T) {
	cases := []struct {
		name      string
		remaining int
		page      int
		want      int
	}{
		{"last item on page 3 steps back", 1, 3, 2},
		{"last item on page 1 stays", 1, 1, 1},
		{"other items remain", 5, 3, 3},
		{"empty page past first steps back", 0, 2, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pageAfterDelete(tc.remaining, tc.page); got != tc.want {
				t.Errorf("pageAfterDelete(%d, %d) = %d, want %d", tc.remaining, tc.page, got, tc.want)
			}
		})
	}
}

func TestDeletedMsgStepsBackAPage(t *testing.T) {
	m := NewModel(client.New(""))
	m.params.Page = 2
	m.resp = &models.TaskListResponse{
		Tasks:       []models.Task{{Description: "only one left"}},
		CurrentPage: 2,
		TotalPages:  2,
		TotalItems:  11,
	}

	updated, _ := m.Update(deletedMsg{description: "only one left"})
	got := updated.(Model)
	if got.params.Page != 1 {
		t.Errorf("expected page to step back to 1, got %d", got.params.Page)
	}
	if !got.loading {
		t.Error("expected a refresh after delete")
	}
}

func TestErrMsgRendersInline(t *testing.T) {
	m := NewModel(client.New(""))
	m.loading = true

	updated, _ := m.Update(errMsg{err: errFake("store down")})
	got := updated.(Model)
	if got.loading {
		t.Error("expected loading cleared on error")
	}
	if got.errText == "" {
		t.Error("expected error text for inline display")
	}
	if got.mode != ModeList {
		t.Errorf("expected UI to stay in list mode, got %v", got.mode)
	}
}

func TestSearchSubmitResetsPage(t *testing.T) {
	m := NewModel(client.New(""))
	m.params.Page = 4
	m.mode = ModeSearch
	m.search.SetValue("acme")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(Model)
	if got.params.Search != "acme" {
		t.Errorf("expected search applied, got %q", got.params.Search)
	}
	if got.params.Page != 1 {
		t.Errorf("expected page reset to 1, got %d", got.params.Page)
	}
	if got.mode != ModeList {
		t.Errorf("expected return to list mode, got %v", got.mode)
	}
}

func TestEmptyResultKeepsCursorInRange(t *testing.T) {
	m := NewModel(client.New(""))
	m.cursor = 7

	updated, _ := m.Update(tasksMsg{resp: &models.TaskListResponse{Tasks: []models.Task{}}})
	got := updated.(Model)
	if got.cursor != 0 {
		t.Errorf("expected cursor reset for empty page, got %d", got.cursor)
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
