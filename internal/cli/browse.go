package cli

import (
	"fmt"

	"task-tracker/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"ui"},
	Short:   "Browse tasks interactively",
	Long:    `Open the interactive task browser: page through tasks, search, filter, sort, edit and delete.`,
	RunE:    runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	m := tui.NewModel(apiClient())
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run UI: %w", err)
	}
	return nil
}
