package cli

import (
	"context"
	"fmt"
	"strings"

	"task-tracker/internal/models"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task",
	Long: `Edit a task. Only the flags you pass are changed; everything else
is left untouched.

Examples:
  taskctl edit 68b1f2... --description "Kickoff call (rescheduled)"
  taskctl edit 68b1f2... --category Planning --date 2026-09-01`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editDate        string
	editCompany     string
	editDescription string
	editCategory    string
)

func init() {
	editCmd.Flags().StringVar(&editDate, "date", "", "Task date (YYYY-MM-DD or RFC 3339)")
	editCmd.Flags().StringVar(&editCompany, "company", "", "Company name")
	editCmd.Flags().StringVar(&editDescription, "description", "", "Task description")
	editCmd.Flags().StringVar(&editCategory, "category", "", "Category ("+strings.Join(models.Categories, ", ")+")")
}

func runEdit(cmd *cobra.Command, args []string) error {
	var req models.UpdateTaskRequest

	if cmd.Flags().Changed("date") {
		date, err := parseDate(editDate)
		if err != nil {
			return err
		}
		req.Date = date
	}
	if cmd.Flags().Changed("company") {
		req.Company = &editCompany
	}
	if cmd.Flags().Changed("description") {
		req.Description = &editDescription
	}
	if cmd.Flags().Changed("category") {
		req.Category = &editCategory
	}

	if req.Date == nil && req.Company == nil && req.Description == nil && req.Category == nil {
		return fmt.Errorf("nothing to change, pass at least one of --date, --company, --description, --category")
	}

	task, err := apiClient().UpdateTask(context.Background(), args[0], req)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("✓ Updated [%s]: \"%s\" (%s, %s)\n",
		task.ID.Hex(), task.Description, task.Company, task.Category)
	return nil
}
