package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"task-tracker/internal/models"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new task",
	Long: `Add a new task. Company, description and category are required;
the date defaults to now when omitted.

Examples:
  taskctl add --company "Acme" --description "Kickoff call" --category Meeting
  taskctl add --company "Initech" --description "Fix build" --category Coding --date 2026-08-12`,
	RunE: runAdd,
}

var (
	addDate        string
	addCompany     string
	addDescription string
	addCategory    string
)

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "Task date (YYYY-MM-DD or RFC 3339)")
	addCmd.Flags().StringVar(&addCompany, "company", "", "Company name")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Task description")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category ("+strings.Join(models.Categories, ", ")+")")
	_ = addCmd.MarkFlagRequired("company")
	_ = addCmd.MarkFlagRequired("description")
	_ = addCmd.MarkFlagRequired("category")
}

// parseDate accepts a bare date or a full RFC 3339 timestamp
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (use YYYY-MM-DD or RFC 3339)", s)
	}
	return &t, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	date, err := parseDate(addDate)
	if err != nil {
		return err
	}

	task, err := apiClient().CreateTask(context.Background(), models.CreateTaskRequest{
		Date:        date,
		Company:     addCompany,
		Description: addDescription,
		Category:    addCategory,
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Printf("✓ Added [%s]: \"%s\" (%s, %s)\n",
		task.ID.Hex(), task.Description, task.Company, task.Category)
	return nil
}
