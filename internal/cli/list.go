package cli

import (
	"context"
	"fmt"
	"strings"

	"task-tracker/internal/client"
	"task-tracker/internal/models"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks with optional search, filters, sorting and pagination.

Examples:
  taskctl list
  taskctl list --search acme
  taskctl list --category Coding --sort date --order asc
  taskctl list --page 2 --limit 25`,
	RunE: runList,
}

var (
	listSearch   string
	listCategory string
	listCompany  string
	listSort     string
	listOrder    string
	listPage     int
	listLimit    int
)

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Search company, description and category")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by exact category")
	listCmd.Flags().StringVar(&listCompany, "company", "", "Filter by exact company")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort field (date, company, description, category, createdAt)")
	listCmd.Flags().StringVar(&listOrder, "order", "", "Sort order (asc or desc)")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 0, "Page number")
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "Tasks per page")
}

func runList(cmd *cobra.Command, args []string) error {
	c := apiClient()

	resp, err := c.ListTasks(context.Background(), client.ListParams{
		Search:   listSearch,
		Category: listCategory,
		Company:  listCompany,
		SortBy:   listSort,
		Order:    listOrder,
		Page:     listPage,
		Limit:    listLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(resp.Tasks) == 0 {
		fmt.Println("No tasks found. Add one with: taskctl add")
		return nil
	}

	printTaskTable(resp.Tasks)
	fmt.Printf("\nPage %d of %d (%d tasks)\n", resp.CurrentPage, resp.TotalPages, resp.TotalItems)
	return nil
}

func printTaskTable(tasks []models.Task) {
	fmt.Printf("%-24s  %-11s  %-16s  %-40s  %s\n", "ID", "DATE", "COMPANY", "DESCRIPTION", "CATEGORY")
	fmt.Println(strings.Repeat("─", 104))
	for _, t := range tasks {
		fmt.Printf("%-24s  %-11s  %-16s  %-40s  %s\n",
			t.ID.Hex(),
			t.Date.Format("2006-01-02"),
			truncate(t.Company, 16),
			truncate(t.Description, 40),
			t.Category,
		)
	}
}

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
