package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [task-id]",
	Short: "Show a single task",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	task, err := apiClient().GetTask(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch task: %w", err)
	}

	fmt.Printf("ID:          %s\n", task.ID.Hex())
	fmt.Printf("Date:        %s\n", task.Date.Format("2006-01-02 15:04"))
	fmt.Printf("Company:     %s\n", task.Company)
	fmt.Printf("Description: %s\n", task.Description)
	fmt.Printf("Category:    %s\n", task.Category)
	fmt.Printf("Created:     %s\n", task.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
