package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID. Asks for confirmation unless --yes is set.

Examples:
  taskctl delete 68b1f2...
  taskctl rm 68b1f2... --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	c := apiClient()
	ctx := context.Background()

	// Fetch first so the prompt can show what is about to go away
	task, err := c.GetTask(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch task: %w", err)
	}

	if !deleteYes {
		fmt.Printf("About to delete: \"%s\" (%s, %s)\n", task.Description, task.Company, task.Category)
		fmt.Print("Are you sure? [y/N]: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := c.DeleteTask(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("🗑  Deleted: \"%s\"\n", task.Description)
	return nil
}
