package cli

import (
	"os"

	"task-tracker/internal/client"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskctl",
	Short: "Task tracker client",
	Long: `taskctl is the terminal client for the task tracker API.

Record work items (date, company, description, category), then list,
filter, sort and page through them, or browse interactively.

Examples:
  taskctl add --company "Acme" --description "Kickoff call" --category Meeting
  taskctl list --search acme --page 2
  taskctl browse`,
	SilenceUsage: true,
}

var serverURL string

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API server URL (default $TASKCTL_SERVER or "+client.DefaultServerURL+")")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(browseCmd)
}

// apiClient builds the client from the --server flag or environment
func apiClient() *client.Client {
	url := serverURL
	if url == "" {
		url = os.Getenv("TASKCTL_SERVER")
	}
	return client.New(url)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
