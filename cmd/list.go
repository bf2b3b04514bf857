package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskforge-ai/taskforge/internal/engine"
	"github.com/taskforge-ai/taskforge/internal/ui"
	"github.com/taskforge-ai/taskforge/models"
)

var (
	listStatus string
	listFrom   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument()
		if err != nil {
			PrintError("failed to load tasks", err)
			return err
		}

		tasks := doc.Tasks
		if from, ok := engine.ParseIDFilter(listFrom); ok {
			tasks = engine.FilterTasksFromID(tasks, from)
		}
		if listStatus != "" {
			filtered := make([]models.Task, 0, len(tasks))
			for _, t := range tasks {
				if string(t.Status) == listStatus {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found")
			return nil
		}

		table := &ui.Table{
			Headers:  []string{"ID", "Title", "Status", "Priority", "Subtasks"},
			MaxWidth: 50,
		}
		for _, t := range tasks {
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(int(t.ID)),
				t.Title,
				string(t.Status),
				string(t.Priority),
				subtaskProgress(t.Subtasks),
			})
		}
		fmt.Print(table.Render())
		fmt.Printf("\n %d tasks\n", len(tasks))
		return nil
	},
}

// subtaskProgress renders "done/total" for a subtask list.
func subtaskProgress(subs []models.Subtask) string {
	if len(subs) == 0 {
		return "-"
	}
	done := 0
	for _, st := range subs {
		if st.Status.IsTerminal() {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(subs))
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
	listCmd.Flags().StringVar(&listFrom, "from", "", "show tasks with ID >= this value")
}
