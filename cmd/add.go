package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskforge-ai/taskforge/internal/engine"
	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
)

var (
	addTitle       string
	addDescription string
	addPriority    string
	addDeps        []int
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new task",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument()
		if err != nil {
			PrintError("failed to load tasks", err)
			return err
		}

		task := models.Task{
			ID:          engine.NextTaskID(doc),
			Title:       addTitle,
			Description: addDescription,
			Status:      models.StatusPending,
			Priority:    models.TaskPriority(addPriority),
		}
		for _, d := range addDeps {
			dep := models.ID(d)
			if doc.Task(dep) == nil {
				err := types.ValidationError("dependency task %d does not exist", dep)
				PrintError(err.Error(), err)
				return err
			}
			task.Dependencies = append(task.Dependencies, dep)
		}
		if err := models.ValidateStruct(task); err != nil {
			PrintError("invalid task", err)
			return err
		}

		doc.Tasks = append(doc.Tasks, task)
		if err := saveDocument(doc); err != nil {
			PrintError("failed to save tasks", err)
			return err
		}
		fmt.Printf("Added task %d: %s\n", task.ID, task.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addTitle, "title", "", "task title (required)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "task description")
	addCmd.Flags().StringVar(&addPriority, "priority", "medium", "priority (low|medium|high)")
	addCmd.Flags().IntSliceVar(&addDeps, "depends-on", nil, "IDs of tasks this task depends on")
	_ = addCmd.MarkFlagRequired("title")
}
