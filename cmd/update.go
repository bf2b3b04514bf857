package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskforge-ai/taskforge/internal/engine"
	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
)

var (
	updateFrom   string
	updatePrompt string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rewrite tasks from an ID onward for a changed context",
	Long: `Update sends every non-finished task with ID >= --from to the LLM
together with the change described by --prompt, then merges the returned
batch back into the document. Completed subtasks inside updated tasks are
never lost: a merge that would drop one repairs the task instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, ok := engine.ParseIDFilter(updateFrom)
		if !ok {
			return fmt.Errorf("--from must be a numeric task ID, got %q", updateFrom)
		}

		doc, err := loadDocument()
		if err != nil {
			PrintError("failed to load tasks", err)
			return err
		}

		// Finished tasks are never rewritten.
		candidates := make([]models.Task, 0, len(doc.Tasks))
		for _, t := range engine.FilterTasksFromID(doc.Tasks, from) {
			if !t.Status.IsTerminal() {
				candidates = append(candidates, t)
			}
		}
		if len(candidates) == 0 {
			fmt.Printf("No updatable tasks from ID %s\n", updateFrom)
			return nil
		}

		log := newLogger()
		gen := NewGenerator(log)

		updates, err := gen.GenerateTaskUpdates(cmd.Context(), candidates, updatePrompt)
		if err != nil {
			PrintError("failed to generate task updates", err)
			return err
		}

		result, err := engine.Merge(doc, updates)
		if err != nil {
			PrintError("failed to merge task updates", err)
			return err
		}

		if err := saveDocument(result.Document); err != nil {
			PrintError("failed to save tasks", err)
			return err
		}

		resp := types.UpdateTasksResponse{
			Updated:  result.Updated,
			Added:    result.Added,
			Repaired: len(result.Repaired),
			Message:  fmt.Sprintf("updated %d tasks, added %d", len(result.Updated), len(result.Added)),
		}
		if emitJSON(resp, resp.Message, nil) {
			return nil
		}
		fmt.Println(resp.Message)
		for _, r := range result.Repaired {
			fmt.Printf("  restored completed subtask %d.%d (%s)\n", r.TaskID, r.SubtaskID, r.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateFrom, "from", "", "first task ID to update (required)")
	updateCmd.Flags().StringVar(&updatePrompt, "prompt", "", "description of the change in context (required)")
	_ = updateCmd.MarkFlagRequired("from")
	_ = updateCmd.MarkFlagRequired("prompt")
}
