package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskforge-ai/taskforge/internal/engine"
	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
)

var (
	expandID    int
	expandCount int
	expandForce bool
	expandAll   bool
)

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Break a task into LLM-generated subtasks",
	Long: `Expand uses the configured LLM to break a task into subtasks.

Tasks that already have subtasks are skipped unless --force is given;
--force discards the existing subtask list entirely, completed subtasks
included. With --all, every pending task without subtasks is expanded in
one pass and per-task failures do not stop the batch.

The subtask count comes from --count, then from the complexity report if
one exists, then defaults to 5.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !expandAll && expandID <= 0 {
			return fmt.Errorf("either --id or --all is required")
		}

		doc, err := loadDocument()
		if err != nil {
			PrintError("failed to load tasks", err)
			return err
		}

		log := newLogger()
		gen := NewGenerator(log)
		report := loadComplexityReport()
		ctx := cmd.Context()

		if expandAll {
			updated, resp := engine.ExpandAll(ctx, doc, gen, engine.ExpandAllOptions{
				Count:  expandCount,
				Force:  expandForce,
				Report: report,
			}, log)
			if len(resp.Results) > 0 {
				if err := saveDocument(updated); err != nil {
					PrintError("failed to save tasks", err)
					return err
				}
			}
			if emitJSON(resp, resp.Message, nil) {
				return nil
			}
			fmt.Println(resp.Message)
			for _, f := range resp.Failures {
				fmt.Printf("  task %d: %s\n", f.TaskID, f.Reason)
			}
			return nil
		}

		updated, outcome, err := engine.ExpandTask(ctx, doc, models.ID(expandID), gen, engine.ExpandOptions{
			Count:  expandCount,
			Force:  expandForce,
			Report: report,
		}, log)
		if err != nil {
			PrintError(fmt.Sprintf("failed to expand task %d", expandID), err)
			return err
		}
		resp := types.ExpandTaskResponse{TaskID: models.ID(expandID), SubtaskCount: outcome.Added, Skipped: outcome.Skipped}
		if outcome.Skipped {
			resp.Message = fmt.Sprintf("task %d already has subtasks, skipping (use --force to regenerate)", expandID)
			if !emitJSON(resp, resp.Message, nil) {
				fmt.Println(resp.Message)
			}
			return nil
		}
		if err := saveDocument(updated); err != nil {
			PrintError("failed to save tasks", err)
			return err
		}
		resp.Message = fmt.Sprintf("expanded task %d into %d subtasks", expandID, outcome.Added)
		if !emitJSON(resp, resp.Message, nil) {
			fmt.Println(resp.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().IntVar(&expandID, "id", 0, "task ID to expand")
	expandCmd.Flags().IntVar(&expandCount, "count", 0, "number of subtasks to generate (0 = auto)")
	expandCmd.Flags().BoolVar(&expandForce, "force", false, "replace existing subtasks")
	expandCmd.Flags().BoolVar(&expandAll, "all", false, "expand every eligible pending task")
}
