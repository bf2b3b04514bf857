package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskforge-ai/taskforge/artifacts"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate per-task markdown files from the task document",
	Long: `Generate rewrites one markdown file per task under the artifacts
directory. Artifacts are derived output: editing them by hand is lost on
the next regeneration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument()
		if err != nil {
			PrintError("failed to load tasks", err)
			return err
		}

		if err := artifacts.NewGenerator(nil).Regenerate(ArtifactsDirPath(), doc); err != nil {
			PrintError("failed to generate task files", err)
			return err
		}
		fmt.Printf("Generated %d task files in %s\n", len(doc.Tasks), ArtifactsDirPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
