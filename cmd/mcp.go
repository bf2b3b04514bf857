package cmd

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd starts the MCP server over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server so AI assistants can
operate on the task document directly.

The server runs over stdin/stdout and exposes tools for:
- expanding a task into generated subtasks
- expanding every eligible task in one batch
- rewriting tasks from an ID onward and merging the result
- listing and filtering tasks

The server runs until the client disconnects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServer(ctx context.Context) error {
	impl := &mcpsdk.Implementation{
		Name:    "taskforge",
		Version: version,
	}
	server := mcpsdk.NewServer(impl, &mcpsdk.ServerOptions{})

	registerMCPTools(server)

	if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

func registerMCPTools(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "expand-task",
		Description: "Break one task into LLM-generated subtasks. Skips tasks that already have subtasks unless force is set; force replaces the whole subtask list.",
	}, expandTaskHandler())

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "expand-all",
		Description: "Expand every eligible pending task into subtasks in one pass. Per-task failures are reported but never abort the batch.",
	}, expandAllHandler())

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "update-tasks",
		Description: "Rewrite non-finished tasks from an ID onward for a changed context and merge the result. Completed subtasks are never lost in the merge.",
	}, updateTasksHandler())

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list-tasks",
		Description: "List tasks with optional status and from-ID filters.",
	}, listTasksHandler())
}
