package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/parser"
	"github.com/taskforge-ai/taskforge/prompts"
	"github.com/taskforge-ai/taskforge/types"
)

// Generator produces structured task data from an LLM. Completions are
// asynchronous calls with no engine-side timeout: pass a cancellable
// context if you need one. Failures are never retried silently — an empty
// or unparseable completion surfaces as a GENERATOR_ERROR.
type Generator interface {
	GenerateSubtasks(ctx context.Context, task models.Task, count int) ([]models.Subtask, error)
	GenerateTaskUpdates(ctx context.Context, tasks []models.Task, prompt string) ([]models.Task, error)
}

// ChatGenerator implements Generator over an Eino chat model.
type ChatGenerator struct {
	cfg          Config
	templatesDir string
	log          *slog.Logger
}

// NewChatGenerator creates a generator for the configured provider.
// templatesDir optionally points at user prompt overrides.
func NewChatGenerator(cfg Config, templatesDir string, log *slog.Logger) *ChatGenerator {
	if log == nil {
		log = slog.Default()
	}
	return &ChatGenerator{cfg: cfg, templatesDir: templatesDir, log: log}
}

// complete runs one generation round trip and returns the raw content.
func (g *ChatGenerator) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	chatModel, err := NewChatModel(ctx, g.cfg)
	if err != nil {
		return "", types.GeneratorError("failed to create chat model", err)
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	}
	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return "", types.GeneratorError("completion call failed", err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", types.GeneratorError("completion returned empty text", nil)
	}
	return resp.Content, nil
}

// GenerateSubtasks asks the model for approximately count subtasks for the
// given parent task.
func (g *ChatGenerator) GenerateSubtasks(ctx context.Context, task models.Task, count int) ([]models.Subtask, error) {
	systemPrompt, err := prompts.GetPrompt(prompts.KeyExpandTask, g.templatesDir)
	if err != nil {
		return nil, types.GeneratorError("failed to load expand prompt", err)
	}

	taskJSON, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return nil, types.GeneratorError("failed to encode task", err)
	}
	userPrompt := fmt.Sprintf("Break this task into approximately %d subtasks:\n\n%s", count, taskJSON)

	raw, err := g.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	subtasks, err := parser.ParseSubtasks(raw)
	if err != nil {
		// Parser failure is treated identically to an empty completion.
		g.log.Warn("unparseable subtask completion", "task", task.ID, "error", err)
		return nil, types.GeneratorError("completion contained no parseable subtasks", err)
	}
	return subtasks, nil
}

// GenerateTaskUpdates asks the model to rewrite the given tasks for the
// new context described by prompt, returning the full replacement batch.
func (g *ChatGenerator) GenerateTaskUpdates(ctx context.Context, tasks []models.Task, prompt string) ([]models.Task, error) {
	systemPrompt, err := prompts.GetPrompt(prompts.KeyUpdateTasks, g.templatesDir)
	if err != nil {
		return nil, types.GeneratorError("failed to load update prompt", err)
	}

	tasksJSON, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, types.GeneratorError("failed to encode tasks", err)
	}
	userPrompt := fmt.Sprintf("Context for the change:\n%s\n\nTasks to update:\n%s", prompt, tasksJSON)

	raw, err := g.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	// The tagged classifier accepts both a full batch and a single-task
	// completion; anything else (subtask lists included) is rejected.
	res, err := parser.Parse(raw)
	if err != nil {
		g.log.Warn("unparseable update completion", "error", err)
		return nil, types.GeneratorError("completion contained no parseable tasks", err)
	}
	if res.Kind != parser.KindTask && res.Kind != parser.KindTaskList {
		return nil, types.GeneratorError("completion was not a task batch", nil)
	}
	return res.Tasks, nil
}
