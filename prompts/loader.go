package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PromptKey identifies a specific prompt.
type PromptKey string

const (
	// KeyExpandTask is the key for the subtask generation prompt.
	KeyExpandTask PromptKey = "ExpandTask"
	// KeyUpdateTasks is the key for the task update prompt.
	KeyUpdateTasks PromptKey = "UpdateTasks"
)

type promptConfig struct {
	defaultContent string
	filename       string
}

var promptRegistry = map[PromptKey]promptConfig{
	KeyExpandTask: {
		defaultContent: ExpandTaskSystemPrompt,
		filename:       "expand_task_prompt.txt",
	},
	KeyUpdateTasks: {
		defaultContent: UpdateTasksSystemPrompt,
		filename:       "update_tasks_prompt.txt",
	},
}

// GetPrompt returns a user-provided prompt file from templatesDir when one
// exists, otherwise the hardcoded default.
func GetPrompt(key PromptKey, templatesDir string) (string, error) {
	config, ok := promptRegistry[key]
	if !ok {
		return "", fmt.Errorf("unrecognized prompt key: %s", key)
	}
	if strings.TrimSpace(templatesDir) == "" {
		return config.defaultContent, nil
	}

	customPath := filepath.Join(templatesDir, config.filename)
	if _, err := os.Stat(customPath); err == nil {
		content, readErr := os.ReadFile(customPath)
		if readErr != nil {
			return "", fmt.Errorf("failed to read custom prompt file at %s: %w", customPath, readErr)
		}
		return string(content), nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("error checking for custom prompt file at %s: %w", customPath, err)
	}
	return config.defaultContent, nil
}
