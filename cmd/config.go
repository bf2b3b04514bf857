package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/taskforge-ai/taskforge/llm"
	"github.com/taskforge-ai/taskforge/store"
	"github.com/taskforge-ai/taskforge/types"
)

const (
	configName = ".taskforge"
	envPrefix  = "TASKFORGE"
)

// GlobalAppConfig holds the unmarshaled application configuration.
var GlobalAppConfig types.AppConfig

// InitConfig reads in the config file and matching environment variables.
func InitConfig() {
	// .env first so API keys are visible to viper's env binding.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("project.rootDir", ".taskforge")
	viper.SetDefault("project.tasksFile", "tasks.json")
	viper.SetDefault("project.artifactsDir", "tasks")
	viper.SetDefault("project.reportFile", filepath.Join("reports", "complexity.json"))
	viper.SetDefault("project.templatesDir", "templates")
	viper.SetDefault("llm.provider", "anthropic")
	viper.SetDefault("llm.model", "claude-3-5-sonnet-latest")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		LogError("using config file: "+viper.ConfigFileUsed(), nil)
	}

	// API keys fall back to the conventional provider variables.
	if viper.GetString("llm.apiKey") == "" {
		for _, env := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GOOGLE_API_KEY"} {
			if v := os.Getenv(env); v != "" {
				viper.Set("llm.apiKey", v)
				break
			}
		}
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		PrintError("failed to parse configuration", err)
		os.Exit(1)
	}
}

// GetConfig returns the global application configuration.
func GetConfig() types.AppConfig {
	return GlobalAppConfig
}

// TasksFilePath returns the full path to the canonical task document.
func TasksFilePath() string {
	cfg := GetConfig()
	return filepath.Join(cfg.Project.RootDir, cfg.Project.TasksFile)
}

// ArtifactsDirPath returns the directory holding derived per-task files.
func ArtifactsDirPath() string {
	cfg := GetConfig()
	return filepath.Join(cfg.Project.RootDir, cfg.Project.ArtifactsDir)
}

// ReportFilePath returns the complexity report location.
func ReportFilePath() string {
	cfg := GetConfig()
	return filepath.Join(cfg.Project.RootDir, cfg.Project.ReportFile)
}

// TemplatesDirPath returns the prompt override directory.
func TemplatesDirPath() string {
	cfg := GetConfig()
	return filepath.Join(cfg.Project.RootDir, cfg.Project.TemplatesDir)
}

// GetStore returns the document store.
func GetStore() store.DocumentStore {
	return store.NewFileDocumentStore()
}

// NewGenerator builds the configured LLM generator.
func NewGenerator(log *slog.Logger) *llm.ChatGenerator {
	cfg := GetConfig()
	return llm.NewChatGenerator(llm.Config{
		Provider:    llm.Provider(cfg.LLM.Provider),
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}, TemplatesDirPath(), log)
}
