package types

// ProjectConfig locates project-owned files.
type ProjectConfig struct {
	RootDir      string `mapstructure:"rootDir"`
	TasksFile    string `mapstructure:"tasksFile"`
	ArtifactsDir string `mapstructure:"artifactsDir"`
	ReportFile   string `mapstructure:"reportFile"`
	TemplatesDir string `mapstructure:"templatesDir"`
}

// LLMConfig selects the generator backend.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" validate:"omitempty,oneof=openai anthropic gemini ollama"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"apiKey"`
	BaseURL     string  `mapstructure:"baseURL"`
	MaxTokens   int     `mapstructure:"maxTokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// AppConfig is the unified application configuration, populated by viper.
type AppConfig struct {
	Project ProjectConfig `mapstructure:"project"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Verbose bool          `mapstructure:"verbose"`
}
