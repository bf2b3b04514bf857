package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/taskforge-ai/taskforge/models"
	"github.com/taskforge-ai/taskforge/types"
	yaml "gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// FileDocumentStore implements DocumentStore against a single file.
// The format is inferred from the extension: .yaml/.yml parse as YAML,
// everything else as JSON.
type FileDocumentStore struct{}

// NewFileDocumentStore creates a new file-backed document store.
func NewFileDocumentStore() *FileDocumentStore {
	return &FileDocumentStore{}
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// probeDocument mirrors models.Document but distinguishes an absent tasks
// key from an empty tasks array.
type probeDocument struct {
	Tasks    *[]models.Task           `json:"tasks" yaml:"tasks"`
	Metadata *models.DocumentMetadata `json:"metadata" yaml:"metadata"`
}

// Load reads and decodes the whole document.
func (s *FileDocumentStore) Load(path string) (models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, types.PersistenceError(fmt.Sprintf("failed to read document at %s", path), err)
	}

	var probe probeDocument
	switch formatFor(path) {
	case formatYAML:
		err = yaml.Unmarshal(data, &probe)
	default:
		err = json.Unmarshal(data, &probe)
	}
	if err != nil {
		return models.Document{}, types.WrapTaskError(types.CodeInvalidDocument,
			fmt.Sprintf("document at %s is not a valid object: %v", path, err), err)
	}
	if probe.Tasks == nil {
		return models.Document{}, types.NewTaskError(types.CodeInvalidDocument,
			fmt.Sprintf("document at %s does not contain a tasks array", path), nil)
	}

	return models.Document{Tasks: *probe.Tasks, Metadata: probe.Metadata}, nil
}

// Save performs an atomic whole-document overwrite via a temp file and
// rename. Callers must pass the complete desired document.
func (s *FileDocumentStore) Save(path string, doc models.Document) error {
	var data []byte
	var err error
	switch formatFor(path) {
	case formatYAML:
		data, err = yaml.Marshal(doc)
	default:
		data, err = doc.MarshalIndented()
	}
	if err != nil {
		return types.PersistenceError("failed to marshal document", err)
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return types.PersistenceError(fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}

	tempPath := path + ".tmp"
	defer func() { _ = os.Remove(tempPath) }()

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return types.PersistenceError(fmt.Sprintf("failed to write temporary file %s", tempPath), err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return types.PersistenceError(fmt.Sprintf("failed to replace %s", path), err)
	}
	return nil
}
