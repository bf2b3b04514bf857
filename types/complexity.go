package types

import "github.com/taskforge-ai/taskforge/models"

// TaskComplexity contains the analysis for a single task.
type TaskComplexity struct {
	ID                  models.ID `json:"id"`
	Title               string    `json:"title,omitempty"`
	ComplexityScore     int       `json:"complexityScore"` // 1-10
	Justification       string    `json:"justification,omitempty"`
	RecommendExpansion  bool      `json:"recommendExpansion"`
	RecommendedSubtasks int       `json:"recommendedSubtasks,omitempty"`
}

// ComplexityStats aggregates score distribution for the report footer.
type ComplexityStats struct {
	Total  int `json:"total"`
	Low    int `json:"low"`    // score 1-3
	Medium int `json:"medium"` // 4-7
	High   int `json:"high"`   // 8-10
}

// ComplexityReport is the persisted JSON payload produced by
// analyze-complexity and optionally consumed by the expansion planner.
// It only ever suggests a subtask target count; it is never required.
type ComplexityReport struct {
	GeneratedAt        string           `json:"generatedAt"`
	ComplexityAnalysis []TaskComplexity `json:"complexityAnalysis"`
	Stats              ComplexityStats  `json:"stats"`
}

// Entry returns the analysis for the given task id, or nil when the task
// was not analyzed.
func (r *ComplexityReport) Entry(id models.ID) *TaskComplexity {
	if r == nil {
		return nil
	}
	for i := range r.ComplexityAnalysis {
		if r.ComplexityAnalysis[i].ID == id {
			return &r.ComplexityAnalysis[i]
		}
	}
	return nil
}
