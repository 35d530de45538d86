package models

// Scene is one ordered entry in a project's storyboard. Position is the
// scene's rank among its siblings: always a contiguous 0..n-1 permutation.
type Scene struct {
	ID              string `json:"id"`
	ProjectID       string `json:"projectId"`
	Title           string `json:"title"`
	Position        int    `json:"position"`
	SelectedImageID string `json:"selectedImageId,omitempty"`
	CreatedAt       int64  `json:"createdAt"`
}

type SceneUpdate struct {
	Title           *string `json:"title,omitempty"`
	Position        *int    `json:"position,omitempty"`
	SelectedImageID *string `json:"selectedImageId,omitempty"`
}

// SceneImage is one ordered image slot within a scene. SelectedOutputIndex
// picks which output of the newest generation result is canonical.
type SceneImage struct {
	ID                  string `json:"id"`
	SceneID             string `json:"sceneId"`
	Title               string `json:"title"`
	Position            int    `json:"position"`
	SelectedOutputIndex int    `json:"selectedOutputIndex"`
	CreatedAt           int64  `json:"createdAt"`
}

type SceneImageUpdate struct {
	Title               *string `json:"title,omitempty"`
	Position            *int    `json:"position,omitempty"`
	SelectedOutputIndex *int    `json:"selectedOutputIndex,omitempty"`
}

// GenerationResult is one batch of outputs from a single generation call,
// keyed by (ImageID, Timestamp).
type GenerationResult struct {
	ImageID      string   `json:"imageId"`
	Outputs      []string `json:"outputs"` // data URIs
	Prompt       string   `json:"prompt"`
	InputImages  []string `json:"inputImages,omitempty"` // data URIs
	Seed         int64    `json:"seed"`
	Size         string   `json:"size"`
	OutputFormat string   `json:"outputFormat"`
	Timestamp    int64    `json:"timestamp"`
}
