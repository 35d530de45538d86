package models

type MediaType string

const (
	MediaTypeUpload     MediaType = "upload"
	MediaTypeGeneration MediaType = "generation"
)

// GenerationMeta holds the parameters a generated item was produced with.
// It is present only on items of type "generation"; uploads carry nil, so an
// upload with a seed is unrepresentable.
type GenerationMeta struct {
	Prompt        string   `json:"prompt"`
	ModelID       string   `json:"modelId"`
	Size          string   `json:"size,omitempty"`
	Seed          int64    `json:"seed,omitempty"`
	OutputFormat  string   `json:"outputFormat,omitempty"`
	InputImageIDs []string `json:"inputImageIds,omitempty"` // weak references into the same collection
}

// MediaItem is the flat unit of stored media belonging to a project.
type MediaItem struct {
	ID         string          `json:"id"`
	ProjectID  string          `json:"projectId"`
	Type       MediaType       `json:"type"`
	ImageData  string          `json:"imageData"` // data URI
	Archived   bool            `json:"archived"`
	Tags       []string        `json:"tags,omitempty"`
	Generation *GenerationMeta `json:"generation,omitempty"`
	CreatedAt  int64           `json:"createdAt"`
	UpdatedAt  int64           `json:"updatedAt"`
}

// InputImageIDs returns the item's weak references, empty for uploads.
func (m *MediaItem) InputImageIDs() []string {
	if m.Generation == nil {
		return nil
	}
	return m.Generation.InputImageIDs
}

type MediaUpdate struct {
	Archived      *bool     `json:"archived,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	InputImageIDs *[]string `json:"inputImageIds,omitempty"`
}
