package models

type CreateProjectRequest struct {
	Title     string `json:"title" binding:"required"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// CreateSceneRequest creates a scene at the end of the storyboard, or, when
// AfterPosition is set, inserts it after that position and shifts the rest.
type CreateSceneRequest struct {
	Title         string `json:"title" binding:"required"`
	AfterPosition *int   `json:"afterPosition,omitempty"`
}

type CreateSceneImageRequest struct {
	Title         string `json:"title" binding:"required"`
	AfterPosition *int   `json:"afterPosition,omitempty"`
}

type UploadMediaRequest struct {
	// ImageData is the inline-encoded image, e.g. "data:image/png;base64,...".
	ImageData string   `json:"imageData" binding:"required"`
	Tags      []string `json:"tags,omitempty"`
}

// GenerateRequest is a generation command against one of the registered
// Wavespeed models. InputImageIDs name media items whose image data is sent
// as input; InputImages carries raw data URIs for the scene-image history
// path, which stores inputs inline.
type GenerateRequest struct {
	Prompt        string   `json:"prompt" binding:"required"`
	ModelID       string   `json:"modelId,omitempty"`
	Size          string   `json:"size,omitempty"`
	AspectRatio   string   `json:"aspectRatio,omitempty"`
	Seed          *int64   `json:"seed,omitempty"`
	OutputFormat  string   `json:"outputFormat,omitempty"`
	InputImageIDs []string `json:"inputImageIds,omitempty"`
	InputImages   []string `json:"inputImages,omitempty"`
}

type UpdateSettingsRequest struct {
	WavespeedAPIKey             *string `json:"wavespeedApiKey,omitempty"`
	MediaViewerSidebarCollapsed *bool   `json:"mediaViewerSidebarCollapsed,omitempty"`
}
