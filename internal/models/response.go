package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ProjectListResponse struct {
	Projects []Project `json:"projects"`
}

type SceneListResponse struct {
	Scenes []Scene `json:"scenes"`
}

type SceneImageListResponse struct {
	Images []SceneImage `json:"images"`
}

type GenerationResultListResponse struct {
	Results []GenerationResult `json:"results"`
}

type MediaListResponse struct {
	Media []MediaItem `json:"media"`
}

type GenerateMediaResponse struct {
	Media []MediaItem `json:"media"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// SettingsResponse masks the stored API key; clients only learn whether one
// is configured.
type SettingsResponse struct {
	HasWavespeedAPIKey          bool `json:"hasWavespeedApiKey"`
	MediaViewerSidebarCollapsed bool `json:"mediaViewerSidebarCollapsed"`
}

type ModelInfo struct {
	ID                  string `json:"id"`
	Label               string `json:"label"`
	RequiresInputImages bool   `json:"requiresInputImages"`
	SupportsSeed        bool   `json:"supportsSeed"`
	MaxInputImages      int    `json:"maxInputImages,omitempty"`
}

type ModelListResponse struct {
	Models []ModelInfo `json:"models"`
}
