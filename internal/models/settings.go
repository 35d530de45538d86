package models

// Settings is the process-wide singleton record: provider credentials and UI
// preferences. Loaded at startup, persisted on change, never deleted.
type Settings struct {
	WavespeedAPIKey             string `json:"wavespeedApiKey,omitempty"`
	MediaViewerSidebarCollapsed bool   `json:"mediaViewerSidebarCollapsed,omitempty"`
}
