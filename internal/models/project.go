package models

// Project is the top-level container for one storyboard/media collection.
// Timestamps are epoch milliseconds, matching the persisted document format.
type Project struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"` // data URI
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// ProjectUpdate carries the mutable Project fields. Nil means "leave unchanged".
type ProjectUpdate struct {
	Title     *string `json:"title,omitempty"`
	Thumbnail *string `json:"thumbnail,omitempty"`
}
