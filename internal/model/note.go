package model

// Note is a free-form title/content record. Notes are only available under
// the document backend and are immutable once created.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"` // ISO 8601, assigned at creation
}
