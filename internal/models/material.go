package models

import "time"

// MaterialType distinguishes the content carrier of a material.
type MaterialType string

const (
	MaterialVideo MaterialType = "VIDEO"
	MaterialPDF   MaterialType = "PDF"
	MaterialImage MaterialType = "IMAGE"
	MaterialText  MaterialType = "TEXT"
)

// Material is a content item authored by a teacher. Immutable once created.
type Material struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        MaterialType `json:"type"`
	ContentURL  string       `json:"content_url,omitempty"`
	TextContent string       `json:"text_content,omitempty"`
	AuthorID    string       `json:"author_id"`
	AuthorName  string       `json:"author_name"`
	Grade       SchoolGrade  `json:"grade"`
	Subject     Subject      `json:"subject"`
	CreatedAt   time.Time    `json:"created_at"`
}
