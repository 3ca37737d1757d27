package models

import "time"

// Question is one item of an assignment, answered in order.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Assignment is a graded task issued by a teacher for a grade/subject.
// Immutable once created.
type Assignment struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Grade       SchoolGrade `json:"grade"`
	Subject     Subject     `json:"subject"`
	DueDate     string      `json:"due_date,omitempty"`
	Questions   []Question  `json:"questions"`
	AuthorID    string      `json:"author_id"`
	AuthorName  string      `json:"author_name"`
	CreatedAt   time.Time   `json:"created_at"`
}
