package models

import "time"

// SubmissionStatus tracks whether a submission has been graded.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionGraded    SubmissionStatus = "GRADED"
)

// Answer pairs a question with the student's text answer.
type Answer struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

// Submission is one student's answers to one assignment. The assignment is a
// reference, not an ownership: deleting neither side cascades. A student may
// submit the same assignment more than once; each submit is a new record.
type Submission struct {
	ID           string           `json:"id"`
	AssignmentID string           `json:"assignment_id"`
	StudentID    string           `json:"student_id"`
	StudentName  string           `json:"student_name"`
	Answers      []Answer         `json:"answers"`
	AIGrade      *int             `json:"ai_grade,omitempty"`
	AIFeedback   string           `json:"ai_feedback,omitempty"`
	TeacherGrade *int             `json:"teacher_grade,omitempty"`
	Status       SubmissionStatus `json:"status"`
	SubmittedAt  time.Time        `json:"submitted_at"`
}
