package dto

import "github.com/educafacil/educafacil-api/internal/models"

// CreateMaterialRequest publishes a content item for a grade/subject.
type CreateMaterialRequest struct {
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description"`
	Type        models.MaterialType `json:"type" validate:"required,oneof=VIDEO PDF IMAGE TEXT"`
	ContentURL  string              `json:"content_url,omitempty"`
	TextContent string              `json:"text_content,omitempty"`
	Grade       models.SchoolGrade  `json:"grade" validate:"required"`
	Subject     models.Subject      `json:"subject" validate:"required"`
}

// CreateAssignmentRequest issues a graded task with ordered questions.
type CreateAssignmentRequest struct {
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description"`
	Grade       models.SchoolGrade `json:"grade" validate:"required"`
	Subject     models.Subject     `json:"subject" validate:"required"`
	DueDate     string             `json:"due_date,omitempty"`
	Questions   []QuestionPayload  `json:"questions" validate:"required,min=1,dive"`
}

// QuestionPayload is one question of a new assignment.
type QuestionPayload struct {
	Text string `json:"text" validate:"required"`
}

// SubmitAssignmentRequest records a student's ordered answers.
type SubmitAssignmentRequest struct {
	AssignmentID string          `json:"assignment_id" validate:"required"`
	Answers      []AnswerPayload `json:"answers" validate:"required,min=1,dive"`
}

// AnswerPayload pairs a question id with the student's text.
type AnswerPayload struct {
	QuestionID string `json:"question_id" validate:"required"`
	Text       string `json:"text"`
}

// TeacherGradeRequest overrides the grade of a submission.
type TeacherGradeRequest struct {
	Grade int `json:"grade" validate:"min=0,max=100"`
}
