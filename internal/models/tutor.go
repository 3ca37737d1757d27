package models

// TutorHelpRequest asks the virtual tutor a question in a grade/subject
// context.
type TutorHelpRequest struct {
	Question string      `json:"question" validate:"required"`
	Grade    SchoolGrade `json:"grade" validate:"required"`
	Subject  Subject     `json:"subject" validate:"required"`
	Context  string      `json:"context,omitempty"`
}

// LessonContentRequest generates an introductory lesson summary for teachers.
type LessonContentRequest struct {
	Topic   string      `json:"topic" validate:"required"`
	Grade   SchoolGrade `json:"grade" validate:"required"`
	Subject Subject     `json:"subject" validate:"required"`
}

// RecommendationsRequest asks for study suggestions matching a learning style.
type RecommendationsRequest struct {
	Style   LearningStyle `json:"style" validate:"required"`
	Grade   SchoolGrade   `json:"grade" validate:"required"`
	Subject Subject       `json:"subject" validate:"required"`
}

// PerformanceGapsRequest analyzes recent scores for knowledge gaps.
type PerformanceGapsRequest struct {
	Subject Subject `json:"subject" validate:"required"`
	Scores  []int   `json:"scores" validate:"required,min=1"`
}

// StudyModelsRequest generates alternative study plans for a topic.
type StudyModelsRequest struct {
	Topic   string      `json:"topic" validate:"required"`
	Grade   SchoolGrade `json:"grade" validate:"required"`
	Subject Subject     `json:"subject" validate:"required"`
}

// TutorText is the free-text result of a tutor operation.
type TutorText struct {
	Text string `json:"text"`
}

// AutoGradeResult is the structured outcome of automatic grading.
type AutoGradeResult struct {
	Grade    int    `json:"grade"`
	Feedback string `json:"feedback"`
}
