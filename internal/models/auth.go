package models

// LoginRequest identifies a user by email. There is no password: identity is
// established by email lookup alone, a deliberate simplification of the
// prototype rather than a security boundary.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterRequest creates a new account. Teachers supply teaching scope,
// students supply their class year and learning style.
type RegisterRequest struct {
	Name          string        `json:"name" validate:"required"`
	Email         string        `json:"email" validate:"required,email"`
	Role          UserRole      `json:"role" validate:"required,oneof=STUDENT TEACHER"`
	Grade         SchoolGrade   `json:"grade,omitempty"`
	LearningStyle LearningStyle `json:"learning_style,omitempty"`
	Grades        []SchoolGrade `json:"grades,omitempty"`
	Subjects      []Subject     `json:"subjects,omitempty"`
}

// SessionInfo describes the active session in responses.
type SessionInfo struct {
	User          *User `json:"user,omitempty"`
	Authenticated bool  `json:"authenticated"`
	Authorized    bool  `json:"authorized"`
}
