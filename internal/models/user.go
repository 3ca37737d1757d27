package models

// UserRole represents the three roles sharing the application instance.
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleTeacher UserRole = "TEACHER"
	RoleAdmin   UserRole = "ADMIN"
)

// UserStatus represents the account lifecycle state.
type UserStatus string

const (
	StatusPending   UserStatus = "PENDING"
	StatusActive    UserStatus = "ACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
	StatusRejected  UserStatus = "REJECTED"
)

// LearningStyle is a student personalization tag used by the AI tutor.
type LearningStyle string

const (
	StyleVisual      LearningStyle = "Visual"
	StyleAuditory    LearningStyle = "Auditivo"
	StyleKinesthetic LearningStyle = "Cinestésico"
	StyleReading     LearningStyle = "Leitura/Escrita"
)

// SchoolGrade identifies a primary-school class year.
type SchoolGrade string

const (
	Grade1 SchoolGrade = "1° Ano"
	Grade2 SchoolGrade = "2° Ano"
	Grade3 SchoolGrade = "3° Ano"
	Grade4 SchoolGrade = "4° Ano"
	Grade5 SchoolGrade = "5° Ano"
	Grade6 SchoolGrade = "6° Ano"
	Grade7 SchoolGrade = "7° Ano"
	Grade8 SchoolGrade = "8° Ano"
	Grade9 SchoolGrade = "9° Ano"
)

// Subject enumerates the taught subjects.
type Subject string

const (
	SubjectPortuguese Subject = "Português"
	SubjectMath       Subject = "Matemática"
	SubjectHistory    Subject = "História"
	SubjectScience    Subject = "Ciências"
	SubjectGeography  Subject = "Geografia"
	SubjectArts       Subject = "Arte"
	SubjectIT         Subject = "Informática"
	SubjectLibras     Subject = "Libras"
	SubjectPE         Subject = "Educação Física"
)

// StudentProfile carries the student-only attributes.
type StudentProfile struct {
	Grade         SchoolGrade   `json:"grade"`
	LearningStyle LearningStyle `json:"learning_style,omitempty"`
}

// TeacherProfile carries the teacher-only attributes.
type TeacherProfile struct {
	Grades   []SchoolGrade `json:"grades,omitempty"`
	Subjects []Subject     `json:"subjects,omitempty"`
}

// User is the identity and capability record. The role selects which profile
// pointer is populated; at most one is non-nil.
type User struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Role    UserRole        `json:"role"`
	Status  UserStatus      `json:"status"`
	Student *StudentProfile `json:"student,omitempty"`
	Teacher *TeacherProfile `json:"teacher,omitempty"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Grade returns the student's class year, or empty for non-students.
func (u *User) Grade() SchoolGrade {
	if u == nil || u.Student == nil {
		return ""
	}
	return u.Student.Grade
}

// InitialStatus returns the status a freshly registered account starts in:
// teachers wait for approval, everyone else is active immediately.
func InitialStatus(role UserRole) UserStatus {
	if role == RoleTeacher {
		return StatusPending
	}
	return StatusActive
}
