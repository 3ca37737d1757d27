package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/educafacil/educafacil-api/internal/authz"
	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/internal/repository"
	appErrors "github.com/educafacil/educafacil-api/pkg/errors"
	"github.com/educafacil/educafacil-api/pkg/export"
)

// Export formats accepted by ExportUsers.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// AdminService implements administrator actions over teacher accounts and
// roster exports. Status changes go through the authz transition table; the
// seeded admin account is never mutated.
type AdminService struct {
	repo       *repository.Repository
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	exportsDir string
	logger     *zap.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(repo *repository.Repository, exportsDir string, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		repo:       repo,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		exportsDir: exportsDir,
		logger:     logger,
	}
}

// ApproveTeacher moves a PENDING teacher to ACTIVE.
func (s *AdminService) ApproveTeacher(ctx context.Context, id string) (*models.User, error) {
	return s.transition(ctx, id, models.StatusActive)
}

// RejectTeacher moves a PENDING teacher to REJECTED. There is no path back.
func (s *AdminService) RejectTeacher(ctx context.Context, id string) (*models.User, error) {
	return s.transition(ctx, id, models.StatusRejected)
}

// SuspendTeacher moves an ACTIVE teacher to SUSPENDED.
func (s *AdminService) SuspendTeacher(ctx context.Context, id string) (*models.User, error) {
	return s.transition(ctx, id, models.StatusSuspended)
}

// ReactivateTeacher moves a SUSPENDED teacher back to ACTIVE.
func (s *AdminService) ReactivateTeacher(ctx context.Context, id string) (*models.User, error) {
	return s.transition(ctx, id, models.StatusActive)
}

func (s *AdminService) transition(ctx context.Context, id string, to models.UserStatus) (*models.User, error) {
	user := s.repo.UserByID(id)
	if user == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	if user.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teacher accounts have a status lifecycle")
	}
	if !authz.CanTransition(user.Status, to) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			fmt.Sprintf("cannot move teacher from %s to %s", user.Status, to))
	}

	s.repo.UpdateUserStatus(ctx, id, to)
	s.logger.Info("teacher status changed",
		zap.String("user_id", id),
		zap.String("from", string(user.Status)),
		zap.String("to", string(to)),
	)
	return s.repo.UserByID(id), nil
}

// ListUsers returns every account in insertion order.
func (s *AdminService) ListUsers() []models.User {
	return s.repo.Users()
}

// ListPendingTeachers returns teachers awaiting approval.
func (s *AdminService) ListPendingTeachers() []models.User {
	return s.repo.PendingTeachers()
}

// ExportUsers renders the roster as CSV or PDF and keeps a copy under the
// exports directory. Returns the artifact bytes and a suggested filename.
func (s *AdminService) ExportUsers(format string) ([]byte, string, error) {
	users := s.repo.Users()
	dataset := export.Dataset{
		Headers: []string{"id", "name", "email", "role", "status"},
	}
	for _, u := range users {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"id":     u.ID,
			"name":   u.Name,
			"email":  u.Email,
			"role":   string(u.Role),
			"status": string(u.Status),
		})
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case ExportFormatPDF:
		data, err = s.pdf.Render(dataset, "Usuários")
	case ExportFormatCSV, "":
		format = ExportFormatCSV
		data, err = s.csv.Render(dataset)
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("users-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	s.keepCopy(filename, data)
	return data, filename, nil
}

// keepCopy writes the artifact to the exports directory, best-effort.
func (s *AdminService) keepCopy(filename string, data []byte) {
	if s.exportsDir == "" {
		return
	}
	if err := os.MkdirAll(s.exportsDir, 0o755); err != nil {
		s.logger.Warn("failed to prepare exports directory", zap.Error(err))
		return
	}
	if err := os.WriteFile(filepath.Join(s.exportsDir, filename), data, 0o644); err != nil {
		s.logger.Warn("failed to keep export copy", zap.String("file", filename), zap.Error(err))
	}
}
