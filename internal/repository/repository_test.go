package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/educafacil/educafacil-api/internal/models"
	"github.com/educafacil/educafacil-api/pkg/kvstore"
)

func newTestRepo(t *testing.T) (*Repository, *kvstore.FileStore) {
	t.Helper()
	store, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := New(store, "Administrador Principal", "admin@educa.com", zap.NewNop())
	require.NoError(t, repo.Hydrate(context.Background()))
	return repo, store
}

func TestHydrateSeedsAdminOnFirstRun(t *testing.T) {
	repo, _ := newTestRepo(t)

	users := repo.Users()
	require.Len(t, users, 1)
	assert.Equal(t, SeedAdminID, users[0].ID)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.Equal(t, models.StatusActive, users[0].Status)
	assert.Equal(t, "admin@educa.com", users[0].Email)
}

func TestHydrateFallsBackOnCorruptKey(t *testing.T) {
	store, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, kvstore.KeyUsers, []byte("{not json")))
	require.NoError(t, store.Save(ctx, kvstore.KeyMaterials, []byte("also broken")))

	repo := New(store, "Admin", "admin@educa.com", zap.NewNop())
	require.NoError(t, repo.Hydrate(ctx))

	users := repo.Users()
	require.Len(t, users, 1)
	assert.Equal(t, SeedAdminID, users[0].ID)
	assert.Empty(t, repo.Materials())
}

func TestAddUserAppends(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	repo.AddUser(ctx, models.User{ID: "u1", Email: "a@x.com", Role: models.RoleStudent, Status: models.StatusActive})
	repo.AddUser(ctx, models.User{ID: "u2", Email: "b@x.com", Role: models.RoleTeacher, Status: models.StatusPending})

	users := repo.Users()
	require.Len(t, users, 3)
	assert.Equal(t, "u1", users[1].ID)
	assert.Equal(t, "u2", users[2].ID)
}

func TestUpdateUserStatusIsIdempotent(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	repo.AddUser(ctx, models.User{ID: "t1", Role: models.RoleTeacher, Status: models.StatusPending})

	repo.UpdateUserStatus(ctx, "t1", models.StatusActive)
	once := repo.Users()
	repo.UpdateUserStatus(ctx, "t1", models.StatusActive)
	twice := repo.Users()

	assert.Equal(t, once, twice)
	assert.Equal(t, models.StatusActive, repo.UserByID("t1").Status)
}

func TestUpdateUserStatusMissingIDIsNoOp(t *testing.T) {
	repo, _ := newTestRepo(t)
	before := repo.Users()

	repo.UpdateUserStatus(context.Background(), "ghost", models.StatusSuspended)

	assert.Equal(t, before, repo.Users())
}

func TestUserByEmailFirstMatchWins(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	repo.AddUser(ctx, models.User{ID: "u1", Email: "dup@x.com"})
	repo.AddUser(ctx, models.User{ID: "u2", Email: "dup@x.com"})

	found := repo.UserByEmail("dup@x.com")
	require.NotNil(t, found)
	assert.Equal(t, "u1", found.ID)
	assert.Nil(t, repo.UserByEmail("DUP@x.com"), "lookup is case-sensitive")
}

func TestAddMaterialPrepends(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	repo.AddMaterial(ctx, models.Material{ID: "m1", Grade: models.Grade5})
	repo.AddMaterial(ctx, models.Material{ID: "m2", Grade: models.Grade5})

	materials := repo.Materials()
	require.Len(t, materials, 2)
	assert.Equal(t, "m2", materials[0].ID)
	assert.Equal(t, "m1", materials[1].ID)
}

func TestMaterialsByGradePreservesOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	repo.AddMaterial(ctx, models.Material{ID: "m1", Grade: models.Grade5})
	repo.AddMaterial(ctx, models.Material{ID: "m2", Grade: models.Grade3})
	repo.AddMaterial(ctx, models.Material{ID: "m3", Grade: models.Grade5})

	fifth := repo.MaterialsByGrade(models.Grade5)
	require.Len(t, fifth, 2)
	assert.Equal(t, "m3", fifth[0].ID)
	assert.Equal(t, "m1", fifth[1].ID)
	assert.Empty(t, repo.MaterialsByGrade(models.Grade9))
}

func TestAssignmentsByGrade(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	a := models.Assignment{ID: "a1", Grade: models.Grade7}
	repo.AddAssignment(ctx, a)

	matched := repo.AssignmentsByGrade(models.Grade7)
	require.Len(t, matched, 1)
	assert.Equal(t, "a1", matched[0].ID)
	assert.Empty(t, repo.AssignmentsByGrade(models.Grade2))
}

func TestSubmissionsAccumulate(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	repo.AddSubmission(ctx, models.Submission{ID: "s1", AssignmentID: "a1", StudentID: "leo", Status: models.SubmissionSubmitted})
	repo.AddSubmission(ctx, models.Submission{ID: "s2", AssignmentID: "a1", StudentID: "leo", Status: models.SubmissionSubmitted})

	byAssignment := repo.SubmissionsByAssignment("a1")
	require.Len(t, byAssignment, 2)
	assert.Equal(t, "s2", byAssignment[0].ID)

	byStudent := repo.SubmissionsByStudent("leo")
	assert.Len(t, byStudent, 2)
}

func TestSetAIGradeMarksGraded(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	repo.AddSubmission(ctx, models.Submission{ID: "s1", Status: models.SubmissionSubmitted})

	repo.SetAIGrade(ctx, "s1", 85, "Muito bem!")

	s := repo.SubmissionByID("s1")
	require.NotNil(t, s)
	require.NotNil(t, s.AIGrade)
	assert.Equal(t, 85, *s.AIGrade)
	assert.Equal(t, "Muito bem!", s.AIFeedback)
	assert.Equal(t, models.SubmissionGraded, s.Status)

	// Unknown id is a no-op.
	repo.SetTeacherGrade(ctx, "ghost", 50)
}

func TestPersistenceRoundTrip(t *testing.T) {
	store, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first := New(store, "Admin", "admin@educa.com", zap.NewNop())
	require.NoError(t, first.Hydrate(ctx))
	first.AddUser(ctx, models.User{ID: "u1", Name: "Ana", Email: "ana@x.com", Role: models.RoleTeacher, Status: models.StatusPending})
	first.AddMaterial(ctx, models.Material{ID: "m1", Title: "Frações", Grade: models.Grade5, Subject: models.SubjectMath})
	first.AddAssignment(ctx, models.Assignment{ID: "a1", Grade: models.Grade5, Questions: []models.Question{{ID: "q1", Text: "2+2?"}}})
	first.AddSubmission(ctx, models.Submission{ID: "s1", AssignmentID: "a1", StudentID: "u2", Status: models.SubmissionSubmitted})

	second := New(store, "Admin", "admin@educa.com", zap.NewNop())
	require.NoError(t, second.Hydrate(ctx))

	assert.Equal(t, first.Users(), second.Users())
	assert.Equal(t, first.Materials(), second.Materials())
	assert.Equal(t, first.Assignments(), second.Assignments())
	assert.Equal(t, first.Submissions(), second.Submissions())
}

func TestResetClearsStoreAndMemory(t *testing.T) {
	repo, store := newTestRepo(t)
	ctx := context.Background()
	repo.AddUser(ctx, models.User{ID: "u1", Email: "x@x.com"})
	repo.AddMaterial(ctx, models.Material{ID: "m1"})

	require.NoError(t, repo.Reset(ctx))

	users := repo.Users()
	require.Len(t, users, 1)
	assert.Equal(t, SeedAdminID, users[0].ID)
	assert.Empty(t, repo.Materials())

	_, err := store.Load(ctx, kvstore.KeyMaterials)
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	_, err = os.Stat(store.Path(kvstore.KeyUsers))
	assert.True(t, os.IsNotExist(err))
}
