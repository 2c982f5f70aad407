package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/project-tracker-api/internal/authz"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

type serviceTestEnv struct {
	db       *gorm.DB
	auth     *AuthService
	projects *ProjectService
	tasks    *TaskService
	entries  *TimeEntryService
	users    *UserService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))

	log := zerolog.Nop()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	entryRepo := repository.NewTimeEntryRepository(db)

	tasks := NewTaskService(log, taskRepo, projectRepo, userRepo)
	return serviceTestEnv{
		db:       db,
		auth:     NewAuthService(log, userRepo, newTestTokenService()),
		projects: NewProjectService(log, projectRepo, taskRepo),
		tasks:    tasks,
		entries:  NewTimeEntryService(log, entryRepo, tasks),
		users:    NewUserService(userRepo),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, name string, userType models.UserType) authz.Actor {
	t.Helper()

	user := &models.User{
		FullName:     name,
		Email:        name + "@example.com",
		PasswordHash: "hashedpassword",
		UserType:     userType,
	}
	require.NoError(t, env.db.Create(user).Error)
	return authz.Actor{ID: user.ID, Type: userType}
}

func (env serviceTestEnv) createProject(t *testing.T, name string, managerID uint64) *models.Project {
	t.Helper()

	project := &models.Project{Name: name, ManagerID: managerID}
	require.NoError(t, env.db.Create(project).Error)
	return project
}

func (env serviceTestEnv) createTask(t *testing.T, name string, projectID, assigneeID uint64, status models.TaskStatus) *models.Task {
	t.Helper()

	task := &models.Task{
		Name:       name,
		Deadline:   time.Now().Add(72 * time.Hour).UTC(),
		Status:     status,
		ProjectID:  projectID,
		AssigneeID: assigneeID,
	}
	if status == models.TaskStatusCompleted {
		completedAt := time.Now().UTC()
		task.CompletedAt = &completedAt
	}
	require.NoError(t, env.db.Omit("Project", "Assignee").Create(task).Error)
	return task
}

func (env serviceTestEnv) reloadTask(t *testing.T, id uint64) models.Task {
	t.Helper()

	var task models.Task
	require.NoError(t, env.db.First(&task, id).Error)
	return task
}

func requireCompletedAtMatchesStatus(t *testing.T, task models.Task) {
	t.Helper()
	require.Equal(t, task.Status == models.TaskStatusCompleted, task.CompletedAt != nil,
		"status %q with completedAt %v", task.Status, task.CompletedAt)
}
