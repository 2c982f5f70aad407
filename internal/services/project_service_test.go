package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

func allocatedIDs(t *testing.T, env serviceTestEnv, projectID uint64) []uint64 {
	t.Helper()

	var ids []uint64
	require.NoError(t, env.db.Model(&models.ProjectProgrammer{}).
		Where("project_id = ?", projectID).
		Order("programmer_id").
		Pluck("programmer_id", &ids).Error)
	return ids
}

func TestProjectService_AllocateProgrammersReplacesRows(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, "manager", models.UserTypeProjectManager)
	p2 := env.createUser(t, "p2", models.UserTypeProgrammer)
	p3 := env.createUser(t, "p3", models.UserTypeProgrammer)
	project := env.createProject(t, "Apollo", manager.ID)

	allocations, err := env.projects.AllocateProgrammers(ctx, manager, project.ID, []uint64{p2.ID})
	require.NoError(t, err)
	require.Len(t, allocations, 1)
	assert.Equal(t, "p2", allocations[0].Programmer.FullName)

	_, err = env.projects.AllocateProgrammers(ctx, manager, project.ID, []uint64{p2.ID, p3.ID, p3.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint64{p2.ID, p3.ID}, allocatedIDs(t, env, project.ID))

	_, err = env.projects.AllocateProgrammers(ctx, manager, project.ID, []uint64{})
	require.NoError(t, err)
	assert.Empty(t, allocatedIDs(t, env, project.ID))
}

func TestProjectService_AllocateRejectsNonProgrammerWithoutWrites(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, "manager", models.UserTypeProjectManager)
	otherManager := env.createUser(t, "other", models.UserTypeProjectManager)
	programmer := env.createUser(t, "dev", models.UserTypeProgrammer)
	project := env.createProject(t, "Apollo", manager.ID)

	_, err := env.projects.AllocateProgrammers(ctx, manager, project.ID, []uint64{programmer.ID})
	require.NoError(t, err)

	_, err = env.projects.AllocateProgrammers(ctx, manager, project.ID, []uint64{otherManager.ID, programmer.ID})
	assert.ErrorIs(t, err, ErrInvalidProgrammers)

	_, err = env.projects.AllocateProgrammers(ctx, manager, project.ID, []uint64{404})
	assert.ErrorIs(t, err, ErrInvalidProgrammers)

	assert.Equal(t, []uint64{programmer.ID}, allocatedIDs(t, env, project.ID))
}

func TestProjectService_AllocateRequiresOwner(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner", models.UserTypeProjectManager)
	intruder := env.createUser(t, "intruder", models.UserTypeProjectManager)
	programmer := env.createUser(t, "dev", models.UserTypeProgrammer)
	project := env.createProject(t, "Apollo", owner.ID)

	_, err := env.projects.AllocateProgrammers(ctx, intruder, project.ID, nil)
	assert.ErrorIs(t, err, ErrNotProjectOwner)

	_, err = env.projects.AllocateProgrammers(ctx, programmer, project.ID, nil)
	assert.ErrorIs(t, err, ErrNotProjectManager)

	_, err = env.projects.AllocateProgrammers(ctx, owner, 999, nil)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_Visibility(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner", models.UserTypeProjectManager)
	other := env.createUser(t, "other", models.UserTypeProjectManager)
	assigned := env.createUser(t, "assigned", models.UserTypeProgrammer)
	outsider := env.createUser(t, "outsider", models.UserTypeProgrammer)

	project := env.createProject(t, "Apollo", owner.ID)
	env.createProject(t, "Gemini", other.ID)
	env.createTask(t, "Build", project.ID, assigned.ID, models.TaskStatusPending)

	got, err := env.projects.GetProject(ctx, owner, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner", got.Manager.FullName)

	_, err = env.projects.GetProject(ctx, assigned, project.ID)
	assert.NoError(t, err)

	_, err = env.projects.GetProject(ctx, other, project.ID)
	assert.ErrorIs(t, err, ErrProjectAccessDenied)

	_, err = env.projects.GetProject(ctx, outsider, project.ID)
	assert.ErrorIs(t, err, ErrProjectAccessDenied)

	_, err = env.projects.GetProject(ctx, owner, 999)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	owned, err := env.projects.ListProjects(ctx, owner)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, project.ID, owned[0].ID)

	visible, err := env.projects.ListProjects(ctx, assigned)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, project.ID, visible[0].ID)

	none, err := env.projects.ListProjects(ctx, outsider)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProjectService_DeleteCascades(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, "manager", models.UserTypeProjectManager)
	programmer := env.createUser(t, "dev", models.UserTypeProgrammer)
	project := env.createProject(t, "Apollo", manager.ID)
	keep := env.createProject(t, "Gemini", manager.ID)

	task := env.createTask(t, "Build", project.ID, programmer.ID, models.TaskStatusPending)
	kept := env.createTask(t, "Keep", keep.ID, programmer.ID, models.TaskStatusPending)
	require.NoError(t, env.db.Create(&models.TimeEntry{TaskID: task.ID, UserID: programmer.ID, Hours: 2}).Error)
	require.NoError(t, env.db.Create(&models.TimeEntry{TaskID: kept.ID, UserID: programmer.ID, Hours: 1}).Error)
	_, err := env.projects.AllocateProgrammers(ctx, manager, project.ID, []uint64{programmer.ID})
	require.NoError(t, err)

	require.NoError(t, env.projects.DeleteProject(ctx, manager, project.ID))

	var count int64
	env.db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&count)
	assert.Zero(t, count)
	env.db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Zero(t, count)
	env.db.Model(&models.ProjectProgrammer{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Zero(t, count)
	env.db.Model(&models.TimeEntry{}).Where("task_id = ?", task.ID).Count(&count)
	assert.Zero(t, count)

	env.db.Model(&models.TimeEntry{}).Where("task_id = ?", kept.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestProjectService_CreateAndUpdate(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, "manager", models.UserTypeProjectManager)
	programmer := env.createUser(t, "dev", models.UserTypeProgrammer)

	budget := 1500.5
	project, err := env.projects.CreateProject(ctx, manager, ProjectInput{Name: " Apollo ", Budget: &budget})
	require.NoError(t, err)
	assert.Equal(t, "Apollo", project.Name)
	assert.Equal(t, manager.ID, project.ManagerID)

	_, err = env.projects.CreateProject(ctx, programmer, ProjectInput{Name: "Nope"})
	assert.ErrorIs(t, err, ErrNotProjectManager)

	_, err = env.projects.CreateProject(ctx, manager, ProjectInput{Name: "A"})
	assert.ErrorIs(t, err, ErrProjectNameInvalid)

	negative := -1.0
	err = env.projects.UpdateProject(ctx, manager, project.ID, ProjectInput{Name: "Apollo", Budget: &negative})
	assert.ErrorIs(t, err, ErrNegativeBudget)

	description := "Moonshot"
	require.NoError(t, env.projects.UpdateProject(ctx, manager, project.ID, ProjectInput{Name: "Apollo 11", Description: &description}))

	got, err := env.projects.GetProject(ctx, manager, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo 11", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Moonshot", *got.Description)
	assert.Nil(t, got.Budget)
}

func TestProjectService_ListProjectTasksScopesProgrammers(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	manager := env.createUser(t, "manager", models.UserTypeProjectManager)
	alice := env.createUser(t, "alice", models.UserTypeProgrammer)
	bob := env.createUser(t, "bob", models.UserTypeProgrammer)
	project := env.createProject(t, "Apollo", manager.ID)

	env.createTask(t, "Alice task", project.ID, alice.ID, models.TaskStatusPending)
	env.createTask(t, "Bob task", project.ID, bob.ID, models.TaskStatusPending)

	all, err := env.projects.ListProjectTasks(ctx, manager, project.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := env.projects.ListProjectTasks(ctx, alice, project.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Alice task", own[0].Name)
	assert.Equal(t, "Apollo", own[0].Project.Name)
}
