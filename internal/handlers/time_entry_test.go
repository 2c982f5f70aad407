package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

func logTime(env handlerTestEnv, user *models.User, body map[string]interface{}) (int, dto.TimeEntryDTO) {
	c, w := createAuthContext(http.MethodPost, "/api/time-tracking", body, user)
	serve(c, env.entries.CreateTimeEntry)

	var entry dto.TimeEntryDTO
	if w.Code == http.StatusCreated {
		_ = json.Unmarshal(w.Body.Bytes(), &entry)
	}
	return w.Code, entry
}

func TestTimeEntryHandler_CreateAndSummarize(t *testing.T) {
	env := newHandlerTestEnv(t)
	manager := env.createTestUser(t, "manager", models.UserTypeProjectManager)
	dev := env.createTestUser(t, "dev", models.UserTypeProgrammer)
	project := env.createTestProject(t, "Apollo", manager.ID)
	task := env.createTestTask(t, "Build", project.ID, dev.ID)

	code, entry := logTime(env, dev, map[string]interface{}{
		"taskId": task.ID,
		"date":   "2026-03-10T17:45:00Z",
		"hours":  2.5,
		"notes":  "pairing",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), entry.Date.UTC())
	assert.Equal(t, "Build", entry.TaskName)
	assert.Equal(t, "dev", entry.UserName)

	code, _ = logTime(env, dev, map[string]interface{}{
		"taskId": task.ID,
		"date":   "2026-03-12",
		"hours":  1.5,
	})
	require.Equal(t, http.StatusCreated, code)

	c, w := createAuthContext(http.MethodGet, "/api/time-tracking/task/x", nil, manager, idParam("taskId", task.ID))
	serve(c, env.entries.ListTaskEntries)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []dto.TimeEntryDTO
	decodeJSON(t, w, &entries)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Date.After(entries[1].Date), "newest entry first")

	c, w = createAuthContext(http.MethodGet, "/api/time-tracking/summary/task/x", nil, dev, idParam("taskId", task.ID))
	serve(c, env.entries.GetTaskSummary)
	require.Equal(t, http.StatusOK, w.Code)
	var summary dto.TimeEntrySummaryDTO
	decodeJSON(t, w, &summary)
	assert.Equal(t, task.ID, summary.TaskID)
	assert.InDelta(t, 4.0, summary.TotalHours, 0.001)
	assert.EqualValues(t, 2, summary.EntriesCount)
	require.NotNil(t, summary.LastEntryHours)
	assert.InDelta(t, 1.5, *summary.LastEntryHours, 0.001)
}

func TestTimeEntryHandler_CreateRules(t *testing.T) {
	env := newHandlerTestEnv(t)
	manager := env.createTestUser(t, "manager", models.UserTypeProjectManager)
	dev := env.createTestUser(t, "dev", models.UserTypeProgrammer)
	stranger := env.createTestUser(t, "stranger", models.UserTypeProgrammer)
	project := env.createTestProject(t, "Apollo", manager.ID)
	task := env.createTestTask(t, "Build", project.ID, dev.ID)

	entry := func(taskID uint64, hours float64, date string) map[string]interface{} {
		return map[string]interface{}{"taskId": taskID, "hours": hours, "date": date}
	}

	tests := []struct {
		name string
		user *models.User
		body map[string]interface{}
		want int
	}{
		{"manager cannot log time", manager, entry(task.ID, 1, "2026-03-10"), http.StatusForbidden},
		{"manager with bad hours", manager, entry(task.ID, 30, "2026-03-10"), http.StatusForbidden},
		{"not the assignee", stranger, entry(task.ID, 1, "2026-03-10"), http.StatusForbidden},
		{"missing task", dev, entry(999, 1, "2026-03-10"), http.StatusNotFound},
		{"too few hours", dev, entry(task.ID, 0.05, "2026-03-10"), http.StatusBadRequest},
		{"too many hours", dev, entry(task.ID, 24.5, "2026-03-10"), http.StatusBadRequest},
		{"bad date", dev, entry(task.ID, 1, "10/03/2026"), http.StatusBadRequest},
		{"upper bound", dev, entry(task.ID, 24, "2026-03-10"), http.StatusCreated},
		{"lower bound", dev, entry(task.ID, 0.1, "2026-03-10"), http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := logTime(env, tt.user, tt.body)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestTimeEntryHandler_ListRequiresVisibility(t *testing.T) {
	env := newHandlerTestEnv(t)
	manager := env.createTestUser(t, "manager", models.UserTypeProjectManager)
	dev := env.createTestUser(t, "dev", models.UserTypeProgrammer)
	stranger := env.createTestUser(t, "stranger", models.UserTypeProgrammer)
	project := env.createTestProject(t, "Apollo", manager.ID)
	task := env.createTestTask(t, "Build", project.ID, dev.ID)

	c, w := createAuthContext(http.MethodGet, "/api/time-tracking/task/x", nil, stranger, idParam("taskId", task.ID))
	serve(c, env.entries.ListTaskEntries)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = createAuthContext(http.MethodGet, "/api/time-tracking/summary/task/x", nil, dev, idParam("taskId", 999))
	serve(c, env.entries.GetTaskSummary)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_ListProgrammers(t *testing.T) {
	env := newHandlerTestEnv(t)
	manager := env.createTestUser(t, "manager", models.UserTypeProjectManager)
	env.createTestUser(t, "bruno", models.UserTypeProgrammer)
	env.createTestUser(t, "alice", models.UserTypeProgrammer)

	c, w := createAuthContext(http.MethodGet, "/api/users/programmers", nil, manager)
	serve(c, env.users.ListProgrammers)
	require.Equal(t, http.StatusOK, w.Code)

	var users []dto.UserDTO
	decodeJSON(t, w, &users)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].FullName)
	for _, u := range users {
		assert.Equal(t, models.UserTypeProgrammer, u.UserType)
	}
}
