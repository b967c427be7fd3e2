package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/randalmurphal/scope/internal/auth"
	"github.com/randalmurphal/scope/internal/db"
)

func mustOK(t *testing.T, env *testEnv, method, path string, payload any) {
	t.Helper()
	rec := env.do(t, method, path, payload)
	require.Equal(t, http.StatusOK, rec.Code, "%s %s: %s", method, path, rec.Body.String())
}

func TestProjects_Scenario(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/projects", map[string]any{"id": "P1", "name": "Alpha"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Project created successfully", body(rec).Get("message").String())
	assert.Equal(t, "P1", body(rec).Get("id").String())

	rec = env.do(t, http.MethodGet, "/api/projects/P1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	b := body(rec)
	assert.Equal(t, "Alpha", b.Get("name").String())
	assert.Equal(t, "active", b.Get("status").String())
	assert.Equal(t, "", b.Get("description").String())
	assert.Equal(t, int64(0), b.Get("sprint_count").Int())
	assert.Equal(t, int64(0), b.Get("task_count").Int())
	assert.Equal(t, int64(0), b.Get("risk_count").Int())

	// Default board
	rec = env.do(t, http.MethodGet, "/api/columns?project_id=P1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cols := body(rec).Array()
	require.Len(t, cols, 4)
	for i, name := range []string{"To Do", "In Progress", "Blocked", "Done"} {
		assert.Equal(t, name, cols[i].Get("name").String())
		assert.Equal(t, int64(i), cols[i].Get("order_index").Int())
		assert.True(t, cols[i].Get("is_default").Bool())
	}

	mustOK(t, env, http.MethodPost, "/api/tasks", map[string]any{"id": "T1", "project_id": "P1", "title": "x"})

	rec = env.do(t, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := body(rec).Array()
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].Get("task_count").Int())

	mustOK(t, env, http.MethodPost, "/api/sprints", map[string]any{
		"id": "S1", "project_id": "P1", "name": "Sprint 1", "start_date": "2024-01-01", "end_date": "2024-01-14",
	})
	rec = env.do(t, http.MethodPost, "/api/tasks/T1/sprint", map[string]any{"sprint_id": "S1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task added to sprint successfully", body(rec).Get("message").String())

	// Associating again is a no-op.
	mustOK(t, env, http.MethodPost, "/api/tasks/T1/sprint", map[string]any{"sprint_id": "S1"})

	rec = env.do(t, http.MethodGet, "/api/sprints/S1/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := body(rec).Array()
	require.Len(t, tasks, 1)
	assert.Equal(t, "T1", tasks[0].Get("id").String())

	rec = env.do(t, http.MethodPut, "/api/projects/P1", map[string]any{"name": "Alpha 2", "status": "on_hold"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Project updated successfully", body(rec).Get("message").String())

	rec = env.do(t, http.MethodGet, "/api/projects/P1", nil)
	assert.Equal(t, "Alpha 2", body(rec).Get("name").String())
	assert.Equal(t, "on_hold", body(rec).Get("status").String())
	assert.Equal(t, int64(1), body(rec).Get("sprint_count").Int())

	rec = env.do(t, http.MethodDelete, "/api/projects/P1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Project deleted successfully", body(rec).Get("message").String())

	// Cascade
	for _, path := range []string{"/api/tasks/T1", "/api/sprints/S1", "/api/projects/P1"} {
		assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, nil).Code, path)
	}
	rec = env.do(t, http.MethodGet, "/api/columns?project_id=P1", nil)
	assertEmptyList(t, rec)
}

func TestCreate_DuplicateIDConflicts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	mustOK(t, env, http.MethodPost, "/api/projects", map[string]any{"id": "P1", "name": "Alpha"})

	tests := []struct {
		path    string
		payload map[string]any
		message string
	}{
		{"/api/projects", map[string]any{"id": "P1", "name": "Again"}, "Project with this ID already exists"},
		{"/api/tasks", map[string]any{"id": "T1", "project_id": "P1", "title": "x"}, "Task with this ID already exists"},
		{"/api/sprints", map[string]any{"id": "S1", "project_id": "P1", "name": "s", "start_date": "2024-01-01", "end_date": "2024-01-02"}, "Sprint with this ID already exists"},
		{"/api/risks", map[string]any{"id": "R1", "project_id": "P1", "name": "r"}, "Risk with this ID already exists"},
		{"/api/minutes", map[string]any{"id": "M1", "project_id": "P1", "title": "m", "meeting_date": "2024-01-01"}, "Minutes with this ID already exists"},
	}

	for _, tt := range tests {
		if tt.path != "/api/projects" {
			mustOK(t, env, http.MethodPost, tt.path, tt.payload)
		}
		rec := env.do(t, http.MethodPost, tt.path, tt.payload)
		assert.Equal(t, http.StatusConflict, rec.Code, tt.path)
		assert.Equal(t, tt.message, body(rec).Get("error").String(), tt.path)
	}

	// The original project is untouched.
	rec := env.do(t, http.MethodGet, "/api/projects/P1", nil)
	assert.Equal(t, "Alpha", body(rec).Get("name").String())
}

func TestCreate_RequiredFields(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		path    string
		payload map[string]any
		message string
	}{
		{"/api/projects", map[string]any{"id": "P1"}, "Project ID and name are required"},
		{"/api/projects", map[string]any{"id": "", "name": "Alpha"}, "Project ID and name are required"},
		{"/api/tasks", map[string]any{"id": "T1", "title": "x"}, "Task ID, project ID and title are required"},
		{"/api/sprints", map[string]any{"id": "S1", "project_id": "P1", "name": "s"}, "Sprint ID, project ID, name, start date and end date are required"},
		{"/api/risks", map[string]any{"project_id": "P1", "name": "r"}, "Risk ID, project ID and name are required"},
		{"/api/minutes", map[string]any{"id": "M1", "project_id": "P1", "title": "m"}, "Minutes ID, project ID, title and meeting date are required"},
		{"/api/columns", map[string]any{"project_id": "P1"}, "Column project ID and name are required"},
	}

	for _, tt := range tests {
		rec := env.do(t, http.MethodPost, tt.path, tt.payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.path)
		assert.Equal(t, tt.message, body(rec).Get("error").String(), tt.path)
	}

	rec := env.do(t, http.MethodGet, "/api/projects", nil)
	assertEmptyList(t, rec)
}

func TestUpdateDelete_MissingIs404(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	mustOK(t, env, http.MethodPost, "/api/projects", map[string]any{"id": "P1", "name": "Alpha"})

	tests := []struct {
		entity  string
		path    string
		payload map[string]any
	}{
		{"Project", "/api/projects/P9", map[string]any{"name": "x"}},
		{"Task", "/api/tasks/T9", map[string]any{"title": "x"}},
		{"Sprint", "/api/sprints/S9", map[string]any{"name": "x", "start_date": "2024-01-01", "end_date": "2024-01-02"}},
		{"Risk", "/api/risks/R9", map[string]any{"name": "x"}},
		{"Minutes", "/api/minutes/M9", map[string]any{"title": "x", "meeting_date": "2024-01-01"}},
		{"Column", "/api/columns/P1-C9", map[string]any{"name": "x"}},
	}

	for _, tt := range tests {
		rec := env.do(t, http.MethodPut, tt.path, tt.payload)
		assert.Equal(t, http.StatusNotFound, rec.Code, "PUT "+tt.path)
		assert.Equal(t, tt.entity+" not found", body(rec).Get("error").String())

		rec = env.do(t, http.MethodDelete, tt.path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, "DELETE "+tt.path)

		rec = env.do(t, http.MethodGet, tt.path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, "GET "+tt.path)
	}

	rec := env.do(t, http.MethodGet, "/api/projects/P1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTasks_DefaultsAndUpdate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	mustOK(t, env, http.MethodPost, "/api/projects", map[string]any{"id": "P1", "name": "Alpha"})
	mustOK(t, env, http.MethodPost, "/api/tasks", map[string]any{"id": "T1", "project_id": "P1", "title": "x"})

	rec := env.do(t, http.MethodGet, "/api/tasks/T1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	b := body(rec)
	assert.Equal(t, "todo", b.Get("status").String())
	assert.Equal(t, "medium", b.Get("priority").String())
	assert.Equal(t, "", b.Get("responsible").String())
	assert.Equal(t, gjson.Null, b.Get("start_date").Type)
	assert.Equal(t, gjson.Null, b.Get("end_date").Type)

	mustOK(t, env, http.MethodPut, "/api/tasks/T1", map[string]any{
		"title": "y", "status": "done", "priority": "high", "start_date": "2024-02-01",
	})
	b = body(env.do(t, http.MethodGet, "/api/tasks/T1", nil))
	assert.Equal(t, "y", b.Get("title").String())
	assert.Equal(t, "done", b.Get("status").String())
	assert.Equal(t, "high", b.Get("priority").String())
	assert.Equal(t, "2024-02-01", b.Get("start_date").String())

	mustOK(t, env, http.MethodPost, "/api/tasks", map[string]any{"id": "T2", "project_id": "P1", "title": "z"})
	mustOK(t, env, http.MethodPost, "/api/projects", map[string]any{"id": "P2", "name": "Beta"})
	mustOK(t, env, http.MethodPost, "/api/tasks", map[string]any{"id": "T1-other", "project_id": "P2", "title": "w"})

	list := body(env.do(t, http.MethodGet, "/api/tasks?project_id=P1", nil)).Array()
	require.Len(t, list, 2)
	assert.Equal(t, "T2", list[0].Get("id").String())
	assert.Equal(t, "T1", list[1].Get("id").String())

	all := body(env.do(t, http.MethodGet, "/api/tasks", nil)).Array()
	assert.Len(t, all, 3)

	mustOK(t, env, http.MethodDelete, "/api/tasks/T2", nil)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/tasks/T2", nil).Code)
}

func TestRisks_Defaults(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	mustOK(t, env, http.MethodPost, "/api/projects", map[string]any{"id": "P1", "name": "Alpha"})
	mustOK(t, env, http.MethodPost, "/api/risks", map[string]any{"id": "R1", "project_id": "P1", "name": "Vendor"})

	b := body(env.do(t, http.MethodGet, "/api/risks/R1", nil))
	assert.Equal(t, int64(1), b.Get("impact").Int())
	assert.Equal(t, int64(1), b.Get("probability").Int())
	assert.Equal(t, "accept", b.Get("strategy").String())
	assert.Equal(t, "identified", b.Get("status").String())

	mustOK(t, env, http.MethodPut, "/api/risks/R1", map[string]any{
		"name": "Vendor", "impact": 4, "probability": 3, "strategy": "mitigate", "mitigation_plan": "second supplier",
	})
	b = body(env.do(t, http.MethodGet, "/api/risks/R1", nil))
	assert.Equal(t, int64(4), b.Get("impact").Int())
	assert.Equal(t, int64(3), b.Get("probability").Int())
	assert.Equal(t, "mitigate", b.Get("strategy").String())
	assert.Equal(t, "second supplier", b.Get("mitigation_plan").String())

	b = body(env.do(t, http.MethodGet, "/api/projects/P1", nil))
	assert.Equal(t, int64(1), b.Get("risk_count").Int())
}

func TestSprintsAndMinutes_Update(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	mustOK(t, env, http.MethodPost, "/api/projects", map[string]any{"id": "P1", "name": "Alpha"})
	mustOK(t, env, http.MethodPost, "/api/sprints", map[string]any{
		"id": "S1", "project_id": "P1", "name": "Sprint 1", "start_date": "2024-01-01", "end_date": "2024-01-14",
	})
	mustOK(t, env, http.MethodPost, "/api/minutes", map[string]any{
		"id": "M1", "project_id": "P1", "title": "Kickoff", "meeting_date": "2024-01-02",
	})

	b := body(env.do(t, http.MethodGet, "/api/sprints/S1", nil))
	assert.Equal(t, "planning", b.Get("status").String())

	mustOK(t, env, http.MethodPut, "/api/sprints/S1", map[string]any{
		"name": "Sprint one", "start_date": "2024-01-01", "end_date": "2024-01-21", "status": "active",
	})
	b = body(env.do(t, http.MethodGet, "/api/sprints/S1", nil))
	assert.Equal(t, "Sprint one", b.Get("name").String())
	assert.Equal(t, "2024-01-21", b.Get("end_date").String())
	assert.Equal(t, "active", b.Get("status").String())

	rec := env.do(t, http.MethodPut, "/api/sprints/S1", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mustOK(t, env, http.MethodPut, "/api/minutes/M1", map[string]any{
		"title": "Kickoff", "content": "Agreed scope", "meeting_date": "2024-01-03",
	})
	b = body(env.do(t, http.MethodGet, "/api/minutes/M1", nil))
	assert.Equal(t, "Agreed scope", b.Get("content").String())
	assert.Equal(t, "2024-01-03", b.Get("meeting_date").String())

	list := body(env.do(t, http.MethodGet, "/api/minutes?project_id=P1", nil)).Array()
	assert.Len(t, list, 1)
	list = body(env.do(t, http.MethodGet, "/api/sprints?project_id=P2", nil)).Array()
	assert.Len(t, list, 0)

	mustOK(t, env, http.MethodDelete, "/api/minutes/M1", nil)
	mustOK(t, env, http.MethodDelete, "/api/sprints/S1", nil)
}

func TestSprintAssociation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	mustOK(t, env, http.MethodPost, "/api/projects", map[string]any{"id": "P1", "name": "Alpha"})
	mustOK(t, env, http.MethodPost, "/api/tasks", map[string]any{"id": "T1", "project_id": "P1", "title": "x"})
	mustOK(t, env, http.MethodPost, "/api/sprints", map[string]any{
		"id": "S1", "project_id": "P1", "name": "s", "start_date": "2024-01-01", "end_date": "2024-01-14",
	})

	rec := env.do(t, http.MethodPost, "/api/tasks/T1/sprint", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Sprint ID is required", body(rec).Get("error").String())

	rec = env.do(t, http.MethodPost, "/api/tasks/T9/sprint", map[string]any{"sprint_id": "S1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", body(rec).Get("error").String())

	rec = env.do(t, http.MethodPost, "/api/tasks/T1/sprint", map[string]any{"sprint_id": "S9"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Sprint not found", body(rec).Get("error").String())

	rec = env.do(t, http.MethodGet, "/api/sprints/S9/tasks", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	mustOK(t, env, http.MethodPost, "/api/tasks/T1/sprint", map[string]any{"sprint_id": "S1"})
	rec = env.do(t, http.MethodDelete, "/api/tasks/T1/sprint/S1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task removed from sprint successfully", body(rec).Get("message").String())

	rec = env.do(t, http.MethodDelete, "/api/tasks/T1/sprint/S1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assertEmptyList(t, env.do(t, http.MethodGet, "/api/sprints/S1/tasks", nil))
}

func TestColumns_Custom(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	mustOK(t, env, http.MethodPost, "/api/projects", map[string]any{"id": "P1", "name": "Alpha"})

	rec := env.do(t, http.MethodPost, "/api/columns", map[string]any{"project_id": "P1", "name": "Review"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Column created successfully", body(rec).Get("message").String())
	assert.Equal(t, "P1-C5", body(rec).Get("id").String())

	b := body(env.do(t, http.MethodGet, "/api/columns/P1-C5", nil))
	assert.Equal(t, int64(4), b.Get("order_index").Int())
	assert.False(t, b.Get("is_default").Bool())

	// Rename keeps the position when order_index is omitted.
	mustOK(t, env, http.MethodPut, "/api/columns/P1-C5", map[string]any{"name": "QA"})
	b = body(env.do(t, http.MethodGet, "/api/columns/P1-C5", nil))
	assert.Equal(t, "QA", b.Get("name").String())
	assert.Equal(t, int64(4), b.Get("order_index").Int())

	mustOK(t, env, http.MethodPut, "/api/columns/P1-C5", map[string]any{"name": "QA", "order_index": 2})
	b = body(env.do(t, http.MethodGet, "/api/columns/P1-C5", nil))
	assert.Equal(t, int64(2), b.Get("order_index").Int())

	rec = env.do(t, http.MethodPost, "/api/columns", map[string]any{"project_id": "P9", "name": "Review"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Project not found", body(rec).Get("error").String())

	mustOK(t, env, http.MethodDelete, "/api/columns/P1-C5", nil)
	assert.Len(t, body(env.do(t, http.MethodGet, "/api/columns?project_id=P1", nil)).Array(), 4)
}

func TestGenerateID(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/generate-id/P", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "P1", body(rec).Get("id").String())

	mustOK(t, env, http.MethodPost, "/api/projects", map[string]any{"id": "P1", "name": "Alpha"})
	mustOK(t, env, http.MethodPost, "/api/projects", map[string]any{"id": "P7", "name": "Beta"})
	mustOK(t, env, http.MethodPost, "/api/tasks", map[string]any{"id": "T3", "project_id": "P1", "title": "x"})
	mustOK(t, env, http.MethodPost, "/api/tasks", map[string]any{"id": "T9", "project_id": "P7", "title": "y"})

	tests := []struct {
		path string
		want string
	}{
		{"/api/generate-id/P", "P8"},
		{"/api/generate-id/T", "T10"},
		{"/api/generate-id/T?project_id=P1", "T4"},
		{"/api/generate-id/T?project_id=P2", "T1"},
		{"/api/generate-id/P?project_id=P1", "P8"},
		{"/api/generate-id/S", "S1"},
	}
	for _, tt := range tests {
		rec := env.do(t, http.MethodGet, tt.path, nil)
		require.Equal(t, http.StatusOK, rec.Code, tt.path)
		assert.Equal(t, tt.want, body(rec).Get("id").String(), tt.path)
	}

	rec = env.do(t, http.MethodGet, "/api/generate-id/X", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid prefix", body(rec).Get("error").String())

	rec = env.doToken(t, http.MethodGet, "/api/generate-id/P", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func seedUser(t *testing.T, store *db.DB, username, password string, active bool) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(context.Background(), &db.User{
		ID:           "u-" + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		FullName:     "Test " + username,
		IsActive:     active,
	}))
}

func TestLogin_Flow(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seedUser(t, env.db, "bob", "hunter22", true)

	rec := env.doToken(t, http.MethodPost, "/api/auth/login", map[string]any{"username": "bob", "password": "hunter22"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	b := body(rec)
	assert.Equal(t, "Login successful", b.Get("message").String())
	assert.Equal(t, "24h", b.Get("expiresIn").String())
	assert.Equal(t, "bob", b.Get("user.username").String())
	assert.Equal(t, "bob@example.com", b.Get("user.email").String())
	assert.False(t, b.Get("user.password_hash").Exists())
	token := b.Get("token").String()
	require.NotEmpty(t, token)

	rec = env.doToken(t, http.MethodGet, "/api/auth/verify", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	b = body(rec)
	assert.Equal(t, "Token is valid", b.Get("message").String())
	assert.Equal(t, "u-bob", b.Get("user.id").String())
	assert.Equal(t, "Test bob", b.Get("user.full_name").String())
	assert.NotEmpty(t, b.Get("timestamp").String())

	rec = env.doToken(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob", body(rec).Get("user.username").String())
	assert.False(t, body(rec).Get("message").Exists())

	rec = env.doToken(t, http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logout successful", body(rec).Get("message").String())

	// The token keeps working after logout; sessions are not tracked.
	rec = env.doToken(t, http.MethodGet, "/api/projects", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	seedUser(t, env.db, "bob", "hunter22", true)
	seedUser(t, env.db, "carol", "hunter22", false)

	tests := []struct {
		name    string
		payload map[string]any
		status  int
		errMsg  string
		message string
	}{
		{"missing password", map[string]any{"username": "bob"}, http.StatusBadRequest, "Validation error", "Username and password are required"},
		{"missing username", map[string]any{"password": "x"}, http.StatusBadRequest, "Validation error", "Username and password are required"},
		{"unknown user", map[string]any{"username": "nobody", "password": "x"}, http.StatusUnauthorized, "Authentication failed", "Invalid username or password"},
		{"wrong password", map[string]any{"username": "bob", "password": "nope"}, http.StatusUnauthorized, "Authentication failed", "Invalid username or password"},
		{"inactive user", map[string]any{"username": "carol", "password": "hunter22"}, http.StatusUnauthorized, "Authentication failed", "Invalid username or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.doToken(t, http.MethodPost, "/api/auth/login", tt.payload, "")
			assert.Equal(t, tt.status, rec.Code)
			b := body(rec)
			assert.Equal(t, tt.errMsg, b.Get("error").String())
			assert.Equal(t, tt.message, b.Get("message").String())
			assert.False(t, b.Get("token").Exists())
		})
	}
}
