package api

import (
	"context"

	"github.com/randalmurphal/scope/internal/db"
)

// Store is the persistence the handlers need. *db.DB implements it.
type Store interface {
	Migrate(ctx context.Context) error
	Reset(ctx context.Context) error

	GetUserByUsername(ctx context.Context, username string) (*db.User, error)

	ListProjects(ctx context.Context) ([]db.Project, error)
	GetProject(ctx context.Context, id string) (*db.Project, error)
	CreateProject(ctx context.Context, p *db.Project) error
	UpdateProject(ctx context.Context, p *db.Project) error
	DeleteProject(ctx context.Context, id string) error

	ListTasks(ctx context.Context, projectID string) ([]db.Task, error)
	GetTask(ctx context.Context, id string) (*db.Task, error)
	CreateTask(ctx context.Context, t *db.Task) error
	UpdateTask(ctx context.Context, t *db.Task) error
	DeleteTask(ctx context.Context, id string) error

	ListSprints(ctx context.Context, projectID string) ([]db.Sprint, error)
	GetSprint(ctx context.Context, id string) (*db.Sprint, error)
	CreateSprint(ctx context.Context, s *db.Sprint) error
	UpdateSprint(ctx context.Context, s *db.Sprint) error
	DeleteSprint(ctx context.Context, id string) error
	AddTaskToSprint(ctx context.Context, sprintID, taskID string) error
	RemoveTaskFromSprint(ctx context.Context, sprintID, taskID string) error
	ListSprintTasks(ctx context.Context, sprintID string) ([]db.Task, error)

	ListRisks(ctx context.Context, projectID string) ([]db.Risk, error)
	GetRisk(ctx context.Context, id string) (*db.Risk, error)
	CreateRisk(ctx context.Context, r *db.Risk) error
	UpdateRisk(ctx context.Context, r *db.Risk) error
	DeleteRisk(ctx context.Context, id string) error

	ListMinutes(ctx context.Context, projectID string) ([]db.Minutes, error)
	GetMinutes(ctx context.Context, id string) (*db.Minutes, error)
	CreateMinutes(ctx context.Context, m *db.Minutes) error
	UpdateMinutes(ctx context.Context, m *db.Minutes) error
	DeleteMinutes(ctx context.Context, id string) error

	ListColumns(ctx context.Context, projectID string) ([]db.Column, error)
	GetColumn(ctx context.Context, id string) (*db.Column, error)
	CreateColumn(ctx context.Context, projectID, name string, orderIndex *int) (*db.Column, error)
	UpdateColumn(ctx context.Context, c *db.Column) error
	DeleteColumn(ctx context.Context, id string) error

	NextID(ctx context.Context, prefix, projectID string) (string, error)
}

var _ Store = (*db.DB)(nil)
