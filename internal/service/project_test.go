package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskly/internal/board"
	"github.com/BuzzLyutic/taskly/internal/model"
	"github.com/BuzzLyutic/taskly/internal/repo"
)

func newProjectService(t *testing.T, projects ...model.Project) (*ProjectService, *repo.Collections) {
	t.Helper()
	collections := repo.NewCollections(repo.NewMemoryStore(), zap.NewNop())
	if len(projects) > 0 {
		require.NoError(t, collections.SaveProjects(context.Background(), projects))
	}
	return NewProjectService(collections, stubRenderer{}), collections
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	svc, collections := newProjectService(t)

	_, err := svc.Create(ctx, model.ProjectInput{Title: " "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	p, err := svc.Create(ctx, model.ProjectInput{Title: "Launch", DueDate: "2025-02-01"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.CreatedOn)
	assert.Empty(t, p.Tasks)

	stored := collections.LoadProjects(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, p.ID, stored[0].ID)
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, collections := newProjectService(t,
		model.Project{ID: "p1", Title: "A", Tasks: []model.Task{}},
		model.Project{ID: "p2", Title: "B", Tasks: []model.Task{}},
	)

	require.NoError(t, svc.Delete(ctx, "p1"))
	stored := collections.LoadProjects(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, "p2", stored[0].ID)

	assert.ErrorIs(t, svc.Delete(ctx, "p1"), ErrProjectNotFound)
}

func TestProjectService_OpenAndDetails(t *testing.T) {
	ctx := context.Background()
	svc, collections := newProjectService(t, model.Project{ID: "p1", Title: "A", Tasks: []model.Task{}})

	_, err := svc.Details(ctx)
	assert.ErrorIs(t, err, ErrProjectNotFound, "no current project yet")

	assert.ErrorIs(t, svc.Open(ctx, "missing"), ErrProjectNotFound)

	require.NoError(t, svc.Open(ctx, "p1"))
	id, ok := collections.CurrentProject(ctx)
	require.True(t, ok)
	assert.Equal(t, "p1", id)

	d, err := svc.Details(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", d.Project().Title)

	list := d.List()
	assert.Equal(t, "project-tasks", list.Name)
	assert.Equal(t, board.NoProjectTasks, list.Placeholder)
}

// Удаление t1 из проекта с [t1, t2] оставляет [t2]
func TestProjectDetails_DeleteTask(t *testing.T) {
	ctx := context.Background()
	svc, collections := newProjectService(t,
		model.Project{ID: "p1", Title: "A", Tasks: []model.Task{{ID: "t1", Title: "one"}, {ID: "t2", Title: "two", Completed: true}}},
		model.Project{ID: "p2", Title: "B", Tasks: []model.Task{{ID: "t1", Title: "other"}}},
	)

	d, err := svc.Attach(ctx, "p1")
	require.NoError(t, err)

	require.NoError(t, d.DeleteTask(ctx, "t1"))
	assert.Equal(t, []model.Task{{ID: "t2", Title: "two", Completed: true}}, d.Project().Tasks)

	stored := collections.LoadProjects(ctx)
	assert.Equal(t, []model.Task{{ID: "t2", Title: "two", Completed: true}}, stored[0].Tasks, "surviving task keeps its flag")
	assert.Equal(t, 1, stored[0].CompletedCount())
	assert.Len(t, stored[1].Tasks, 1, "other projects are untouched")

	err = d.DeleteTask(ctx, "t1")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.NotErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectDetails_AddAndToggle(t *testing.T) {
	ctx := context.Background()
	svc, collections := newProjectService(t, model.Project{ID: "p1", Title: "A", Tasks: []model.Task{}})

	d, err := svc.Attach(ctx, "p1")
	require.NoError(t, err)

	_, err = d.AddTask(ctx, model.TaskInput{Title: ""})
	assert.ErrorIs(t, err, ErrTitleRequired)

	task, err := d.AddTask(ctx, model.TaskInput{Title: "Draft", DueDate: "2025-01-20"})
	require.NoError(t, err)

	toggled, err := d.ToggleTask(ctx, task.ID, true)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	stored := collections.LoadProjects(ctx)
	require.Len(t, stored[0].Tasks, 1)
	assert.True(t, stored[0].Tasks[0].Completed)
	assert.Equal(t, 1, stored[0].CompletedCount())

	list := d.List()
	assert.Empty(t, list.Placeholder)
	assert.Equal(t, []string{task.ID}, list.IDs())

	_, err = d.ToggleTask(ctx, "missing", true)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

// Проект удален в другой вкладке - запись в него не создает его заново
func TestProjectDetails_ProjectVanished(t *testing.T) {
	ctx := context.Background()
	svc, collections := newProjectService(t, model.Project{ID: "p1", Title: "A", Tasks: []model.Task{{ID: "t1"}}})

	d, err := svc.Attach(ctx, "p1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "p1"))

	_, err = d.AddTask(ctx, model.TaskInput{Title: "late"})
	assert.ErrorIs(t, err, ErrProjectNotFound)
	_, err = d.ToggleTask(ctx, "t1", true)
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.ErrorIs(t, d.DeleteTask(ctx, "t1"), ErrProjectNotFound)

	assert.Empty(t, collections.LoadProjects(ctx))
}
