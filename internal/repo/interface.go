package repo

import (
	"context"
	"errors"

	"github.com/BuzzLyutic/taskly/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

// KVStore определяет плоское пространство строковых ключей.
// Set всегда заменяет значение целиком, частичных записей нет.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// TaskLists - доступ к коллекциям задач верхнего уровня ("сегодня", "следующая неделя")
type TaskLists interface {
	LoadTasks(ctx context.Context, key string) []model.Task
	SaveTasks(ctx context.Context, key string, tasks []model.Task) error
	UpdateTasks(ctx context.Context, key string, fn func([]model.Task) ([]model.Task, error)) ([]model.Task, error)
}

// ProjectRepository - коллекция проектов, каждый проект хранится вместе со своими задачами
type ProjectRepository interface {
	LoadProjects(ctx context.Context) []model.Project
	SaveProjects(ctx context.Context, projects []model.Project) error
	UpdateProjects(ctx context.Context, fn func([]model.Project) ([]model.Project, error)) ([]model.Project, error)
	UpdateProject(ctx context.Context, id string, fn func(*model.Project) error) (model.Project, error)
	SetCurrentProject(ctx context.Context, id string) error
	CurrentProject(ctx context.Context) (string, bool)
}
