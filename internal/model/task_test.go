package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)
	task := NewTask(TaskInput{Title: "Write report", DueDate: "2025-01-15"}, now)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "2025-01-15", task.DueDate)
	assert.False(t, task.Completed)
	assert.Equal(t, "2025-01-10T09:30:00Z", task.CreatedAt)

	other := NewTask(TaskInput{Title: "x"}, now)
	assert.NotEqual(t, task.ID, other.ID, "ids are unique even for the same instant")
}

func TestWithout(t *testing.T) {
	tasks := []Task{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	assert.Equal(t, []Task{{ID: "a"}, {ID: "c"}}, Without(tasks, "b"))
	assert.Equal(t, tasks, Without(tasks, "zzz"))
	assert.Len(t, tasks, 3, "input is not modified")
	assert.Equal(t, 2, IndexOf(tasks, "c"))
	assert.Equal(t, -1, IndexOf(tasks, "zzz"))
}

func TestNewProject(t *testing.T) {
	now := time.Date(2025, 1, 10, 23, 0, 0, 0, time.UTC)
	p := NewProject(ProjectInput{Title: "Launch"}, now)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "2025-01-10", p.CreatedOn)
	assert.NotNil(t, p.Tasks)
	assert.Zero(t, p.CompletedCount())

	p.Tasks = []Task{{ID: "a", Completed: true}, {ID: "b"}, {ID: "c", Completed: true}}
	assert.Equal(t, 2, p.CompletedCount())
	assert.Equal(t, 0, ProjectIndex([]Project{p}, p.ID))
	assert.Equal(t, -1, ProjectIndex([]Project{p}, "missing"))
}
