package model

import (
	"time"

	"github.com/google/uuid"
)

// Ключи коллекций в хранилище
const (
	KeyTodayTasks     = "tasks-for-today"
	KeyNextWeekTasks  = "tasks-for-next-week"
	KeyProjects       = "projects"
	KeyCurrentProject = "current-project"
)

// Метки приоритета
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// TaskInput - данные формы создания задачи
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
}

// NewTask собирает новую незавершенную задачу со свежим идентификатором
func NewTask(in TaskInput, now time.Time) Task {
	return Task{
		ID:          NewID(now),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Completed:   false,
		CreatedAt:   now.UTC().Format(time.RFC3339),
	}
}

// NewID выдает идентификатор, упорядоченный по времени создания (UUIDv7).
func NewID(now time.Time) string {
	id, err := uuid.NewV7()
	if err != nil {
		// генератор не смог прочитать энтропию - откатываемся на метку времени
		return now.UTC().Format("20060102150405.000000000")
	}
	return id.String()
}

// IndexOf - линейный поиск по идентификатору, -1 если не найдено
func IndexOf(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Without возвращает новую последовательность без задачи id, порядок остальных сохраняется.
func Without(tasks []Task, id string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
