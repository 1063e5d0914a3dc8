package model

import "time"

// Project - агрегат: проект вместе со своими задачами сохраняется как единое целое
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	CreatedOn   string `json:"createdOn"`
	Tasks       []Task `json:"tasks"`
}

type ProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

func NewProject(in ProjectInput, now time.Time) Project {
	return Project{
		ID:          NewID(now),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		CreatedOn:   now.UTC().Format("2006-01-02"),
		Tasks:       []Task{},
	}
}

// CompletedCount - сколько задач проекта завершено
func (p Project) CompletedCount() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func ProjectIndex(projects []Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}
