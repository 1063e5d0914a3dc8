package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BuzzLyutic/taskly/internal/board"
	"github.com/BuzzLyutic/taskly/internal/model"
	"github.com/BuzzLyutic/taskly/internal/repo"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = fmt.Errorf("task %w", repo.ErrorNotFound)
)

// ProjectService - список проектов и страница одного проекта
type ProjectService struct {
	repo   repo.ProjectRepository
	render board.Renderer
	now    func() time.Time
}

func NewProjectService(repo repo.ProjectRepository, render board.Renderer) *ProjectService {
	return &ProjectService{repo: repo, render: render, now: time.Now}
}

func (s *ProjectService) List(ctx context.Context) []model.Project {
	return s.repo.LoadProjects(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id string) (model.Project, error) {
	projects := s.repo.LoadProjects(ctx)
	i := model.ProjectIndex(projects, id)
	if i == -1 {
		return model.Project{}, ErrProjectNotFound
	}
	return projects[i], nil
}

func (s *ProjectService) Create(ctx context.Context, in model.ProjectInput) (model.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.DueDate = strings.TrimSpace(in.DueDate)
	if in.Title == "" {
		return model.Project{}, ErrTitleRequired
	}

	p := model.NewProject(in, s.now())
	_, err := s.repo.UpdateProjects(ctx, func(projects []model.Project) ([]model.Project, error) {
		return append(projects, p), nil
	})
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	_, err := s.repo.UpdateProjects(ctx, func(projects []model.Project) ([]model.Project, error) {
		i := model.ProjectIndex(projects, id)
		if i == -1 {
			return nil, ErrProjectNotFound
		}
		return append(projects[:i], projects[i+1:]...), nil
	})
	return err
}

// Open запоминает текущий проект для страницы деталей
func (s *ProjectService) Open(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.SetCurrentProject(ctx, id)
}

// Details - загрузка страницы проекта по ключу текущего проекта.
// Если проект исчез (например, удален в другой вкладке), страница не открывается.
func (s *ProjectService) Details(ctx context.Context) (*ProjectDetails, error) {
	id, ok := s.repo.CurrentProject(ctx)
	if !ok {
		return nil, ErrProjectNotFound
	}
	return s.Attach(ctx, id)
}

// Attach поднимает контроллер для уже известного идентификатора проекта
func (s *ProjectService) Attach(ctx context.Context, id string) (*ProjectDetails, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProjectDetails{svc: s, project: p}, nil
}

// ProjectDetails - контроллер страницы одного проекта.
// Идентификатор проекта фиксируется при открытии.
type ProjectDetails struct {
	svc     *ProjectService
	project model.Project
}

func (d *ProjectDetails) Project() model.Project {
	return d.project
}

// List рисует все задачи проекта одним списком
func (d *ProjectDetails) List() board.Container {
	return board.SingleContainer("project-tasks", board.NoProjectTasks, d.project.ID, d.project.Tasks, d.svc.render)
}

func (d *ProjectDetails) AddTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	in, err := normalizeTask(in)
	if err != nil {
		return model.Task{}, err
	}
	task := model.NewTask(in, d.svc.now())
	err = d.update(ctx, func(p *model.Project) error {
		p.Tasks = append(p.Tasks, task)
		return nil
	})
	return task, err
}

func (d *ProjectDetails) ToggleTask(ctx context.Context, taskID string, completed bool) (model.Task, error) {
	var toggled model.Task
	err := d.update(ctx, func(p *model.Project) error {
		i := model.IndexOf(p.Tasks, taskID)
		if i == -1 {
			return ErrTaskNotFound
		}
		p.Tasks[i].Completed = completed
		toggled = p.Tasks[i]
		return nil
	})
	return toggled, err
}

func (d *ProjectDetails) DeleteTask(ctx context.Context, taskID string) error {
	return d.update(ctx, func(p *model.Project) error {
		if model.IndexOf(p.Tasks, taskID) == -1 {
			return ErrTaskNotFound
		}
		p.Tasks = model.Without(p.Tasks, taskID)
		return nil
	})
}

// update - единственная запись агрегата: перечитать, найти, изменить, переписать
func (d *ProjectDetails) update(ctx context.Context, fn func(*model.Project) error) error {
	p, err := d.svc.repo.UpdateProject(ctx, d.project.ID, fn)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) && !errors.Is(err, ErrTaskNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	d.project = p
	return nil
}
