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
	ErrValidation    = errors.New("validation error")
	ErrTitleRequired = fmt.Errorf("%w: title is required", ErrValidation)
)

// TaskService - сценарии страниц со списками задач ("сегодня", "следующая неделя")
type TaskService struct {
	repo   repo.TaskLists
	boards *board.Registry
	now    func() time.Time
}

func NewTaskService(repo repo.TaskLists, boards *board.Registry) *TaskService {
	return &TaskService{repo: repo, boards: boards, now: time.Now}
}

func (s *TaskService) Lists() []board.ListConfig {
	return s.boards.Lists()
}

// Open - загрузка страницы: полный цикл чтение -> разбиение -> отрисовка
func (s *TaskService) Open(ctx context.Context, list string) (board.Snapshot, error) {
	b, err := s.boards.Get(list)
	if err != nil {
		return board.Snapshot{}, err
	}
	return b.Reload(ctx), nil
}

// View возвращает текущее представление без перечитывания хранилища
func (s *TaskService) View(list string) (board.Snapshot, error) {
	b, err := s.boards.Get(list)
	if err != nil {
		return board.Snapshot{}, err
	}
	return b.Snapshot(), nil
}

// Partition - текущая коллекция, разделенная на "в работе" и "завершено"
func (s *TaskService) Partition(ctx context.Context, list string) (pending, completed []model.Task, err error) {
	b, err := s.boards.Get(list)
	if err != nil {
		return nil, nil, err
	}
	pending, completed = board.Partition(s.repo.LoadTasks(ctx, b.Config().Key))
	return pending, completed, nil
}

func (s *TaskService) Get(ctx context.Context, list, id string) (model.Task, error) {
	b, err := s.boards.Get(list)
	if err != nil {
		return model.Task{}, err
	}
	tasks := s.repo.LoadTasks(ctx, b.Config().Key)
	i := model.IndexOf(tasks, id)
	if i == -1 {
		return model.Task{}, fmt.Errorf("task %s: %w", id, repo.ErrorNotFound)
	}
	return tasks[i], nil
}

func (s *TaskService) Create(ctx context.Context, list string, in model.TaskInput) (model.Task, error) {
	b, err := s.boards.Get(list)
	if err != nil {
		return model.Task{}, err
	}
	in, err = normalizeTask(in)
	if err != nil {
		return model.Task{}, err
	}

	task := model.NewTask(in, s.now())
	_, err = s.repo.UpdateTasks(ctx, b.Config().Key, func(tasks []model.Task) ([]model.Task, error) {
		return append(tasks, task), nil
	})
	if err != nil {
		return model.Task{}, err
	}

	b.Reload(ctx)
	return task, nil
}

func (s *TaskService) Toggle(ctx context.Context, list, id string, completed bool) (model.Task, error) {
	b, err := s.boards.Get(list)
	if err != nil {
		return model.Task{}, err
	}
	return b.Toggle(ctx, id, completed)
}

func (s *TaskService) Delete(ctx context.Context, list, id string) error {
	b, err := s.boards.Get(list)
	if err != nil {
		return err
	}

	_, err = s.repo.UpdateTasks(ctx, b.Config().Key, func(tasks []model.Task) ([]model.Task, error) {
		if model.IndexOf(tasks, id) == -1 {
			return nil, repo.ErrorNotFound
		}
		return model.Without(tasks, id), nil
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}

	b.Reload(ctx)
	return nil
}

// normalizeTask: обязателен только заголовок, приоритет - свободная метка
func normalizeTask(in model.TaskInput) (model.TaskInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.DueDate = strings.TrimSpace(in.DueDate)
	in.Priority = strings.TrimSpace(in.Priority)

	if in.Title == "" {
		return in, ErrTitleRequired
	}
	return in, nil
}
