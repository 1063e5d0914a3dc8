package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskly/internal/model"
)

// Collections читает и пишет коллекции как упорядоченные JSON-массивы под одним ключом.
// Чтение "мягкое": отсутствующий или битый ключ означает пустую коллекцию.
type Collections struct {
	store  KVStore
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCollections(store KVStore, logger *zap.Logger) *Collections {
	return &Collections{
		store:  store,
		logger: logger,
		locks:  map[string]*sync.Mutex{},
	}
}

// keyLock сериализует read-modify-write одного ключа внутри процесса.
// Между процессами хранилище остается last-write-wins.
func (c *Collections) keyLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	return l
}

func (c *Collections) LoadTasks(ctx context.Context, key string) []model.Task {
	var tasks []model.Task
	if !c.load(ctx, key, &tasks) || tasks == nil {
		return []model.Task{}
	}
	return tasks
}

func (c *Collections) SaveTasks(ctx context.Context, key string, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return c.save(ctx, key, tasks)
}

func (c *Collections) UpdateTasks(ctx context.Context, key string, fn func([]model.Task) ([]model.Task, error)) ([]model.Task, error) {
	l := c.keyLock(key)
	l.Lock()
	defer l.Unlock()

	tasks, err := fn(c.LoadTasks(ctx, key))
	if err != nil {
		return nil, err
	}
	if err := c.SaveTasks(ctx, key, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Collections) LoadProjects(ctx context.Context) []model.Project {
	var projects []model.Project
	if !c.load(ctx, model.KeyProjects, &projects) || projects == nil {
		return []model.Project{}
	}
	for i := range projects {
		if projects[i].Tasks == nil {
			projects[i].Tasks = []model.Task{}
		}
	}
	return projects
}

func (c *Collections) SaveProjects(ctx context.Context, projects []model.Project) error {
	if projects == nil {
		projects = []model.Project{}
	}
	return c.save(ctx, model.KeyProjects, projects)
}

func (c *Collections) UpdateProjects(ctx context.Context, fn func([]model.Project) ([]model.Project, error)) ([]model.Project, error) {
	l := c.keyLock(model.KeyProjects)
	l.Lock()
	defer l.Unlock()

	projects, err := fn(c.LoadProjects(ctx))
	if err != nil {
		return nil, err
	}
	if err := c.SaveProjects(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject меняет один агрегат: перечитать коллекцию, найти проект,
// применить fn и переписать коллекцию одной записью.
func (c *Collections) UpdateProject(ctx context.Context, id string, fn func(*model.Project) error) (model.Project, error) {
	var updated model.Project
	_, err := c.UpdateProjects(ctx, func(projects []model.Project) ([]model.Project, error) {
		i := model.ProjectIndex(projects, id)
		if i == -1 {
			return nil, ErrorNotFound
		}
		p := projects[i]
		p.Tasks = append([]model.Task(nil), p.Tasks...)
		if err := fn(&p); err != nil {
			return nil, err
		}
		if p.Tasks == nil {
			p.Tasks = []model.Task{}
		}
		projects[i] = p
		updated = p
		return projects, nil
	})
	return updated, err
}

func (c *Collections) SetCurrentProject(ctx context.Context, id string) error {
	return c.store.Set(ctx, model.KeyCurrentProject, id)
}

func (c *Collections) CurrentProject(ctx context.Context) (string, bool) {
	id, err := c.store.Get(ctx, model.KeyCurrentProject)
	if err != nil {
		if !errors.Is(err, ErrorNotFound) {
			c.logger.Warn("failed to read current project", zap.Error(err))
		}
		return "", false
	}
	return id, id != ""
}

// load декодирует ключ в dst; false - ключа нет или он битый (частично заполненный dst не использовать)
func (c *Collections) load(ctx context.Context, key string, dst any) bool {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrorNotFound) {
			c.logger.Warn("failed to read collection", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		c.logger.Warn("malformed collection, treating as empty", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Collections) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
