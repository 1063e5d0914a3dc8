package board

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskly/internal/model"
	"github.com/BuzzLyutic/taskly/internal/repo"
	"github.com/BuzzLyutic/taskly/internal/worker"
)

// Snapshot - копия представления страницы на момент вызова
type Snapshot struct {
	List      ListConfig
	Pending   Container
	Completed Container
}

// Board держит серверное представление одной страницы со списками
// и переносит задачи между контейнерами с задержкой перехода.
type Board struct {
	cfg    ListConfig
	tasks  repo.TaskLists
	render Renderer
	sched  *worker.Scheduler
	logger *zap.Logger

	// op сериализует пары "хранилище + представление" (Reload, Toggle),
	// чтобы представление обновлялось в том же порядке, что и записи.
	op sync.Mutex

	mu        sync.Mutex
	pending   Container
	completed Container
}

func NewBoard(cfg ListConfig, tasks repo.TaskLists, render Renderer, sched *worker.Scheduler, logger *zap.Logger) *Board {
	return &Board{
		cfg:       cfg,
		tasks:     tasks,
		render:    render,
		sched:     sched,
		logger:    logger.With(zap.String("list", cfg.Name)),
		pending:   Container{Name: cfg.PendingContainer},
		completed: Container{Name: cfg.CompletedContainer},
	}
}

func (b *Board) Config() ListConfig {
	return b.cfg
}

// Reload прогоняет полный цикл: прочитать, разделить, перерисовать оба контейнера целиком.
func (b *Board) Reload(ctx context.Context) Snapshot {
	b.op.Lock()
	defer b.op.Unlock()

	tasks := b.tasks.LoadTasks(ctx, b.cfg.Key)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.renderLocked(tasks)
	return b.snapshotLocked()
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Toggle сохраняет флаг сразу, а перенос узла между контейнерами
// происходит после задержки. Повторный Toggle той же задачи отменяет
// незавершенный перенос.
func (b *Board) Toggle(ctx context.Context, id string, completed bool) (model.Task, error) {
	b.op.Lock()
	defer b.op.Unlock()

	var toggled model.Task
	stored, err := b.tasks.UpdateTasks(ctx, b.cfg.Key, func(tasks []model.Task) ([]model.Task, error) {
		i := model.IndexOf(tasks, id)
		if i == -1 {
			return nil, repo.ErrorNotFound
		}
		tasks[i].Completed = completed
		toggled = tasks[i]
		return tasks, nil
	})
	if err != nil {
		return toggled, fmt.Errorf("toggle %s: %w", id, err)
	}

	b.mu.Lock()
	c, i := b.locateLocked(id)
	if c == nil {
		// задача появилась в другой вкладке - представление устарело
		b.renderLocked(stored)
		b.mu.Unlock()
		return toggled, nil
	}
	node := &c.Nodes[i]
	node.Task.Completed = completed
	node.State = StateTransitioning
	node.Markup = b.render.RenderTask(b.cfg.Name, node.Task, node.State)
	b.destinationLocked(completed).Placeholder = ""
	b.mu.Unlock()

	if !b.sched.Schedule(b.cfg.Name+"/"+id, func() { b.settle(id) }) {
		b.settle(id)
	}
	return toggled, nil
}

// settle завершает переход: узел оказывается в контейнере,
// соответствующем последнему запрошенному состоянию.
func (b *Board) settle(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, i := b.locateLocked(id)
	if c == nil {
		return
	}
	node := c.Nodes[i]
	node.State = settledState(node.Task.Completed)
	node.Markup = b.render.RenderTask(b.cfg.Name, node.Task, node.State)

	dst := b.destinationLocked(node.Task.Completed)
	if dst == c {
		c.Nodes[i] = node
	} else {
		c.Nodes = append(c.Nodes[:i], c.Nodes[i+1:]...)
		dst.Nodes = append(dst.Nodes, node)
		b.logger.Debug("task moved", zap.String("id", id), zap.String("to", dst.Name))
	}
	b.evaluateLocked()
}

// Evaluate перепроверяет оба контейнера и ставит заглушки в пустые.
func (b *Board) Evaluate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.evaluateLocked()
}

func (b *Board) evaluateLocked() {
	total := len(b.pending.Nodes) + len(b.completed.Nodes)

	// заглушка всегда одна: повторная оценка ее заменяет, а не добавляет
	switch {
	case len(b.pending.Nodes) > 0:
		b.pending.Placeholder = ""
	case total > 0:
		b.pending.Placeholder = b.cfg.Placeholders.AllDone
	default:
		b.pending.Placeholder = b.cfg.Placeholders.Empty
	}

	if len(b.completed.Nodes) > 0 {
		b.completed.Placeholder = ""
	} else {
		b.completed.Placeholder = b.cfg.Placeholders.NoneCompleted
	}
}

func (b *Board) renderLocked(tasks []model.Task) {
	pending, completed := Partition(tasks)

	b.pending = Container{Name: b.cfg.PendingContainer, Nodes: b.nodes(pending)}
	b.completed = Container{Name: b.cfg.CompletedContainer, Nodes: b.nodes(completed)}

	switch {
	case len(tasks) == 0:
		b.pending.Placeholder = b.cfg.Placeholders.Empty
	case len(pending) == 0:
		b.pending.Placeholder = b.cfg.Placeholders.AllDone
	}
	if len(completed) == 0 {
		b.completed.Placeholder = b.cfg.Placeholders.NoneCompleted
	}
}

func (b *Board) nodes(tasks []model.Task) []Node {
	nodes := make([]Node, 0, len(tasks))
	for _, t := range tasks {
		state := settledState(t.Completed)
		nodes = append(nodes, Node{
			Task:   t,
			State:  state,
			Markup: b.render.RenderTask(b.cfg.Name, t, state),
		})
	}
	return nodes
}

func (b *Board) locateLocked(id string) (*Container, int) {
	if i := b.pending.index(id); i != -1 {
		return &b.pending, i
	}
	if i := b.completed.index(id); i != -1 {
		return &b.completed, i
	}
	return nil, -1
}

func (b *Board) destinationLocked(completed bool) *Container {
	if completed {
		return &b.completed
	}
	return &b.pending
}

func (b *Board) snapshotLocked() Snapshot {
	return Snapshot{
		List:      b.cfg,
		Pending:   b.pending.clone(),
		Completed: b.completed.clone(),
	}
}
