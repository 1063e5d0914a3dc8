package board

import (
	"errors"
	"html/template"

	"github.com/BuzzLyutic/taskly/internal/model"
)

var ErrUnknownList = errors.New("unknown list")

// Placeholders - тексты заглушек для пустых контейнеров
type Placeholders struct {
	Empty         string // коллекция пуста целиком
	AllDone       string // есть задачи, но все завершены
	NoneCompleted string // нет завершенных
}

// ListConfig параметризует одну страницу со списками "в работе" / "завершено".
type ListConfig struct {
	Name               string
	Title              string
	Key                string
	PendingContainer   string
	CompletedContainer string
	Placeholders       Placeholders
}

const (
	AllDoneText       = "All tasks done! 🎉"
	NoneCompletedText = "No completed tasks yet."
	NoProjectTasks    = `No tasks yet. Click "+ Add Task" to get started!`
	NoProjects        = `No projects found. Click "New Project" to get started!`
)

func TodayList() ListConfig {
	return ListConfig{
		Name:               "today",
		Title:              "Today",
		Key:                model.KeyTodayTasks,
		PendingContainer:   "today-pending",
		CompletedContainer: "today-completed",
		Placeholders: Placeholders{
			Empty:         "No tasks for today. Create a new task!",
			AllDone:       AllDoneText,
			NoneCompleted: NoneCompletedText,
		},
	}
}

func UpcomingList() ListConfig {
	return ListConfig{
		Name:               "upcoming",
		Title:              "Next week",
		Key:                model.KeyNextWeekTasks,
		PendingContainer:   "upcoming-pending",
		CompletedContainer: "upcoming-completed",
		Placeholders: Placeholders{
			Empty:         "No tasks for next week. Create a new task!",
			AllDone:       AllDoneText,
			NoneCompleted: NoneCompletedText,
		},
	}
}

// Partition делит коллекцию по флагу завершения, сохраняя исходный порядок в обеих частях.
func Partition(tasks []model.Task) (pending, completed []model.Task) {
	pending = make([]model.Task, 0, len(tasks))
	completed = make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}

// NodeState - состояние отрисованной задачи в представлении
type NodeState int

const (
	StatePending NodeState = iota
	StateTransitioning
	StateCompleted
)

func (s NodeState) String() string {
	switch s {
	case StateTransitioning:
		return "transitioning"
	case StateCompleted:
		return "completed"
	default:
		return "pending"
	}
}

func settledState(completed bool) NodeState {
	if completed {
		return StateCompleted
	}
	return StatePending
}

// Renderer превращает запись в готовый фрагмент разметки.
type Renderer interface {
	RenderTask(list string, t model.Task, state NodeState) template.HTML
	RenderProjectTask(projectID string, t model.Task) template.HTML
}

type Node struct {
	Task   model.Task
	State  NodeState
	Markup template.HTML
}

// Container - отрисованный список: либо узлы, либо ровно одна заглушка.
type Container struct {
	Name        string
	Nodes       []Node
	Placeholder string
}

func (c *Container) index(id string) int {
	for i := range c.Nodes {
		if c.Nodes[i].Task.ID == id {
			return i
		}
	}
	return -1
}

func (c *Container) IDs() []string {
	ids := make([]string, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		ids = append(ids, n.Task.ID)
	}
	return ids
}

func (c Container) clone() Container {
	c.Nodes = append([]Node(nil), c.Nodes...)
	return c
}

// SingleContainer рисует все задачи одним списком (страница проекта):
// завершенность различается только CSS-классом.
func SingleContainer(name, placeholder, projectID string, tasks []model.Task, r Renderer) Container {
	c := Container{Name: name}
	if len(tasks) == 0 {
		c.Placeholder = placeholder
		return c
	}
	c.Nodes = make([]Node, 0, len(tasks))
	for _, t := range tasks {
		c.Nodes = append(c.Nodes, Node{
			Task:   t,
			State:  settledState(t.Completed),
			Markup: r.RenderProjectTask(projectID, t),
		})
	}
	return c
}
