package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/BuzzLyutic/taskly/internal/board"
	"github.com/BuzzLyutic/taskly/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var funcs = template.FuncMap{
	"dueDate": FormatDue,
}

// Renderer рисует фрагменты задач и страницы целиком.
type Renderer struct {
	items *template.Template
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/items.html")
	if err != nil {
		return nil, err
	}

	pages := map[string]*template.Template{}
	for _, name := range []string{"list", "projects", "details"} {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templatesFS, "templates/"+name+".html"); err != nil {
			return nil, err
		}
		pages[name] = t
	}

	return &Renderer{items: base, pages: pages}, nil
}

func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

type taskItem struct {
	List          string
	Task          model.Task
	State         string
	Transitioning bool
	Slide         string
}

func (r *Renderer) RenderTask(list string, t model.Task, state board.NodeState) template.HTML {
	data := taskItem{
		List:          list,
		Task:          t,
		State:         state.String(),
		Transitioning: state == board.StateTransitioning,
		Slide:         "slide-left",
	}
	if t.Completed {
		data.Slide = "slide-right"
	}
	return r.fragment("task_item", data, t.Title)
}

func (r *Renderer) RenderProjectTask(projectID string, t model.Task) template.HTML {
	return r.fragment("project_task", struct {
		ProjectID string
		Task      model.Task
	}{projectID, t}, t.Title)
}

// fragment исполняет шаблон в буфер; вывод уже экранирован html/template.
func (r *Renderer) fragment(name string, data any, fallback string) template.HTML {
	var buf bytes.Buffer
	if err := r.items.ExecuteTemplate(&buf, name, data); err != nil {
		return template.HTML(template.HTMLEscapeString(fallback))
	}
	return template.HTML(buf.String())
}

type listPage struct {
	Title string
	Alert string
	Board board.Snapshot
	Lists []board.ListConfig
}

func (r *Renderer) ListPage(w io.Writer, snap board.Snapshot, lists []board.ListConfig, alert string) error {
	return r.pages["list"].ExecuteTemplate(w, "layout", listPage{
		Title: snap.List.Title,
		Alert: alert,
		Board: snap,
		Lists: lists,
	})
}

// ListFragment - только два контейнера, без страницы
func (r *Renderer) ListFragment(w io.Writer, snap board.Snapshot) error {
	return r.items.ExecuteTemplate(w, "board", snap)
}

type projectsPage struct {
	Title       string
	Alert       string
	Projects    []model.Project
	Placeholder string
}

func (r *Renderer) ProjectsPage(w io.Writer, projects []model.Project, alert string) error {
	data := projectsPage{Title: "Projects", Alert: alert, Projects: projects}
	if len(projects) == 0 {
		data.Placeholder = board.NoProjects
	}
	return r.pages["projects"].ExecuteTemplate(w, "layout", data)
}

type detailsPage struct {
	Title   string
	Alert   string
	Project model.Project
	List    board.Container
}

func (r *Renderer) DetailsPage(w io.Writer, p model.Project, list board.Container, alert string) error {
	return r.pages["details"].ExecuteTemplate(w, "layout", detailsPage{
		Title:   p.Title,
		Alert:   alert,
		Project: p,
		List:    list,
	})
}

// FormatDue показывает ISO-дату как dd/mm/yyyy, прочий текст - как есть.
func FormatDue(s, fallback string) string {
	if s == "" {
		return fallback
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d.Format("02/01/2006")
	}
	return s
}
