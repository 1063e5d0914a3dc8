package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает HTML-страницы и JSON API.
// Имена списков попадают в шаблон маршрута, чтобы не пересекаться с /projects.
func NewRouter(tasks *TaskHandler, projects *ProjectHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	names := make([]string, 0)
	for _, l := range tasks.service.Lists() {
		names = append(names, l.Name)
	}
	listParam := "{list:" + strings.Join(names, "|") + "}"

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/"+names[0], http.StatusFound)
	})

	r.Post("/tasks", tasks.SubmitTask)
	r.Route("/"+listParam, func(r chi.Router) {
		r.Get("/", tasks.Page)
		r.Get("/view", tasks.CurrentPage)
		r.Get("/fragment", tasks.Fragment)
		r.Post("/focus", tasks.Focus)
		r.Post("/tasks", tasks.SubmitTask)
		r.Post("/tasks/{id}/toggle", tasks.SubmitToggle)
		r.Post("/tasks/{id}/delete", tasks.SubmitDelete)
	})

	r.Get("/projects", projects.Page)
	r.Post("/projects", projects.SubmitProject)
	r.Post("/projects/{id}/open", projects.SubmitOpen)
	r.Post("/projects/{id}/delete", projects.SubmitDelete)
	r.Post("/projects/{id}/tasks", projects.SubmitTask)
	r.Post("/projects/{id}/tasks/{taskID}/toggle", projects.SubmitToggle)
	r.Post("/projects/{id}/tasks/{taskID}/delete", projects.SubmitDeleteTask)
	r.Get("/project", projects.DetailsPage)

	r.Route("/api", func(r chi.Router) {
		r.Route("/lists/{list}", func(r chi.Router) {
			r.Get("/", tasks.List)
			r.Get("/view", tasks.View)
			r.Post("/reload", tasks.Reload)
			r.Post("/tasks", tasks.Create)
			r.Get("/tasks/{id}", tasks.Get)
			r.Patch("/tasks/{id}", tasks.Toggle)
			r.Delete("/tasks/{id}", tasks.Delete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projects.List)
			r.Post("/", projects.Create)
			r.Get("/current", projects.Current)
			r.Get("/{id}", projects.Get)
			r.Delete("/{id}", projects.Delete)
			r.Post("/{id}/open", projects.Open)
			r.Post("/{id}/tasks", projects.AddTask)
			r.Patch("/{id}/tasks/{taskID}", projects.ToggleTask)
			r.Delete("/{id}/tasks/{taskID}", projects.DeleteTask)
		})
	})

	return r
}
