package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskly/internal/model"
	"github.com/BuzzLyutic/taskly/internal/service"
	"github.com/BuzzLyutic/taskly/pkg/respond"
)

func (h *ProjectHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.writeProjects(w, r, http.StatusOK, alertFor(r))
}

func (h *ProjectHandler) SubmitProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	_, err := h.service.Create(r.Context(), model.ProjectInput{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
		DueDate:     r.PostForm.Get("dueDate"),
	})
	if err != nil {
		h.projectsError(w, r, err)
		return
	}
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

func (h *ProjectHandler) SubmitDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.projectsError(w, r, err)
		return
	}
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

// SubmitOpen запоминает проект и переводит на страницу деталей
func (h *ProjectHandler) SubmitOpen(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Open(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.projectsError(w, r, err)
		return
	}
	http.Redirect(w, r, "/project", http.StatusSeeOther)
}

// DetailsPage открывает проект из ключа текущего проекта.
// Если его больше нет - уведомление и возврат к списку проектов.
func (h *ProjectHandler) DetailsPage(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Details(r.Context())
	if err != nil {
		h.detailsError(w, r, err)
		return
	}
	h.writeDetails(w, r, http.StatusOK, d, alertFor(r))
}

func (h *ProjectHandler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	d, err := h.service.Attach(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.detailsError(w, r, err)
		return
	}
	_, err = d.AddTask(r.Context(), model.TaskInput{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
		DueDate:     r.PostForm.Get("dueDate"),
	})
	if err != nil {
		h.detailsError(w, r, err)
		return
	}
	http.Redirect(w, r, "/project", http.StatusSeeOther)
}

func (h *ProjectHandler) SubmitToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	completed, err := strconv.ParseBool(r.PostForm.Get("completed"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "completed must be true or false")
		return
	}

	d, err := h.service.Attach(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.detailsError(w, r, err)
		return
	}
	if _, err := d.ToggleTask(r.Context(), chi.URLParam(r, "taskID"), completed); err != nil {
		h.detailsError(w, r, err)
		return
	}
	http.Redirect(w, r, "/project", http.StatusSeeOther)
}

func (h *ProjectHandler) SubmitDeleteTask(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Attach(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.detailsError(w, r, err)
		return
	}
	if err := d.DeleteTask(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		h.detailsError(w, r, err)
		return
	}
	http.Redirect(w, r, "/project", http.StatusSeeOther)
}

func (h *ProjectHandler) writeProjects(w http.ResponseWriter, r *http.Request, code int, alert string) {
	projects := h.service.List(r.Context())
	err := respond.HTML(w, r, code, func(out io.Writer) error {
		return h.render.ProjectsPage(out, projects, alert)
	})
	if err != nil {
		h.logger.Error("failed to render projects", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *ProjectHandler) writeDetails(w http.ResponseWriter, r *http.Request, code int, d *service.ProjectDetails, alert string) {
	err := respond.HTML(w, r, code, func(out io.Writer) error {
		return h.render.DetailsPage(out, d.Project(), d.List(), alert)
	})
	if err != nil {
		h.logger.Error("failed to render project", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *ProjectHandler) projectsError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := errorStatus(err)
	alert, ok := alerts[alertCode(err)]
	if !ok {
		if code == http.StatusInternalServerError {
			h.logger.Error("internal error", zap.Error(err), zap.String("path", r.URL.Path))
		}
		http.Error(w, msg, code)
		return
	}
	h.writeProjects(w, r, code, alert)
}

// detailsError: пропавший проект - единственная фатальная ошибка страницы,
// остальное показывается уведомлением на самой странице.
func (h *ProjectHandler) detailsError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := errorStatus(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("internal error", zap.Error(err), zap.String("path", r.URL.Path))
		http.Error(w, msg, code)
		return
	}
	if ac := alertCode(err); ac == "project-not-found" {
		http.Redirect(w, r, "/projects?alert="+ac, http.StatusSeeOther)
		return
	}

	d, detailsErr := h.service.Attach(r.Context(), chi.URLParam(r, "id"))
	if detailsErr != nil {
		http.Redirect(w, r, "/projects?alert=project-not-found", http.StatusSeeOther)
		return
	}
	h.writeDetails(w, r, code, d, alerts[alertCode(err)])
}
