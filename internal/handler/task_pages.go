package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskly/internal/board"
	"github.com/BuzzLyutic/taskly/internal/model"
	"github.com/BuzzLyutic/taskly/pkg/respond"
)

// Page - загрузка страницы: список перечитывается из хранилища
func (h *TaskHandler) Page(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Open(r.Context(), chi.URLParam(r, "list"))
	if err != nil {
		h.pageError(w, r, chi.URLParam(r, "list"), err)
		return
	}
	h.writePage(w, r, http.StatusOK, snap, alertFor(r))
}

// CurrentPage отдает страницу из текущего представления, не перечитывая хранилище,
// чтобы незавершенные переходы остались видны.
func (h *TaskHandler) CurrentPage(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.View(chi.URLParam(r, "list"))
	if err != nil {
		h.pageError(w, r, chi.URLParam(r, "list"), err)
		return
	}
	h.writePage(w, r, http.StatusOK, snap, alertFor(r))
}

// Fragment - только контейнеры, для опроса после переключения
func (h *TaskHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.View(chi.URLParam(r, "list"))
	if err != nil {
		h.pageError(w, r, chi.URLParam(r, "list"), err)
		return
	}
	err = respond.HTML(w, r, http.StatusOK, func(out io.Writer) error {
		return h.render.ListFragment(out, snap)
	})
	if err != nil {
		h.logger.Error("failed to render fragment", zap.Error(err))
	}
}

func (h *TaskHandler) Focus(w http.ResponseWriter, r *http.Request) {
	list := chi.URLParam(r, "list")
	if _, err := h.service.Open(r.Context(), list); err != nil {
		h.pageError(w, r, list, err)
		return
	}
	http.Redirect(w, r, "/"+list+"/view", http.StatusSeeOther)
}

// SubmitTask принимает форму создания задачи; список берется из пути или из поля формы.
func (h *TaskHandler) SubmitTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	list := chi.URLParam(r, "list")
	if list == "" {
		list = r.PostForm.Get("list")
	}

	in := model.TaskInput{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
		DueDate:     r.PostForm.Get("dueDate"),
		Priority:    r.PostForm.Get("priority"),
	}
	if _, err := h.service.Create(r.Context(), list, in); err != nil {
		h.pageError(w, r, list, err)
		return
	}
	http.Redirect(w, r, "/"+list+"/view?alert=task-created", http.StatusSeeOther)
}

func (h *TaskHandler) SubmitToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	completed, err := strconv.ParseBool(r.PostForm.Get("completed"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "completed must be true or false")
		return
	}

	list := chi.URLParam(r, "list")
	if _, err := h.service.Toggle(r.Context(), list, chi.URLParam(r, "id"), completed); err != nil {
		h.pageError(w, r, list, err)
		return
	}
	http.Redirect(w, r, "/"+list+"/view", http.StatusSeeOther)
}

func (h *TaskHandler) SubmitDelete(w http.ResponseWriter, r *http.Request) {
	list := chi.URLParam(r, "list")
	if err := h.service.Delete(r.Context(), list, chi.URLParam(r, "id")); err != nil {
		h.pageError(w, r, list, err)
		return
	}
	http.Redirect(w, r, "/"+list+"/view", http.StatusSeeOther)
}

func (h *TaskHandler) writePage(w http.ResponseWriter, r *http.Request, code int, snap board.Snapshot, alert string) {
	err := respond.HTML(w, r, code, func(out io.Writer) error {
		return h.render.ListPage(out, snap, h.service.Lists(), alert)
	})
	if err != nil {
		h.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// pageError показывает уведомление на текущей странице вместо JSON-ошибки
func (h *TaskHandler) pageError(w http.ResponseWriter, r *http.Request, list string, err error) {
	code, msg := errorStatus(err)
	alert, ok := alerts[alertCode(err)]
	if !ok || code == http.StatusInternalServerError {
		if code == http.StatusInternalServerError {
			h.logger.Error("internal error", zap.Error(err), zap.String("path", r.URL.Path))
		}
		http.Error(w, msg, code)
		return
	}

	snap, viewErr := h.service.View(list)
	if viewErr != nil {
		http.Error(w, msg, code)
		return
	}
	h.writePage(w, r, code, snap, alert)
}
