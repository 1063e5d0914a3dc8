package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskly/internal/model"
	"github.com/BuzzLyutic/taskly/internal/service"
	"github.com/BuzzLyutic/taskly/internal/view"
	"github.com/BuzzLyutic/taskly/pkg/respond"
)

type ProjectHandler struct {
	service *service.ProjectService
	render  *view.Renderer
	logger  *zap.Logger
}

func NewProjectHandler(srv *service.ProjectService, render *view.Renderer, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: srv,
		render:  render,
		logger:  logger,
	}
}

type projectSummary struct {
	model.Project
	TaskCount      int `json:"taskCount"`
	CompletedCount int `json:"completedCount"`
}

func summarize(p model.Project) projectSummary {
	return projectSummary{Project: p, TaskCount: len(p.Tasks), CompletedCount: p.CompletedCount()}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects := h.service.List(r.Context())
	out := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, summarize(p))
	}
	respond.JSON(w, r, http.StatusOK, out)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, summarize(p))
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/projects/"+p.ID)
	respond.JSON(w, r, http.StatusCreated, p)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) Open(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Open(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Current - проект, открытый последним (по ключу текущего проекта)
func (h *ProjectHandler) Current(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Details(r.Context())
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, summarize(d.Project()))
}

func (h *ProjectHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	d, err := h.service.Attach(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	task, err := d.AddTask(r.Context(), req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *ProjectHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Completed == nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	d, err := h.service.Attach(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	task, err := d.ToggleTask(r.Context(), chi.URLParam(r, "taskID"), *req.Completed)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *ProjectHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Attach(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	if err := d.DeleteTask(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
