package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskly/internal/board"
	"github.com/BuzzLyutic/taskly/internal/model"
	"github.com/BuzzLyutic/taskly/internal/service"
	"github.com/BuzzLyutic/taskly/internal/view"
	"github.com/BuzzLyutic/taskly/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	render  *view.Renderer
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, render *view.Renderer, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		render:  render,
		logger:  logger,
	}
}

type partitionResponse struct {
	Pending   []model.Task `json:"pending"`
	Completed []model.Task `json:"completed"`
}

type containerResponse struct {
	Name        string   `json:"name"`
	IDs         []string `json:"ids"`
	Placeholder string   `json:"placeholder,omitempty"`
}

type viewResponse struct {
	List      string            `json:"list"`
	Pending   containerResponse `json:"pending"`
	Completed containerResponse `json:"completed"`
}

type toggleRequest struct {
	Completed *bool `json:"completed"`
}

func newViewResponse(snap board.Snapshot) viewResponse {
	return viewResponse{
		List: snap.List.Name,
		Pending: containerResponse{
			Name:        snap.Pending.Name,
			IDs:         snap.Pending.IDs(),
			Placeholder: snap.Pending.Placeholder,
		},
		Completed: containerResponse{
			Name:        snap.Completed.Name,
			IDs:         snap.Completed.IDs(),
			Placeholder: snap.Completed.Placeholder,
		},
	}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	pending, completed, err := h.service.Partition(r.Context(), chi.URLParam(r, "list"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, partitionResponse{Pending: pending, Completed: completed})
}

// View - текущее состояние контейнеров, включая незавершенные переходы
func (h *TaskHandler) View(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.View(chi.URLParam(r, "list"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, newViewResponse(snap))
}

// Reload - аналог возврата фокуса на вкладку
func (h *TaskHandler) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Open(r.Context(), chi.URLParam(r, "list"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, newViewResponse(snap))
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.Get(r.Context(), chi.URLParam(r, "list"), chi.URLParam(r, "id"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	list := chi.URLParam(r, "list")
	task, err := h.service.Create(r.Context(), list, req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/lists/%s/tasks/%s", list, task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Completed == nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := h.service.Toggle(r.Context(), chi.URLParam(r, "list"), chi.URLParam(r, "id"), *req.Completed)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "list"), chi.URLParam(r, "id")); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
