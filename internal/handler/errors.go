package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskly/internal/board"
	"github.com/BuzzLyutic/taskly/internal/repo"
	"github.com/BuzzLyutic/taskly/internal/service"
	"github.com/BuzzLyutic/taskly/pkg/respond"
)

// errorStatus сопоставляет ошибку сервиса с HTTP-кодом и текстом для клиента
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		return http.StatusNotFound, "project not found"
	case errors.Is(err, board.ErrUnknownList):
		return http.StatusNotFound, "unknown list"
	case errors.Is(err, repo.ErrorNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, repo.ErrorConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	code, msg := errorStatus(err)
	if code == http.StatusInternalServerError {
		logger.Error("internal error", zap.Error(err), zap.String("path", r.URL.Path))
	}
	respond.Error(w, r, code, msg)
}

// Тексты уведомлений для HTML-страниц, передаются кодом в ?alert=
var alerts = map[string]string{
	"project-not-found": "Project not found!",
	"task-not-found":    "Task not found.",
	"title-required":    "Please fill in the title.",
	"invalid-input":     "Please check the form fields.",
	"task-created":      "Task created successfully!",
}

func alertFor(r *http.Request) string {
	return alerts[r.URL.Query().Get("alert")]
}

func alertCode(err error) string {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		return "project-not-found"
	case errors.Is(err, repo.ErrorNotFound):
		return "task-not-found"
	case errors.Is(err, service.ErrTitleRequired):
		return "title-required"
	case errors.Is(err, service.ErrValidation):
		return "invalid-input"
	default:
		return ""
	}
}
