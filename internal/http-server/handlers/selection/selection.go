package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	apiresponse "github.com/bazario/go-invite/lib/api/response"
	"github.com/bazario/go-invite/lib/sl"
	"github.com/bazario/go-invite/request"
	"github.com/bazario/go-invite/response"
	"github.com/bazario/go-invite/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Core interface {
	ToggleSelection(ctx context.Context, memberID uint, selected bool) error
	BatchAction(ctx context.Context, ids []uint, action string) (*response.BatchResult, error)
}

func Toggle(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.selection"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			render.Status(r, 400)
			render.JSON(w, r, apiresponse.Error("Invalid member id"))
			return
		}

		var req request.ToggleSelectionRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, 400)
			render.JSON(w, r, apiresponse.Error(fmt.Sprintf("Invalid request: %v", err)))
			return
		}

		if err := handler.ToggleSelection(r.Context(), uint(id), *req.Selected); err != nil {
			status := 500
			switch {
			case errors.Is(err, service.ErrNotFound):
				status = 404
			case errors.Is(err, service.ErrConflict):
				status = 409
			default:
				logger.Error("toggle selection", sl.Err(err), sl.MemberID(uint(id)))
			}
			render.Status(r, status)
			render.JSON(w, r, apiresponse.Error(fmt.Sprintf("Toggle selection: %v", err)))
			return
		}
		logger.Debug("selection toggled", sl.MemberID(uint(id)), slog.Bool("selected", *req.Selected))

		render.JSON(w, r, apiresponse.Ok(nil))
	}
}

// Batch applies one action to many members; partial completion is a
// normal, reported outcome.
func Batch(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.selection"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req request.BatchActionRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, 400)
			render.JSON(w, r, apiresponse.Error(fmt.Sprintf("Invalid request: %v", err)))
			return
		}

		result, err := handler.BatchAction(r.Context(), req.IDs, req.Action)
		if err != nil {
			status := 500
			if errors.Is(err, service.ErrValidation) {
				status = 400
			} else {
				logger.Error("batch action", sl.Err(err), slog.String("action", req.Action))
			}
			render.Status(r, status)
			render.JSON(w, r, apiresponse.Error(fmt.Sprintf("Batch action: %v", err)))
			return
		}
		logger.Debug("batch action done",
			slog.String("action", req.Action),
			slog.Int("succeeded", len(result.Succeeded)),
			slog.Int("failed", len(result.Failed)),
		)

		render.JSON(w, r, apiresponse.Ok(result))
	}
}
