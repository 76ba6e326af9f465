package members

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	apiresponse "github.com/bazario/go-invite/lib/api/response"
	"github.com/bazario/go-invite/lib/sl"
	"github.com/bazario/go-invite/models"
	"github.com/bazario/go-invite/request"
	"github.com/bazario/go-invite/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Core interface {
	CreateMember(req request.CreateMemberRequest) (*models.Member, error)
	GetMembers(req request.GetMembersRequest) ([]models.Member, int64, error)
	UpdateMemberStatus(id uint, newStatus string) (*models.Member, error)
}

func Create(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.members"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req request.CreateMemberRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, 400)
			render.JSON(w, r, apiresponse.Error(fmt.Sprintf("Invalid request: %v", err)))
			return
		}

		member, err := handler.CreateMember(req)
		if err != nil {
			status := 500
			switch {
			case errors.Is(err, service.ErrValidation):
				status = 400
			case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrRetriesExhausted):
				status = 409
			default:
				logger.Error("create member", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, apiresponse.Error(fmt.Sprintf("Create member: %v", err)))
			return
		}
		logger.Debug("member created", sl.MemberID(member.ID))

		render.Status(r, 201)
		render.JSON(w, r, apiresponse.Ok(member))
	}
}

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.members"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		req := request.GetMembersRequest{}
		if status := r.URL.Query().Get("status"); status != "" {
			req.Statuses = []string{status}
		}
		if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
			req.PaginationConditions.Limit = &limit
		}
		if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
			req.PaginationConditions.Offset = &offset
		}

		members, count, err := handler.GetMembers(req)
		if err != nil {
			logger.Error("list members", sl.Err(err))
			render.Status(r, 500)
			render.JSON(w, r, apiresponse.Error(fmt.Sprintf("List members: %v", err)))
			return
		}

		render.JSON(w, r, apiresponse.Ok(map[string]any{
			"members": members,
			"total":   count,
		}))
	}
}

func UpdateStatus(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.members"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			render.Status(r, 400)
			render.JSON(w, r, apiresponse.Error("Invalid member id"))
			return
		}

		var req request.UpdateStatusRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, 400)
			render.JSON(w, r, apiresponse.Error(fmt.Sprintf("Invalid request: %v", err)))
			return
		}

		member, err := handler.UpdateMemberStatus(uint(id), req.Status)
		if err != nil {
			status := 500
			switch {
			case errors.Is(err, service.ErrNotFound):
				status = 404
			case errors.Is(err, service.ErrConflict):
				status = 409
			case errors.Is(err, service.ErrValidation):
				status = 400
			default:
				logger.Error("update status", sl.Err(err), sl.MemberID(uint(id)))
			}
			render.Status(r, status)
			render.JSON(w, r, apiresponse.Error(fmt.Sprintf("Update status: %v", err)))
			return
		}
		logger.Debug("status updated", sl.MemberID(member.ID), slog.String("status", member.Status))

		render.JSON(w, r, apiresponse.Ok(member))
	}
}
