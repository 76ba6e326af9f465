package referrals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	apiresponse "github.com/bazario/go-invite/lib/api/response"
	"github.com/bazario/go-invite/lib/sl"
	"github.com/bazario/go-invite/response"
	"github.com/bazario/go-invite/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Core interface {
	ResolveReferrals(ctx context.Context, ownerID uint) (*response.ReferralResolution, error)
}

// Resolve returns the owner's two-level invite graph.
func Resolve(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.referrals"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			render.Status(r, 400)
			render.JSON(w, r, apiresponse.Error("Invalid member id"))
			return
		}

		resolution, err := handler.ResolveReferrals(r.Context(), uint(id))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				render.Status(r, 404)
				render.JSON(w, r, apiresponse.Error("Member not found"))
				return
			}
			logger.Error("resolve referrals", sl.Err(err), sl.MemberID(uint(id)))
			render.Status(r, 500)
			render.JSON(w, r, apiresponse.Error(fmt.Sprintf("Resolve referrals: %v", err)))
			return
		}
		logger.Debug("referrals resolved",
			sl.MemberID(uint(id)),
			slog.Int("level1", len(resolution.Level1)),
			slog.Int("level2", len(resolution.Level2)),
		)

		render.JSON(w, r, apiresponse.Ok(resolution))
	}
}
