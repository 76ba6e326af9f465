package rewards

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

type Resolver interface {
	ResolveReferrals(ctx context.Context, ownerID uint) (*response.ReferralResolution, error)
}

type Calculator interface {
	ComputeRewards(level1Count, level2Count int64) response.RewardBreakdown
}

// ForMember resolves the member's invite graph and prices it.
func ForMember(log *slog.Logger, resolver Resolver, calc Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.rewards"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			render.Status(r, 400)
			render.JSON(w, r, apiresponse.Error("Invalid member id"))
			return
		}

		resolution, err := resolver.ResolveReferrals(r.Context(), uint(id))
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

		breakdown := calc.ComputeRewards(int64(len(resolution.Level1)), int64(len(resolution.Level2)))
		render.JSON(w, r, apiresponse.Ok(breakdown))
	}
}

// Compute prices raw counts without touching the directory.
func Compute(log *slog.Logger, calc Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.rewards"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req request.ComputeRewardsRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, 400)
			render.JSON(w, r, apiresponse.Error(fmt.Sprintf("Invalid request: %v", err)))
			return
		}

		breakdown := calc.ComputeRewards(req.Level1Count, req.Level2Count)
		render.JSON(w, r, apiresponse.Ok(breakdown))
	}
}
