package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	go_invite "github.com/bazario/go-invite"
	"github.com/bazario/go-invite/internal/config"
	handlererrors "github.com/bazario/go-invite/internal/http-server/handlers/errors"
	"github.com/bazario/go-invite/internal/http-server/handlers/members"
	"github.com/bazario/go-invite/internal/http-server/handlers/referrals"
	"github.com/bazario/go-invite/internal/http-server/handlers/rewards"
	"github.com/bazario/go-invite/internal/http-server/handlers/selection"
	"github.com/bazario/go-invite/internal/http-server/middleware/timeout"
	"github.com/bazario/go-invite/lib/sl"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

func New(conf *config.Config, log *slog.Logger, svc *go_invite.InviteService) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(5))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(handlererrors.NotFound(log))
	router.MethodNotAllowed(handlererrors.NotAllowed(log))

	router.Route("/v1", func(rootApi chi.Router) {
		rootApi.Route("/members", func(m chi.Router) {
			m.Post("/", members.Create(log, svc.Members))
			m.Get("/", members.List(log, svc.Members))
			m.Post("/{id}/status", members.UpdateStatus(log, svc.Members))
			m.Get("/{id}/referrals", referrals.Resolve(log, svc.Referrals))
			m.Get("/{id}/rewards", rewards.ForMember(log, svc.Referrals, svc.Rewards))
			m.Put("/{id}/selection", selection.Toggle(log, svc.Selection))
			m.Post("/batch", selection.Batch(log, svc.Selection))
		})
		rootApi.Post("/rewards/compute", rewards.Compute(log, svc.Rewards))
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:      router,
		ErrorLog:     httpLog,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIp, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
