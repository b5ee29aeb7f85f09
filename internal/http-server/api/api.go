package api

import (
	"VendorChat/internal/config"
	"VendorChat/internal/http-server/handlers/chat"
	"VendorChat/internal/http-server/handlers/errors"
	"VendorChat/internal/http-server/handlers/user"
	"VendorChat/internal/http-server/handlers/vendors"
	"VendorChat/internal/http-server/middleware/authenticate"
	"VendorChat/internal/http-server/middleware/logger"
	"VendorChat/internal/http-server/middleware/ratelimit"
	"VendorChat/internal/http-server/middleware/timeout"
	"VendorChat/internal/lib/sl"
	"VendorChat/internal/ws"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	vendors.Core
	user.Core
	chat.Core
}

// NewRouter builds the routes; the chat stream may take the whole listen
// timeout.
func NewRouter(ctx context.Context, conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) http.Handler {
	limiter := ratelimit.NewLimiter(conf.Listen.RateLimit, conf.Listen.Burst)
	go limiter.Cleanup(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logger.New(log))
	router.Use(timeout.Timeout(conf.Listen.Timeout))
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api", func(api chi.Router) {
		api.Route("/vendor", func(r chi.Router) {
			r.Get("/", vendors.GetAll(log, handler))
			r.Get("/list", vendors.List(log, handler))
			r.Get("/{vendorId}/schedule", vendors.Schedule(log, handler))
			r.With(authenticate.New(log, handler)).Get("/{vendorId}/bookings", vendors.Bookings(log, handler))
		})
		api.Route("/user", func(r chi.Router) {
			r.Get("/", user.GetUser(log, handler))
			r.Post("/", user.UpdateUser(log, handler))
		})
		api.Route("/chat/{vendorId}", func(r chi.Router) {
			r.With(ratelimit.New(log, limiter)).Post("/", chat.Stream(log, handler))
			r.With(authenticate.New(log, handler)).Get("/history", chat.History(log, handler))
		})
		api.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWs(hub, handler, log, w, r)
		})
	})

	return router
}

// New serves the api until ctx is done.
func New(ctx context.Context, conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {
	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  NewRouter(ctx, conf, log, handler, hub),
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.httpServer.Shutdown(shutdownCtx)
	}()

	server.log.Info("starting api server", slog.String("address", serverAddress))

	err = server.httpServer.Serve(listener)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
