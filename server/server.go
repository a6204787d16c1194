package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/imgtrans/config"
	"github.com/adrianliechti/imgtrans/pkg/auth"
	"github.com/adrianliechti/imgtrans/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Server struct {
	*config.Config
	http.Handler
}

func New(cfg *config.Config) (*Server, error) {
	api, err := api.New(cfg)

	if err != nil {
		return nil, err
	}

	mux := chi.NewMux()

	s := &Server{
		Config:  cfg,
		Handler: otelhttp.NewHandler(mux, "imgtrans"),
	}

	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RequestSize(32 << 20))

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/v1", func(r chi.Router) {
		if len(cfg.Authorizers) > 0 {
			r.Use(s.authenticate)
		}

		api.Attach(r)
	})

	return s, nil
}

// authenticate admits a request once any authorizer accepts it.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		for _, a := range s.Authorizers {
			ctx, e := a.Authenticate(r.Context(), r)

			if e != nil {
				err = e
				continue
			}

			if user := auth.User(ctx); user != "" {
				trace.SpanFromContext(ctx).SetAttributes(attribute.String("enduser.id", user))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		slog.Debug("request rejected", "path", r.URL.Path, "error", err)

		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	})
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Address,
		Handler: s,

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server listening", "address", s.Address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
