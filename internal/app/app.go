package app

import (
	"dashboard/internal/app/deps"
	"dashboard/internal/app/services"
	"dashboard/internal/http/handlers/action"
	"dashboard/internal/http/handlers/recoverer"
	"dashboard/internal/http/handlers/requestlog"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler:           NewRouter(deps, s),
		Addr:              fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", action.New(s.Actions.Register))
	authRouter.Method(http.MethodPost, "/password_reset/token", action.New(s.Actions.RequestReset))
	authRouter.Method(http.MethodPost, "/password_reset", action.New(s.Actions.RedeemReset))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestlog.New(deps.Logger))
	router.Use(recoverer.New(deps.Logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)

	return router
}
