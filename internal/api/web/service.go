// Package web implements the operator-facing web console in front of the messaging provider.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/smsgate/console/internal/api/schema"
	"github.com/smsgate/console/internal/auth"
	"github.com/smsgate/console/internal/config"
	"github.com/smsgate/console/internal/message"
)

// Service represents the web console service
type Service struct {
	server *http.Server

	Config *config.Config

	Gateway message.Gateway
	Tokens  *auth.TokenService

	writer    *schema.Writer
	templates *templateSet
}

// Startup starts up the web console
func (service *Service) Startup() error {
	handler, err := service.buildHandler()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    service.Config.WebListenAddress,
		Handler: handler,
	}
	service.server = server
	return server.ListenAndServe()
}

// Shutdown shuts down the web console
func (service *Service) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}

// buildHandler assembles the HTTP router of the web console
func (service *Service) buildHandler() (http.Handler, error) {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the web console experienced an unexpected error")
		},
	}

	// Parse the embedded HTML templates
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	service.templates = templates

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(hlog.NewHandler(log.Logger))
	router.Use(hlog.AccessHandler(func(request *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(request).Debug().
			Str("method", request.Method).
			Stringer("url", request.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request handled")
	}))
	router.Use(middleware.RedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{service.Config.WebAllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	// Register the liveness probe (no authentication)
	router.Get("/health", service.EndpointHealth)
	router.Head("/health", service.EndpointHealth)

	// Register the login endpoints (no authentication)
	router.Get("/login", service.EndpointLoginForm)
	router.Post("/login", service.EndpointLogin)

	// Register the message endpoints; every one of them runs the session check before touching the gateway
	router.Get("/messages", withMiddlewares(service.EndpointMessages, service.MiddlewareVerifySession))
	router.Get("/messages-json", withMiddlewares(service.EndpointMessagesJSON, service.MiddlewareVerifySession))
	router.Post("/message", withMiddlewares(service.EndpointSendMessage, service.MiddlewareVerifySession))

	return router, nil
}

// EndpointHealth handles the 'GET|HEAD /health' endpoint
func (service *Service) EndpointHealth(writer http.ResponseWriter, _ *http.Request) {
	service.writer.WriteJSON(writer, map[string]string{"message": "ok"})
}

func withMiddlewares(end http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	final := end
	for i := len(middlewares); i > 0; i-- {
		final = middlewares[i-1](final)
	}
	return final
}
