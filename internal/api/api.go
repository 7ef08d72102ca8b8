package api

import (
	"errors"
	"net/http"

	"github.com/smsgate/console/internal/api/web"
	"github.com/smsgate/console/internal/auth"
	"github.com/smsgate/console/internal/config"
	"github.com/smsgate/console/internal/message"
)

// Service represents the web console API service
type Service struct {
	Config  *config.Config
	Gateway message.Gateway
	Tokens  *auth.TokenService

	web *web.Service
}

// Startup starts up the web console
func (service *Service) Startup(errs chan<- error) {
	webService := &web.Service{
		Config:  service.Config,
		Gateway: service.Gateway,
		Tokens:  service.Tokens,
	}
	service.web = webService
	go func() {
		if err := webService.Startup(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown shuts down the web console
func (service *Service) Shutdown() {
	if service.web != nil {
		service.web.Shutdown()
		service.web = nil
	}
}
