package handler

import (
	"github.com/MKhiriev/go-chore-keeper/internal/config"
	"github.com/MKhiriev/go-chore-keeper/internal/handler/http"
	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.ClientServices, session http.SessionManager, cfg *config.ClientConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, session, cfg.App.HashKey, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
