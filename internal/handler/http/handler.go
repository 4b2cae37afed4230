package http

import (
	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/service"
	"github.com/MKhiriev/go-chore-keeper/internal/utils"
)

// SessionManager is the part of the client session the local API drives.
type SessionManager interface {
	SetToken(token string) error
	Scope() (string, error)
}

type Handler struct {
	services *service.ClientServices
	session  SessionManager
	hasher   *utils.Hasher

	logger *logger.Logger
}

func NewHandler(services *service.ClientServices, session SessionManager, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		session:  session,
		hasher:   utils.NewHasher(hashKey),
		logger:   logger,
	}
}
