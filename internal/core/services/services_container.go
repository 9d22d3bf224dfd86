package services

import (
	portsrepo "github.com/festra/event_registration_app/internal/core/ports/repositories"
	portssvc "github.com/festra/event_registration_app/internal/core/ports/services"
	"github.com/festra/event_registration_app/internal/platform/config"
	"github.com/festra/event_registration_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, mailer *utils.Mailer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, mailer, cfg)
	container.Event = NewEventService(repos.EventRepo, cfg)
	container.Registration = NewRegistrationService(repos.UserRepo, repos.EventRepo, repos.PaymentRepo, cfg)
	container.Token = NewTokenService(cfg, repos.UserRepo)
	container.GoogleAuth = NewGoogleAuthService(cfg, repos.UserRepo)

	return container
}
