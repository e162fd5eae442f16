package services

import (
	portsrepo "github.com/taleskillz/data_collect_app/internal/core/ports/repositories"
	portssvc "github.com/taleskillz/data_collect_app/internal/core/ports/services"
	"github.com/taleskillz/data_collect_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Submission = NewSubmissionService(repos.SubmissionRepo)
	container.Token = NewTokenService(cfg)
	container.Session = NewSessionService(cfg, repos.SessionRepo, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
