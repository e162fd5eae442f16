package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/taleskillz/data_collect_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	submissionRepo := newPgxSubmissionRepository(dbPool)
	sessionRepo := newPgxSessionRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:       userRepo,
		SubmissionRepo: submissionRepo,
		SessionRepo:    sessionRepo,
	}
}
