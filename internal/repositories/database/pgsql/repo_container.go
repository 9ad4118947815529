package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/mf_receipt_desk/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, stateTTL time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientState: newPgxClientStateRepository(dbPool, stateTTL),
	}
}
