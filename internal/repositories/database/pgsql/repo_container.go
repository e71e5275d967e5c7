package pgsql

import (
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository over the shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TxManager:        &BaseRepository{Pool: pool},
		UserRepo:         newPgxUserRepository(pool),
		CredentialsRepo:  newPgxCredentialsRepository(pool),
		CompanyRepo:      newPgxCompanyRepository(pool),
		MemberRepo:       newPgxCompanyMemberRepository(pool),
		RefreshTokenRepo: newPgxRefreshTokenRepository(pool),
		ResetTokenRepo:   newPgxPasswordResetTokenRepository(pool),
		AuditRepo:        newPgxAuditEventRepository(pool),
		AppLogRepo:       newPgxAppLogRepository(pool),
	}
}
