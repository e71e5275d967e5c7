package services_test

import (
	"context"
	"time"

	"github.com/basehq/base_backend/internal/core/domain"
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	portssvc "github.com/basehq/base_backend/internal/core/ports/services"
	"github.com/basehq/base_backend/internal/core/tenant"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionManager ---

type MockTxManager struct {
	mock.Mock
	BeginCount    int
	CommitCount   int
	RollbackCount int
	BeginFn       func(ctx context.Context) (pgx.Tx, error)
	CommitFn      func(ctx context.Context, tx pgx.Tx) error
}

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	m.BeginCount++
	if m.BeginFn != nil {
		return m.BeginFn(ctx)
	}
	return nil, nil
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	m.CommitCount++
	if m.CommitFn != nil {
		return m.CommitFn(ctx, tx)
	}
	return nil
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	m.RollbackCount++
	return nil
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn       func(ctx context.Context, userID int64) (*domain.User, error)
	FindUserByPublicIDFn func(ctx context.Context, t tenant.Tenant, publicID string) (*domain.User, error)
	FindUserByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	EmailExistsFn        func(ctx context.Context, email string) (bool, error)
	CreateUserInTxFn     func(ctx context.Context, tx pgx.Tx, user *domain.User) error
	UpdateUserFn         func(ctx context.Context, t tenant.Tenant, user *domain.User) error
	SetUserCompanyInTxFn func(ctx context.Context, tx pgx.Tx, userID, companyID int64) error
	MarkUserDeletedFn    func(ctx context.Context, t tenant.Tenant, userID int64, deletedAt time.Time) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByPublicID(ctx context.Context, t tenant.Tenant, publicID string) (*domain.User, error) {
	if m.FindUserByPublicIDFn != nil {
		return m.FindUserByPublicIDFn(ctx, t, publicID)
	}
	args := m.Called(ctx, t, publicID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.EmailExistsFn != nil {
		return m.EmailExistsFn(ctx, email)
	}
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CreateUserInTx(ctx context.Context, tx pgx.Tx, user *domain.User) error {
	if m.CreateUserInTxFn != nil {
		return m.CreateUserInTxFn(ctx, tx, user)
	}
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, t tenant.Tenant, user *domain.User) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, t, user)
	}
	args := m.Called(ctx, t, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetUserCompanyInTx(ctx context.Context, tx pgx.Tx, userID, companyID int64) error {
	if m.SetUserCompanyInTxFn != nil {
		return m.SetUserCompanyInTxFn(ctx, tx, userID, companyID)
	}
	args := m.Called(ctx, tx, userID, companyID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, t tenant.Tenant, userID int64, deletedAt time.Time) error {
	if m.MarkUserDeletedFn != nil {
		return m.MarkUserDeletedFn(ctx, t, userID, deletedAt)
	}
	args := m.Called(ctx, t, userID, deletedAt)
	return args.Error(0)
}

// --- Mock CredentialsRepository ---

type MockCredentialsRepository struct {
	mock.Mock
	FindCredentialsByUserIDFn func(ctx context.Context, userID int64) (*domain.UserCredentials, error)
	CreateCredentialsInTxFn   func(ctx context.Context, tx pgx.Tx, creds *domain.UserCredentials) error
	ReplacePasswordHashInTxFn func(ctx context.Context, tx pgx.Tx, userID int64, passwordHash string, changedAt time.Time) error
}

func (m *MockCredentialsRepository) FindCredentialsByUserID(ctx context.Context, userID int64) (*domain.UserCredentials, error) {
	if m.FindCredentialsByUserIDFn != nil {
		return m.FindCredentialsByUserIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var creds *domain.UserCredentials
	if args.Get(0) != nil {
		creds = args.Get(0).(*domain.UserCredentials)
	}
	return creds, args.Error(1)
}

func (m *MockCredentialsRepository) CreateCredentialsInTx(ctx context.Context, tx pgx.Tx, creds *domain.UserCredentials) error {
	if m.CreateCredentialsInTxFn != nil {
		return m.CreateCredentialsInTxFn(ctx, tx, creds)
	}
	args := m.Called(ctx, tx, creds)
	return args.Error(0)
}

func (m *MockCredentialsRepository) ReplacePasswordHashInTx(ctx context.Context, tx pgx.Tx, userID int64, passwordHash string, changedAt time.Time) error {
	if m.ReplacePasswordHashInTxFn != nil {
		return m.ReplacePasswordHashInTxFn(ctx, tx, userID, passwordHash, changedAt)
	}
	args := m.Called(ctx, tx, userID, passwordHash, changedAt)
	return args.Error(0)
}

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
	FindCompanyByIDFn        func(ctx context.Context, companyID int64) (*domain.Company, error)
	FindCompanyWithMembersFn func(ctx context.Context, t tenant.Tenant) (*domain.Company, []domain.CompanyMember, error)
	NameExistsFn             func(ctx context.Context, name string, excludeCompanyID int64) (bool, error)
	CreateCompanyInTxFn      func(ctx context.Context, tx pgx.Tx, company *domain.Company) error
	UpdateCompanyFn          func(ctx context.Context, t tenant.Tenant, company *domain.Company) error
	MarkCompanyDeletedFn     func(ctx context.Context, t tenant.Tenant, deletedAt time.Time) error
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID int64) (*domain.Company, error) {
	if m.FindCompanyByIDFn != nil {
		return m.FindCompanyByIDFn(ctx, companyID)
	}
	args := m.Called(ctx, companyID)
	var company *domain.Company
	if args.Get(0) != nil {
		company = args.Get(0).(*domain.Company)
	}
	return company, args.Error(1)
}

func (m *MockCompanyRepository) FindCompanyWithMembers(ctx context.Context, t tenant.Tenant) (*domain.Company, []domain.CompanyMember, error) {
	if m.FindCompanyWithMembersFn != nil {
		return m.FindCompanyWithMembersFn(ctx, t)
	}
	args := m.Called(ctx, t)
	var company *domain.Company
	if args.Get(0) != nil {
		company = args.Get(0).(*domain.Company)
	}
	var members []domain.CompanyMember
	if args.Get(1) != nil {
		members = args.Get(1).([]domain.CompanyMember)
	}
	return company, members, args.Error(2)
}

func (m *MockCompanyRepository) NameExists(ctx context.Context, name string, excludeCompanyID int64) (bool, error) {
	if m.NameExistsFn != nil {
		return m.NameExistsFn(ctx, name, excludeCompanyID)
	}
	args := m.Called(ctx, name, excludeCompanyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) CreateCompanyInTx(ctx context.Context, tx pgx.Tx, company *domain.Company) error {
	if m.CreateCompanyInTxFn != nil {
		return m.CreateCompanyInTxFn(ctx, tx, company)
	}
	args := m.Called(ctx, tx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, t tenant.Tenant, company *domain.Company) error {
	if m.UpdateCompanyFn != nil {
		return m.UpdateCompanyFn(ctx, t, company)
	}
	args := m.Called(ctx, t, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) MarkCompanyDeleted(ctx context.Context, t tenant.Tenant, deletedAt time.Time) error {
	if m.MarkCompanyDeletedFn != nil {
		return m.MarkCompanyDeletedFn(ctx, t, deletedAt)
	}
	args := m.Called(ctx, t, deletedAt)
	return args.Error(0)
}

// --- Mock CompanyMemberRepository ---

type MockCompanyMemberRepository struct {
	mock.Mock
	FindMembershipByUserIDFn func(ctx context.Context, userID int64) (*domain.CompanyMember, error)
	IsUserInAnyCompanyFn     func(ctx context.Context, userID int64) (bool, error)
	CreateMemberInTxFn       func(ctx context.Context, tx pgx.Tx, t tenant.Tenant, member *domain.CompanyMember) error
}

func (m *MockCompanyMemberRepository) FindMembershipByUserID(ctx context.Context, userID int64) (*domain.CompanyMember, error) {
	if m.FindMembershipByUserIDFn != nil {
		return m.FindMembershipByUserIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var member *domain.CompanyMember
	if args.Get(0) != nil {
		member = args.Get(0).(*domain.CompanyMember)
	}
	return member, args.Error(1)
}

func (m *MockCompanyMemberRepository) IsUserInAnyCompany(ctx context.Context, userID int64) (bool, error) {
	if m.IsUserInAnyCompanyFn != nil {
		return m.IsUserInAnyCompanyFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyMemberRepository) CreateMemberInTx(ctx context.Context, tx pgx.Tx, t tenant.Tenant, member *domain.CompanyMember) error {
	if m.CreateMemberInTxFn != nil {
		return m.CreateMemberInTxFn(ctx, tx, t, member)
	}
	args := m.Called(ctx, tx, t, member)
	return args.Error(0)
}

// --- Mock RefreshTokenRepository ---

type MockRefreshTokenRepository struct {
	mock.Mock
	FindActiveTokenByHashFn      func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	CreateTokenInTxFn            func(ctx context.Context, tx pgx.Tx, token *domain.RefreshToken) error
	RevokeTokenInTxFn            func(ctx context.Context, tx pgx.Tx, tokenID int64, revokedAt time.Time) error
	RevokeAllTokensForUserInTxFn func(ctx context.Context, tx pgx.Tx, userID int64, revokedAt time.Time) error
}

func (m *MockRefreshTokenRepository) FindActiveTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	if m.FindActiveTokenByHashFn != nil {
		return m.FindActiveTokenByHashFn(ctx, tokenHash)
	}
	args := m.Called(ctx, tokenHash)
	var token *domain.RefreshToken
	if args.Get(0) != nil {
		token = args.Get(0).(*domain.RefreshToken)
	}
	return token, args.Error(1)
}

func (m *MockRefreshTokenRepository) CreateTokenInTx(ctx context.Context, tx pgx.Tx, token *domain.RefreshToken) error {
	if m.CreateTokenInTxFn != nil {
		return m.CreateTokenInTxFn(ctx, tx, token)
	}
	args := m.Called(ctx, tx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeTokenInTx(ctx context.Context, tx pgx.Tx, tokenID int64, revokedAt time.Time) error {
	if m.RevokeTokenInTxFn != nil {
		return m.RevokeTokenInTxFn(ctx, tx, tokenID, revokedAt)
	}
	args := m.Called(ctx, tx, tokenID, revokedAt)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllTokensForUserInTx(ctx context.Context, tx pgx.Tx, userID int64, revokedAt time.Time) error {
	if m.RevokeAllTokensForUserInTxFn != nil {
		return m.RevokeAllTokensForUserInTxFn(ctx, tx, userID, revokedAt)
	}
	args := m.Called(ctx, tx, userID, revokedAt)
	return args.Error(0)
}

// --- Mock PasswordResetTokenRepository ---

type MockResetTokenRepository struct {
	mock.Mock
	FindActiveTokenByUserAndHashFn      func(ctx context.Context, userID int64, tokenHash string) (*domain.PasswordResetToken, error)
	InvalidateActiveTokensForUserInTxFn func(ctx context.Context, tx pgx.Tx, userID int64, usedAt time.Time) error
	CreateTokenInTxFn                   func(ctx context.Context, tx pgx.Tx, token *domain.PasswordResetToken) error
	MarkTokenUsedInTxFn                 func(ctx context.Context, tx pgx.Tx, tokenID int64, usedAt time.Time) error
}

func (m *MockResetTokenRepository) FindActiveTokenByUserAndHash(ctx context.Context, userID int64, tokenHash string) (*domain.PasswordResetToken, error) {
	if m.FindActiveTokenByUserAndHashFn != nil {
		return m.FindActiveTokenByUserAndHashFn(ctx, userID, tokenHash)
	}
	args := m.Called(ctx, userID, tokenHash)
	var token *domain.PasswordResetToken
	if args.Get(0) != nil {
		token = args.Get(0).(*domain.PasswordResetToken)
	}
	return token, args.Error(1)
}

func (m *MockResetTokenRepository) InvalidateActiveTokensForUserInTx(ctx context.Context, tx pgx.Tx, userID int64, usedAt time.Time) error {
	if m.InvalidateActiveTokensForUserInTxFn != nil {
		return m.InvalidateActiveTokensForUserInTxFn(ctx, tx, userID, usedAt)
	}
	args := m.Called(ctx, tx, userID, usedAt)
	return args.Error(0)
}

func (m *MockResetTokenRepository) CreateTokenInTx(ctx context.Context, tx pgx.Tx, token *domain.PasswordResetToken) error {
	if m.CreateTokenInTxFn != nil {
		return m.CreateTokenInTxFn(ctx, tx, token)
	}
	args := m.Called(ctx, tx, token)
	return args.Error(0)
}

func (m *MockResetTokenRepository) MarkTokenUsedInTx(ctx context.Context, tx pgx.Tx, tokenID int64, usedAt time.Time) error {
	if m.MarkTokenUsedInTxFn != nil {
		return m.MarkTokenUsedInTxFn(ctx, tx, tokenID, usedAt)
	}
	args := m.Called(ctx, tx, tokenID, usedAt)
	return args.Error(0)
}

// --- Mock AuditEventRepository ---

// MockAuditRepository records appended events. Defaults succeed so tests
// only inspect the captured events.
type MockAuditRepository struct {
	mock.Mock
	Events []domain.AuditEvent
}

func (m *MockAuditRepository) SaveAuditEvent(ctx context.Context, event *domain.AuditEvent) error {
	m.Events = append(m.Events, *event)
	return nil
}

func (m *MockAuditRepository) SaveAuditEventInTx(ctx context.Context, tx pgx.Tx, event *domain.AuditEvent) error {
	m.Events = append(m.Events, *event)
	return nil
}

// LastEventType returns the type of the most recent event, or "".
func (m *MockAuditRepository) LastEventType() string {
	if len(m.Events) == 0 {
		return ""
	}
	return m.Events[len(m.Events)-1].EventType
}

// --- Mock AppLogRepository ---

type MockAppLogRepository struct {
	mock.Mock
	Entries []domain.AppLog
}

func (m *MockAppLogRepository) SaveAppLog(ctx context.Context, entry *domain.AppLog) error {
	m.Entries = append(m.Entries, *entry)
	return nil
}

// --- Mock MailSvcFacade ---

// MockMailService records enqueued emails synchronously.
type MockMailService struct {
	WelcomeEmails      []string
	VerificationCodes  []portssvc.VerificationCodeEmailData
	VerificationEmails []string
}

func (m *MockMailService) EnqueueWelcomeEmail(email string, data portssvc.WelcomeEmailData) {
	m.WelcomeEmails = append(m.WelcomeEmails, email)
}

func (m *MockMailService) EnqueueVerificationCodeEmail(email string, data portssvc.VerificationCodeEmailData) {
	m.VerificationEmails = append(m.VerificationEmails, email)
	m.VerificationCodes = append(m.VerificationCodes, data)
}

// --- Shared fixture ---

// mockRepos bundles every repository mock behind a RepositoryProvider.
type mockRepos struct {
	Tx           *MockTxManager
	User         *MockUserRepository
	Credentials  *MockCredentialsRepository
	Company      *MockCompanyRepository
	Member       *MockCompanyMemberRepository
	RefreshToken *MockRefreshTokenRepository
	ResetToken   *MockResetTokenRepository
	Audit        *MockAuditRepository
	AppLog       *MockAppLogRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		Tx:           new(MockTxManager),
		User:         new(MockUserRepository),
		Credentials:  new(MockCredentialsRepository),
		Company:      new(MockCompanyRepository),
		Member:       new(MockCompanyMemberRepository),
		RefreshToken: new(MockRefreshTokenRepository),
		ResetToken:   new(MockResetTokenRepository),
		Audit:        new(MockAuditRepository),
		AppLog:       new(MockAppLogRepository),
	}
}

func (m *mockRepos) provider() *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TxManager:        m.Tx,
		UserRepo:         m.User,
		CredentialsRepo:  m.Credentials,
		CompanyRepo:      m.Company,
		MemberRepo:       m.Member,
		RefreshTokenRepo: m.RefreshToken,
		ResetTokenRepo:   m.ResetToken,
		AuditRepo:        m.Audit,
		AppLogRepo:       m.AppLog,
	}
}
