package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/basehq/base_backend/internal/apperrors"
	"github.com/basehq/base_backend/internal/core/domain"
	portsrepo "github.com/basehq/base_backend/internal/core/ports/repositories"
	portssvc "github.com/basehq/base_backend/internal/core/ports/services"
	"github.com/basehq/base_backend/internal/core/tenant"
)

// companyService implements CompanySvcFacade. Every method takes the
// tenant resolved at the boundary; role checks happen here, tenant
// filtering happens again in the repositories.
type companyService struct {
	BaseService
	repos *portsrepo.RepositoryProvider
}

// NewCompanyService creates the company management service.
func NewCompanyService(repos *portsrepo.RepositoryProvider) portssvc.CompanySvcFacade {
	return &companyService{repos: repos}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates a company with the caller as Owner. A user can
// belong to only one company, so callers already in one are rejected.
func (s *companyService) CreateCompany(ctx context.Context, t tenant.Tenant, name string, settings json.RawMessage) (*domain.Company, error) {
	if t.UserID == 0 {
		return nil, apperrors.ErrForbidden
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrValidation
	}

	inCompany, err := s.repos.MemberRepo.IsUserInAnyCompany(ctx, t.UserID)
	if err != nil {
		s.LogError(ctx, err, "failed to check existing membership", slog.Int64("user_id", t.UserID))
		return nil, err
	}
	if inCompany {
		return nil, apperrors.ErrAlreadyInCompany
	}

	taken, err := s.repos.CompanyRepo.NameExists(ctx, name, 0)
	if err != nil {
		s.LogError(ctx, err, "failed to check company name")
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateName
	}

	now := time.Now()

	tx, err := s.repos.TxManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin company creation transaction: %w", err)
	}
	defer s.repos.TxManager.Rollback(ctx, tx)

	company := &domain.Company{
		Name:      name,
		Settings:  settings,
		Lifecycle: domain.NewLifecycle(now),
	}
	if err := s.repos.CompanyRepo.CreateCompanyInTx(ctx, tx, company); err != nil {
		s.LogError(ctx, err, "failed to create company")
		return nil, err
	}

	// The caller has no company yet, so its tenant is unauthenticated and
	// cannot stamp; the member carries the freshly created company id.
	member := &domain.CompanyMember{
		CompanyID: company.ID,
		UserID:    t.UserID,
		Role:      domain.RoleOwner,
		Lifecycle: domain.NewLifecycle(now),
	}
	if err := s.repos.MemberRepo.CreateMemberInTx(ctx, tx, t, member); err != nil {
		s.LogError(ctx, err, "failed to create owner membership")
		return nil, err
	}

	if err := s.repos.UserRepo.SetUserCompanyInTx(ctx, tx, t.UserID, company.ID); err != nil {
		s.LogError(ctx, err, "failed to repoint user company", slog.Int64("user_id", t.UserID))
		return nil, err
	}

	if err := s.repos.TxManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit company creation transaction: %w", err)
	}

	s.LogInfo(ctx, "company created", slog.Int64("company_id", company.ID), slog.Int64("user_id", t.UserID))
	return company, nil
}

// GetCompany returns the caller's company together with its members.
func (s *companyService) GetCompany(ctx context.Context, t tenant.Tenant) (*domain.Company, []domain.CompanyMember, error) {
	company, members, err := s.repos.CompanyRepo.FindCompanyWithMembers(ctx, t)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to load company with members", slog.Int64("company_id", t.CompanyID))
		return nil, nil, err
	}
	return company, members, nil
}

// UpdateCompany renames the company and/or replaces its settings blob.
func (s *companyService) UpdateCompany(ctx context.Context, t tenant.Tenant, name string, settings json.RawMessage) (*domain.Company, error) {
	if !t.CanManageCompany() {
		return nil, apperrors.ErrForbidden
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrValidation
	}

	taken, err := s.repos.CompanyRepo.NameExists(ctx, name, t.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "failed to check company name")
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateName
	}

	company, err := s.repos.CompanyRepo.FindCompanyByID(ctx, t.CompanyID)
	if err != nil {
		return nil, err
	}

	company.Name = name
	if settings != nil {
		company.Settings = settings
	}
	company.UpdatedAt = time.Now()

	if err := s.repos.CompanyRepo.UpdateCompany(ctx, t, company); err != nil {
		s.LogError(ctx, err, "failed to update company", slog.Int64("company_id", t.CompanyID))
		return nil, err
	}

	s.LogInfo(ctx, "company updated", slog.Int64("company_id", t.CompanyID))
	return company, nil
}

// DeleteCompany soft-deletes the caller's company.
func (s *companyService) DeleteCompany(ctx context.Context, t tenant.Tenant) error {
	if !t.CanManageCompany() {
		return apperrors.ErrForbidden
	}

	if err := s.repos.CompanyRepo.MarkCompanyDeleted(ctx, t, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to delete company", slog.Int64("company_id", t.CompanyID))
		return err
	}

	s.LogInfo(ctx, "company deleted", slog.Int64("company_id", t.CompanyID))
	return nil
}

// InviteMember adds an existing user to the caller's company. The
// membership row and the user's denormalized company id are written in one
// transaction so they cannot drift.
func (s *companyService) InviteMember(ctx context.Context, t tenant.Tenant, email string, role domain.CompanyRole) (*domain.CompanyMember, error) {
	if !t.CanManageCompany() {
		return nil, apperrors.ErrForbidden
	}
	if !role.IsValid() {
		return nil, apperrors.ErrValidation
	}

	user, err := s.repos.UserRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		s.LogError(ctx, err, "failed to look up invitee")
		return nil, err
	}

	inCompany, err := s.repos.MemberRepo.IsUserInAnyCompany(ctx, user.ID)
	if err != nil {
		s.LogError(ctx, err, "failed to check invitee membership", slog.Int64("user_id", user.ID))
		return nil, err
	}
	if inCompany {
		return nil, apperrors.ErrAlreadyInCompany
	}

	now := time.Now()

	tx, err := s.repos.TxManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin invite transaction: %w", err)
	}
	defer s.repos.TxManager.Rollback(ctx, tx)

	// CompanyID is stamped from the resolved tenant by the repository.
	member := &domain.CompanyMember{
		UserID:    user.ID,
		Role:      role,
		UserName:  user.Name,
		UserEmail: user.Email,
		Lifecycle: domain.NewLifecycle(now),
	}
	if err := s.repos.MemberRepo.CreateMemberInTx(ctx, tx, t, member); err != nil {
		s.LogError(ctx, err, "failed to create membership", slog.Int64("user_id", user.ID))
		return nil, err
	}

	if err := s.repos.UserRepo.SetUserCompanyInTx(ctx, tx, user.ID, t.CompanyID); err != nil {
		s.LogError(ctx, err, "failed to repoint invitee company", slog.Int64("user_id", user.ID))
		return nil, err
	}

	if err := s.repos.TxManager.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit invite transaction: %w", err)
	}

	s.LogInfo(ctx, "member invited",
		slog.Int64("company_id", t.CompanyID),
		slog.Int64("user_id", user.ID),
		slog.String("role", string(role)))
	return member, nil
}

// GetMember returns a member's user profile. Tenant scoping happens in the
// repository: foreign or unknown public ids come back as ErrNotFound.
func (s *companyService) GetMember(ctx context.Context, t tenant.Tenant, memberPublicID string) (*domain.User, error) {
	return s.repos.UserRepo.FindUserByPublicID(ctx, t, memberPublicID)
}

// SetMemberActive flips a member's active flag. A disabled member keeps
// their data but can no longer log in.
func (s *companyService) SetMemberActive(ctx context.Context, t tenant.Tenant, memberPublicID string, isActive bool) (*domain.User, error) {
	if !t.CanManageCompany() {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.repos.UserRepo.FindUserByPublicID(ctx, t, memberPublicID)
	if err != nil {
		return nil, err
	}
	if user.ID == t.UserID {
		// Admins cannot lock themselves out.
		return nil, apperrors.ErrValidation
	}

	user.IsActive = isActive
	user.UpdatedAt = time.Now()
	if err := s.repos.UserRepo.UpdateUser(ctx, t, user); err != nil {
		s.LogError(ctx, err, "failed to update member", slog.Int64("user_id", user.ID))
		return nil, err
	}

	s.LogInfo(ctx, "member active flag changed",
		slog.Int64("company_id", t.CompanyID),
		slog.Int64("user_id", user.ID),
		slog.Bool("is_active", isActive))
	return user, nil
}

// RemoveMember retires a member's account with a soft delete. Deleted
// users disappear from member listings, fail login, and fail refresh-token
// rotation, so no explicit session revocation is needed here.
func (s *companyService) RemoveMember(ctx context.Context, t tenant.Tenant, memberPublicID string) error {
	if !t.CanManageCompany() {
		return apperrors.ErrForbidden
	}

	user, err := s.repos.UserRepo.FindUserByPublicID(ctx, t, memberPublicID)
	if err != nil {
		return err
	}
	if user.ID == t.UserID {
		// The last managing member cannot remove themselves.
		return apperrors.ErrValidation
	}

	if err := s.repos.UserRepo.MarkUserDeleted(ctx, t, user.ID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to remove member", slog.Int64("user_id", user.ID))
		return err
	}

	s.LogInfo(ctx, "member removed",
		slog.Int64("company_id", t.CompanyID),
		slog.Int64("user_id", user.ID))
	return nil
}
