package dto

import (
	"encoding/json"
	"time"

	"github.com/basehq/base_backend/internal/core/domain"
)

// --- Company DTOs ---

// CreateCompanyRequest defines data for creating a new company.
type CreateCompanyRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Settings json.RawMessage `json:"settings"`
}

// UpdateCompanyRequest defines data for updating a company.
type UpdateCompanyRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Settings json.RawMessage `json:"settings"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID string          `json:"companyID"`
	Name      string          `json:"name"`
	Settings  json.RawMessage `json:"settings,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: c.PublicID,
		Name:      c.Name,
		Settings:  c.Settings,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// --- Membership DTOs ---

// InviteMemberRequest defines data for adding an existing user to the
// caller's company.
type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=OWNER ADMIN MEMBER"`
}

// UpdateMemberRequest defines data for enabling or disabling a member.
type UpdateMemberRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// CompanyMemberResponse defines data returned for a membership.
type CompanyMemberResponse struct {
	MemberID  string    `json:"memberID"`
	Role      string    `json:"role"`
	UserName  string    `json:"userName,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// ToCompanyMemberResponse converts domain.CompanyMember to DTO.
func ToCompanyMemberResponse(m *domain.CompanyMember) CompanyMemberResponse {
	return CompanyMemberResponse{
		MemberID:  m.PublicID,
		Role:      string(m.Role),
		UserName:  m.UserName,
		UserEmail: m.UserEmail,
		JoinedAt:  m.CreatedAt,
	}
}

// CompanyWithMembersResponse wraps the company with its memberships.
type CompanyWithMembersResponse struct {
	Company CompanyResponse         `json:"company"`
	Members []CompanyMemberResponse `json:"members"`
}

// ToCompanyWithMembersResponse converts a company and its members to DTO.
func ToCompanyWithMembersResponse(c *domain.Company, members []domain.CompanyMember) CompanyWithMembersResponse {
	list := make([]CompanyMemberResponse, len(members))
	for i := range members {
		list[i] = ToCompanyMemberResponse(&members[i])
	}
	return CompanyWithMembersResponse{
		Company: ToCompanyResponse(c),
		Members: list,
	}
}
