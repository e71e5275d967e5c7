package handlers

import (
	"net/http"

	"github.com/basehq/base_backend/internal/core/domain"
	portssvc "github.com/basehq/base_backend/internal/core/ports/services"
	"github.com/basehq/base_backend/internal/core/tenant"
	"github.com/basehq/base_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company and membership requests.
type CompanyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(cs portssvc.CompanySvcFacade) *CompanyHandler {
	return &CompanyHandler{companyService: cs}
}

// Create creates a company with the caller as Owner.
func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	t := tenant.FromContext(c.Request.Context())
	company, err := h.companyService.CreateCompany(c.Request.Context(), t, req.Name, req.Settings)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// Get returns the caller's company with its members.
func (h *CompanyHandler) Get(c *gin.Context) {
	t := tenant.FromContext(c.Request.Context())
	company, members, err := h.companyService.GetCompany(c.Request.Context(), t)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyWithMembersResponse(company, members))
}

// Update renames the company and/or replaces its settings.
func (h *CompanyHandler) Update(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	t := tenant.FromContext(c.Request.Context())
	company, err := h.companyService.UpdateCompany(c.Request.Context(), t, req.Name, req.Settings)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// Delete soft-deletes the caller's company.
func (h *CompanyHandler) Delete(c *gin.Context) {
	t := tenant.FromContext(c.Request.Context())
	if err := h.companyService.DeleteCompany(c.Request.Context(), t); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// InviteMember adds an existing user to the caller's company.
func (h *CompanyHandler) InviteMember(c *gin.Context) {
	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	t := tenant.FromContext(c.Request.Context())
	member, err := h.companyService.InviteMember(c.Request.Context(), t, req.Email, domain.CompanyRole(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyMemberResponse(member))
}

// GetMember returns a member's user profile by public id.
func (h *CompanyHandler) GetMember(c *gin.Context) {
	t := tenant.FromContext(c.Request.Context())
	user, err := h.companyService.GetMember(c.Request.Context(), t, c.Param("memberId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateMember enables or disables a member's account.
func (h *CompanyHandler) UpdateMember(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	t := tenant.FromContext(c.Request.Context())
	user, err := h.companyService.SetMemberActive(c.Request.Context(), t, c.Param("memberId"), *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// RemoveMember retires a member's account.
func (h *CompanyHandler) RemoveMember(c *gin.Context) {
	t := tenant.FromContext(c.Request.Context())
	if err := h.companyService.RemoveMember(c.Request.Context(), t, c.Param("memberId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
