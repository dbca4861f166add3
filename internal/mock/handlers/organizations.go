package handlers

import (
	"net/http"

	"github.com/readee/gateway/internal/mock/store"
	"github.com/readee/gateway/internal/models"
)

type organizationPatchRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1"`
	Type               *string `json:"type"`
	RegistrationNumber *string `json:"registrationNumber"`
	CertificateUpload  *string `json:"certificateUpload"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Logo               *string `json:"logo"`
}

type orgAdminHandlers struct {
	store *store.OrganizationAdminStore
}

// OrganizationAdmin serves the organization admin's own organization.
func OrganizationAdmin(s *store.OrganizationAdminStore) *Domain {
	h := orgAdminHandlers{store: s}
	return newDomain("organization-admin",
		on(http.MethodGet, "/api/organization-admin/manage-organization", h.get),
		on(http.MethodPut, "/api/organization-admin/manage-organization", h.update),
		on(http.MethodDelete, "/api/organization-admin/manage-organization", h.delete),
	)
}

func (h orgAdminHandlers) get(Request) (Response, error) {
	return ok(h.store.Get())
}

func (h orgAdminHandlers) update(req Request) (Response, error) {
	var body organizationPatchRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	return ok(h.store.Update(models.OrganizationPatch(body)))
}

func (h orgAdminHandlers) delete(Request) (Response, error) {
	h.store.Delete()
	return message("Organization deleted successfully")
}

type organizationList struct {
	Items []models.OrganizationSummary `json:"items"`
	Total int                          `json:"total"`
}

type organizationHandlers struct {
	store *store.OrganizationStore
}

// Organizations serves the reader's organization memberships.
func Organizations(s *store.OrganizationStore) *Domain {
	h := organizationHandlers{store: s}
	return newDomain("organizations",
		on(http.MethodGet, "/api/organizations", h.list),
		on(http.MethodGet, "/api/organizations/{id}", h.get),
		on(http.MethodPost, "/api/organizations/{id}/leave", h.leave),
	)
}

func (h organizationHandlers) list(Request) (Response, error) {
	items := h.store.List()
	return ok(organizationList{Items: items, Total: len(items)})
}

func (h organizationHandlers) get(req Request) (Response, error) {
	org, err := h.store.Get(req.Param("id"))
	if err != nil {
		return Response{}, err
	}
	return ok(org)
}

func (h organizationHandlers) leave(req Request) (Response, error) {
	if err := h.store.Leave(req.Param("id")); err != nil {
		return Response{}, err
	}
	return ok(successBody{Success: true})
}
