package handlers

import (
	"net/http"
	"strings"

	"github.com/readee/gateway/internal/mock/store"
	"github.com/readee/gateway/internal/models"
)

type nameRequest struct {
	Name string `json:"name"`
}

type renameRequest struct {
	Name *string `json:"name"`
}

func catalogFilter(req Request) (store.CatalogFilter, int, int, error) {
	p, l, err := page(req.Query, 10)
	if err != nil {
		return store.CatalogFilter{}, 0, 0, err
	}
	dates, err := dateRange(req.Query)
	if err != nil {
		return store.CatalogFilter{}, 0, 0, err
	}
	return store.CatalogFilter{Search: req.Query.Get("search"), Dates: dates}, p, l, nil
}

type domainList struct {
	Domains []models.Domain `json:"domains"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

type domainHandlers struct {
	store *store.DomainStore
}

func Domains(s *store.DomainStore) *Domain {
	h := domainHandlers{store: s}
	return newDomain("domains",
		on(http.MethodGet, "/api/business-admin/domains", h.list),
		on(http.MethodPost, "/api/business-admin/domains", h.create),
		on(http.MethodPut, "/api/business-admin/domains/{id}", h.update),
		on(http.MethodDelete, "/api/business-admin/domains/{id}", h.delete),
	)
}

func (h domainHandlers) list(req Request) (Response, error) {
	f, p, l, err := catalogFilter(req)
	if err != nil {
		return Response{}, err
	}
	domains := h.store.List(f)
	return ok(domainList{Domains: domains, Total: len(domains), Page: p, Limit: l})
}

func (h domainHandlers) create(req Request) (Response, error) {
	var body nameRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	d, err := h.store.Create(body.Name)
	if err != nil {
		return Response{}, err
	}
	return created(d)
}

func (h domainHandlers) update(req Request) (Response, error) {
	var body renameRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	d, err := h.store.Update(req.Param("id"), body.Name)
	if err != nil {
		return Response{}, err
	}
	return ok(d)
}

func (h domainHandlers) delete(req Request) (Response, error) {
	if err := h.store.Delete(req.Param("id")); err != nil {
		return Response{}, err
	}
	return message("Domain deleted successfully.")
}

type typeList struct {
	Types []models.DocumentType `json:"types"`
	Total int                   `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

type typeHandlers struct {
	store *store.TypeStore
}

// Types serves document type management. Types cannot be deleted.
func Types(s *store.TypeStore) *Domain {
	h := typeHandlers{store: s}
	return newDomain("types",
		on(http.MethodGet, "/api/business-admin/types", h.list),
		on(http.MethodPost, "/api/business-admin/types", h.create),
		on(http.MethodPut, "/api/business-admin/types/{id}", h.update),
	)
}

func (h typeHandlers) list(req Request) (Response, error) {
	f, p, l, err := catalogFilter(req)
	if err != nil {
		return Response{}, err
	}
	types := h.store.List(f)
	return ok(typeList{Types: types, Total: len(types), Page: p, Limit: l})
}

func (h typeHandlers) create(req Request) (Response, error) {
	var body nameRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	t, err := h.store.Create(body.Name)
	if err != nil {
		return Response{}, err
	}
	return created(t)
}

func (h typeHandlers) update(req Request) (Response, error) {
	var body renameRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	t, err := h.store.Update(req.Param("id"), body.Name)
	if err != nil {
		return Response{}, err
	}
	return ok(t)
}

type specializationList struct {
	Specializations []models.Specialization `json:"specializations"`
	Total           int                     `json:"total"`
	Page            int                     `json:"page"`
	Limit           int                     `json:"limit"`
}

type createSpecializationRequest struct {
	Name     string `json:"name"`
	DomainID string `json:"domainId" validate:"required"`
}

type specializationHandlers struct {
	store *store.SpecializationStore
}

func Specializations(s *store.SpecializationStore) *Domain {
	h := specializationHandlers{store: s}
	return newDomain("specializations",
		on(http.MethodGet, "/api/business-admin/specializations", h.list),
		on(http.MethodPost, "/api/business-admin/specializations", h.create),
		on(http.MethodPut, "/api/business-admin/specializations/{id}", h.update),
		on(http.MethodDelete, "/api/business-admin/specializations/{id}", h.delete),
	)
}

func (h specializationHandlers) list(req Request) (Response, error) {
	domainID := strings.TrimSpace(req.Query.Get("domainId"))
	if domainID == "" {
		return Response{}, store.ValidationError{Field: "domainId", Message: "domainId is required"}
	}
	p, l, err := page(req.Query, 10)
	if err != nil {
		return Response{}, err
	}
	items := h.store.List(domainID, req.Query.Get("search"))
	return ok(specializationList{Specializations: items, Total: len(items), Page: p, Limit: l})
}

func (h specializationHandlers) create(req Request) (Response, error) {
	var body createSpecializationRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	sp, err := h.store.Create(body.Name, body.DomainID)
	if err != nil {
		return Response{}, err
	}
	return created(sp)
}

func (h specializationHandlers) update(req Request) (Response, error) {
	var body renameRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	sp, err := h.store.Update(req.Param("id"), body.Name)
	if err != nil {
		return Response{}, err
	}
	return ok(sp)
}

func (h specializationHandlers) delete(req Request) (Response, error) {
	if err := h.store.Delete(req.Param("id")); err != nil {
		return Response{}, err
	}
	return message("Specialization deleted successfully.")
}
