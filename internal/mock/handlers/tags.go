package handlers

import (
	"net/http"

	"github.com/readee/gateway/internal/mock/store"
	"github.com/readee/gateway/internal/models"
)

type tagList struct {
	Tags  []models.Tag `json:"tags"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type createTagRequest struct {
	Name string `json:"name"`
}

type updateTagRequest struct {
	Name   *string           `json:"name"`
	Status *models.TagStatus `json:"status" validate:"omitempty,oneof=PENDING ACTIVE INACTIVE"`
}

type tagHandlers struct {
	store *store.TagStore
}

// Tags serves business-admin tag management and approval.
func Tags(s *store.TagStore) *Domain {
	h := tagHandlers{store: s}
	return newDomain("tags",
		on(http.MethodGet, "/api/business-admin/tags", h.list),
		on(http.MethodPost, "/api/business-admin/tags", h.create),
		on(http.MethodPut, "/api/business-admin/tags/{id}", h.update),
		on(http.MethodDelete, "/api/business-admin/tags/{id}", h.delete),
		on(http.MethodPost, "/api/business-admin/tags/{id}/approve", h.approve),
	)
}

// list filters but does not slice; page and limit are echoed for the client.
func (h tagHandlers) list(req Request) (Response, error) {
	p, l, err := page(req.Query, 10)
	if err != nil {
		return Response{}, err
	}
	dates, err := dateRange(req.Query)
	if err != nil {
		return Response{}, err
	}
	status := models.TagStatus(req.Query.Get("status"))
	switch status {
	case "", models.TagPending, models.TagActive, models.TagInactive:
	default:
		return Response{}, store.InvalidField("status")
	}
	tags := h.store.List(store.TagFilter{Search: req.Query.Get("search"), Status: status, Dates: dates})
	return ok(tagList{Tags: tags, Total: len(tags), Page: p, Limit: l})
}

func (h tagHandlers) create(req Request) (Response, error) {
	var body createTagRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	t, err := h.store.Create(body.Name)
	if err != nil {
		return Response{}, err
	}
	return created(t)
}

func (h tagHandlers) update(req Request) (Response, error) {
	var body updateTagRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	t, err := h.store.Update(req.Param("id"), body.Name, body.Status)
	if err != nil {
		return Response{}, err
	}
	return ok(t)
}

func (h tagHandlers) delete(req Request) (Response, error) {
	if err := h.store.Delete(req.Param("id")); err != nil {
		return Response{}, err
	}
	return message("Tag deleted successfully.")
}

func (h tagHandlers) approve(req Request) (Response, error) {
	t, err := h.store.Approve(req.Param("id"))
	if err != nil {
		return Response{}, err
	}
	return ok(t)
}
