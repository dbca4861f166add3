package handlers

import (
	"net/http"

	"github.com/readee/gateway/internal/mock/store"
	"github.com/readee/gateway/internal/models"
)

type libraryList struct {
	Documents []models.LibraryDocument `json:"documents"`
	Total     int                      `json:"total"`
}

type libraryUpdateRequest struct {
	Title          string            `json:"title" validate:"required"`
	Description    string            `json:"description"`
	Visibility     models.Visibility `json:"visibility" validate:"required,oneof=PUBLIC PRIVATE INTERNAL"`
	TypeID         string            `json:"typeId" validate:"required"`
	DomainID       string            `json:"domainId" validate:"required"`
	TagIDs         []string          `json:"tagIds"`
	NewTags        []string          `json:"newTags"`
	OrganizationID string            `json:"organizationId"`
}

type libraryHandlers struct {
	store *store.LibraryStore
}

// Library serves the reader's document library.
func Library(s *store.LibraryStore) *Domain {
	h := libraryHandlers{store: s}
	return newDomain("library",
		on(http.MethodGet, "/api/reader/library", h.list),
		on(http.MethodPut, "/api/reader/library/{id}", h.update),
		on(http.MethodDelete, "/api/reader/library/{id}", h.delete),
	)
}

func (h libraryHandlers) list(req Request) (Response, error) {
	p, l, err := page(req.Query, 12)
	if err != nil {
		return Response{}, err
	}
	dates, err := dateRange(req.Query)
	if err != nil {
		return Response{}, err
	}
	source := models.LibrarySource(req.Query.Get("source"))
	switch source {
	case "", models.SourceUploaded, models.SourcePurchased:
	default:
		return Response{}, store.InvalidField("source")
	}
	docs, total := h.store.List(store.LibraryFilter{
		Search: req.Query.Get("search"),
		Source: source,
		Type:   req.Query.Get("type"),
		Domain: req.Query.Get("domain"),
		Dates:  dates,
		Page:   p,
		Limit:  l,
	})
	return ok(libraryList{Documents: docs, Total: total})
}

func (h libraryHandlers) update(req Request) (Response, error) {
	var body libraryUpdateRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	if err := h.store.Update(req.Param("id"), store.LibraryUpdate(body)); err != nil {
		return Response{}, err
	}
	return message("Document updated successfully")
}

func (h libraryHandlers) delete(req Request) (Response, error) {
	if err := h.store.Delete(req.Param("id")); err != nil {
		return Response{}, err
	}
	return message("Document deleted successfully")
}
