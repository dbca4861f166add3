package handlers

import (
	"net/http"
	"strings"

	"github.com/readee/gateway/internal/mock/store"
	"github.com/readee/gateway/internal/models"
)

type dataBody struct {
	Data any `json:"data"`
}

type updatePolicyRequest struct {
	Title      string              `json:"title"`
	Content    string              `json:"content"`
	Status     models.PolicyStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	IsRequired *bool               `json:"isRequired"`
}

type acceptPolicyRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type policyHandlers struct {
	store *store.PolicyStore
}

// Policies serves the policy admin screen and the acceptance flow readers go
// through.
func Policies(s *store.PolicyStore) *Domain {
	h := policyHandlers{store: s}
	return newDomain("policies",
		on(http.MethodGet, "/api/policies", h.list),
		on(http.MethodPatch, "/api/policies", h.update),
		on(http.MethodGet, "/api/policies/{id}", h.get),
		on(http.MethodGet, "/api/policies/{id}/view", h.view),
		on(http.MethodPost, "/api/policies/{id}/accept", h.accept),
	)
}

// list returns every policy, or the one policy of ?type. With active=true an
// inactive policy is not found.
func (h policyHandlers) list(req Request) (Response, error) {
	t := models.PolicyType(strings.TrimSpace(req.Query.Get("type")))
	if t == "" {
		return ok(dataBody{Data: h.store.List()})
	}
	p, err := h.store.ByType(t, req.Query.Get("active") == "true")
	if err != nil {
		return Response{}, err
	}
	return ok(dataBody{Data: p})
}

func (h policyHandlers) update(req Request) (Response, error) {
	var body updatePolicyRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	t := models.PolicyType(strings.TrimSpace(req.Query.Get("type")))
	if t == "" {
		return Response{}, store.ValidationError{Field: "type", Message: "Type parameter is required"}
	}
	p, err := h.store.UpdateByType(t, models.PolicyPatch{
		Title:      body.Title,
		Content:    body.Content,
		Status:     body.Status,
		IsRequired: body.IsRequired,
	})
	if err != nil {
		return Response{}, err
	}
	return ok(dataBody{Data: p})
}

func (h policyHandlers) get(req Request) (Response, error) {
	p, err := h.store.Get(req.Param("id"))
	if err != nil {
		return Response{}, err
	}
	return ok(dataBody{Data: p})
}

func (h policyHandlers) view(req Request) (Response, error) {
	v, err := h.store.View(req.Param("id"), strings.TrimSpace(req.Query.Get("userId")))
	if err != nil {
		return Response{}, err
	}
	return ok(dataBody{Data: v})
}

func (h policyHandlers) accept(req Request) (Response, error) {
	var body acceptPolicyRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	if err := h.store.Accept(req.Param("id"), body.UserID); err != nil {
		return Response{}, err
	}
	return ok(successBody{Success: true})
}
