package handlers

import (
	"net/http"
	"strings"

	"github.com/readee/gateway/internal/mock/store"
	"github.com/readee/gateway/internal/models"
)

type profileBody struct {
	Data models.Profile `json:"data"`
}

type changeEmailRequest struct {
	NewEmail string `json:"newEmail" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

type profileHandlers struct {
	store *store.ProfileStore
}

func Profile(s *store.ProfileStore) *Domain {
	h := profileHandlers{store: s}
	return newDomain("profile",
		on(http.MethodGet, "/api/profile/get", h.get),
		on(http.MethodPut, "/api/profile/update", h.update),
		on(http.MethodPost, "/api/profile/change-email", h.changeEmail),
		on(http.MethodPost, "/api/profile/change-password", h.changePassword),
		on(http.MethodPost, "/api/profile/delete-account", h.deleteAccount),
	)
}

// get builds the view for ?role, defaulting to the reader view whatever role
// the last update switched to.
func (h profileHandlers) get(req Request) (Response, error) {
	role := strings.TrimSpace(req.Query.Get("role"))
	if role == "" {
		role = string(models.RoleReader)
	}
	return ok(profileBody{Data: h.store.Get(role)})
}

func (h profileHandlers) update(req Request) (Response, error) {
	var patch models.ProfilePatch
	if err := bind(req.Body, &patch); err != nil {
		return Response{}, err
	}
	if patch.Role != nil {
		switch *patch.Role {
		case models.RoleReader, models.RoleReviewer, models.RoleOrganization, models.RoleBusinessAdmin, models.RoleSystemAdmin:
		default:
			return Response{}, store.InvalidField("role")
		}
	}
	return ok(profileBody{Data: h.store.Update(patch)})
}

func (h profileHandlers) changeEmail(req Request) (Response, error) {
	var body changeEmailRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	h.store.Update(models.ProfilePatch{Email: &body.NewEmail})
	return message("Email changed successfully. (mock)")
}

func (h profileHandlers) changePassword(req Request) (Response, error) {
	var body changePasswordRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	return message("Password changed successfully. (mock)")
}

func (h profileHandlers) deleteAccount(req Request) (Response, error) {
	var body struct{}
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	h.store.Clear()
	return message("Account deleted successfully. (mock)")
}
