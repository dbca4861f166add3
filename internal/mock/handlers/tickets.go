package handlers

import (
	"net/http"
	"strings"

	"github.com/readee/gateway/internal/mock/store"
	"github.com/readee/gateway/internal/models"
)

type contactAdminRequest struct {
	Name          string                `json:"name" validate:"required"`
	Email         string                `json:"email" validate:"required,email"`
	Category      models.TicketCategory `json:"category" validate:"required,oneof=PAYMENT ACCESS CONTENT TECHNICAL ACCOUNT OTHER"`
	OtherCategory string                `json:"otherCategory"`
	Urgency       models.Urgency        `json:"urgency" validate:"required,oneof=LOW NORMAL HIGH"`
	Subject       string                `json:"subject" validate:"required"`
	Message       string                `json:"message" validate:"required"`
}

type ticketList struct {
	Tickets []models.Ticket `json:"tickets"`
	Total   int             `json:"total"`
}

type ticketHandlers struct {
	store *store.TicketStore
}

// Tickets serves the contact-admin form.
func Tickets(s *store.TicketStore) *Domain {
	h := ticketHandlers{store: s}
	return newDomain("tickets",
		on(http.MethodGet, "/api/contact-admin", h.list),
		on(http.MethodPost, "/api/contact-admin", h.create),
		on(http.MethodGet, "/api/contact-admin/{id}", h.get),
	)
}

func (h ticketHandlers) list(Request) (Response, error) {
	tickets := h.store.List()
	return ok(ticketList{Tickets: tickets, Total: len(tickets)})
}

func (h ticketHandlers) create(req Request) (Response, error) {
	var body contactAdminRequest
	if err := bind(req.Body, &body); err != nil {
		return Response{}, err
	}
	if body.Category == models.CategoryOther && strings.TrimSpace(body.OtherCategory) == "" {
		return Response{}, store.MissingField("otherCategory")
	}
	t := h.store.Insert(models.ContactAdminPayload{
		Name:          strings.TrimSpace(body.Name),
		Email:         strings.TrimSpace(body.Email),
		Category:      body.Category,
		OtherCategory: strings.TrimSpace(body.OtherCategory),
		Urgency:       body.Urgency,
		Subject:       body.Subject,
		Message:       body.Message,
	})
	return created(t)
}

func (h ticketHandlers) get(req Request) (Response, error) {
	t, err := h.store.Get(req.Param("id"))
	if err != nil {
		return Response{}, err
	}
	return ok(t)
}
