package handlers

import (
	"net/http"

	"github.com/readee/gateway/internal/mock/store"
	"github.com/readee/gateway/internal/models"
)

type notificationList struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int                   `json:"total"`
	UnreadCount   int                   `json:"unreadCount"`
}

// markReadBody lets the bell update its badge without refetching the list.
type markReadBody struct {
	Success     bool `json:"success"`
	UnreadCount int  `json:"unreadCount"`
}

type notificationHandlers struct {
	store *store.NotificationStore
}

// Notifications serves the notification bell. The event stream at
// /api/notifications/events is left to the real backend.
func Notifications(s *store.NotificationStore) *Domain {
	h := notificationHandlers{store: s}
	return newDomain("notifications",
		on(http.MethodGet, "/api/notifications", h.list),
		on(http.MethodPost, "/api/notifications/{id}/read", h.markRead),
	)
}

func (h notificationHandlers) list(Request) (Response, error) {
	items, unread := h.store.List()
	return ok(notificationList{Notifications: items, Total: len(items), UnreadCount: unread})
}

func (h notificationHandlers) markRead(req Request) (Response, error) {
	if _, err := h.store.MarkAsRead(req.Param("id")); err != nil {
		return Response{}, err
	}
	return ok(markReadBody{Success: true, UnreadCount: h.store.UnreadCount()})
}
