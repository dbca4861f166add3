package store

import (
	"sync"

	"github.com/readee/gateway/internal/models"
)

type NotificationStore struct {
	mu    sync.Mutex
	seed  []NotificationSeed
	items []models.Notification
	now   Clock
}

func NewNotificationStore(seed []NotificationSeed, now Clock) *NotificationStore {
	s := &NotificationStore{seed: seed, now: now}
	s.Reset()
	return s
}

// Reset restores the seed, dating each notification relative to now.
func (s *NotificationStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.items = make([]models.Notification, len(s.seed))
	for i, n := range s.seed {
		s.items[i] = n.Notification
		s.items[i].Timestamp = now.Add(-n.Age)
	}
}

// List returns notifications newest inserted first along with the unread
// count.
func (s *NotificationStore) List() ([]models.Notification, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	return out, s.unread()
}

// MarkAsRead flips a notification to read. Marking a read notification again
// is an invalid state.
func (s *NotificationStore) MarkAsRead(id string) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if s.items[i].IsRead {
			return models.Notification{}, InvalidStateError{
				Kind:    "Notification",
				ID:      id,
				State:   "read",
				Message: "Notification is already marked as read",
			}
		}
		s.items[i].IsRead = true
		return s.items[i], nil
	}
	return models.Notification{}, NotFoundError{Kind: "Notification", ID: id}
}

func (s *NotificationStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread()
}

func (s *NotificationStore) unread() int {
	n := 0
	for _, it := range s.items {
		if !it.IsRead {
			n++
		}
	}
	return n
}
