package store

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/readee/gateway/internal/models"
)

const (
	ticketCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ticketCodeSuffix   = 5
)

// TicketStore keeps contact-admin tickets. It starts empty.
type TicketStore struct {
	mu      sync.Mutex
	tickets []models.Ticket
	// codes outlives Clear so a code is never issued twice.
	codes map[string]struct{}
	now   Clock
	intn  func(n int) int
	newID func() string
}

func NewTicketStore(now Clock) *TicketStore {
	return &TicketStore{
		codes: make(map[string]struct{}),
		now:   now,
		intn:  rand.Intn,
		newID: uuid.NewString,
	}
}

// Insert opens a ticket for payload with a fresh id and code.
func (s *TicketStore) Insert(payload models.ContactAdminPayload) models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	code := s.code(now.Format("20060102"))
	t := models.Ticket{
		TicketID:   s.newID(),
		TicketCode: code,
		Status:     models.TicketOpen,
		CreatedAt:  now,
		CreatedBy:  models.TicketAuthor{Name: payload.Name, Email: payload.Email},
		Payload:    payload,
	}
	s.tickets = append(s.tickets, t)
	return t
}

func (s *TicketStore) code(date string) string {
	for {
		var b strings.Builder
		b.WriteString("TCK-")
		b.WriteString(date)
		b.WriteByte('-')
		for i := 0; i < ticketCodeSuffix; i++ {
			b.WriteByte(ticketCodeAlphabet[s.intn(len(ticketCodeAlphabet))])
		}
		code := b.String()
		if _, taken := s.codes[code]; !taken {
			s.codes[code] = struct{}{}
			return code
		}
	}
}

// List returns tickets newest first.
func (s *TicketStore) List() []models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Ticket, 0, len(s.tickets))
	for i := len(s.tickets) - 1; i >= 0; i-- {
		out = append(out, s.tickets[i])
	}
	return out
}

// Get finds a ticket by id or by code.
func (s *TicketStore) Get(ref string) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickets {
		if t.TicketID == ref || t.TicketCode == ref {
			return t, nil
		}
	}
	return models.Ticket{}, NotFoundError{Kind: "Ticket", ID: ref}
}

func (s *TicketStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = nil
}
