package store

import (
	"strings"
	"sync"

	"github.com/readee/gateway/internal/models"
)

// SpecializationStore holds specializations. Names are unique within a
// domain, not globally.
type SpecializationStore struct {
	mu    sync.Mutex
	seed  []models.Specialization
	items []models.Specialization
	seq   sequence
	now   Clock
}

func NewSpecializationStore(seed []models.Specialization, now Clock) *SpecializationStore {
	s := &SpecializationStore{seed: seed, now: now}
	s.Reset()
	return s
}

func (s *SpecializationStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.Specialization(nil), s.seed...)
	s.seq = newSequence("spec-", idsOf(s.seed, func(sp models.Specialization) string { return sp.ID }))
}

// List returns the specializations of domainID whose name contains search.
func (s *SpecializationStore) List(domainID, search string) []models.Specialization {
	s.mu.Lock()
	defer s.mu.Unlock()
	search = strings.TrimSpace(search)
	out := make([]models.Specialization, 0)
	for _, sp := range s.items {
		if sp.DomainID != domainID {
			continue
		}
		if search != "" && !containsFold(sp.Name, search) {
			continue
		}
		out = append(out, sp)
	}
	return out
}

func (s *SpecializationStore) Get(id string) (models.Specialization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.items[i], nil
	}
	return models.Specialization{}, NotFoundError{Kind: "Specialization", ID: id}
}

func (s *SpecializationStore) Create(name, domainID string) (models.Specialization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if domainID == "" {
		return models.Specialization{}, MissingField("domainId")
	}
	if err := s.checkName("", domainID, name); err != nil {
		return models.Specialization{}, err
	}
	now := s.now()
	sp := models.Specialization{ID: s.seq.next(), Name: name, DomainID: domainID, CreatedAt: now, UpdatedAt: now}
	s.items = append(s.items, sp)
	return sp, nil
}

func (s *SpecializationStore) Update(id string, name *string) (models.Specialization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Specialization{}, NotFoundError{Kind: "Specialization", ID: id}
	}
	if name != nil {
		n := strings.TrimSpace(*name)
		if err := s.checkName(id, s.items[i].DomainID, n); err != nil {
			return models.Specialization{}, err
		}
		s.items[i].Name = n
	}
	s.items[i].UpdatedAt = s.now()
	return s.items[i], nil
}

func (s *SpecializationStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return NotFoundError{Kind: "Specialization", ID: id}
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return nil
}

func (s *SpecializationStore) index(id string) int {
	for i, sp := range s.items {
		if sp.ID == id {
			return i
		}
	}
	return -1
}

func (s *SpecializationStore) checkName(selfID, domainID, name string) error {
	if name == "" {
		return ValidationError{Field: "name", Message: "Specialization name cannot be empty."}
	}
	for _, sp := range s.items {
		if sp.ID != selfID && sp.DomainID == domainID && sameName(sp.Name, name) {
			return ValidationError{Field: "name", Message: "Specialization already exists in this domain."}
		}
	}
	return nil
}
