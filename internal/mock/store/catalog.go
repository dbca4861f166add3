package store

import (
	"strings"
	"sync"
	"time"

	"github.com/readee/gateway/internal/models"
)

// CatalogFilter narrows the domain and type lists.
type CatalogFilter struct {
	Search string
	Dates  DateRange
}

func (f CatalogFilter) match(name string, created time.Time) bool {
	search := strings.TrimSpace(f.Search)
	if search != "" && !containsFold(name, search) {
		return false
	}
	return f.Dates.Contains(created)
}

type DomainStore struct {
	mu      sync.Mutex
	seed    []models.Domain
	domains []models.Domain
	seq     sequence
	now     Clock
}

func NewDomainStore(seed []models.Domain, now Clock) *DomainStore {
	s := &DomainStore{seed: seed, now: now}
	s.Reset()
	return s
}

func (s *DomainStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domains = append([]models.Domain(nil), s.seed...)
	s.seq = newSequence("domain-", idsOf(s.seed, func(d models.Domain) string { return d.ID }))
}

func (s *DomainStore) List(f CatalogFilter) []models.Domain {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Domain, 0, len(s.domains))
	for _, d := range s.domains {
		if f.match(d.Name, d.CreatedDate) {
			out = append(out, d)
		}
	}
	return out
}

func (s *DomainStore) Get(id string) (models.Domain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.domains {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Domain{}, NotFoundError{Kind: "Domain", ID: id}
}

func (s *DomainStore) Create(name string) (models.Domain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if err := s.checkName("", name); err != nil {
		return models.Domain{}, err
	}
	d := models.Domain{ID: s.seq.next(), Name: name, CreatedDate: s.now()}
	s.domains = append([]models.Domain{d}, s.domains...)
	return d, nil
}

func (s *DomainStore) Update(id string, name *string) (models.Domain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.domains {
		if d.ID != id {
			continue
		}
		if name != nil {
			n := strings.TrimSpace(*name)
			if err := s.checkName(id, n); err != nil {
				return models.Domain{}, err
			}
			s.domains[i].Name = n
		}
		return s.domains[i], nil
	}
	return models.Domain{}, NotFoundError{Kind: "Domain", ID: id}
}

func (s *DomainStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.domains {
		if d.ID == id {
			s.domains = append(s.domains[:i:i], s.domains[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "Domain", ID: id}
}

func (s *DomainStore) checkName(selfID, name string) error {
	if name == "" {
		return ValidationError{Field: "name", Message: "Domain name cannot be empty."}
	}
	for _, d := range s.domains {
		if d.ID != selfID && sameName(d.Name, name) {
			return ValidationError{Field: "name", Message: "Domain name already in use. Please choose another name."}
		}
	}
	return nil
}

// TypeStore holds document types. Types are never deleted.
type TypeStore struct {
	mu    sync.Mutex
	seed  []models.DocumentType
	types []models.DocumentType
	seq   sequence
	now   Clock
}

func NewTypeStore(seed []models.DocumentType, now Clock) *TypeStore {
	s := &TypeStore{seed: seed, now: now}
	s.Reset()
	return s
}

func (s *TypeStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types = append([]models.DocumentType(nil), s.seed...)
	s.seq = newSequence("type-", idsOf(s.seed, func(t models.DocumentType) string { return t.ID }))
}

func (s *TypeStore) List(f CatalogFilter) []models.DocumentType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DocumentType, 0, len(s.types))
	for _, t := range s.types {
		if f.match(t.Name, t.CreatedAt) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TypeStore) Get(id string) (models.DocumentType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.types {
		if t.ID == id {
			return t, nil
		}
	}
	return models.DocumentType{}, NotFoundError{Kind: "Type", ID: id}
}

func (s *TypeStore) Create(name string) (models.DocumentType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if err := s.checkName("", name); err != nil {
		return models.DocumentType{}, err
	}
	now := s.now()
	t := models.DocumentType{ID: s.seq.next(), Name: name, CreatedAt: now, UpdatedAt: now}
	s.types = append([]models.DocumentType{t}, s.types...)
	return t, nil
}

// Update renames a type and bumps UpdatedAt.
func (s *TypeStore) Update(id string, name *string) (models.DocumentType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.types {
		if t.ID != id {
			continue
		}
		if name != nil {
			n := strings.TrimSpace(*name)
			if err := s.checkName(id, n); err != nil {
				return models.DocumentType{}, err
			}
			s.types[i].Name = n
		}
		s.types[i].UpdatedAt = s.now()
		return s.types[i], nil
	}
	return models.DocumentType{}, NotFoundError{Kind: "Type", ID: id}
}

func (s *TypeStore) checkName(selfID, name string) error {
	if name == "" {
		return ValidationError{Field: "name", Message: "Type name cannot be empty."}
	}
	for _, t := range s.types {
		if t.ID != selfID && sameName(t.Name, name) {
			return ValidationError{Field: "name", Message: "Type name already in use. Please choose another name."}
		}
	}
	return nil
}
