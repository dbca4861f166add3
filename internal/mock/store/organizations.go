package store

import (
	"sync"

	"github.com/readee/gateway/internal/models"
)

// OrganizationAdminStore holds the organization managed by the signed-in
// organization admin.
type OrganizationAdminStore struct {
	mu   sync.Mutex
	seed models.OrganizationInfo
	info models.OrganizationInfo
}

func NewOrganizationAdminStore(seed models.OrganizationInfo) *OrganizationAdminStore {
	return &OrganizationAdminStore{seed: seed, info: seed}
}

func (s *OrganizationAdminStore) Get() models.OrganizationInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

func (s *OrganizationAdminStore) Update(patch models.OrganizationPatch) models.OrganizationInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = s.info.Apply(patch)
	return s.info
}

// Delete soft-deletes the organization; it stays readable with Deleted set.
func (s *OrganizationAdminStore) Delete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info.Deleted = true
}

func (s *OrganizationAdminStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = s.seed
}

// OrganizationStore lists the organizations the reader belongs to.
type OrganizationStore struct {
	mu    sync.Mutex
	seed  []models.Organization
	items []models.Organization
}

func NewOrganizationStore(seed []models.Organization) *OrganizationStore {
	s := &OrganizationStore{seed: seed}
	s.Reset()
	return s
}

func (s *OrganizationStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.Organization(nil), s.seed...)
}

func (s *OrganizationStore) List() []models.OrganizationSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.OrganizationSummary, len(s.items))
	for i, o := range s.items {
		out[i] = o.Summary()
	}
	return out
}

func (s *OrganizationStore) Get(id string) (models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.items {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Organization{}, NotFoundError{Kind: "Organization", ID: id}
}

// Leave removes the membership for id.
func (s *OrganizationStore) Leave(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.items {
		if o.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "Organization", ID: id}
}
