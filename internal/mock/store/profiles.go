package store

import (
	"strings"
	"sync"

	"github.com/readee/gateway/internal/models"
)

// ProfileStore serves one mutable profile layered over per-role templates.
type ProfileStore struct {
	mu        sync.Mutex
	templates map[models.Role]models.Profile
	role      models.Role
	current   models.ProfilePatch
}

func NewProfileStore(templates []models.Profile) *ProfileStore {
	s := &ProfileStore{
		templates: make(map[models.Role]models.Profile, len(templates)),
		role:      models.RoleReader,
	}
	for _, p := range templates {
		s.templates[p.Role] = p
	}
	return s
}

// Get returns the profile for role, or for the current role when role is
// empty. Unknown roles fall back to the reader template.
func (s *ProfileStore) Get(role string) models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := models.Role(strings.ToUpper(strings.TrimSpace(role)))
	if r == "" {
		r = s.role
	}
	return s.get(r)
}

func (s *ProfileStore) get(r models.Role) models.Profile {
	tmpl, ok := s.templates[r]
	if !ok {
		tmpl = s.templates[models.RoleReader]
	}
	patch := s.current
	patch.Role = nil
	return tmpl.Apply(patch)
}

// Update merges patch into the current profile and returns the result. A role
// in the patch switches the template the profile is built from.
func (s *ProfileStore) Update(patch models.ProfilePatch) models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Role != nil {
		s.role = models.Role(strings.ToUpper(string(*patch.Role)))
	}
	s.current = s.current.Merge(patch)
	return s.get(s.role)
}

// Clear drops every update and returns to the reader template.
func (s *ProfileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = models.ProfilePatch{}
	s.role = models.RoleReader
}
