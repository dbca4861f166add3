package store

import (
	"strings"
	"sync"
	"time"

	"github.com/readee/gateway/internal/models"
)

// PolicyStore keeps one policy per type and records which users accepted
// which policy.
type PolicyStore struct {
	mu          sync.Mutex
	seed        []models.Policy
	policies    []models.Policy
	acceptances map[string]time.Time
	now         Clock
}

func NewPolicyStore(seed []models.Policy, now Clock) *PolicyStore {
	s := &PolicyStore{seed: seed, now: now}
	s.Reset()
	return s
}

// Reset restores the seed, stamps every policy with the current time and
// forgets all acceptances.
func (s *PolicyStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.policies = make([]models.Policy, len(s.seed))
	for i, p := range s.seed {
		p.UpdatedAt = now
		s.policies[i] = p
	}
	s.acceptances = make(map[string]time.Time)
}

func (s *PolicyStore) List() []models.Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Policy(nil), s.policies...)
}

func (s *PolicyStore) Get(id string) (models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(id)
	if i < 0 {
		return models.Policy{}, NotFoundError{Kind: "Policy"}
	}
	return s.policies[i], nil
}

// ByType returns the policy of type t. With activeOnly an inactive policy is
// reported as not found.
func (s *PolicyStore) ByType(t models.PolicyType, activeOnly bool) (models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByType(t)
	if i < 0 || (activeOnly && s.policies[i].Status != models.PolicyActive) {
		return models.Policy{}, NotFoundError{Kind: "Policy"}
	}
	return s.policies[i], nil
}

// UpdateByType applies patch to the policy of type t and bumps UpdatedAt.
func (s *PolicyStore) UpdateByType(t models.PolicyType, patch models.PolicyPatch) (models.Policy, error) {
	switch patch.Status {
	case "", models.PolicyActive, models.PolicyInactive:
	default:
		return models.Policy{}, InvalidField("status")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByType(t)
	if i < 0 {
		return models.Policy{}, NotFoundError{Kind: "Policy"}
	}
	p := &s.policies[i]
	if title := strings.TrimSpace(patch.Title); title != "" {
		p.Title = title
	}
	if patch.Content != "" {
		p.Content = patch.Content
	}
	if patch.Status != "" {
		p.Status = patch.Status
	}
	if patch.IsRequired != nil {
		p.IsRequired = *patch.IsRequired
	}
	p.UpdatedAt = s.now()
	return *p, nil
}

// View reports the policy together with whether userID accepted it. An empty
// userID never has an acceptance.
func (s *PolicyStore) View(id, userID string) (models.PolicyView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(id)
	if i < 0 {
		return models.PolicyView{}, NotFoundError{Kind: "Policy"}
	}
	v := models.PolicyView{Policy: s.policies[i]}
	if userID == "" {
		return v, nil
	}
	if at, ok := s.acceptances[acceptanceKey(userID, id)]; ok {
		v.HasAccepted = true
		v.AcceptanceDate = &at
	}
	return v, nil
}

// Accept records that userID accepted policy id. Accepting again refreshes
// the acceptance date.
func (s *PolicyStore) Accept(id, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return MissingField("userId")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexByID(id) < 0 {
		return NotFoundError{Kind: "Policy"}
	}
	s.acceptances[acceptanceKey(userID, id)] = s.now()
	return nil
}

func (s *PolicyStore) indexByID(id string) int {
	for i, p := range s.policies {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *PolicyStore) indexByType(t models.PolicyType) int {
	for i, p := range s.policies {
		if p.Type == t {
			return i
		}
	}
	return -1
}

func acceptanceKey(userID, policyID string) string {
	return userID + ":" + policyID
}
