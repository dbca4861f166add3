package store

import (
	"strings"
	"sync"

	"github.com/readee/gateway/internal/models"
)

type TagFilter struct {
	// Search matches tag name or id, case-insensitively.
	Search string
	Status models.TagStatus
	Dates  DateRange
}

// TagStore backs the business-admin tag screens. New tags wait for approval.
type TagStore struct {
	mu   sync.Mutex
	seed []models.Tag
	tags []models.Tag
	seq  sequence
	now  Clock
}

func NewTagStore(seed []models.Tag, now Clock) *TagStore {
	s := &TagStore{seed: seed, now: now}
	s.Reset()
	return s
}

func (s *TagStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = append([]models.Tag(nil), s.seed...)
	s.seq = newSequence("tag-", idsOf(s.seed, func(t models.Tag) string { return t.ID }))
}

func (s *TagStore) List(f TagFilter) []models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	search := strings.TrimSpace(f.Search)
	out := make([]models.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		if search != "" && !containsFold(t.Name, search) && !containsFold(t.ID, search) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if !f.Dates.Contains(t.CreatedDate) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *TagStore) Get(id string) (models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Tag{}, NotFoundError{Kind: "Tag", ID: id}
	}
	return s.tags[i], nil
}

// Create adds a PENDING tag at the head of the list.
func (s *TagStore) Create(name string) (models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if err := s.checkName("", name); err != nil {
		return models.Tag{}, err
	}
	t := models.Tag{
		ID:          s.seq.next(),
		Name:        name,
		Status:      models.TagPending,
		CreatedDate: s.now(),
	}
	s.tags = append([]models.Tag{t}, s.tags...)
	return t, nil
}

// Update renames and/or restatuses a tag. Nil arguments are left alone.
func (s *TagStore) Update(id string, name *string, status *models.TagStatus) (models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Tag{}, NotFoundError{Kind: "Tag", ID: id}
	}
	t := s.tags[i]
	if name != nil {
		n := strings.TrimSpace(*name)
		if err := s.checkName(id, n); err != nil {
			return models.Tag{}, err
		}
		t.Name = n
	}
	if status != nil {
		switch *status {
		case models.TagPending, models.TagActive, models.TagInactive:
			t.Status = *status
		default:
			return models.Tag{}, InvalidField("status")
		}
	}
	s.tags[i] = t
	return t, nil
}

func (s *TagStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return NotFoundError{Kind: "Tag", ID: id}
	}
	s.tags = append(s.tags[:i:i], s.tags[i+1:]...)
	return nil
}

// Approve moves a PENDING tag to ACTIVE. Any other state is rejected and the
// tag is left as it was.
func (s *TagStore) Approve(id string) (models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return models.Tag{}, NotFoundError{Kind: "Tag", ID: id}
	}
	if s.tags[i].Status != models.TagPending {
		return models.Tag{}, InvalidStateError{
			Kind:    "Tag",
			ID:      id,
			State:   string(s.tags[i].Status),
			Message: "Only pending tags can be approved",
		}
	}
	s.tags[i].Status = models.TagActive
	return s.tags[i], nil
}

func (s *TagStore) index(id string) int {
	for i, t := range s.tags {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TagStore) checkName(selfID, name string) error {
	if name == "" {
		return ValidationError{Field: "name", Message: "Tag name cannot be empty."}
	}
	for _, t := range s.tags {
		if t.ID != selfID && sameName(t.Name, name) {
			return ValidationError{Field: "name", Message: "This tag name already exists. Please choose another name."}
		}
	}
	return nil
}
