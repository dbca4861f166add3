package store

import (
	"strings"
	"sync"

	"github.com/readee/gateway/internal/models"
)

const defaultHistoryLimit = 10

type HistoryFilter struct {
	Search string
	Type   string
	Domain string
	Status models.HistoryStatus
	Dates  DateRange
	Page   int
	Limit  int
}

type HistoryPage struct {
	Documents  []models.UploadHistoryEntry
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// Upload describes a file accepted by the upload form.
type Upload struct {
	FileName         string
	Size             int64
	TypeID           string
	DomainID         string
	SpecializationID string
}

// UploadStore serves the reader upload form: reference data plus the
// reader's upload history.
type UploadStore struct {
	mu              sync.Mutex
	seed            UploadSeed
	types           []models.UploadType
	domains         []models.UploadDomain
	tags            []models.UploadTag
	specializations []models.UploadSpecialization
	history         []models.UploadHistoryEntry
	reviewRequested map[string]struct{}
	docSeq          sequence
	tagSeq          sequence
	now             Clock
}

func NewUploadStore(seed UploadSeed, now Clock) *UploadStore {
	s := &UploadStore{seed: seed, now: now}
	s.Reset()
	return s
}

func (s *UploadStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.types = append([]models.UploadType(nil), s.seed.Types...)
	s.domains = append([]models.UploadDomain(nil), s.seed.Domains...)
	s.tags = append([]models.UploadTag(nil), s.seed.Tags...)
	s.specializations = append([]models.UploadSpecialization(nil), s.seed.Specializations...)
	s.history = make([]models.UploadHistoryEntry, len(s.seed.History))
	for i, h := range s.seed.History {
		s.history[i] = h.UploadHistoryEntry
		s.history[i].UploadDate = now.Add(-h.Age)
	}
	s.reviewRequested = make(map[string]struct{})
	s.docSeq = newSequence("doc-", idsOf(s.seed.History, func(h HistorySeed) string { return h.ID }))
	s.tagSeq = newSequence("tag-", idsOf(s.seed.Tags, func(t models.UploadTag) string { return t.ID }))
}

func (s *UploadStore) Types() []models.UploadType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.UploadType{}, s.types...)
}

func (s *UploadStore) Domains() []models.UploadDomain {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.UploadDomain{}, s.domains...)
}

func (s *UploadStore) Tags(search string) []models.UploadTag {
	s.mu.Lock()
	defer s.mu.Unlock()
	search = strings.TrimSpace(search)
	out := make([]models.UploadTag, 0, len(s.tags))
	for _, t := range s.tags {
		if search == "" || containsFold(t.Name, search) {
			out = append(out, t)
		}
	}
	return out
}

// Specializations returns the specializations of any of domainIDs. No ids
// means none.
func (s *UploadStore) Specializations(domainIDs []string) []models.UploadSpecialization {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[string]struct{}, len(domainIDs))
	for _, id := range domainIDs {
		want[id] = struct{}{}
	}
	out := make([]models.UploadSpecialization, 0)
	for _, sp := range s.specializations {
		if _, ok := want[sp.DomainID]; ok {
			out = append(out, sp)
		}
	}
	return out
}

// LookupType resolves a type id to its name.
func (s *UploadStore) LookupType(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.types {
		if t.ID == id {
			return t.Name, true
		}
	}
	return "", false
}

func (s *UploadStore) LookupDomain(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.domains {
		if d.ID == id {
			return d.Name, true
		}
	}
	return "", false
}

// UnknownTags returns the ids in tagIDs that name no tag.
func (s *UploadStore) UnknownTags(tagIDs []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var unknown []string
	for _, id := range tagIDs {
		found := false
		for _, t := range s.tags {
			if t.ID == id {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, id)
		}
	}
	return unknown
}

// EnsureTag returns the id of the tag named name, creating it if needed.
func (s *UploadStore) EnsureTag(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	for _, t := range s.tags {
		if sameName(t.Name, name) {
			return t.ID
		}
	}
	t := models.UploadTag{ID: s.tagSeq.next(), Name: name}
	s.tags = append(s.tags, t)
	return t.ID
}

// History filters the upload history and returns the requested page.
func (s *UploadStore) History(f HistoryFilter) HistoryPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultHistoryLimit
	}
	search := strings.TrimSpace(f.Search)
	matched := make([]models.UploadHistoryEntry, 0, len(s.history))
	for _, h := range s.history {
		if search != "" && !containsFold(h.DocumentName, search) {
			continue
		}
		if f.Type != "" && h.Type != f.Type {
			continue
		}
		if f.Domain != "" && h.Domain != f.Domain {
			continue
		}
		if f.Status != "" && h.Status != f.Status {
			continue
		}
		if !f.Dates.Contains(h.UploadDate) {
			continue
		}
		matched = append(matched, h)
	}
	return HistoryPage{
		Documents:  paginate(matched, f.Page, f.Limit),
		Total:      len(matched),
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: pageCount(len(matched), f.Limit),
	}
}

// RecordUpload adds a PENDING history entry for u at the head of the
// history. Without a domain id the specialization's domain is used.
func (s *UploadStore) RecordUpload(u Upload) models.UploadHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := models.UploadHistoryEntry{
		ID:           s.docSeq.next(),
		DocumentName: u.FileName,
		UploadDate:   s.now(),
		FileSize:     u.Size,
		Status:       models.HistoryPending,
	}
	for _, t := range s.types {
		if t.ID == u.TypeID {
			h.Type = t.Name
		}
	}
	for _, sp := range s.specializations {
		if sp.ID == u.SpecializationID {
			h.Specialization = sp.Name
			if u.DomainID == "" {
				u.DomainID = sp.DomainID
			}
		}
	}
	for _, d := range s.domains {
		if d.ID == u.DomainID {
			h.Domain = d.Name
		}
	}
	s.history = append([]models.UploadHistoryEntry{h}, s.history...)
	return h
}

// RequestReReview sends a rejected document back to review. Each document
// can be re-reviewed once.
func (s *UploadStore) RequestReReview(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.history {
		if h.ID != id {
			continue
		}
		if h.Status != models.HistoryRejected {
			return InvalidStateError{
				Kind:    "Document",
				ID:      id,
				State:   string(h.Status),
				Message: "Only rejected documents can be requested for re-review",
			}
		}
		if _, done := s.reviewRequested[id]; done || !h.CanRequestReview {
			return InvalidStateError{
				Kind:    "Document",
				ID:      id,
				State:   string(h.Status),
				Message: "You have already submitted a request for this document.",
			}
		}
		s.reviewRequested[id] = struct{}{}
		s.history[i].Status = models.HistoryPending
		s.history[i].CanRequestReview = false
		return nil
	}
	return NotFoundError{Kind: "Document"}
}
