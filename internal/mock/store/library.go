package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/readee/gateway/internal/models"
)

const defaultLibraryLimit = 12

type LibraryFilter struct {
	// Search matches name or description.
	Search string
	Source models.LibrarySource
	Type   string
	Domain string
	Dates  DateRange
	Page   int
	Limit  int
}

// LibraryUpdate replaces the editable metadata of a library document.
type LibraryUpdate struct {
	Title          string
	Description    string
	Visibility     models.Visibility
	TypeID         string
	DomainID       string
	TagIDs         []string
	NewTags        []string
	OrganizationID string
}

// LibraryStore holds the reader's library. Reference data (types, domains,
// tags) comes from the upload store and organizations from the membership
// store.
type LibraryStore struct {
	mu      sync.Mutex
	seed    []models.LibraryDocument
	docs    []models.LibraryDocument
	uploads *UploadStore
	orgs    *OrganizationStore
}

func NewLibraryStore(seed []models.LibraryDocument, uploads *UploadStore, orgs *OrganizationStore) *LibraryStore {
	s := &LibraryStore{seed: seed, uploads: uploads, orgs: orgs}
	s.Reset()
	return s
}

func (s *LibraryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make([]models.LibraryDocument, len(s.seed))
	for i, d := range s.seed {
		s.docs[i] = copyDoc(d)
	}
}

// List returns one page of matching documents and the total match count.
func (s *LibraryStore) List(f LibraryFilter) ([]models.LibraryDocument, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultLibraryLimit
	}
	search := strings.TrimSpace(f.Search)
	matched := make([]models.LibraryDocument, 0, len(s.docs))
	for _, d := range s.docs {
		if search != "" && !containsFold(d.DocumentName, search) && !containsFold(d.Description, search) {
			continue
		}
		if f.Source != "" && d.Source != f.Source {
			continue
		}
		if f.Type != "" && d.Type != f.Type {
			continue
		}
		if f.Domain != "" && d.Domain != f.Domain {
			continue
		}
		if !f.Dates.Contains(d.UploadDate) {
			continue
		}
		matched = append(matched, copyDoc(d))
	}
	return paginate(matched, f.Page, f.Limit), len(matched)
}

// Update validates u in full before touching the document, so a rejected
// update leaves it unchanged.
func (s *LibraryStore) Update(id string, u LibraryUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.editable(id, "Cannot update purchased documents")
	if err != nil {
		return err
	}
	typeName, okType := s.uploads.LookupType(u.TypeID)
	domainName, okDomain := s.uploads.LookupDomain(u.DomainID)
	if !okType || !okDomain {
		return ValidationError{Field: "typeId", Message: "Invalid type or domain"}
	}
	if unknown := s.uploads.UnknownTags(u.TagIDs); len(unknown) > 0 {
		return ValidationError{Field: "tagIds", Message: fmt.Sprintf("Invalid tag IDs: %s", strings.Join(unknown, ", "))}
	}
	switch u.Visibility {
	case models.VisibilityPublic, models.VisibilityPrivate:
	case models.VisibilityInternal:
		if u.OrganizationID == "" {
			return ValidationError{Field: "organizationId", Message: "Organization ID is required when visibility is INTERNAL"}
		}
		if _, err := s.orgs.Get(u.OrganizationID); err != nil {
			return ValidationError{Field: "organizationId", Message: "Invalid organization ID"}
		}
	default:
		return InvalidField("visibility")
	}

	tagIDs := make([]string, 0, len(u.TagIDs)+len(u.NewTags))
	seen := make(map[string]struct{})
	add := func(id string) {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			tagIDs = append(tagIDs, id)
		}
	}
	for _, id := range u.TagIDs {
		add(id)
	}
	for _, name := range u.NewTags {
		if strings.TrimSpace(name) != "" {
			add(s.uploads.EnsureTag(name))
		}
	}

	d := &s.docs[i]
	d.DocumentName = u.Title
	d.Description = u.Description
	d.Visibility = u.Visibility
	d.Type = typeName
	d.Domain = domainName
	d.TagIDs = tagIDs
	switch u.Visibility {
	case models.VisibilityInternal:
		d.OrganizationID = u.OrganizationID
	case models.VisibilityPublic:
		d.OrganizationID = ""
	}
	return nil
}

func (s *LibraryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.editable(id, "Cannot delete purchased documents")
	if err != nil {
		return err
	}
	s.docs = append(s.docs[:i:i], s.docs[i+1:]...)
	return nil
}

func (s *LibraryStore) editable(id, purchasedMsg string) (int, error) {
	for i, d := range s.docs {
		if d.ID != id {
			continue
		}
		if d.Source != models.SourceUploaded {
			return -1, InvalidStateError{Kind: "Document", ID: id, State: string(d.Source), Message: purchasedMsg}
		}
		return i, nil
	}
	return -1, NotFoundError{Kind: "Document"}
}

func copyDoc(d models.LibraryDocument) models.LibraryDocument {
	if d.TagIDs != nil {
		d.TagIDs = append([]string(nil), d.TagIDs...)
	}
	return d
}
