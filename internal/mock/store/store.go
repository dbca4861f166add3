// Package store holds the in-memory collections served by the mock API layer.
// Every store guards its own data with a mutex and hands out copies, so
// callers never observe or mutate shared state.
package store

import (
	"strconv"
	"strings"
	"time"
)

// Clock returns the current time. Stores take one so tests can pin it.
type Clock func() time.Time

// Set bundles one store per mock domain.
type Set struct {
	Tickets           *TicketStore
	Notifications     *NotificationStore
	Profiles          *ProfileStore
	OrganizationAdmin *OrganizationAdminStore
	Organizations     *OrganizationStore
	Tags              *TagStore
	Domains           *DomainStore
	Types             *TypeStore
	Specializations   *SpecializationStore
	Uploads           *UploadStore
	Library           *LibraryStore
	Policies          *PolicyStore
}

// New seeds every store from seed. A nil clock means time.Now.
func New(seed Seed, now Clock) *Set {
	if now == nil {
		now = time.Now
	}
	uploads := NewUploadStore(seed.Uploads, now)
	orgs := NewOrganizationStore(seed.Organizations)
	return &Set{
		Tickets:           NewTicketStore(now),
		Notifications:     NewNotificationStore(seed.Notifications, now),
		Profiles:          NewProfileStore(seed.Profiles),
		OrganizationAdmin: NewOrganizationAdminStore(seed.OrganizationAdmin),
		Organizations:     orgs,
		Tags:              NewTagStore(seed.Tags, now),
		Domains:           NewDomainStore(seed.Domains, now),
		Types:             NewTypeStore(seed.Types, now),
		Specializations:   NewSpecializationStore(seed.Specializations, now),
		Uploads:           uploads,
		Library:           NewLibraryStore(seed.Library, uploads, orgs),
		Policies:          NewPolicyStore(seed.Policies, now),
	}
}

// Default seeds a Set from the embedded fixtures.
func Default(now Clock) (*Set, error) {
	seed, err := DefaultSeed()
	if err != nil {
		return nil, err
	}
	return New(seed, now), nil
}

// Reset puts every store back to its seeded state.
func (s *Set) Reset() {
	s.Tickets.Clear()
	s.Notifications.Reset()
	s.Profiles.Clear()
	s.OrganizationAdmin.Reset()
	s.Organizations.Reset()
	s.Tags.Reset()
	s.Domains.Reset()
	s.Types.Reset()
	s.Specializations.Reset()
	s.Uploads.Reset()
	s.Library.Reset()
	s.Policies.Reset()
}

// DateRange is an inclusive range of calendar days. Zero bounds are open.
type DateRange struct {
	From time.Time
	To   time.Time
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// ParseDateRange reads the dateFrom and dateTo query values. Empty values
// leave the matching bound open.
func ParseDateRange(from, to string) (DateRange, error) {
	var r DateRange
	var err error
	if r.From, err = parseDay(from); err != nil {
		return DateRange{}, InvalidField("dateFrom")
	}
	if r.To, err = parseDay(to); err != nil {
		return DateRange{}, InvalidField("dateTo")
	}
	return r, nil
}

func parseDay(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, v); err == nil {
			return day(t), nil
		}
	}
	return time.Time{}, err
}

// Contains compares by UTC calendar day, so a To bound covers the whole day.
func (r DateRange) Contains(t time.Time) bool {
	d := day(t)
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// sequence hands out prefixed ids past the highest numeric suffix it was
// seeded with.
type sequence struct {
	prefix string
	n      int
}

func newSequence(prefix string, ids []string) sequence {
	s := sequence{prefix: prefix}
	for _, id := range ids {
		if n, err := strconv.Atoi(strings.TrimPrefix(id, prefix)); err == nil && n > s.n {
			s.n = n
		}
	}
	return s
}

func (s *sequence) next() string {
	s.n++
	return s.prefix + strconv.Itoa(s.n)
}

// paginate returns the 1-based page of items. Out of range pages are empty.
func paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return []T{}
	}
	// compare before multiplying so huge page or limit values cannot overflow
	if len(items) == 0 || page-1 > (len(items)-1)/limit {
		return []T{}
	}
	start := (page - 1) * limit
	end := len(items)
	if limit < end-start {
		end = start + limit
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// pageCount is the number of limit-sized pages needed for n items.
func pageCount(n, limit int) int {
	if n <= 0 || limit < 1 {
		return 0
	}
	return (n-1)/limit + 1
}

func idsOf[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}
