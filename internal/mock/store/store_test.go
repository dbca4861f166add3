package store

import (
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/readee/gateway/internal/models"
)

var fixedNow = time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC)

func newTestSet(t *testing.T) *Set {
	t.Helper()
	set, err := Default(func() time.Time { return fixedNow })
	if err != nil {
		t.Fatalf("load default seed: %v", err)
	}
	return set
}

func TestDefaultSeedCounts(t *testing.T) {
	seed, err := DefaultSeed()
	if err != nil {
		t.Fatalf("DefaultSeed: %v", err)
	}
	cases := map[string][2]int{
		"notifications":   {len(seed.Notifications), 12},
		"profiles":        {len(seed.Profiles), 5},
		"organizations":   {len(seed.Organizations), 2},
		"tags":            {len(seed.Tags), 15},
		"domains":         {len(seed.Domains), 10},
		"types":           {len(seed.Types), 10},
		"specializations": {len(seed.Specializations), 10},
		"upload types":    {len(seed.Uploads.Types), 5},
		"upload domains":  {len(seed.Uploads.Domains), 6},
		"upload specs":    {len(seed.Uploads.Specializations), 21},
		"history":         {len(seed.Uploads.History), 7},
		"library":         {len(seed.Library), 8},
		"policies":        {len(seed.Policies), 7},
	}
	for name, c := range cases {
		if c[0] != c[1] {
			t.Fatalf("%s: expected %d, got %d", name, c[1], c[0])
		}
	}
	if seed.Notifications[0].Age != 5*time.Minute {
		t.Fatalf("expected first notification age 5m, got %s", seed.Notifications[0].Age)
	}
	if seed.OrganizationAdmin.Logo != nil {
		t.Fatalf("expected nil logo, got %v", *seed.OrganizationAdmin.Logo)
	}
}

func TestLoadSeedRejectsDuplicateIDs(t *testing.T) {
	data := []byte(`
profiles:
  - {id: "1", role: READER, email: r@example.com}
tags:
  - {id: tag-1, name: A, status: ACTIVE}
  - {id: tag-1, name: B, status: ACTIVE}
`)
	if _, err := LoadSeed(data); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestLoadSeedRequiresReaderTemplate(t *testing.T) {
	if _, err := LoadSeed([]byte("profiles: []\n")); err == nil {
		t.Fatalf("expected missing reader template error")
	}
}

func TestTicketInsertAssignsCode(t *testing.T) {
	set := newTestSet(t)
	ticket := set.Tickets.Insert(models.ContactAdminPayload{
		Name:     "Ann",
		Email:    "ann@example.com",
		Category: models.CategoryAccess,
		Urgency:  models.UrgencyHigh,
		Subject:  "Locked out",
		Message:  "Cannot sign in",
	})
	if !regexp.MustCompile(`^TCK-\d{8}-[A-Z0-9]{5}$`).MatchString(ticket.TicketCode) {
		t.Fatalf("unexpected ticket code %q", ticket.TicketCode)
	}
	if ticket.TicketCode[4:12] != fixedNow.Format("20060102") {
		t.Fatalf("expected date part of code to be today, got %q", ticket.TicketCode)
	}
	if ticket.Status != models.TicketOpen {
		t.Fatalf("expected OPEN, got %s", ticket.Status)
	}
	if ticket.CreatedBy.Email != "ann@example.com" {
		t.Fatalf("unexpected author %+v", ticket.CreatedBy)
	}

	byCode, err := set.Tickets.Get(ticket.TicketCode)
	if err != nil || byCode.TicketID != ticket.TicketID {
		t.Fatalf("lookup by code: %+v, %v", byCode, err)
	}
	if _, err := set.Tickets.Get(ticket.TicketID); err != nil {
		t.Fatalf("lookup by id: %v", err)
	}
	if _, err := set.Tickets.Get("TCK-00000000-XXXXX"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTicketCodesNeverRepeat(t *testing.T) {
	s := NewTicketStore(func() time.Time { return fixedNow })
	// The first ten draws produce the same code twice; the retry draws 1s.
	draws := 0
	s.intn = func(int) int {
		draws++
		if draws <= 10 {
			return 0
		}
		return 1
	}
	a := s.Insert(models.ContactAdminPayload{Name: "a"})
	s.Clear()
	b := s.Insert(models.ContactAdminPayload{Name: "b"})
	if a.TicketCode == b.TicketCode {
		t.Fatalf("expected distinct codes, both %q", a.TicketCode)
	}
	if b.TicketCode != "TCK-20251016-BBBBB" {
		t.Fatalf("expected regenerated code, got %q", b.TicketCode)
	}
	if got := len(s.List()); got != 1 {
		t.Fatalf("expected 1 ticket after clear, got %d", got)
	}
}

func TestTicketListNewestFirst(t *testing.T) {
	set := newTestSet(t)
	first := set.Tickets.Insert(models.ContactAdminPayload{Name: "first"})
	second := set.Tickets.Insert(models.ContactAdminPayload{Name: "second"})
	list := set.Tickets.List()
	if len(list) != 2 || list[0].TicketID != second.TicketID || list[1].TicketID != first.TicketID {
		t.Fatalf("unexpected order %+v", list)
	}
}

func TestNotificationsMarkAsRead(t *testing.T) {
	set := newTestSet(t)
	list, unread := set.Notifications.List()
	if len(list) != 12 || unread != 7 {
		t.Fatalf("expected 12 notifications with 7 unread, got %d/%d", len(list), unread)
	}
	if list[0].ID != "12" {
		t.Fatalf("expected most recently inserted first, got %s", list[0].ID)
	}
	if got := fixedNow.Sub(list[len(list)-1].Timestamp); got != 5*time.Minute {
		t.Fatalf("expected notification 1 to be 5m old, got %s", got)
	}

	n, err := set.Notifications.MarkAsRead("1")
	if err != nil || !n.IsRead {
		t.Fatalf("mark as read: %+v, %v", n, err)
	}
	if set.Notifications.UnreadCount() != 6 {
		t.Fatalf("expected 6 unread, got %d", set.Notifications.UnreadCount())
	}
	if _, err := set.Notifications.MarkAsRead("1"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if _, err := set.Notifications.MarkAsRead("404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileGetUpdateClear(t *testing.T) {
	set := newTestSet(t)
	if p := set.Profiles.Get("reviewer"); p.Email != "reviewer@example.com" {
		t.Fatalf("expected reviewer template, got %s", p.Email)
	}
	if p := set.Profiles.Get("NOBODY"); p.Role != models.RoleReader {
		t.Fatalf("expected reader fallback, got %s", p.Role)
	}

	name := "Renamed Reader"
	updated := set.Profiles.Update(models.ProfilePatch{FullName: &name})
	if updated.FullName != name || updated.Email != "reader@example.com" {
		t.Fatalf("unexpected merge result %+v", updated)
	}
	email := "new@example.com"
	updated = set.Profiles.Update(models.ProfilePatch{Email: &email})
	if updated.FullName != name || updated.Email != email {
		t.Fatalf("expected both patches applied, got %+v", updated)
	}

	set.Profiles.Clear()
	if p := set.Profiles.Get(""); p.FullName != "Reader One" || p.Email != "reader@example.com" {
		t.Fatalf("expected template after clear, got %+v", p)
	}
}

func TestProfileRoleSwitch(t *testing.T) {
	set := newTestSet(t)
	role := models.RoleOrganization
	p := set.Profiles.Update(models.ProfilePatch{Role: &role})
	if p.Role != models.RoleOrganization || p.OrganizationName != "Acme Org" {
		t.Fatalf("expected organization template, got %+v", p)
	}
	if got := set.Profiles.Get(""); got.Role != models.RoleOrganization {
		t.Fatalf("expected current role to stick, got %s", got.Role)
	}
}

func TestOrganizationAdminLifecycle(t *testing.T) {
	set := newTestSet(t)
	name := "Renamed Hub"
	info := set.OrganizationAdmin.Update(models.OrganizationPatch{Name: &name})
	if info.Name != name || info.RegistrationNumber != "REG-2024-001234" {
		t.Fatalf("unexpected merge %+v", info)
	}
	set.OrganizationAdmin.Delete()
	if !set.OrganizationAdmin.Get().Deleted {
		t.Fatalf("expected soft delete")
	}
	set.OrganizationAdmin.Reset()
	if got := set.OrganizationAdmin.Get(); got.Deleted || got.Name != "Tech Innovation Hub" {
		t.Fatalf("expected seed after reset, got %+v", got)
	}
}

func TestOrganizationsLeave(t *testing.T) {
	set := newTestSet(t)
	if err := set.Organizations.Leave("org-1"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if list := set.Organizations.List(); len(list) != 1 || list[0].ID != "org-2" {
		t.Fatalf("unexpected list %+v", list)
	}
	if _, err := set.Organizations.Get("org-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := set.Organizations.Leave("org-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second leave, got %v", err)
	}
}

func TestTagCreateAndApprove(t *testing.T) {
	set := newTestSet(t)
	tag, err := set.Tags.Create("  Physics ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tag.ID != "tag-16" || tag.Name != "Physics" || tag.Status != models.TagPending {
		t.Fatalf("unexpected tag %+v", tag)
	}
	if head := set.Tags.List(TagFilter{}); head[0].ID != tag.ID {
		t.Fatalf("expected new tag first, got %s", head[0].ID)
	}

	approved, err := set.Tags.Approve(tag.ID)
	if err != nil || approved.Status != models.TagActive {
		t.Fatalf("approve: %+v, %v", approved, err)
	}
	if _, err := set.Tags.Approve(tag.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	got, _ := set.Tags.Get(tag.ID)
	if got.Status != models.TagActive {
		t.Fatalf("expected tag to stay ACTIVE, got %s", got.Status)
	}
}

func TestTagNameRules(t *testing.T) {
	set := newTestSet(t)
	if _, err := set.Tags.Create("machine learning"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}
	if _, err := set.Tags.Create("   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected empty rejection, got %v", err)
	}
	// Renaming a tag to its own name is not a duplicate.
	same := "Machine Learning"
	if _, err := set.Tags.Update("tag-1", &same, nil); err != nil {
		t.Fatalf("self rename: %v", err)
	}
	bogus := models.TagStatus("ARCHIVED")
	if _, err := set.Tags.Update("tag-1", nil, &bogus); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected invalid status rejection, got %v", err)
	}
	if got := len(set.Tags.List(TagFilter{})); got != 15 {
		t.Fatalf("expected failed creates to leave 15 tags, got %d", got)
	}
}

func TestTagFilters(t *testing.T) {
	set := newTestSet(t)
	if got := len(set.Tags.List(TagFilter{Status: models.TagPending})); got != 3 {
		t.Fatalf("expected 3 pending, got %d", got)
	}
	// tag-1 and tag-10 through tag-15.
	if got := len(set.Tags.List(TagFilter{Search: "TAG-1"})); got != 7 {
		t.Fatalf("expected 7 id matches, got %d", got)
	}
	dates, err := ParseDateRange("2025-01-20", "2025-01-22")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	list := set.Tags.List(TagFilter{Dates: dates})
	if len(list) != 3 || list[0].ID != "tag-6" || list[2].ID != "tag-8" {
		t.Fatalf("unexpected date filter result %+v", list)
	}
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2025-01-10T23:00:00Z", "")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if !r.Contains(time.Date(2025, 1, 10, 1, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected same calendar day to match")
	}
	if r.Contains(time.Date(2025, 1, 9, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("expected previous day to be excluded")
	}
	if _, err := ParseDateRange("yesterday", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDomainAndTypeCatalogs(t *testing.T) {
	set := newTestSet(t)
	d, err := set.Domains.Create("Astronomy")
	if err != nil || d.ID != "domain-11" {
		t.Fatalf("create domain: %+v, %v", d, err)
	}
	if _, err := set.Domains.Create("PHYSICS"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected duplicate domain rejection, got %v", err)
	}
	if err := set.Domains.Delete("domain-11"); err != nil {
		t.Fatalf("delete domain: %v", err)
	}
	if _, err := set.Domains.Get("domain-11"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	name := "Journal Article"
	typ, err := set.Types.Update("type-2", &name)
	if err != nil {
		t.Fatalf("update type: %v", err)
	}
	if typ.Name != name || !typ.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected type %+v", typ)
	}
	if got := len(set.Types.List(CatalogFilter{Search: "paper"})); got != 2 {
		t.Fatalf("expected 2 types matching paper, got %d", got)
	}
}

func TestSpecializationsUniquePerDomain(t *testing.T) {
	set := newTestSet(t)
	if _, err := set.Specializations.Create("Algebra", "domain-2"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected duplicate in domain-2, got %v", err)
	}
	sp, err := set.Specializations.Create("Algebra", "domain-1")
	if err != nil || sp.ID != "spec-11" {
		t.Fatalf("create in other domain: %+v, %v", sp, err)
	}
	if got := len(set.Specializations.List("domain-1", "")); got != 5 {
		t.Fatalf("expected 5 specializations in domain-1, got %d", got)
	}
	if got := len(set.Specializations.List("domain-1", "data")); got != 1 {
		t.Fatalf("expected 1 search hit, got %d", got)
	}
	if _, err := set.Specializations.Create("Topology", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected missing domain rejection, got %v", err)
	}
}

func TestUploadHistoryPaging(t *testing.T) {
	set := newTestSet(t)
	page := set.Uploads.History(HistoryFilter{})
	if page.Total != 7 || page.Limit != 10 || page.TotalPages != 1 || len(page.Documents) != 7 {
		t.Fatalf("unexpected default page %+v", page)
	}
	page = set.Uploads.History(HistoryFilter{Page: 3, Limit: 3})
	if len(page.Documents) != 1 || page.Documents[0].ID != "doc-7" || page.TotalPages != 3 {
		t.Fatalf("unexpected last page %+v", page)
	}
	page = set.Uploads.History(HistoryFilter{Status: models.HistoryRejected})
	if page.Total != 2 {
		t.Fatalf("expected 2 rejected, got %d", page.Total)
	}
	if got := len(set.Uploads.Specializations(nil)); got != 0 {
		t.Fatalf("expected no specializations without domains, got %d", got)
	}
	if got := len(set.Uploads.Specializations([]string{"domain-1", "domain-6"})); got != 8 {
		t.Fatalf("expected 8 specializations, got %d", got)
	}
}

func TestRecordUpload(t *testing.T) {
	set := newTestSet(t)
	h := set.Uploads.RecordUpload(Upload{FileName: "notes.pdf", Size: 42, TypeID: "type-2", DomainID: "domain-3", SpecializationID: "spec-10"})
	if h.ID != "doc-8" || h.Status != models.HistoryPending || h.Type != "Article" || h.Specialization != "Quantum Physics" {
		t.Fatalf("unexpected entry %+v", h)
	}
	if first := set.Uploads.History(HistoryFilter{}).Documents[0]; first.ID != "doc-8" {
		t.Fatalf("expected new upload first, got %s", first.ID)
	}
}

func TestRequestReReview(t *testing.T) {
	set := newTestSet(t)
	if err := set.Uploads.RequestReReview("doc-3"); err != nil {
		t.Fatalf("re-review doc-3: %v", err)
	}
	if err := set.Uploads.RequestReReview("doc-3"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected second request to fail, got %v", err)
	}
	if err := set.Uploads.RequestReReview("doc-5"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected doc-5 to be locked, got %v", err)
	}
	if err := set.Uploads.RequestReReview("doc-1"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected approved doc to fail, got %v", err)
	}
	if err := set.Uploads.RequestReReview("doc-99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLibraryList(t *testing.T) {
	set := newTestSet(t)
	docs, total := set.Library.List(LibraryFilter{})
	if total != 8 || len(docs) != 8 {
		t.Fatalf("expected 8 documents, got %d/%d", len(docs), total)
	}
	if _, total := set.Library.List(LibraryFilter{Search: "guide"}); total != 3 {
		t.Fatalf("expected 3 guide matches, got %d", total)
	}
	if _, total := set.Library.List(LibraryFilter{Source: models.SourcePurchased}); total != 3 {
		t.Fatalf("expected 3 purchased, got %d", total)
	}
	docs, total = set.Library.List(LibraryFilter{Page: 2, Limit: 5})
	if total != 8 || len(docs) != 3 {
		t.Fatalf("expected 3 on page 2, got %d", len(docs))
	}
	docs[0].TagIDs[0] = "mutated"
	again, _ := set.Library.List(LibraryFilter{Page: 2, Limit: 5})
	if again[0].TagIDs[0] == "mutated" {
		t.Fatalf("expected list to return copies")
	}
}

func TestLibraryUpdateIsAtomic(t *testing.T) {
	set := newTestSet(t)
	base := LibraryUpdate{Title: "New title", Visibility: models.VisibilityPublic, TypeID: "type-1", DomainID: "domain-1"}

	bad := base
	bad.TagIDs = []string{"tag-1", "tag-404"}
	if err := set.Library.Update("lib-1", bad); !errors.Is(err, ErrValidation) || err.Error() != "Invalid tag IDs: tag-404" {
		t.Fatalf("expected invalid tag error, got %v", err)
	}
	internal := base
	internal.Visibility = models.VisibilityInternal
	if err := set.Library.Update("lib-1", internal); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected missing organization error, got %v", err)
	}
	docs, _ := set.Library.List(LibraryFilter{Search: "Project Folder"})
	if len(docs) != 1 {
		t.Fatalf("expected lib-1 untouched after rejected updates")
	}

	if err := set.Library.Update("lib-3", base); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected purchased document rejection, got %v", err)
	}
	if err := set.Library.Update("lib-404", base); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLibraryUpdateCreatesTags(t *testing.T) {
	set := newTestSet(t)
	err := set.Library.Update("lib-4", LibraryUpdate{
		Title:      "Database Design Patterns v2",
		Visibility: models.VisibilityPublic,
		TypeID:     "type-4",
		DomainID:   "domain-1",
		TagIDs:     []string{"tag-2"},
		NewTags:    []string{"Robotics", "security"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	docs, _ := set.Library.List(LibraryFilter{Search: "v2"})
	if len(docs) != 1 {
		t.Fatalf("expected renamed document")
	}
	d := docs[0]
	if d.Type != "Report" || d.Domain != "Computer Science" || d.OrganizationID != "" {
		t.Fatalf("unexpected document %+v", d)
	}
	want := []string{"tag-2", "tag-9", "tag-8"}
	if len(d.TagIDs) != len(want) {
		t.Fatalf("expected tags %v, got %v", want, d.TagIDs)
	}
	for i := range want {
		if d.TagIDs[i] != want[i] {
			t.Fatalf("expected tags %v, got %v", want, d.TagIDs)
		}
	}
}

func TestLibraryDelete(t *testing.T) {
	set := newTestSet(t)
	if err := set.Library.Delete("lib-5"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected purchased rejection, got %v", err)
	}
	if err := set.Library.Delete("lib-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, total := set.Library.List(LibraryFilter{}); total != 7 {
		t.Fatalf("expected 7 documents, got %d", total)
	}
}

func TestSetReset(t *testing.T) {
	set := newTestSet(t)
	set.Tickets.Insert(models.ContactAdminPayload{Name: "x"})
	if _, err := set.Tags.Create("Physics"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := set.Library.Delete("lib-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	set.Reset()
	if len(set.Tickets.List()) != 0 {
		t.Fatalf("expected no tickets after reset")
	}
	if got := len(set.Tags.List(TagFilter{})); got != 15 {
		t.Fatalf("expected 15 tags after reset, got %d", got)
	}
	if _, total := set.Library.List(LibraryFilter{}); total != 8 {
		t.Fatalf("expected 8 library documents after reset, got %d", total)
	}
	tag, _ := set.Tags.Create("Physics")
	if tag.ID != "tag-16" {
		t.Fatalf("expected ids to restart after reset, got %s", tag.ID)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := paginate(items, 2, 2); len(got) != 2 || got[0] != 3 {
		t.Fatalf("unexpected page %v", got)
	}
	if got := paginate(items, 4, 2); len(got) != 0 {
		t.Fatalf("expected empty page, got %v", got)
	}
	if got := paginate(items, 0, 10); len(got) != 5 {
		t.Fatalf("expected page 0 to clamp to 1, got %v", got)
	}
	if got := paginate(items, 4611686018427387904, 12); len(got) != 0 {
		t.Fatalf("expected huge page to be empty, got %v", got)
	}
	if got := paginate(items, 2, math.MaxInt); len(got) != 0 {
		t.Fatalf("expected page 2 of a huge limit to be empty, got %v", got)
	}
	if got := paginate(items, 1, math.MaxInt); len(got) != 5 {
		t.Fatalf("expected huge limit to return everything, got %v", got)
	}
	if got := paginate([]int{}, 1, 10); len(got) != 0 {
		t.Fatalf("expected empty page for no items, got %v", got)
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		n, limit, want int
	}{
		{0, 10, 0},
		{7, 5, 2},
		{10, 5, 2},
		{7, math.MaxInt, 1},
		{7, 0, 0},
	}
	for _, c := range cases {
		if got := pageCount(c.n, c.limit); got != c.want {
			t.Fatalf("pageCount(%d, %d): expected %d, got %d", c.n, c.limit, c.want, got)
		}
	}
}

func TestHistoryHugeLimit(t *testing.T) {
	set := newTestSet(t)
	page := set.Uploads.History(HistoryFilter{Page: 1, Limit: math.MaxInt})
	if page.Total != 7 || len(page.Documents) != 7 || page.TotalPages != 1 {
		t.Fatalf("expected one page of 7, got total=%d docs=%d pages=%d", page.Total, len(page.Documents), page.TotalPages)
	}
}

func TestNotificationsUnreadCount(t *testing.T) {
	set := newTestSet(t)
	if n := set.Notifications.UnreadCount(); n != 7 {
		t.Fatalf("expected 7 unread, got %d", n)
	}
	if _, err := set.Notifications.MarkAsRead("1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	_, unread := set.Notifications.List()
	if n := set.Notifications.UnreadCount(); n != 6 || unread != 6 {
		t.Fatalf("expected 6 unread, got count=%d list=%d", n, unread)
	}
}

func TestPolicyLookup(t *testing.T) {
	set := newTestSet(t)
	if got := len(set.Policies.List()); got != 7 {
		t.Fatalf("expected 7 policies, got %d", got)
	}
	p, err := set.Policies.Get("policy-terms")
	if err != nil || p.Type != models.PolicyTermsOfService || !p.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected terms policy %+v, err %v", p, err)
	}
	if _, err := set.Policies.Get("policy-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := set.Policies.ByType("NO_SUCH_TYPE", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown type, got %v", err)
	}
}

func TestPolicyUpdateByType(t *testing.T) {
	set := newTestSet(t)
	required := false
	p, err := set.Policies.UpdateByType(models.PolicyCookie, models.PolicyPatch{
		Title:      "Cookies",
		Status:     models.PolicyInactive,
		IsRequired: &required,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Title != "Cookies" || p.Status != models.PolicyInactive || p.Content == "" {
		t.Fatalf("unexpected update result %+v", p)
	}
	if _, err := set.Policies.ByType(models.PolicyCookie, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected inactive policy hidden from active lookup, got %v", err)
	}
	if _, err := set.Policies.ByType(models.PolicyCookie, false); err != nil {
		t.Fatalf("expected inactive policy visible to admins, got %v", err)
	}
	if _, err := set.Policies.UpdateByType(models.PolicyCookie, models.PolicyPatch{Status: "ARCHIVED"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := set.Policies.UpdateByType("NO_SUCH_TYPE", models.PolicyPatch{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPolicyAcceptanceAndReset(t *testing.T) {
	set := newTestSet(t)
	if err := set.Policies.Accept("policy-terms", "reader-1"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	v, err := set.Policies.View("policy-terms", "reader-1")
	if err != nil || !v.HasAccepted || v.AcceptanceDate == nil || !v.AcceptanceDate.Equal(fixedNow) {
		t.Fatalf("expected acceptance recorded, got %+v err %v", v, err)
	}
	if v, _ := set.Policies.View("policy-terms", "reader-2"); v.HasAccepted {
		t.Fatalf("acceptance must be per user")
	}
	if err := set.Policies.Accept("policy-404", "reader-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := set.Policies.Accept("policy-terms", " "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected missing user id, got %v", err)
	}

	set.Reset()
	if v, _ := set.Policies.View("policy-terms", "reader-1"); v.HasAccepted {
		t.Fatalf("expected reset to forget acceptances")
	}
}
