package store

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/readee/gateway/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

// Seed is the fixture data every store starts from and returns to on reset.
type Seed struct {
	Notifications     []NotificationSeed       `yaml:"notifications"`
	Profiles          []models.Profile         `yaml:"profiles"`
	OrganizationAdmin models.OrganizationInfo  `yaml:"organizationAdmin"`
	Organizations     []models.Organization    `yaml:"organizations"`
	Tags              []models.Tag             `yaml:"tags"`
	Domains           []models.Domain          `yaml:"domains"`
	Types             []models.DocumentType    `yaml:"types"`
	Specializations   []models.Specialization  `yaml:"specializations"`
	Uploads           UploadSeed               `yaml:"uploads"`
	Library           []models.LibraryDocument `yaml:"library"`
	Policies          []models.Policy          `yaml:"policies"`
}

// NotificationSeed dates a notification relative to the store clock.
type NotificationSeed struct {
	models.Notification `yaml:",inline"`
	Age                 time.Duration `yaml:"age"`
}

type UploadSeed struct {
	Types           []models.UploadType           `yaml:"types"`
	Domains         []models.UploadDomain         `yaml:"domains"`
	Tags            []models.UploadTag            `yaml:"tags"`
	Specializations []models.UploadSpecialization `yaml:"specializations"`
	History         []HistorySeed                 `yaml:"history"`
}

// HistorySeed dates an upload history entry relative to the store clock.
type HistorySeed struct {
	models.UploadHistoryEntry `yaml:",inline"`
	Age                       time.Duration `yaml:"age"`
}

// DefaultSeed decodes the embedded fixtures.
func DefaultSeed() (Seed, error) {
	return LoadSeed(seedYAML)
}

// LoadSeed decodes fixtures from YAML and checks the invariants the stores
// rely on.
func LoadSeed(data []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	if err := s.validate(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

func (s Seed) validate() error {
	hasReader := false
	for _, p := range s.Profiles {
		if p.Role == models.RoleReader {
			hasReader = true
		}
	}
	if !hasReader {
		return fmt.Errorf("seed: profiles must include a %s template", models.RoleReader)
	}
	checks := []struct {
		kind string
		ids  []string
	}{
		{"notification", idsOf(s.Notifications, func(n NotificationSeed) string { return n.ID })},
		{"organization", idsOf(s.Organizations, func(o models.Organization) string { return o.ID })},
		{"tag", idsOf(s.Tags, func(t models.Tag) string { return t.ID })},
		{"domain", idsOf(s.Domains, func(d models.Domain) string { return d.ID })},
		{"type", idsOf(s.Types, func(t models.DocumentType) string { return t.ID })},
		{"specialization", idsOf(s.Specializations, func(sp models.Specialization) string { return sp.ID })},
		{"upload", idsOf(s.Uploads.History, func(h HistorySeed) string { return h.ID })},
		{"library document", idsOf(s.Library, func(d models.LibraryDocument) string { return d.ID })},
		{"policy", idsOf(s.Policies, func(p models.Policy) string { return p.ID })},
		{"policy type", idsOf(s.Policies, func(p models.Policy) string { return string(p.Type) })},
	}
	for _, c := range checks {
		seen := make(map[string]struct{}, len(c.ids))
		for _, id := range c.ids {
			if id == "" {
				return fmt.Errorf("seed: %s without id", c.kind)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("seed: duplicate %s id %q", c.kind, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}
