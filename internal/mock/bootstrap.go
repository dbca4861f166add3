// Package mock wires the local API simulation layer: seeded stores, one
// handler domain per API area, and the transport registry that serves them.
package mock

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/readee/gateway/internal/config"
	"github.com/readee/gateway/internal/mock/handlers"
	"github.com/readee/gateway/internal/mock/store"
	"github.com/readee/gateway/internal/mock/transport"
)

// Layer is the assembled simulation layer. Stores is nil when the layer is
// disabled.
type Layer struct {
	Registry *transport.Registry
	Stores   *store.Set
	Enabled  bool
}

// Bootstrap builds the registry over base. With cfg.UseMock off nothing is
// installed and every call reaches base.
func Bootstrap(cfg config.Config, base http.RoundTripper, logger zerolog.Logger, reg prometheus.Registerer) (*Layer, error) {
	metrics, err := transport.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("mock metrics: %w", err)
	}
	layer := &Layer{Registry: transport.NewRegistry(base, logger, metrics)}
	if !cfg.UseMock {
		return layer, nil
	}

	stores, err := store.Default(nil)
	if err != nil {
		return nil, fmt.Errorf("mock seed: %w", err)
	}
	layer.Stores = stores
	layer.Enabled = true
	for _, d := range Domains(stores) {
		layer.Registry.Install(d)
	}
	logger.Info().Strs("domains", layer.Registry.Installed()).Msg("mock API layer ready")
	return layer, nil
}

// Domains returns every handler domain over s in install order.
func Domains(s *store.Set) []*handlers.Domain {
	return []*handlers.Domain{
		handlers.Tickets(s.Tickets),
		handlers.Notifications(s.Notifications),
		handlers.Profile(s.Profiles),
		handlers.OrganizationAdmin(s.OrganizationAdmin),
		handlers.Organizations(s.Organizations),
		handlers.Tags(s.Tags),
		handlers.Domains(s.Domains),
		handlers.Types(s.Types),
		handlers.Specializations(s.Specializations),
		handlers.Documents(s.Uploads),
		handlers.Library(s.Library),
		handlers.Policies(s.Policies),
	}
}

// Reset returns every store to its seed. It reports false when the layer is
// disabled.
func (l *Layer) Reset() bool {
	if l.Stores == nil {
		return false
	}
	l.Stores.Reset()
	return true
}
