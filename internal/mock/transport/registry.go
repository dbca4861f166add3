package transport

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/readee/gateway/internal/mock/handlers"
)

// Registry owns the interceptor chain. Installing a domain wraps the current
// head; each domain name is installed at most once.
type Registry struct {
	mu        sync.RWMutex
	head      http.RoundTripper
	installed []string
	swaps     int
	logger    zerolog.Logger
	metrics   *Metrics
}

// NewRegistry starts an empty chain over base. A nil base means
// http.DefaultTransport; nil metrics are created unregistered.
func NewRegistry(base http.RoundTripper, logger zerolog.Logger, metrics *Metrics) *Registry {
	if base == nil {
		base = http.DefaultTransport
	}
	if metrics == nil {
		metrics, _ = NewMetrics(nil)
	}
	return &Registry{
		head:    passThrough{base: base, metrics: metrics},
		logger:  logger,
		metrics: metrics,
	}
}

// Install puts d in front of the chain. It returns false, changing nothing,
// when a domain with the same name is already installed.
func (r *Registry) Install(d *handlers.Domain) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range r.installed {
		if name == d.Name {
			return false
		}
	}
	r.head = &Interceptor{domain: d, next: r.head, logger: r.logger, metrics: r.metrics}
	r.installed = append(r.installed, d.Name)
	r.swaps++
	r.metrics.recordInstalled(len(r.installed))
	r.logger.Info().Str("domain", d.Name).Msg("mock API enabled")
	return true
}

// Installed lists domain names in install order.
func (r *Registry) Installed() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.installed...)
}

// Swaps counts how many times the head of the chain was replaced.
func (r *Registry) Swaps() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.swaps
}

func (r *Registry) RoundTrip(req *http.Request) (*http.Response, error) {
	r.mu.RLock()
	head := r.head
	r.mu.RUnlock()
	return head.RoundTrip(req)
}
