// Package module wires the dashboard API onto a router
package module

import (
	stdhttp "net/http"

	"pulsetrack/internal/modkit"
	phttp "pulsetrack/internal/platform/net/http"
	"pulsetrack/internal/platform/net/middleware"

	apihttp "pulsetrack/internal/services/api/http"
)

// Module mounts the read API and the key-protected admin surface
type Module struct {
	deps  modkit.Deps
	ports apihttp.Ports
}

// New constructs the API module
func New(deps modkit.Deps, ports apihttp.Ports) *Module {
	if ports.Ratings == nil || ports.Demos == nil || ports.Audit == nil {
		panic("api module: Ports missing Ratings, Demos, or Audit")
	}
	return &Module{deps: deps, ports: ports}
}

// Name identifies the module
func (m *Module) Name() string { return "api" }

// MountRoutes attaches all endpoints to r
func (m *Module) MountRoutes(r phttp.Router) {
	apihttp.Register(r, m.ports)

	apiKey := m.deps.Cfg.MustString("API_KEY")
	r.Route("/admin", func(r phttp.Router) {
		r.Use(middleware.APIKey(apiKey, func(w stdhttp.ResponseWriter, status int, body any) {
			phttp.JSON(w, status, body)
		}))
		apihttp.RegisterAdmin(r, m.ports)
	})
}
