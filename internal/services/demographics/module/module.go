// Package module wires the demographics service
package module

import (
	"pulsetrack/internal/modkit"
	"pulsetrack/internal/services/demographics/domain"
	"pulsetrack/internal/services/demographics/repo"
	"pulsetrack/internal/services/demographics/service"
)

// Ports exposed by the demographics module
type Ports struct {
	Reader domain.ReaderPort
	Loader domain.LoaderPort
}

// Module owns the demographics service wiring
type Module struct {
	ports Ports
}

// New constructs the demographics module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.PG, repo.NewPG(), deps.Log)
	return &Module{ports: Ports{Reader: svc, Loader: svc}}
}

// Name identifies the module
func (m *Module) Name() string { return "demographics" }

// Ports returns the module's exposed ports
func (m *Module) Ports() Ports { return m.ports }
