// Package module wires the ratings service
package module

import (
	"pulsetrack/internal/modkit"
	"pulsetrack/internal/services/ratings/domain"
	"pulsetrack/internal/services/ratings/repo"
	"pulsetrack/internal/services/ratings/service"
)

// Ports exposed by the ratings module
type Ports struct {
	Writer domain.WriterPort
	Reader domain.ReaderPort
	RW     domain.ReadWriterPort
}

// Module owns the ratings service wiring
type Module struct {
	ports Ports
}

// New constructs the ratings module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.PG, repo.NewPG(), deps.Log)
	return &Module{ports: Ports{Writer: svc, Reader: svc, RW: svc}}
}

// Name identifies the module
func (m *Module) Name() string { return "ratings" }

// Ports returns the module's exposed ports
func (m *Module) Ports() Ports { return m.ports }
