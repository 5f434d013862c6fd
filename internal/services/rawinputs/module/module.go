// Package module wires the raw inputs service
package module

import (
	"pulsetrack/internal/modkit"
	"pulsetrack/internal/services/rawinputs/domain"
	"pulsetrack/internal/services/rawinputs/repo"
	"pulsetrack/internal/services/rawinputs/service"
)

// Ports exposed by the raw inputs module
type Ports struct {
	Writer domain.WriterPort
	Reader domain.ReaderPort
	RW     domain.ReadWriterPort
}

// Module owns the raw inputs service wiring
type Module struct {
	ports Ports
}

// New constructs the raw inputs module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.PG, repo.NewPG(), deps.Log)
	return &Module{ports: Ports{Writer: svc, Reader: svc, RW: svc}}
}

// Name identifies the module
func (m *Module) Name() string { return "rawinputs" }

// Ports returns the module's exposed ports
func (m *Module) Ports() Ports { return m.ports }
