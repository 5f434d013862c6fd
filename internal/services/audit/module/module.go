// Package module wires the audit service
package module

import (
	"pulsetrack/internal/modkit"
	"pulsetrack/internal/services/audit/domain"
	"pulsetrack/internal/services/audit/repo"
	"pulsetrack/internal/services/audit/service"
)

// Ports exposed by the audit module
type Ports struct {
	Recorder domain.RecorderPort
	Reader   domain.ReaderPort
}

// Module owns the audit service wiring
type Module struct {
	ports Ports
}

// New constructs the audit module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.PG, repo.NewPG(), deps.Log)
	return &Module{ports: Ports{Recorder: svc, Reader: svc}}
}

// Name identifies the module
func (m *Module) Name() string { return "audit" }

// Ports returns the module's exposed ports
func (m *Module) Ports() Ports { return m.ports }
